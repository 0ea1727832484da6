package ini

import (
	"strings"
	"sync"
)

// PWDToken is replaced with the working directory by ParseDir.
const PWDToken = "{PWD}"

// Store is an ordered multi-valued directive map.
//
// Directives iterate in the order their name was first inserted. The zero
// value is an empty, writable store.
type Store struct {
	mu     sync.Mutex
	keys   []string
	values map[string][]string
	frozen bool

	// derived views, nil until rendered
	text    *string
	cliArgs [2]*string
	ext     *Store
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string][]string)}
}

// Parse reads directives from text.
func Parse(text string) *Store {
	return ParseDir(text, "")
}

// ParseDir reads directives from text, substituting {PWD} with workingDir.
//
// Substitution only happens when workingDir is non-empty and the token is
// present; in that case every "/" in the text becomes "\" afterwards.
func ParseDir(text, workingDir string) *Store {
	if workingDir != "" && strings.Contains(text, PWDToken) {
		text = strings.ReplaceAll(text, PWDToken, workingDir)
		text = strings.ReplaceAll(text, "/", `\`)
	}

	s := New()
	for _, line := range splitLines(text) {
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		i := strings.IndexByte(line, '=')
		if i == -1 {
			continue
		}
		s.Add(strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]))
	}
	return s
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Get returns the first value of directive.
func (s *Store) Get(directive string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(directive)
}

func (s *Store) get(directive string) (string, bool) {
	values := s.values[directive]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// GetAll returns a copy of every value of directive, in insertion order.
func (s *Store) GetAll(directive string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.values[directive]
	if !ok {
		return nil, false
	}
	return append([]string(nil), values...), true
}

// Has reports whether directive was ever set.
func (s *Store) Has(directive string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[directive]
	return ok
}

// Directives returns directive names in iteration order.
func (s *Store) Directives() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

// Set replaces every value of directive with value.
func (s *Store) Set(directive, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkWritable("Set")
	s.put(directive, []string{value})
	s.invalidate()
}

// Add appends value to directive unless an identical value is present.
//
// Add does not drop rendered views. See the package documentation.
func (s *Store) Add(directive, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkWritable("Add")
	values, ok := s.values[directive]
	if ok && contains(values, value) {
		return
	}
	s.put(directive, append(values, value))
}

// Remove deletes directive and all its values.
func (s *Store) Remove(directive string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkWritable("Remove")
	if _, ok := s.values[directive]; !ok {
		s.invalidate()
		return
	}
	delete(s.values, directive)
	for i, k := range s.keys {
		if k == directive {
			s.keys = append(s.keys[:i:i], s.keys[i+1:]...)
			break
		}
	}
	s.invalidate()
}

// ReplaceAll overwrites each directive present in other with other's
// values. Directives only present in s are left alone.
func (s *Store) ReplaceAll(other *Store) {
	keys, values := other.snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkWritable("ReplaceAll")
	for _, k := range keys {
		s.put(k, values[k])
	}
	if len(keys) > 0 {
		s.invalidate()
	}
}

// AppendAll re-adds every value of other back into other. The receiver is
// never modified.
//
// This mirrors long-standing behavior that callers may depend on; whether
// the receiver was meant to collect other's values is unconfirmed. A frozen
// other already holds every value that would be re-added and is skipped.
func (s *Store) AppendAll(other *Store) {
	if other.Frozen() {
		return
	}
	keys, values := other.snapshot()
	for _, k := range keys {
		for _, v := range values[k] {
			other.Add(k, v)
		}
	}
}

// ExtensionsOnly returns a read-only store holding only the extension
// directory and the extension list of s.
//
// The projection is memoized: repeated calls return the same *Store until
// a replacing mutation of s.
func (s *Store) ExtensionsOnly() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ext != nil {
		return s.ext
	}

	proj := New()
	if dir, ok := s.get(ExtensionDir); ok {
		proj.put(ExtensionDir, []string{dir})
	}
	if values, ok := s.values[Extension]; ok {
		proj.put(Extension, values)
	}
	proj.frozen = true
	s.ext = proj
	return proj
}

// Clone returns an independent, writable copy of s.
func (s *Store) Clone() *Store {
	keys, values := s.snapshot()
	c := New()
	for _, k := range keys {
		c.put(k, values[k])
	}
	return c
}

// Freeze marks s read-only. Subsequent mutations panic.
func (s *Store) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
}

// Frozen reports whether s is read-only.
func (s *Store) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

// CountDirectives returns the number of directives.
func (s *Store) CountDirectives() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// CountValues returns the number of values of directive.
func (s *Store) CountValues(directive string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values[directive])
}

// CountAllValues returns the number of values across all directives.
func (s *Store) CountAllValues() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, values := range s.values {
		n += len(values)
	}
	return n
}

// IsEmpty reports whether s has no directives.
func (s *Store) IsEmpty() bool {
	return s.CountDirectives() == 0
}

// put stores a copy of values under directive. Callers hold s.mu.
func (s *Store) put(directive string, values []string) {
	if s.values == nil {
		s.values = make(map[string][]string)
	}
	if _, ok := s.values[directive]; !ok {
		s.keys = append(s.keys, directive)
	}
	s.values[directive] = append([]string(nil), values...)
}

// invalidate drops every derived view. Callers hold s.mu.
func (s *Store) invalidate() {
	s.text = nil
	s.cliArgs = [2]*string{}
	s.ext = nil
}

func (s *Store) checkWritable(op string) {
	if s.frozen {
		panic("ini: " + op + " on frozen store")
	}
}

func (s *Store) snapshot() ([]string, map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := append([]string(nil), s.keys...)
	values := make(map[string][]string, len(s.values))
	for k, v := range s.values {
		values[k] = append([]string(nil), v...)
	}
	return keys, values
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
