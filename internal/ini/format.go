package ini

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hashDomain separates store hashes from any other SHA-256 use.
const hashDomain = "envcompose/ini/v1"

var cliEscaper = strings.NewReplacer(`"`, `\"`, `&`, `\&`, `|`, `\|`)

// String renders one "directive=value" line per value.
func (s *Store) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.text != nil {
		return *s.text
	}

	var sb strings.Builder
	for _, k := range s.keys {
		for _, v := range s.values[k] {
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(v)
			sb.WriteByte('\n')
		}
	}
	text := sb.String()
	s.text = &text
	return text
}

// CLIArgs renders the store as interpreter -d arguments.
//
// Only the first value of each directive is emitted. Double quotes,
// ampersands and pipes are backslash-escaped; on Windows hosts every % is
// doubled so batch scripts pass it through.
func (s *Store) CLIArgs(windows bool) string {
	slot := 0
	if windows {
		slot = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cliArgs[slot] != nil {
		return *s.cliArgs[slot]
	}

	var sb strings.Builder
	for _, k := range s.keys {
		value, ok := s.get(k)
		if !ok {
			continue
		}
		value = cliEscaper.Replace(value)
		if windows {
			value = strings.ReplaceAll(value, "%", "%%")
		}
		sb.WriteString(` -d "`)
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(value)
		sb.WriteByte('"')
	}
	args := sb.String()
	s.cliArgs[slot] = &args
	return args
}

// Equal reports whether s and other render the same text.
//
// Equality follows the text form, so it is sensitive to directive order:
// the same directives inserted in a different order compare unequal.
func (s *Store) Equal(other *Store) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return s.String() == other.String()
}

// Hash returns a hex SHA-256 of the text form, consistent with Equal.
// Format: SHA256(domain + 0x00 + text)
func (s *Store) Hash() string {
	h := sha256.New()
	h.Write([]byte(hashDomain))
	h.Write([]byte{0x00})
	h.Write([]byte(s.String()))
	return hex.EncodeToString(h.Sum(nil))
}
