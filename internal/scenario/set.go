package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Set is an ordered collection holding at most one capability per
// category. Capabilities keep the position at which their category was
// first added.
//
// A Set is not safe for concurrent mutation. Once frozen it is read-only
// and may be shared between goroutines.
type Set struct {
	order  []Category
	caps   map[Category]Capability
	frozen bool
}

// NewSet returns a set holding caps. Later capabilities replace earlier
// ones of the same category.
func NewSet(caps ...Capability) *Set {
	s := &Set{caps: make(map[Category]Capability)}
	for _, c := range caps {
		s.Add(c)
	}
	return s
}

// Add inserts c, replacing any capability of the same category.
// Panics if the set is frozen.
func (s *Set) Add(c Capability) {
	s.checkWritable("Add")
	if s.caps == nil {
		s.caps = make(map[Category]Capability)
	}
	cat := c.Category()
	if _, ok := s.caps[cat]; !ok {
		s.order = append(s.order, cat)
	}
	s.caps[cat] = c
}

// Get returns the capability of category cat.
func (s *Set) Get(cat Category) (Capability, bool) {
	c, ok := s.caps[cat]
	return c, ok
}

// Contains reports whether the set has a capability of category cat.
func (s *Set) Contains(cat Category) bool {
	_, ok := s.caps[cat]
	return ok
}

// Len returns the number of capabilities.
func (s *Set) Len() int {
	return len(s.order)
}

// Capabilities returns the capabilities in insertion order.
func (s *Set) Capabilities() []Capability {
	out := make([]Capability, 0, len(s.order))
	for _, cat := range s.order {
		out = append(out, s.caps[cat])
	}
	return out
}

// CompleteWithDefaults adds the default capability of every required
// category the set lacks. It is idempotent.
func (s *Set) CompleteWithDefaults() {
	for _, d := range Defaults() {
		if !s.Contains(d.Category()) {
			s.Add(d)
		}
	}
}

// Clone returns an unfrozen copy. Capabilities are shared.
func (s *Set) Clone() *Set {
	clone := &Set{
		order: append([]Category(nil), s.order...),
		caps:  make(map[Category]Capability, len(s.caps)),
	}
	for k, v := range s.caps {
		clone.caps[k] = v
	}
	return clone
}

// Freeze makes the set read-only.
func (s *Set) Freeze() {
	s.frozen = true
}

// Frozen reports whether the set is read-only.
func (s *Set) Frozen() bool {
	return s.frozen
}

func (s *Set) checkWritable(op string) {
	if s.frozen {
		panic("scenario: " + op + " on frozen set")
	}
}

// Name joins the names of all capabilities with "_".
func (s *Set) Name() string {
	names := make([]string, 0, len(s.order))
	for _, c := range s.Capabilities() {
		names = append(names, c.Name())
	}
	return strings.Join(names, "_")
}

// ShortName is like Name but leaves out capabilities ignored on layer.
func (s *Set) ShortName(layer Layer) string {
	var names []string
	for _, c := range s.Capabilities() {
		if IgnoreForShortName(c, layer) {
			continue
		}
		names = append(names, c.Name())
	}
	return strings.Join(names, "_")
}

func (s *Set) String() string {
	return s.Name()
}

// Check reports every reason the set cannot run on env: missing required
// categories, capabilities that are not implemented, and capabilities the
// target does not support.
func (s *Set) Check(env Env) error {
	var errs []error
	for _, cat := range RequiredCategories {
		if !s.Contains(cat) {
			errs = append(errs, &Error{
				Code:    ErrCodeInvalidSet,
				Message: fmt.Sprintf("missing required category %s", cat),
			})
		}
	}
	for _, c := range s.Capabilities() {
		if !c.IsImplemented() {
			errs = append(errs, &Error{
				Code:    ErrCodeNotImplemented,
				Kind:    c.Kind(),
				Message: fmt.Sprintf("%s is not implemented", c.Name()),
			})
			continue
		}
		if !c.IsSupported(env) {
			errs = append(errs, &Error{
				Code:    ErrCodeUnsupported,
				Kind:    c.Kind(),
				Message: fmt.Sprintf("%s is not supported on this host", c.Name()),
			})
		}
	}
	return errors.Join(errs...)
}

// Setup sets up every capability that requires it on layer, in order.
// It stops at the first failure and returns the handles acquired so far
// together with a SETUP_FAILED error; the caller releases them either way.
func (s *Set) Setup(ctx context.Context, env Env, layer Layer) ([]SetupHandle, error) {
	var handles []SetupHandle
	for _, c := range s.Capabilities() {
		if !SetupRequired(c, layer) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return handles, err
		}
		h, err := c.Setup(ctx, env)
		if err != nil {
			return handles, &Error{
				Code:    ErrCodeSetupFailed,
				Kind:    c.Kind(),
				Message: fmt.Sprintf("setup %s", c.Name()),
				Err:     err,
			}
		}
		if h == nil {
			h = SetupSuccess
		}
		slog.Debug("capability set up", "kind", c.Kind(), "handle", h.NameWithVersion())
		handles = append(handles, h)
	}
	return handles, nil
}

// Release closes handles in reverse order and joins any errors.
func Release(handles []SetupHandle) error {
	var errs []error
	for i := len(handles) - 1; i >= 0; i-- {
		if err := handles[i].Close(); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", handles[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}

// WillSkip reports whether any capability vetoes tc.
func (s *Set) WillSkip(env Env, tc TestCase) bool {
	for _, c := range s.Capabilities() {
		if c.WillSkip(env, tc) {
			return true
		}
	}
	return false
}

// UACRequiredForSetup reports whether any capability needs elevated
// privileges to set up.
func (s *Set) UACRequiredForSetup() bool {
	for _, c := range s.Capabilities() {
		if c.UACRequiredForSetup() {
			return true
		}
	}
	return false
}

// UACRequiredForStart reports whether any capability needs elevated
// privileges to start.
func (s *Set) UACRequiredForStart() bool {
	for _, c := range s.Capabilities() {
		if c.UACRequiredForStart() {
			return true
		}
	}
	return false
}
