package scenario

import (
	"errors"
	"fmt"
	"io"

	"github.com/roach88/envcompose/internal/scenario/codec"
)

// WriteCapability emits c as one tagged record.
func WriteCapability(w *codec.Writer, c Capability) error {
	return w.WriteRecord(c.Kind(), c.CustomFields())
}

// ReadCapability reads the next record and resolves its tag. It returns
// io.EOF when the enclosing element or the document ends.
func ReadCapability(r *codec.Reader) (Capability, error) {
	tag, err := r.Next()
	if err != nil {
		return nil, err
	}
	c, err := New(tag)
	if err != nil {
		return nil, err
	}
	fields, err := r.Fields()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", tag, err)
	}
	if err := c.ParseCustom(fields); err != nil {
		return nil, err
	}
	return c, nil
}

// WriteSet writes s as a scenario_set document, one record per capability
// in set order.
func WriteSet(w io.Writer, s *Set) error {
	cw := codec.NewWriter(w)
	if err := cw.StartSet(); err != nil {
		return fmt.Errorf("write set: %w", err)
	}
	for _, c := range s.Capabilities() {
		if err := WriteCapability(cw, c); err != nil {
			return fmt.Errorf("write %s: %w", c.Kind(), err)
		}
	}
	if err := cw.EndSet(); err != nil {
		return fmt.Errorf("write set: %w", err)
	}
	return nil
}

// ReadSet reads records until the enclosing element ends. Any unknown tag
// fails the whole read.
func ReadSet(r io.Reader) (*Set, error) {
	cr := codec.NewReader(r)
	s := NewSet()
	for {
		c, err := ReadCapability(cr)
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return nil, err
		}
		s.Add(c)
	}
}
