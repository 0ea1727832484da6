// Package codec reads and writes streams of tagged records.
//
// A record is one XML element whose name attribute carries the record tag,
// with an optional ordered list of string fields as its body:
//
//	<scenario_set>
//	  <scenario name="CLI"></scenario>
//	  <scenario name="Opcache">
//	    <field name="enable_cli">1</field>
//	  </scenario>
//	</scenario_set>
//
// The codec knows nothing about what a tag means. Resolving tags against a
// namespace is the caller's job.
package codec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Element and attribute names of the stream format.
const (
	SetElement    = "scenario_set"
	RecordElement = "scenario"
	FieldElement  = "field"
	NameAttr      = "name"
)

// Field is one named value in a record body.
type Field struct {
	Name  string
	Value string
}

// Lookup returns the value of the first field called name.
func Lookup(fields []Field, name string) (string, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// SyntaxError reports a malformed stream.
type SyntaxError struct {
	Line    int
	Message string
	Err     error
}

func (e *SyntaxError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("codec: %s: %v", msg, e.Err)
	}
	return "codec: " + msg
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Writer emits records.
type Writer struct {
	enc *xml.Encoder
}

// NewWriter returns a Writer that indents with two spaces.
func NewWriter(w io.Writer) *Writer {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return &Writer{enc: enc}
}

// StartSet opens the enclosing set element.
func (w *Writer) StartSet() error {
	return w.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: SetElement}})
}

// EndSet closes the enclosing set element and flushes.
func (w *Writer) EndSet() error {
	if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: SetElement}}); err != nil {
		return err
	}
	return w.enc.Flush()
}

// WriteRecord emits one record with the given tag and fields.
func (w *Writer) WriteRecord(tag string, fields []Field) error {
	if tag == "" {
		return errors.New("codec: empty record tag")
	}
	start := xml.StartElement{
		Name: xml.Name{Local: RecordElement},
		Attr: []xml.Attr{{Name: xml.Name{Local: NameAttr}, Value: tag}},
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	for _, f := range fields {
		fieldStart := xml.StartElement{
			Name: xml.Name{Local: FieldElement},
			Attr: []xml.Attr{{Name: xml.Name{Local: NameAttr}, Value: f.Name}},
		}
		if err := w.enc.EncodeElement(f.Value, fieldStart); err != nil {
			return fmt.Errorf("codec: field %q: %w", f.Name, err)
		}
	}
	if err := w.enc.EncodeToken(start.End()); err != nil {
		return err
	}
	return w.enc.Flush()
}

// Reader consumes records.
type Reader struct {
	dec *xml.Decoder

	// inBody is set while the body of the last returned record is unread.
	inBody bool
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: xml.NewDecoder(r)}
}

// Next advances to the next record and returns its tag.
//
// Character data, comments, processing instructions and start elements
// other than records are skipped. Next returns io.EOF at the end of the
// document or when an enclosing element closes.
func (r *Reader) Next() (string, error) {
	if r.inBody {
		r.inBody = false
		if err := r.dec.Skip(); err != nil {
			return "", r.syntaxError("skipping record body", err)
		}
	}

	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return "", io.EOF
		}
		if err != nil {
			return "", r.syntaxError("reading stream", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != RecordElement {
				continue
			}
			tag := attr(t, NameAttr)
			if tag == "" {
				return "", r.syntaxError("record without name attribute", nil)
			}
			r.inBody = true
			return tag, nil
		case xml.EndElement:
			return "", io.EOF
		}
	}
}

// Fields reads the body of the record last returned by Next. Elements other
// than fields are skipped. Calling Fields twice for one record returns nil
// the second time.
func (r *Reader) Fields() ([]Field, error) {
	if !r.inBody {
		return nil, nil
	}
	r.inBody = false

	var fields []Field
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, r.syntaxError("reading record body", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != FieldElement {
				if err := r.dec.Skip(); err != nil {
					return nil, r.syntaxError("skipping element", err)
				}
				continue
			}
			var value string
			if err := r.dec.DecodeElement(&value, &t); err != nil {
				return nil, r.syntaxError("decoding field", err)
			}
			fields = append(fields, Field{Name: attr(t, NameAttr), Value: value})
		case xml.EndElement:
			return fields, nil
		}
	}
}

func (r *Reader) syntaxError(msg string, err error) error {
	line, _ := r.dec.InputPos()
	return &SyntaxError{Line: line, Message: msg, Err: err}
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
