package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/envcompose/internal/scenario/codec"
)

// setSchema constrains YAML set documents before they are decoded.
const setSchema = `
#Entry: {
	kind: string & !=""
	fields?: {[string]: string | number | bool}
}

#ScenarioSet: {
	scenarios: [...#Entry]
}
`

type setDocument struct {
	Scenarios []setEntry `yaml:"scenarios"`
}

type setEntry struct {
	Kind   string            `yaml:"kind"`
	Fields map[string]string `yaml:"fields,omitempty"`
}

// LoadSetFile reads a set from path. Files ending in .yaml or .yml are
// YAML; everything else is read as XML.
func LoadSetFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read set file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeSetYAML(data)
	default:
		s, err := ReadSet(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return s, nil
	}
}

// DecodeSetYAML validates data against the set schema, then decodes it.
func DecodeSetYAML(data []byte) (*Set, error) {
	if err := validateSetYAML(data); err != nil {
		return nil, &Error{Code: ErrCodeInvalidSet, Message: "schema validation failed", Err: err}
	}

	var doc setDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, &Error{Code: ErrCodeInvalidSet, Message: "failed to parse YAML", Err: err}
	}

	s := NewSet()
	for _, e := range doc.Scenarios {
		c, err := New(e.Kind)
		if err != nil {
			return nil, err
		}
		if err := c.ParseCustom(sortedFields(e.Fields)); err != nil {
			return nil, err
		}
		s.Add(c)
	}
	return s, nil
}

// EncodeSetYAML renders s in the form DecodeSetYAML reads.
func EncodeSetYAML(s *Set) ([]byte, error) {
	doc := setDocument{Scenarios: make([]setEntry, 0, s.Len())}
	for _, c := range s.Capabilities() {
		e := setEntry{Kind: c.Kind()}
		if fields := c.CustomFields(); len(fields) > 0 {
			e.Fields = make(map[string]string, len(fields))
			for _, f := range fields {
				e.Fields[f.Name] = f.Value
			}
		}
		doc.Scenarios = append(doc.Scenarios, e)
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshal set: %w", err)
	}
	return out, nil
}

func validateSetYAML(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("empty document")
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(setSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	v := ctx.Encode(raw)
	if err := v.Err(); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#ScenarioSet")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}

func sortedFields(m map[string]string) []codec.Field {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]codec.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, codec.Field{Name: name, Value: m[name]})
	}
	return fields
}
