package scenario

import (
	"github.com/roach88/envcompose/internal/ini"
	"github.com/roach88/envcompose/internal/scenario/codec"
)

// PlainSocket carries test traffic over plain TCP. It is the default.
type PlainSocket struct{ Base }

func (*PlainSocket) Kind() string             { return "PlainSocket" }
func (*PlainSocket) Category() Category       { return CategorySocket }
func (*PlainSocket) Name() string             { return "Plain-Socket" }
func (*PlainSocket) IsImplemented() bool      { return true }
func (*PlainSocket) IsPlaceholder(Layer) bool { return true }

// SSLSocket carries test traffic over TLS. When CAFile is set it becomes
// the openssl.cafile directive.
type SSLSocket struct {
	Base
	CAFile string
}

func (*SSLSocket) Kind() string        { return "SSLSocket" }
func (*SSLSocket) Category() Category  { return CategorySocket }
func (*SSLSocket) Name() string        { return "SSL-Socket" }
func (*SSLSocket) IsImplemented() bool { return true }

func (s *SSLSocket) ConfigureINI(_ Env, store *ini.Store) error {
	if s.CAFile != "" {
		store.Set("openssl.cafile", s.CAFile)
	}
	return nil
}

func (s *SSLSocket) CustomFields() []codec.Field {
	if s.CAFile == "" {
		return nil
	}
	return []codec.Field{{Name: "cafile", Value: s.CAFile}}
}

func (s *SSLSocket) ParseCustom(fields []codec.Field) error {
	if v, ok := codec.Lookup(fields, "cafile"); ok {
		s.CAFile = v
	}
	return nil
}
