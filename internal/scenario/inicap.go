package scenario

import (
	"github.com/roach88/envcompose/internal/ini"
	"github.com/roach88/envcompose/internal/scenario/codec"
)

// INI carries user directives into a set. They replace matching directives
// of the composed configuration.
type INI struct {
	Base
	Directives *ini.Store
}

// NewINI wraps store. The store is frozen so the capability can be shared.
func NewINI(store *ini.Store) *INI {
	store.Freeze()
	return &INI{Directives: store}
}

func (*INI) Kind() string        { return "INI" }
func (*INI) Category() Category  { return CategoryINI }
func (*INI) Name() string        { return "INI" }
func (*INI) IsImplemented() bool { return true }

func (c *INI) ConfigureINI(_ Env, store *ini.Store) error {
	if c.Directives != nil {
		store.ReplaceAll(c.Directives)
	}
	return nil
}

func (c *INI) CustomFields() []codec.Field {
	if c.Directives == nil {
		return nil
	}
	return []codec.Field{{Name: "ini", Value: c.Directives.String()}}
}

func (c *INI) ParseCustom(fields []codec.Field) error {
	if v, ok := codec.Lookup(fields, "ini"); ok {
		store := ini.Parse(v)
		store.Freeze()
		c.Directives = store
	}
	return nil
}
