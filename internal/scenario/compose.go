package scenario

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/envcompose/internal/host"
	"github.com/roach88/envcompose/internal/ini"
)

// IDGenerator produces configuration IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator produces time-ordered UUIDv7 IDs.
type UUIDv7Generator struct{}

func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Configuration is a published run configuration: a completed, checked set
// and the directives it composes to. Both are frozen.
type Configuration struct {
	ID  string
	Set *Set
	INI *ini.Store

	windows bool
}

// CLIArgs renders the directives as interpreter arguments for the target host.
func (c *Configuration) CLIArgs() string {
	return c.INI.CLIArgs(c.windows)
}

// INIText renders the directives in text form.
func (c *Configuration) INIText() string {
	return c.INI.String()
}

// Compose builds a Configuration from set. The set is cloned and completed
// with defaults, so the caller's set is not modified. base supplies the
// starting directives; when nil, ini.Default is used. Every capability that
// implements INIConfigurer contributes to the directives in set order.
// A nil env.Host means the running system; nil ids means UUIDv7Generator.
func Compose(env Env, set *Set, base *ini.Store, ids IDGenerator) (*Configuration, error) {
	if env.Host == nil {
		env.Host = host.NewLocal()
	}
	if ids == nil {
		ids = UUIDv7Generator{}
	}

	composed := set.Clone()
	composed.CompleteWithDefaults()
	if err := composed.Check(env); err != nil {
		return nil, fmt.Errorf("check set %s: %w", composed.Name(), err)
	}

	var store *ini.Store
	if base != nil {
		store = base.Clone()
	} else {
		store = ini.Default()
	}
	for _, c := range composed.Capabilities() {
		cfg, ok := c.(INIConfigurer)
		if !ok {
			continue
		}
		if err := cfg.ConfigureINI(env, store); err != nil {
			return nil, fmt.Errorf("configure %s: %w", c.Kind(), err)
		}
	}

	composed.Freeze()
	store.Freeze()

	conf := &Configuration{
		ID:      ids.Generate(),
		Set:     composed,
		INI:     store,
		windows: env.Host.IsWindows(),
	}
	slog.Debug("configuration composed",
		"id", conf.ID,
		"set", composed.Name(),
		"directives", store.CountDirectives(),
	)
	return conf, nil
}
