package scenario

import (
	"context"
	"fmt"

	"github.com/roach88/envcompose/internal/host"
	"github.com/roach88/envcompose/internal/ini"
	"github.com/roach88/envcompose/internal/scenario/codec"
)

// Category classifies capabilities. A Set holds one capability per category.
type Category string

const (
	CategorySAPI        Category = "sapi"
	CategoryFileSystem  Category = "filesystem"
	CategorySocket      Category = "socket"
	CategoryCodeCache   Category = "code_cache"
	CategoryPaths       Category = "paths"
	CategoryEnchant     Category = "enchant"
	CategoryINI         Category = "ini"
	CategoryApplication Category = "application"
)

// RequiredCategories must all be present in a completed Set.
var RequiredCategories = []Category{
	CategorySAPI,
	CategoryFileSystem,
	CategorySocket,
	CategoryCodeCache,
	CategoryPaths,
	CategoryEnchant,
}

// Layer is the permutation layer a set is being expanded for. Some
// capabilities only matter on certain layers.
type Layer int

const (
	LayerProductionOrAllUp Layer = iota
	LayerFunctionalCore
	LayerFunctionalApplication
	LayerFunctionalDatabase
	LayerPerformance
	LayerWebServer
	LayerUserInterface
)

func (l Layer) String() string {
	switch l {
	case LayerProductionOrAllUp:
		return "production_or_all_up"
	case LayerFunctionalCore:
		return "functional_core"
	case LayerFunctionalApplication:
		return "functional_application"
	case LayerFunctionalDatabase:
		return "functional_database"
	case LayerPerformance:
		return "performance"
	case LayerWebServer:
		return "web_server"
	case LayerUserInterface:
		return "user_interface"
	default:
		return "unknown"
	}
}

// ParseLayer returns the layer whose String form is s.
func ParseLayer(s string) (Layer, error) {
	for l := LayerProductionOrAllUp; l <= LayerUserInterface; l++ {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown layer %q", s)
}

// Env is what a capability may consult while being checked or set up.
type Env struct {
	Host    host.Host
	Build   host.Build
	Console host.Console
}

func (e Env) console() host.Console {
	if e.Console == nil {
		return host.DiscardConsole{}
	}
	return e.Console
}

// TestCase describes the test a capability may veto.
type TestCase struct {
	Name string

	// Sections lists the test file sections present (STDIN, ARGS, INI, ...).
	Sections []string
}

// HasSection reports whether the test declares section name.
func (tc TestCase) HasSection(name string) bool {
	for _, s := range tc.Sections {
		if s == name {
			return true
		}
	}
	return false
}

// SetupHandle is a resource acquired by Setup. Close releases it.
type SetupHandle interface {
	Name() string
	NameWithVersion() string
	Close() error
}

// Capability is one facet of a test execution environment.
type Capability interface {
	// Kind is the serialization tag. It is unique across all capabilities.
	Kind() string
	Category() Category
	Name() string

	// IsImplemented is false for capabilities that are recognized but
	// cannot be used for a run yet.
	IsImplemented() bool

	// IsPlaceholder reports whether the capability is a stand-in that
	// needs no setup on the given layer.
	IsPlaceholder(layer Layer) bool

	// IsSupported is checked before use. Unsupported capabilities are
	// rejected by Set.Check.
	IsSupported(env Env) bool

	// WillSkip lets a capability veto a single test.
	WillSkip(env Env, tc TestCase) bool

	// Setup acquires whatever the capability needs for a run. A nil
	// handle with a nil error is treated as SetupSuccess.
	Setup(ctx context.Context, env Env) (SetupHandle, error)

	UACRequiredForSetup() bool
	UACRequiredForStart() bool

	// CustomFields is the capability-specific serialized payload.
	CustomFields() []codec.Field

	// ParseCustom restores the payload written by CustomFields.
	ParseCustom(fields []codec.Field) error
}

// INIConfigurer is implemented by capabilities that contribute directives
// to the run configuration.
type INIConfigurer interface {
	ConfigureINI(env Env, store *ini.Store) error
}

type setupRequirer interface {
	SetupRequired(layer Layer) bool
}

type shortNameIgnorer interface {
	IgnoreForShortName(layer Layer) bool
}

// SetupRequired reports whether c must be set up on layer. Unless c says
// otherwise, placeholders need no setup.
func SetupRequired(c Capability, layer Layer) bool {
	if r, ok := c.(setupRequirer); ok {
		return r.SetupRequired(layer)
	}
	return !c.IsPlaceholder(layer)
}

// IgnoreForShortName reports whether c is left out of a set's short name.
// Unless c says otherwise, placeholders are left out.
func IgnoreForShortName(c Capability, layer Layer) bool {
	if r, ok := c.(shortNameIgnorer); ok {
		return r.IgnoreForShortName(layer)
	}
	return c.IsPlaceholder(layer)
}

// Base supplies the default behavior of the optional parts of Capability.
// Concrete capabilities embed it.
type Base struct{}

func (Base) IsPlaceholder(Layer) bool { return false }

func (Base) IsSupported(Env) bool { return true }

func (Base) WillSkip(Env, TestCase) bool { return false }

func (Base) Setup(context.Context, Env) (SetupHandle, error) { return SetupSuccess, nil }

func (Base) UACRequiredForSetup() bool { return false }

func (Base) UACRequiredForStart() bool { return false }

func (Base) CustomFields() []codec.Field { return nil }

func (Base) ParseCustom([]codec.Field) error { return nil }

// SetupSuccess is the handle of a setup that acquired nothing.
var SetupSuccess SetupHandle = successHandle{}

type successHandle struct{}

func (successHandle) Name() string            { return "Success" }
func (successHandle) NameWithVersion() string { return "Success" }
func (successHandle) Close() error            { return nil }
