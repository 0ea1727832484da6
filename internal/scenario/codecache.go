package scenario

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/roach88/envcompose/internal/ini"
	"github.com/roach88/envcompose/internal/scenario/codec"
)

// NoCodeCache runs without an opcode cache. It is the default.
type NoCodeCache struct{ Base }

func (*NoCodeCache) Kind() string             { return "NoCodeCache" }
func (*NoCodeCache) Category() Category       { return CategoryCodeCache }
func (*NoCodeCache) Name() string             { return "No-Code-Cache" }
func (*NoCodeCache) IsImplemented() bool      { return true }
func (*NoCodeCache) IsPlaceholder(Layer) bool { return true }

// Opcache defaults.
const (
	DefaultOpcacheEnableCLI         = true
	DefaultOpcacheMemoryConsumption = 128
)

// Opcache loads the opcache zend extension from the build's extension
// directory. It is supported only when that file exists and the build is
// 5.5 or later.
type Opcache struct {
	Base

	// DisableCLI turns opcache.enable_cli off.
	DisableCLI bool

	// MemoryConsumption is in megabytes. Zero means the default.
	MemoryConsumption int
}

func (*Opcache) Kind() string        { return "Opcache" }
func (*Opcache) Category() Category  { return CategoryCodeCache }
func (*Opcache) Name() string        { return "Opcache" }
func (*Opcache) IsImplemented() bool { return true }

func (o *Opcache) memoryConsumption() int {
	if o.MemoryConsumption <= 0 {
		return DefaultOpcacheMemoryConsumption
	}
	return o.MemoryConsumption
}

func (o *Opcache) IsSupported(env Env) bool {
	if env.Host == nil || env.Build == nil {
		return false
	}
	if !buildSatisfies(env.Build, opcacheVersions) {
		return false
	}
	return ini.New().HasExtensionFile(env.Host, env.Build, "opcache")
}

// ConfigureINI adds zend_extension with the full path of the extension file
// and the opcache.* directives.
func (o *Opcache) ConfigureINI(env Env, store *ini.Store) error {
	if env.Host == nil {
		return fmt.Errorf("opcache: no host")
	}
	path := filepath.Join(store.ExtensionDir(env.Build), ini.ExtensionFileName(env.Host, "opcache"))
	store.Add(ini.ZendExtension, path)
	store.Set("opcache.enable", "1")
	store.Set("opcache.enable_cli", boolDirective(!o.DisableCLI))
	store.Set("opcache.memory_consumption", strconv.Itoa(o.memoryConsumption()))
	return nil
}

func (o *Opcache) CustomFields() []codec.Field {
	return []codec.Field{
		{Name: "enable_cli", Value: boolDirective(!o.DisableCLI)},
		{Name: "memory_consumption", Value: strconv.Itoa(o.memoryConsumption())},
	}
}

func (o *Opcache) ParseCustom(fields []codec.Field) error {
	if v, ok := codec.Lookup(fields, "enable_cli"); ok {
		on, err := parseBoolDirective(v)
		if err != nil {
			return newFieldError(o.Kind(), "enable_cli", err)
		}
		o.DisableCLI = !on
	}
	if v, ok := codec.Lookup(fields, "memory_consumption"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return newFieldError(o.Kind(), "memory_consumption", err)
		}
		if n <= 0 {
			return newFieldError(o.Kind(), "memory_consumption", fmt.Errorf("must be positive, got %d", n))
		}
		o.MemoryConsumption = n
	}
	return nil
}

// WinCache loads the Windows cache extension. Windows only, and not
// available for PHP 8 or later.
type WinCache struct{ Base }

func (*WinCache) Kind() string        { return "WinCache" }
func (*WinCache) Category() Category  { return CategoryCodeCache }
func (*WinCache) Name() string        { return "WinCache" }
func (*WinCache) IsImplemented() bool { return true }

func (*WinCache) IsSupported(env Env) bool {
	if env.Host == nil || !env.Host.IsWindows() {
		return false
	}
	return buildSatisfies(env.Build, wincacheVersions)
}

func (*WinCache) ConfigureINI(env Env, store *ini.Store) error {
	store.AddExtensionFor(env.Host, env.Build, "wincache")
	store.Set("wincache.enablecli", "1")
	return nil
}

func boolDirective(on bool) string {
	if on {
		return "1"
	}
	return "0"
}

func parseBoolDirective(v string) (bool, error) {
	switch v {
	case "1", "On", "on", "true":
		return true, nil
	case "0", "Off", "off", "false", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", v)
}
