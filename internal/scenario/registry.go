package scenario

import "sort"

var registry = map[string]func() Capability{
	"CLI":              func() Capability { return &CLI{} },
	"BuiltinWebServer": func() Capability { return &BuiltinWebServer{} },
	"ApacheModPHP":     func() Capability { return &ApacheModPHP{} },
	"LocalFileSystem":  func() Capability { return &LocalFileSystem{} },
	"SMBFileSystem":    func() Capability { return &SMBFileSystem{} },
	"PlainSocket":      func() Capability { return &PlainSocket{} },
	"SSLSocket":        func() Capability { return &SSLSocket{} },
	"NoCodeCache":      func() Capability { return &NoCodeCache{} },
	"Opcache":          func() Capability { return &Opcache{} },
	"WinCache":         func() Capability { return &WinCache{} },
	"NormalPaths":      func() Capability { return &NormalPaths{} },
	"DeepPaths":        func() Capability { return &DeepPaths{} },
	"Enchant":          func() Capability { return &Enchant{} },
	"INI":              func() Capability { return &INI{} },
	"Elgg":             func() Capability { return &Elgg{} },
}

// New returns a fresh capability for kind, or an UNKNOWN_KIND error.
func New(kind string) (Capability, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, newUnknownKindError(kind)
	}
	return ctor(), nil
}

// Kinds returns every registered tag in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Defaults returns the default capability of each required category, in
// the order CompleteWithDefaults adds them.
func Defaults() []Capability {
	return []Capability{
		&NoCodeCache{},
		&NormalPaths{},
		&PlainSocket{},
		&LocalFileSystem{},
		&CLI{},
		&Enchant{},
	}
}
