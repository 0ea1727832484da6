package host

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Host is the machine a configuration is composed for.
type Host interface {
	// PathSeparator returns the separator used to join entries of a path
	// list (include_path and friends): ";" on Windows, ":" elsewhere.
	PathSeparator() string

	// Exists reports whether the given path exists on the host.
	Exists(path string) bool

	// IsWindows reports whether the host follows Windows conventions.
	IsWindows() bool
}

// Build is the interpreter build a configuration is composed for.
type Build interface {
	// DefaultExtensionDirectory is used when a configuration does not set
	// an extension directory of its own.
	DefaultExtensionDirectory() string
}

// VersionedBuild is a Build that knows its interpreter version.
type VersionedBuild interface {
	Build

	// Version is the interpreter version ("8.3.4", "5.4.45"), or "" when
	// unknown.
	Version() string
}

// Console accepts diagnostic text during setup. Delivery is best effort.
type Console interface {
	Print(subsystem, msg string)
}

// Local is the machine the process runs on. The operating system can be
// forced with ForOS to compose configurations for another target while
// still checking paths against the local filesystem.
type Local struct {
	windows bool
}

// NewLocal returns a Local host using the running operating system.
func NewLocal() *Local {
	return &Local{windows: runtime.GOOS == "windows"}
}

// ForOS returns a Local host that reports the conventions of goos
// ("windows", "linux", ...). An empty goos means the running system.
func ForOS(goos string) *Local {
	if goos == "" {
		return NewLocal()
	}
	return &Local{windows: strings.EqualFold(goos, "windows")}
}

func (l *Local) PathSeparator() string {
	if l.windows {
		return ";"
	}
	return ":"
}

func (l *Local) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (l *Local) IsWindows() bool {
	return l.windows
}

// StaticBuild is a build rooted at a fixed directory.
type StaticBuild struct {
	// Dir is the build's install directory.
	Dir string

	// ExtensionDir overrides the default <Dir>/ext location when set.
	ExtensionDir string

	// PHPVersion is reported by Version. Empty means unknown.
	PHPVersion string
}

func (b StaticBuild) DefaultExtensionDirectory() string {
	if b.ExtensionDir != "" {
		return b.ExtensionDir
	}
	return filepath.Join(b.Dir, "ext")
}

func (b StaticBuild) Version() string {
	return b.PHPVersion
}

// SlogConsole forwards console output to a structured logger.
type SlogConsole struct {
	Logger *slog.Logger
}

// NewSlogConsole wraps logger. A nil logger uses slog.Default().
func NewSlogConsole(logger *slog.Logger) *SlogConsole {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogConsole{Logger: logger}
}

func (c *SlogConsole) Print(subsystem, msg string) {
	c.Logger.Info(msg, "subsystem", subsystem)
}

// DiscardConsole drops everything.
type DiscardConsole struct{}

func (DiscardConsole) Print(string, string) {}
