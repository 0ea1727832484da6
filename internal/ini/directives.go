package ini

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/envcompose/internal/host"
)

// Directive names.
const (
	IncludePath            = "include_path"
	Extension              = "extension"
	ExtensionDir           = "extension_dir"
	ZendExtension          = "zend_extension"
	OutputHandler          = "output_handler"
	OpenBasedir            = "open_basedir"
	SafeMode               = "safe_mode"
	DisableDefs            = "disable_defs"
	OutputBuffering        = "output_buffering"
	ErrorReporting         = "error_reporting"
	DisplayErrors          = "display_errors"
	DisplayStartupErrors   = "display_startup_errors"
	LogErrors              = "log_errors"
	HTMLErrors             = "html_errors"
	TrackErrors            = "track_errors"
	ReportMemleaks         = "report_memleaks"
	ReportZendDebug        = "report_zend_debug"
	DocrefRoot             = "docref_root"
	DocrefExt              = "docref_ext"
	ErrorPrependString     = "error_prepend_string"
	ErrorAppendString      = "error_append_string"
	AutoPrependFile        = "auto_prepend_file"
	AutoAppendFile         = "auto_append_file"
	MagicQuotesRuntime     = "magic_quotes_runtime"
	IgnoreRepeatedErrors   = "ignore_repeated_errors"
	Precision              = "precision"
	UnicodeRuntimeEncoding = "unicode.runtime_encoding"
	UnicodeScriptEncoding  = "unicode.script_encoding"
	UnicodeOutputEncoding  = "unicode.output_encoding"
	UnicodeFromErrorMode   = "unicode.from_error_mode"
	SessionAutoStart       = "session.auto_start"
)

// Common values.
const (
	Empty              = ""
	On                 = "On"
	Off                = "Off"
	UTF8               = "UTF-8"
	ISO88591           = "ISO-8859-1"
	UInvalidSubstitute = "U_INVALID_SUBSTITUTE"
	DotHTML            = ".html"
	EAllOrEStrict      = "E_ALL|E_STRICT"
)

// Default returns the baseline directives every test run starts from.
//
// display_errors stays 0: a test runner enables it itself, and on Windows
// an enabled value can raise a blocking error dialog.
func Default() *Store {
	s := New()
	for _, d := range [][2]string{
		{OutputHandler, Empty},
		{OpenBasedir, Empty},
		{SafeMode, "0"},
		{DisableDefs, Empty},
		{OutputBuffering, Off},
		{ErrorReporting, EAllOrEStrict},
		{DisplayErrors, "0"},
		{DisplayStartupErrors, "0"},
		{LogErrors, "0"},
		{HTMLErrors, "0"},
		{TrackErrors, "1"},
		{ReportMemleaks, "1"},
		{ReportZendDebug, "0"},
		{DocrefRoot, Empty},
		{DocrefExt, DotHTML},
		{ErrorPrependString, Empty},
		{ErrorAppendString, Empty},
		{AutoPrependFile, Empty},
		{AutoAppendFile, Empty},
		{MagicQuotesRuntime, "0"},
		{IgnoreRepeatedErrors, "0"},
		{Precision, "14"},
		{UnicodeRuntimeEncoding, ISO88591},
		{UnicodeScriptEncoding, UTF8},
		{UnicodeOutputEncoding, UTF8},
		{UnicodeFromErrorMode, UInvalidSubstitute},
		{SessionAutoStart, "0"},
	} {
		s.Add(d[0], d[1])
	}
	return s
}

// ExtensionFileName returns the shared library name of extension name on h:
// php_<name>.dll on Windows, <name>.so elsewhere.
func ExtensionFileName(h host.Host, name string) string {
	if h.IsWindows() {
		return "php_" + name + ".dll"
	}
	return name + ".so"
}

// ExtensionDir returns the configured extension directory, falling back to
// the build's default when unset or empty. build may be nil.
func (s *Store) ExtensionDir(build host.Build) string {
	dir, _ := s.Get(ExtensionDir)
	if build != nil && dir == "" {
		dir = build.DefaultExtensionDirectory()
	}
	return dir
}

// SetExtensionDir replaces the extension directory.
func (s *Store) SetExtensionDir(dir string) {
	s.Set(ExtensionDir, dir)
}

// Extensions returns the dynamically loaded extension file names.
func (s *Store) Extensions() ([]string, bool) {
	return s.GetAll(Extension)
}

// AddExtension appends an extension file name.
func (s *Store) AddExtension(fileName string) {
	s.Add(Extension, fileName)
}

// AddExtensionFor adds extension name, using the bare name when that file
// exists in the extension directory and the host-specific file name
// otherwise.
func (s *Store) AddExtensionFor(h host.Host, build host.Build, name string) {
	if !s.hasExtensionFile(h, build, name) {
		name = ExtensionFileName(h, name)
	}
	s.AddExtension(name)
}

// HasExtensionFile reports whether extension name is present in the
// extension directory, either verbatim or under its host-specific name.
//
// Builtin extensions are not considered.
func (s *Store) HasExtensionFile(h host.Host, build host.Build, name string) bool {
	if s.hasExtensionFile(h, build, name) {
		return true
	}
	return !strings.HasPrefix(name, "php_") && s.hasExtensionFile(h, build, ExtensionFileName(h, name))
}

func (s *Store) hasExtensionFile(h host.Host, build host.Build, fileName string) bool {
	return h.Exists(filepath.Join(s.ExtensionDir(build), fileName))
}

// HasExtension reports whether any extension entry contains name,
// ignoring case.
func (s *Store) HasExtension(name string) bool {
	return s.ContainsPartial(Extension, name)
}

// AddToIncludePath appends path to include_path using the host's path list
// separator. This is a replacing mutation.
func (s *Store) AddToIncludePath(h host.Host, path string) {
	current, ok := s.Get(IncludePath)
	if ok {
		path = current + h.PathSeparator() + path
	}
	s.Set(IncludePath, path)
}

// RemoveIncludePath deletes include_path.
func (s *Store) RemoveIncludePath() {
	s.Remove(IncludePath)
}

// IsOn reports whether directive is explicitly "On", ignoring case.
// Missing or blank directives are never on.
func (s *Store) IsOn(directive string) bool {
	v, ok := s.Get(directive)
	return ok && equalFold(v, On)
}

// IsOff reports whether directive is explicitly "Off", ignoring case.
// Missing or blank directives are never off.
func (s *Store) IsOff(directive string) bool {
	v, ok := s.Get(directive)
	return ok && equalFold(v, Off)
}

// ContainsExact reports whether directive holds value, case-sensitively.
func (s *Store) ContainsExact(directive, value string) bool {
	values, _ := s.GetAll(directive)
	return contains(values, value)
}

// ContainsPartial reports whether any value of directive contains value,
// ignoring case.
func (s *Store) ContainsPartial(directive, value string) bool {
	values, _ := s.GetAll(directive)
	needle := cases.Fold().String(value)
	for _, v := range values {
		if strings.Contains(cases.Fold().String(v), needle) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	return cases.Fold().String(a) == cases.Fold().String(b)
}
