package testutil

import (
	"fmt"
	"path/filepath"
	"sync"
)

// FakeHost is an in-memory host.Host.
//
// Paths registered with AddFile exist; everything else does not. Lookups
// compare cleaned paths so callers may join with either separator style
// used by filepath on the test machine.
type FakeHost struct {
	Windows bool

	mu    sync.Mutex
	files map[string]bool
}

// NewFakeHost returns a fake host with the given conventions.
func NewFakeHost(windows bool) *FakeHost {
	return &FakeHost{Windows: windows, files: make(map[string]bool)}
}

// AddFile marks path as existing.
func (h *FakeHost) AddFile(path string) *FakeHost {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.files[filepath.Clean(path)] = true
	return h
}

func (h *FakeHost) PathSeparator() string {
	if h.Windows {
		return ";"
	}
	return ":"
}

func (h *FakeHost) Exists(path string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.files[filepath.Clean(path)]
}

func (h *FakeHost) IsWindows() bool {
	return h.Windows
}

// FakeBuild is a host.VersionedBuild with a fixed extension directory.
type FakeBuild struct {
	ExtDir     string
	PHPVersion string
}

func (b FakeBuild) DefaultExtensionDirectory() string {
	return b.ExtDir
}

func (b FakeBuild) Version() string {
	return b.PHPVersion
}

// RecordingConsole captures console output for assertions.
type RecordingConsole struct {
	mu    sync.Mutex
	lines []string
}

func (c *RecordingConsole) Print(subsystem, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, fmt.Sprintf("%s: %s", subsystem, msg))
}

// Lines returns every printed line as "subsystem: msg".
func (c *RecordingConsole) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}
