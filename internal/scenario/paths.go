package scenario

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/roach88/envcompose/internal/scenario/codec"
)

// NormalPaths runs tests from their usual location. It is the default.
type NormalPaths struct{ Base }

func (*NormalPaths) Kind() string             { return "NormalPaths" }
func (*NormalPaths) Category() Category       { return CategoryPaths }
func (*NormalPaths) Name() string             { return "Normal-Paths" }
func (*NormalPaths) IsImplemented() bool      { return true }
func (*NormalPaths) IsPlaceholder(Layer) bool { return true }

// Deep path limits.
const (
	DefaultDeepPathDepth = 8
	MaxDeepPathDepth     = 64
)

// DeepPaths runs tests from a deeply nested directory to exercise long
// path handling. Setup creates the directory tree under the system temp
// directory and Close removes it.
type DeepPaths struct {
	Base

	// Depth is the number of nested directories. Zero means the default.
	Depth int
}

func (*DeepPaths) Kind() string        { return "DeepPaths" }
func (*DeepPaths) Category() Category  { return CategoryPaths }
func (*DeepPaths) Name() string        { return "Deep-Paths" }
func (*DeepPaths) IsImplemented() bool { return true }

func (d *DeepPaths) depth() int {
	if d.Depth <= 0 {
		return DefaultDeepPathDepth
	}
	return d.Depth
}

func (d *DeepPaths) Setup(_ context.Context, env Env) (SetupHandle, error) {
	root, err := os.MkdirTemp("", "envcompose-deep-")
	if err != nil {
		return nil, fmt.Errorf("create deep path root: %w", err)
	}
	leaf := root
	for i := 0; i < d.depth(); i++ {
		leaf = filepath.Join(leaf, fmt.Sprintf("d%02d", i))
	}
	if err := os.MkdirAll(leaf, 0o755); err != nil {
		_ = os.RemoveAll(root)
		return nil, fmt.Errorf("create deep path: %w", err)
	}
	env.console().Print(d.Name(), "created "+leaf)
	return &DirHandle{name: d.Name(), root: root, leaf: leaf}, nil
}

func (d *DeepPaths) CustomFields() []codec.Field {
	return []codec.Field{{Name: "depth", Value: strconv.Itoa(d.depth())}}
}

func (d *DeepPaths) ParseCustom(fields []codec.Field) error {
	v, ok := codec.Lookup(fields, "depth")
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return newFieldError(d.Kind(), "depth", err)
	}
	if n < 1 || n > MaxDeepPathDepth {
		return newFieldError(d.Kind(), "depth", fmt.Errorf("must be between 1 and %d, got %d", MaxDeepPathDepth, n))
	}
	d.Depth = n
	return nil
}

// DirHandle owns a temporary directory tree.
type DirHandle struct {
	name string
	root string
	leaf string
}

// Path is the deepest directory of the tree.
func (h *DirHandle) Path() string { return h.leaf }

func (h *DirHandle) Name() string            { return h.name }
func (h *DirHandle) NameWithVersion() string { return h.name }
func (h *DirHandle) Close() error            { return os.RemoveAll(h.root) }
