package testutil

import "sync"

// FixedIDGenerator returns predetermined configuration IDs.
//
// This keeps composed configurations byte-identical across runs so they can
// be compared against golden files. Once the list is exhausted the last ID
// repeats; with no IDs at all it returns "test-config-default".
//
// Thread-safety: FixedIDGenerator is safe for concurrent use via internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
//
//	gen := NewFixedIDGenerator("cfg-1", "cfg-2")
//	gen.Generate() // "cfg-1"
//	gen.Generate() // "cfg-2"
//	gen.Generate() // "cfg-2"
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	if len(ids) == 0 {
		ids = []string{"test-config-default"}
	}
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}
