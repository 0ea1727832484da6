package scenario

import (
	"context"
	"errors"
	"sync"

	"github.com/roach88/envcompose/internal/testutil"
)

// stubCapability is a configurable capability for set-level tests.
type stubCapability struct {
	Base
	kind        string
	category    Category
	implemented bool
	placeholder bool
	supported   bool
	setupErr    error
	uacSetup    bool
	skip        bool
	log         *closeLog
}

func newStub(kind string, cat Category, log *closeLog) *stubCapability {
	return &stubCapability{
		kind:        kind,
		category:    cat,
		implemented: true,
		supported:   true,
		log:         log,
	}
}

func (s *stubCapability) Kind() string                { return s.kind }
func (s *stubCapability) Category() Category          { return s.category }
func (s *stubCapability) Name() string                { return s.kind }
func (s *stubCapability) IsImplemented() bool         { return s.implemented }
func (s *stubCapability) IsPlaceholder(Layer) bool    { return s.placeholder }
func (s *stubCapability) IsSupported(Env) bool        { return s.supported }
func (s *stubCapability) WillSkip(Env, TestCase) bool { return s.skip }
func (s *stubCapability) UACRequiredForSetup() bool   { return s.uacSetup }

func (s *stubCapability) Setup(context.Context, Env) (SetupHandle, error) {
	if s.setupErr != nil {
		return nil, s.setupErr
	}
	if s.log != nil {
		s.log.record("setup " + s.kind)
	}
	return &stubHandle{name: s.kind, log: s.log}, nil
}

type stubHandle struct {
	name     string
	log      *closeLog
	closeErr error
}

func (h *stubHandle) Name() string            { return h.name }
func (h *stubHandle) NameWithVersion() string { return h.name }

func (h *stubHandle) Close() error {
	if h.log != nil {
		h.log.record("close " + h.name)
	}
	return h.closeErr
}

type closeLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *closeLog) record(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *closeLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

var errStubSetup = errors.New("stub setup failed")

func testEnv(windows bool) (Env, *testutil.FakeHost, *testutil.RecordingConsole) {
	h := testutil.NewFakeHost(windows)
	console := &testutil.RecordingConsole{}
	return Env{
		Host:    h,
		Build:   testutil.FakeBuild{ExtDir: "/php/ext"},
		Console: console,
	}, h, console
}
