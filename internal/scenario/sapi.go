package scenario

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/roach88/envcompose/internal/scenario/codec"
)

// CLI runs tests through the command line interpreter. It is the default
// SAPI.
type CLI struct{ Base }

func (*CLI) Kind() string        { return "CLI" }
func (*CLI) Category() Category  { return CategorySAPI }
func (*CLI) Name() string        { return "CLI" }
func (*CLI) IsImplemented() bool { return true }

// DefaultWebServerAddress is the interface the builtin web server binds to
// when no address field is given.
const DefaultWebServerAddress = "127.0.0.1"

// BuiltinWebServer runs tests through the interpreter's own web server.
//
// Setup reserves a free port on Address and holds it until the handle is
// closed. Tests that read STDIN or take command line arguments cannot run
// over HTTP and are skipped.
type BuiltinWebServer struct {
	Base
	Address string
}

func (*BuiltinWebServer) Kind() string        { return "BuiltinWebServer" }
func (*BuiltinWebServer) Category() Category  { return CategorySAPI }
func (*BuiltinWebServer) Name() string        { return "BuiltinWebServer" }
func (*BuiltinWebServer) IsImplemented() bool { return true }

func (s *BuiltinWebServer) address() string {
	if s.Address == "" {
		return DefaultWebServerAddress
	}
	return s.Address
}

func (s *BuiltinWebServer) WillSkip(_ Env, tc TestCase) bool {
	return tc.HasSection("STDIN") || tc.HasSection("ARGS")
}

func (s *BuiltinWebServer) Setup(ctx context.Context, env Env) (SetupHandle, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(s.address(), "0"))
	if err != nil {
		return nil, fmt.Errorf("reserve port on %s: %w", s.address(), err)
	}
	env.console().Print(s.Name(), "reserved "+ln.Addr().String())
	return &PortHandle{name: s.Name(), ln: ln}, nil
}

func (s *BuiltinWebServer) CustomFields() []codec.Field {
	if s.Address == "" {
		return nil
	}
	return []codec.Field{{Name: "address", Value: s.Address}}
}

func (s *BuiltinWebServer) ParseCustom(fields []codec.Field) error {
	if v, ok := codec.Lookup(fields, "address"); ok {
		if net.ParseIP(v) == nil {
			return newFieldError(s.Kind(), "address", fmt.Errorf("not an IP address: %q", v))
		}
		s.Address = v
	}
	return nil
}

// PortHandle holds a reserved TCP port.
type PortHandle struct {
	name string
	ln   net.Listener
}

// Addr is the reserved host:port.
func (h *PortHandle) Addr() string { return h.ln.Addr().String() }

// Port is the reserved port number.
func (h *PortHandle) Port() int {
	_, port, err := net.SplitHostPort(h.Addr())
	if err != nil {
		return 0
	}
	n, _ := strconv.Atoi(port)
	return n
}

func (h *PortHandle) Name() string            { return h.name }
func (h *PortHandle) NameWithVersion() string { return fmt.Sprintf("%s (%s)", h.name, h.Addr()) }
func (h *PortHandle) Close() error            { return h.ln.Close() }

// ApacheModPHP runs tests through Apache's module. Recognized but not
// implemented.
type ApacheModPHP struct{ Base }

func (*ApacheModPHP) Kind() string              { return "ApacheModPHP" }
func (*ApacheModPHP) Category() Category        { return CategorySAPI }
func (*ApacheModPHP) Name() string              { return "Apache-ModPHP" }
func (*ApacheModPHP) IsImplemented() bool       { return false }
func (*ApacheModPHP) UACRequiredForSetup() bool { return true }
func (*ApacheModPHP) UACRequiredForStart() bool { return true }
