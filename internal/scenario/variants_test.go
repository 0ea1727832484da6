package scenario

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/envcompose/internal/ini"
	"github.com/roach88/envcompose/internal/scenario/codec"
)

func TestBuiltinWebServer_SetupHoldsPortUntilClose(t *testing.T) {
	env, _, console := testEnv(false)
	ws := &BuiltinWebServer{}

	h, err := ws.Setup(context.Background(), env)
	require.NoError(t, err)

	ph, ok := h.(*PortHandle)
	require.True(t, ok)
	require.NotZero(t, ph.Port())
	assert.Contains(t, ph.NameWithVersion(), "127.0.0.1:")

	// The port is held: a second bind on it fails.
	_, err = net.Listen("tcp", ph.Addr())
	require.Error(t, err)

	require.NoError(t, h.Close())
	assert.Equal(t, []string{"BuiltinWebServer: reserved " + ph.Addr()}, console.Lines())
}

func TestBuiltinWebServer_WillSkip(t *testing.T) {
	env, _, _ := testEnv(false)
	ws := &BuiltinWebServer{}

	tests := []struct {
		name     string
		sections []string
		want     bool
	}{
		{"plain file", []string{"TEST", "FILE", "EXPECT"}, false},
		{"reads stdin", []string{"FILE", "STDIN"}, true},
		{"takes args", []string{"ARGS", "FILE"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ws.WillSkip(env, TestCase{Name: "t.phpt", Sections: tt.sections}))
		})
	}
	assert.False(t, (&CLI{}).WillSkip(env, TestCase{Sections: []string{"STDIN"}}))
}

func TestBuiltinWebServer_AddressField(t *testing.T) {
	ws := &BuiltinWebServer{}
	assert.Nil(t, ws.CustomFields())

	require.NoError(t, ws.ParseCustom([]codec.Field{{Name: "address", Value: "::1"}}))
	assert.Equal(t, "::1", ws.Address)
	assert.Equal(t, []codec.Field{{Name: "address", Value: "::1"}}, ws.CustomFields())

	err := ws.ParseCustom([]codec.Field{{Name: "address", Value: "localhost:80"}})
	require.Error(t, err)
	assert.True(t, hasCode(err, ErrCodeInvalidField))
}

func TestApacheModPHP_RequiresUAC(t *testing.T) {
	c := &ApacheModPHP{}
	assert.True(t, c.UACRequiredForSetup())
	assert.True(t, c.UACRequiredForStart())
	assert.False(t, c.IsImplemented())
}

func TestSMBFileSystem_WindowsOnly(t *testing.T) {
	linux, _, _ := testEnv(false)
	windows, _, _ := testEnv(true)

	c := &SMBFileSystem{}
	assert.False(t, c.IsSupported(linux))
	assert.True(t, c.IsSupported(windows))
	assert.False(t, c.IsSupported(Env{}))
}

func TestSSLSocket_CAFile(t *testing.T) {
	env, _, _ := testEnv(false)
	c := &SSLSocket{}
	require.NoError(t, c.ParseCustom([]codec.Field{{Name: "cafile", Value: "/etc/ssl/ca.pem"}}))

	store := ini.New()
	require.NoError(t, c.ConfigureINI(env, store))
	got, ok := store.Get("openssl.cafile")
	require.True(t, ok)
	assert.Equal(t, "/etc/ssl/ca.pem", got)

	empty := ini.New()
	require.NoError(t, (&SSLSocket{}).ConfigureINI(env, empty))
	assert.True(t, empty.IsEmpty())
}

func TestOpcache_SupportedOnlyWithExtensionFile(t *testing.T) {
	env, h, _ := testEnv(false)
	c := &Opcache{}

	assert.False(t, c.IsSupported(env))
	h.AddFile("/php/ext/opcache.so")
	assert.True(t, c.IsSupported(env))

	env.Build = nil
	assert.False(t, c.IsSupported(env), "no build means no extension directory")
}

func TestOpcache_ConfigureINI(t *testing.T) {
	env, _, _ := testEnv(false)
	c := &Opcache{MemoryConsumption: 256}
	store := ini.New()

	require.NoError(t, c.ConfigureINI(env, store))

	zend, ok := store.Get(ini.ZendExtension)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/php/ext", "opcache.so"), zend)
	assert.True(t, store.ContainsExact("opcache.enable", "1"))
	assert.True(t, store.ContainsExact("opcache.enable_cli", "1"))
	assert.True(t, store.ContainsExact("opcache.memory_consumption", "256"))
}

func TestOpcache_CustomFields(t *testing.T) {
	c := &Opcache{}
	assert.Equal(t, []codec.Field{
		{Name: "enable_cli", Value: "1"},
		{Name: "memory_consumption", Value: "128"},
	}, c.CustomFields())

	require.NoError(t, c.ParseCustom([]codec.Field{
		{Name: "enable_cli", Value: "Off"},
		{Name: "memory_consumption", Value: "64"},
	}))
	assert.True(t, c.DisableCLI)
	assert.Equal(t, 64, c.MemoryConsumption)
}

func TestOpcache_ParseCustomRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		field codec.Field
	}{
		{"non-numeric memory", codec.Field{Name: "memory_consumption", Value: "lots"}},
		{"zero memory", codec.Field{Name: "memory_consumption", Value: "0"}},
		{"bad bool", codec.Field{Name: "enable_cli", Value: "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Opcache{}).ParseCustom([]codec.Field{tt.field})
			require.Error(t, err)
			assert.True(t, hasCode(err, ErrCodeInvalidField))
		})
	}
}

func TestWinCache(t *testing.T) {
	linux, _, _ := testEnv(false)
	windows, _, _ := testEnv(true)
	c := &WinCache{}

	assert.False(t, c.IsSupported(linux))
	assert.True(t, c.IsSupported(windows))

	store := ini.New()
	require.NoError(t, c.ConfigureINI(windows, store))
	exts, ok := store.Extensions()
	require.True(t, ok)
	assert.Equal(t, []string{"php_wincache.dll"}, exts)
	assert.True(t, store.ContainsExact("wincache.enablecli", "1"))
}

func TestDeepPaths_SetupCreatesAndCloseRemoves(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	env, _, console := testEnv(false)
	c := &DeepPaths{Depth: 3}

	h, err := c.Setup(context.Background(), env)
	require.NoError(t, err)
	dh := h.(*DirHandle)

	info, err := os.Stat(dh.Path())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join("d00", "d01", "d02"), filepath.Join(
		filepath.Base(filepath.Dir(filepath.Dir(dh.Path()))),
		filepath.Base(filepath.Dir(dh.Path())),
		filepath.Base(dh.Path()),
	))
	assert.Equal(t, []string{"Deep-Paths: created " + dh.Path()}, console.Lines())

	require.NoError(t, h.Close())
	_, err = os.Stat(dh.root)
	assert.True(t, os.IsNotExist(err))
}

func TestDeepPaths_Depth(t *testing.T) {
	c := &DeepPaths{}
	assert.Equal(t, []codec.Field{{Name: "depth", Value: "8"}}, c.CustomFields())

	require.NoError(t, c.ParseCustom([]codec.Field{{Name: "depth", Value: "20"}}))
	assert.Equal(t, 20, c.Depth)

	for _, bad := range []string{"0", "65", "deep"} {
		err := c.ParseCustom([]codec.Field{{Name: "depth", Value: bad}})
		require.Error(t, err, bad)
		assert.True(t, hasCode(err, ErrCodeInvalidField), bad)
	}
}

func TestINI_ReplacesDirectives(t *testing.T) {
	env, _, _ := testEnv(false)
	c := NewINI(ini.Parse("precision=17\nmemory_limit=1G\n"))
	assert.True(t, c.Directives.Frozen())

	store := ini.Default()
	require.NoError(t, c.ConfigureINI(env, store))

	got, _ := store.Get("precision")
	assert.Equal(t, "17", got)
	got, _ = store.Get("memory_limit")
	assert.Equal(t, "1G", got)
}

func TestINI_Fields(t *testing.T) {
	c := &INI{}
	assert.Nil(t, c.CustomFields())

	require.NoError(t, c.ParseCustom([]codec.Field{{Name: "ini", Value: "a=1\nb=2\n"}}))
	require.NotNil(t, c.Directives)
	assert.True(t, c.Directives.Frozen())
	assert.Equal(t, []codec.Field{{Name: "ini", Value: "a=1\nb=2\n"}}, c.CustomFields())
}

func TestElgg(t *testing.T) {
	c := &Elgg{}
	assert.Equal(t, CategoryApplication, c.Category())
	assert.Equal(t, "elgg-1.8.11.zip", c.Archive())
	assert.False(t, c.IsImplemented())
}
