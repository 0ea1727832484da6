package ini

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIArgs_FirstValueOnly(t *testing.T) {
	s := New()
	s.Add("d", "a")
	s.Add("d", "b")

	assert.Equal(t, ` -d "d=a"`, s.CLIArgs(false))
}

func TestCLIArgs_Escaping(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		windows bool
		want    string
	}{
		{"quote amp pipe", `He said "hi" & bye | ok`, false, ` -d "x=He said \"hi\" \& bye \| ok"`},
		{"percent untouched off windows", "%PATH%", false, ` -d "x=%PATH%"`},
		{"percent doubled on windows", "%PATH%", true, ` -d "x=%%PATH%%"`},
		{"empty value kept", "", false, ` -d "x="`},
		{"error reporting", EAllOrEStrict, false, ` -d "x=E_ALL\|E_STRICT"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Set("x", tt.value)
			assert.Equal(t, tt.want, s.CLIArgs(tt.windows))
		})
	}
}

func TestCLIArgs_Order(t *testing.T) {
	s := Parse("b=2\na=1\nc=3\n")
	assert.Equal(t, ` -d "b=2" -d "a=1" -d "c=3"`, s.CLIArgs(false))
}

func TestCLIArgs_PerHostCache(t *testing.T) {
	s := New()
	s.Set("x", "100%")

	assert.Equal(t, ` -d "x=100%%"`, s.CLIArgs(true))
	assert.Equal(t, ` -d "x=100%"`, s.CLIArgs(false))
}

func TestCLIArgs_Empty(t *testing.T) {
	assert.Equal(t, "", New().CLIArgs(false))
}

// Add leaves rendered views in place; Set drops them.
func TestViews_AddDoesNotInvalidate(t *testing.T) {
	s := Parse("a=1\n")
	assert.Equal(t, "a=1\n", s.String())
	assert.Equal(t, ` -d "a=1"`, s.CLIArgs(false))

	s.Add("b", "2")
	assert.Equal(t, "a=1\n", s.String(), "stale after Add")
	assert.Equal(t, ` -d "a=1"`, s.CLIArgs(false), "stale after Add")

	s.Set("c", "3")
	assert.Equal(t, "a=1\nb=2\nc=3\n", s.String())
	assert.Equal(t, ` -d "a=1" -d "b=2" -d "c=3"`, s.CLIArgs(false))
}

func TestViews_AddBeforeRenderIsVisible(t *testing.T) {
	s := New()
	s.Add("a", "1")
	s.Add("a", "2")

	assert.Equal(t, "a=1\na=2\n", s.String())
}

func TestViews_RemoveInvalidates(t *testing.T) {
	s := Parse("a=1\nb=2\n")
	_ = s.String()

	s.Remove("a")
	assert.Equal(t, "b=2\n", s.String())
}

func TestRoundTrip(t *testing.T) {
	s := New()
	s.Add("extension", "a.so")
	s.Add("extension", "b.so")
	s.Set("precision", "14")
	s.Add("error_reporting", EAllOrEStrict)
	s.Set("docref_root", "")

	text := s.String()
	assert.Equal(t, text, Parse(text).String())
	assert.True(t, Parse(text).Equal(s))
}

func TestEqual(t *testing.T) {
	a := Parse("x=1\ny=2\n")
	b := Parse("x=1\ny=2\n")
	reordered := Parse("y=2\nx=1\n")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	// equality follows the text form, including directive order
	assert.False(t, a.Equal(reordered))
	assert.NotEqual(t, a.Hash(), reordered.Hash())

	assert.False(t, a.Equal(nil))
	assert.True(t, a.Equal(a))
}

func TestHash_Format(t *testing.T) {
	h := Parse("x=1\n").Hash()
	assert.Len(t, h, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", h)
}

func TestDefault_Golden(t *testing.T) {
	s := Default()
	require.Equal(t, 27, s.CountDirectives())

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "default_ini", []byte(s.String()))
	g.Assert(t, "default_cli_args_windows", []byte(s.CLIArgs(true)))
}
