package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/envcompose/internal/ini"
	"github.com/roach88/envcompose/internal/testutil"
)

func TestCompose_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cli.yaml", "scenarios:\n  - kind: CLI\n")

	stdout, _, err := execute(t, "--target-os", "linux", "compose", path)
	require.NoError(t, err)

	lines := strings.SplitN(stdout, "\n", 5)
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Configuration: "))
	_, err = uuid.Parse(strings.TrimPrefix(lines[0], "Configuration: "))
	require.NoError(t, err)
	assert.Equal(t, "Scenarios: CLI_No-Code-Cache_Normal-Paths_Plain-Socket_Local-FileSystem_Enchant", lines[1])
	assert.Equal(t, "Args:"+ini.Default().CLIArgs(false), lines[2])
	assert.Empty(t, lines[3])
	assert.Equal(t, ini.Default().String(), lines[4])
}

func TestCompose_FixedIDs(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cli.yaml", "scenarios:\n  - kind: CLI\n")

	stdout := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)
	opts := &ComposeOptions{
		RootOptions: &RootOptions{Format: "text", TargetOS: "linux"},
		IDs:         testutil.NewFixedIDGenerator("cfg-1"),
		Layer:       "functional_core",
	}

	require.NoError(t, runCompose(opts, path, cmd))
	assert.True(t, strings.HasPrefix(stdout.String(), "Configuration: cfg-1\n"))
}

func TestCompose_JSONWithBaseINIAndScenarioDirectives(t *testing.T) {
	dir := t.TempDir()
	extDir := filepath.Join(dir, "ext")
	require.NoError(t, os.Mkdir(extDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(extDir, "opcache.so"), nil, 0o644))

	base := writeFile(t, dir, "base.ini", "precision=14\ninclude_path={PWD}/lib\n")
	set := writeFile(t, dir, "opcache.yaml", `scenarios:
  - kind: Opcache
    fields:
      memory_consumption: 64
  - kind: INI
    fields:
      ini: "precision=17\n"
`)

	stdout, _, err := execute(t,
		"--format", "json", "--target-os", "linux", "--ext-dir", extDir,
		"compose", "--ini", base, "--pwd", "/srv", set,
	)
	require.NoError(t, err)

	var resp struct {
		Status   string        `json:"status"`
		ConfigID string        `json:"config_id"`
		Data     ComposeResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.ConfigID)
	assert.Equal(t, "Opcache_INI_CLI", resp.Data.ShortName)
	assert.Equal(t, UACResult{}, resp.Data.UAC)

	composed := ini.Parse(resp.Data.INI)
	assert.True(t, composed.ContainsExact("precision", "17"))
	assert.True(t, composed.ContainsExact("include_path", `\srv\lib`))
	assert.True(t, composed.ContainsExact(ini.ZendExtension, filepath.Join(extDir, "opcache.so")))
	assert.True(t, composed.ContainsExact("opcache.memory_consumption", "64"))
	assert.Equal(t, composed.Hash(), resp.Data.Hash)
	assert.Contains(t, resp.Data.CLIArgs, ` -d "opcache.enable=1"`)
}

func TestCompose_SetupAndRelease(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	path := writeFile(t, t.TempDir(), "web.yaml", `scenarios:
  - kind: BuiltinWebServer
  - kind: DeepPaths
    fields: {depth: 2}
`)

	stdout, _, err := execute(t, "--target-os", "linux", "compose", "--setup", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Setup: BuiltinWebServer (127.0.0.1:")
	assert.Contains(t, stdout, "Setup: Deep-Paths\n")

	entries, err := os.ReadDir(os.Getenv("TMPDIR"))
	require.NoError(t, err)
	assert.Empty(t, entries, "deep path tree is released")
}

func TestCompose_NotImplemented(t *testing.T) {
	path := writeFile(t, t.TempDir(), "smb.yaml", "scenarios:\n  - kind: SMBFileSystem\n")

	_, _, err := execute(t, "--target-os", "windows", "compose", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotImplemented)
}

func TestCompose_Unsupported(t *testing.T) {
	path := writeFile(t, t.TempDir(), "wincache.yaml", "scenarios:\n  - kind: WinCache\n")

	stdout, _, err := execute(t, "--target-os", "linux", "compose", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "Error ["+ErrCodeUnsupported+"]")

	stdout, _, err = execute(t, "--target-os", "windows", "compose", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `-d "extension=php_wincache.dll"`)
}

func TestCompose_MissingBaseINI(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cli.yaml", "scenarios:\n  - kind: CLI\n")

	_, _, err := execute(t, "compose", "--ini", filepath.Join(dir, "nope.ini"), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}
