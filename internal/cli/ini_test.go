package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/envcompose/internal/ini"
)

func TestINIShow_Defaults(t *testing.T) {
	stdout, _, err := execute(t, "ini", "show")
	require.NoError(t, err)
	assert.Equal(t, ini.Default().String(), stdout)
}

func TestINIShow_File(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "php.ini", "; comment\nprecision=17\nextension=a.so\nextension=b.so\n")

	stdout, _, err := execute(t, "ini", "show", path)
	require.NoError(t, err)
	assert.Equal(t, "precision=17\nextension=a.so\nextension=b.so\n", stdout)
}

func TestINIShow_PWD(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "php.ini", "include_path={PWD}/lib\n")

	stdout, _, err := execute(t, "ini", "show", "--pwd", "/srv/tests", path)
	require.NoError(t, err)
	assert.Equal(t, `include_path=\srv\tests\lib`+"\n", stdout)
}

func TestINIShow_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "php.ini", "extension=a.so\nextension=b.so\n")

	stdout, _, err := execute(t, "--format", "json", "ini", "show", path)
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   INIResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []DirectiveResult{{Name: "extension", Values: []string{"a.so", "b.so"}}}, resp.Data.Directives)
	assert.Equal(t, ini.Parse("extension=a.so\nextension=b.so\n").Hash(), resp.Data.Hash)
	assert.Empty(t, resp.Data.CLIArgs)
}

func TestINIArgs_TargetOS(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "php.ini", "memory_limit=50%\nerror_reporting=E_ALL|E_STRICT\n")

	stdout, _, err := execute(t, "--target-os", "windows", "ini", "args", path)
	require.NoError(t, err)
	assert.Equal(t, ` -d "memory_limit=50%%" -d "error_reporting=E_ALL\|E_STRICT"`+"\n", stdout)

	stdout, _, err = execute(t, "--target-os", "linux", "ini", "args", path)
	require.NoError(t, err)
	assert.Equal(t, ` -d "memory_limit=50%" -d "error_reporting=E_ALL\|E_STRICT"`+"\n", stdout)
}

func TestINIExtensions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "php.ini", "precision=14\nextension_dir=/ext\nextension=a.so\nzend_extension=/ext/opcache.so\n")

	stdout, _, err := execute(t, "ini", "extensions", path)
	require.NoError(t, err)
	assert.Equal(t, "extension_dir=/ext\nextension=a.so\n", stdout)
}

func TestINIShow_MissingFile(t *testing.T) {
	stdout, _, err := execute(t, "ini", "show", filepath.Join(t.TempDir(), "missing.ini"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, stdout, "Error [E005]")
}
