package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args and returns its stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// missingConfig points the --config flag at a file that does not exist, so
// tests never pick up a developer's own config.
func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "no-such-config.yaml")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "find")
	assert.Contains(t, names, "paths")
	assert.Contains(t, names, "name")
	assert.Contains(t, names, "presets")
	assert.Contains(t, names, "export")
}

func TestNameCommand(t *testing.T) {
	out, err := runCommand(t, "name", "{var}_{year}.nc", "var=tas", "year=2000")
	require.NoError(t, err)
	assert.Equal(t, "tas_2000.nc\n", out)
}

func TestNameCommandMissingField(t *testing.T) {
	_, err := runCommand(t, "name", "{var}_{year}.nc", "var=tas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year")
}

func TestFindCommand(t *testing.T) {
	tmp := t.TempDir()
	for _, name := range []string{"a_2000.nc", "a_2001.nc", "b_2000.nc"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmp, name), []byte("x"), 0644))
	}

	out, err := runCommand(t,
		"find", "--config", missingConfig(t),
		filepath.ToSlash(tmp), "{var}_{year}.nc", "var=a")
	require.NoError(t, err)

	assert.Contains(t, out, "a_2000.nc")
	assert.Contains(t, out, "a_2001.nc")
	assert.NotContains(t, out, "b_2000.nc")
	assert.Contains(t, out, "2 file(s)")
}

func TestFindCommandCombine(t *testing.T) {
	tmp := t.TempDir()
	for _, name := range []string{"a_2000.nc", "b_2000.nc"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmp, name), []byte("x"), 0644))
	}

	out, err := runCommand(t,
		"find", "--config", missingConfig(t), "--combine",
		filepath.ToSlash(tmp), "{var}_{year}.nc")
	require.NoError(t, err)

	assert.Equal(t, "a.2000\nb.2000\n", out)
}

func TestFindCommandNoMatch(t *testing.T) {
	tmp := t.TempDir()

	_, err := runCommand(t,
		"find", "--config", missingConfig(t),
		filepath.ToSlash(tmp), "{var}.nc", "var=missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found no files")

	out, err := runCommand(t,
		"find", "--config", missingConfig(t), "--allow-empty",
		filepath.ToSlash(tmp), "{var}.nc", "var=missing")
	require.NoError(t, err)
	assert.Contains(t, out, "0 file(s)")
}

func TestFindCommandPreset(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "data", "2000"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "data", "2000", "tas_2000.nc"), []byte("x"), 0644))

	configPath := filepath.Join(tmp, "config.yaml")
	configContent := "presets:\n  cmip:\n    path_pattern: " + filepath.ToSlash(tmp) + "/data/{year}\n    file_pattern: \"{var}_{year2}.nc\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	out, err := runCommand(t, "find", "--config", configPath, "--preset", "cmip", "var=tas")
	require.NoError(t, err)
	assert.Contains(t, out, "tas_2000.nc")

	_, err = runCommand(t, "find", "--config", configPath, "--preset", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown preset")
}

func TestPathsCommand(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "data", "2000"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "data", "2001"), 0755))

	out, err := runCommand(t,
		"paths", "--config", missingConfig(t),
		filepath.ToSlash(tmp)+"/data/{year}", "year=2000")
	require.NoError(t, err)

	assert.Contains(t, out, "data/2000/*")
	assert.NotContains(t, out, "data/2001")
}

func TestPresetsCommand(t *testing.T) {
	tmp := t.TempDir()
	configPath := filepath.Join(tmp, "config.yaml")
	configContent := "presets:\n  cmip:\n    file_pattern: \"{var}.nc\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	out, err := runCommand(t, "presets", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "cmip")
	assert.Contains(t, out, "{var}.nc")
}

func TestPresetsCommandCatalog(t *testing.T) {
	tmp := t.TempDir()
	catalogPath := filepath.Join(tmp, "catalog.md")
	catalogContent := "## station-logs\n\n```yaml\nfile_pattern: \"{station}.log\"\n```\n"
	require.NoError(t, os.WriteFile(catalogPath, []byte(catalogContent), 0644))

	out, err := runCommand(t, "presets", "--config", missingConfig(t), "--catalog", catalogPath)
	require.NoError(t, err)
	assert.Contains(t, out, "station-logs")
	assert.Contains(t, out, "{station}.log")
}

func TestExportCommand(t *testing.T) {
	tmp := t.TempDir()
	for _, name := range []string{"a_2000.nc", "b_2000.nc"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmp, name), []byte("x"), 0644))
	}
	dbPath := filepath.Join(tmp, "scans.db")

	out, err := runCommand(t,
		"export", "--config", missingConfig(t), "--db", dbPath,
		filepath.ToSlash(tmp), "{var}_{year}.nc")
	require.NoError(t, err)

	// The command prints the scan id.
	assert.NotEmpty(t, out)
	_, statErr := os.Stat(dbPath)
	assert.NoError(t, statErr)
}
