package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `# Naming conventions

Some prose about the data layout.

## cmip-monthly

Monthly CMIP output.

` + "```yaml" + `
path_pattern: data/{year}
file_pattern: "{var}_{year}.nc"
` + "```" + `

## station-logs

` + "```yaml" + `
file_pattern: "{station}_{date}.log"
` + "```" + `

### not a preset heading

` + "```yaml" + `
path_pattern: ignored/{x}
` + "```" + `

## plain-code

A non-yaml block is skipped.

` + "```sh" + `
echo hello
` + "```" + `
`

func TestParseCatalog(t *testing.T) {
	presets, err := NewParser().Parse(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, presets, 2)

	cmip := presets["cmip-monthly"]
	assert.Equal(t, "data/{year}", cmip.PathPattern)
	assert.Equal(t, "{var}_{year}.nc", cmip.FilePattern)

	station := presets["station-logs"]
	assert.Empty(t, station.PathPattern)
	assert.Equal(t, "{station}_{date}.log", station.FilePattern)
}

func TestParseCatalogDuplicateName(t *testing.T) {
	doc := "## twice\n\n```yaml\nfile_pattern: \"{a}.nc\"\n```\n\n## twice\n\n```yaml\nfile_pattern: \"{b}.nc\"\n```\n"

	_, err := NewParser().Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate preset")
}

func TestParseCatalogEmptyPreset(t *testing.T) {
	doc := "## empty\n\n```yaml\n{}\n```\n"

	_, err := NewParser().Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither path_pattern nor file_pattern")
}

func TestParseCatalogNoPresets(t *testing.T) {
	presets, err := NewParser().Parse(strings.NewReader("# just prose\n\nnothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, presets)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

	presets, err := NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, presets, 2)

	_, err = NewParser().ParseFile(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}
