package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileKeys(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"no placeholders", "data/fixed.nc", nil},
		{"single", "{var}.nc", []string{"var"}},
		{"multiple", "data/{year}/{var}_{year2}.nc", []string{"year", "var", "year2"}},
		{"format modifier ignored", "{var}_{year:04d}.nc", []string{"var", "year"}},
		{"underscored name", "{long_name}.nc", []string{"long_name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(tt.pattern)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, tmpl.Keys())
			} else {
				assert.Equal(t, tt.want, tmpl.Keys())
			}
		})
	}
}

func TestCompileDuplicateKey(t *testing.T) {
	_, err := Compile("{year}/{var}_{year}.nc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate placeholder")
}

func TestHasKey(t *testing.T) {
	tmpl := MustCompile("{var}_{year}.nc")
	assert.True(t, tmpl.HasKey("var"))
	assert.True(t, tmpl.HasKey("year"))
	assert.False(t, tmpl.HasKey("month"))
}

func TestFormat(t *testing.T) {
	tmpl := MustCompile("data/{year}/{var}_{year2}.nc")

	name, err := tmpl.Format(map[string]string{"year": "2000", "var": "tas", "year2": "2000"})
	require.NoError(t, err)
	assert.Equal(t, "data/2000/tas_2000.nc", name)
}

func TestFormatMissingField(t *testing.T) {
	tmpl := MustCompile("{var}_{year}.nc")

	_, err := tmpl.Format(map[string]string{"var": "tas"})
	require.Error(t, err)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "year", missing.Field)
}

func TestFormatExtraFieldsIgnored(t *testing.T) {
	tmpl := MustCompile("{var}.nc")

	name, err := tmpl.Format(map[string]string{"var": "tas", "year": "2000"})
	require.NoError(t, err)
	assert.Equal(t, "tas.nc", name)
}

// Round-trip: parsing a formatted name recovers the original fields.
func TestParseFormatRoundTrip(t *testing.T) {
	tests := []struct {
		pattern string
		fields  map[string]string
	}{
		{"{var}_{year}.nc", map[string]string{"var": "tas", "year": "2000"}},
		{"data/{year}/{var}.nc", map[string]string{"year": "1850", "var": "pr"}},
		{"{a}-{b}-{c}", map[string]string{"a": "x", "b": "y", "c": "z"}},
	}

	for _, tt := range tests {
		tmpl := MustCompile(tt.pattern)
		name, err := tmpl.Format(tt.fields)
		require.NoError(t, err)

		parsed, ok := tmpl.Parse(name)
		require.True(t, ok, "parse %q against %q", name, tt.pattern)
		assert.Equal(t, tt.fields, parsed)
	}
}

func TestParseNoMatch(t *testing.T) {
	tmpl := MustCompile("{var}_{year}.nc")

	_, ok := tmpl.Parse("tas-2000.nc")
	assert.False(t, ok)

	_, ok = tmpl.Parse("tas_2000.txt")
	assert.False(t, ok)
}

func TestGlob(t *testing.T) {
	tmpl := MustCompile("data/{year}/{var}_{year2}.nc")

	assert.Equal(t, "data/*/*_*.nc", tmpl.Glob(nil))
	assert.Equal(t, "data/2000/*_*.nc", tmpl.Glob(map[string]string{"year": "2000"}))
	assert.Equal(t, "data/2000/tas_2000.nc",
		tmpl.Glob(map[string]string{"year": "2000", "var": "tas", "year2": "2000"}))
}

// A field value containing a wildcard glyph must match literally, not
// expand. The glob escapes it per segment.
func TestGlobEscapesValues(t *testing.T) {
	tmpl := MustCompile("{var}.nc")
	assert.Equal(t, `a\*b.nc`, tmpl.Glob(map[string]string{"var": "a*b"}))
	assert.Equal(t, `x\?\[y\].nc`, tmpl.Glob(map[string]string{"var": "x?[y]"}))
}
