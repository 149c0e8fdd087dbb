package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/filefind/internal/finder"
)

func TestParseFieldArgs(t *testing.T) {
	query, err := parseFieldArgs([]string{"var=tas", "year=2000,2001", "model="})
	require.NoError(t, err)

	assert.Equal(t, finder.Query{
		"var":   "tas",
		"year":  []string{"2000", "2001"},
		"model": "",
	}, query)
}

func TestParseFieldArgsEmpty(t *testing.T) {
	query, err := parseFieldArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestParseFieldArgsInvalid(t *testing.T) {
	for _, arg := range []string{"novalue", "=x"} {
		_, err := parseFieldArgs([]string{arg})
		assert.Error(t, err, "arg %q", arg)
	}
}

func TestFieldMap(t *testing.T) {
	fields, err := fieldMap(finder.Query{"var": "tas"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"var": "tas"}, fields)

	_, err = fieldMap(finder.Query{"var": []string{"tas", "pr"}})
	assert.Error(t, err, "list values cannot build a single name")
}
