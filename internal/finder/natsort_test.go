package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortNatural(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{
			name:  "numeric runs compare as integers",
			paths: []string{"f2.txt", "f10.txt", "f1.txt"},
			want:  []string{"f1.txt", "f2.txt", "f10.txt"},
		},
		{
			name:  "multiple numeric runs",
			paths: []string{"d2/f10.nc", "d10/f2.nc", "d2/f2.nc"},
			want:  []string{"d2/f2.nc", "d2/f10.nc", "d10/f2.nc"},
		},
		{
			name:  "plain lexical when no digits",
			paths: []string{"b.nc", "a.nc", "c.nc"},
			want:  []string{"a.nc", "b.nc", "c.nc"},
		},
		{
			name:  "leading zeros",
			paths: []string{"f010.nc", "f2.nc", "f01.nc"},
			want:  []string{"f01.nc", "f2.nc", "f010.nc"},
		},
		{
			name:  "prefix orders before longer",
			paths: []string{"f1a.nc", "f1.nc"},
			want:  []string{"f1.nc", "f1a.nc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := append([]string(nil), tt.paths...)
			sortNatural(paths)
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestCompareNaturalTotalOrder(t *testing.T) {
	// "01" and "1" are numerically equal; the string fallback keeps the
	// ordering total and deterministic.
	assert.NotEqual(t, 0, compareNatural("f01.nc", "f1.nc"))
	assert.Equal(t, 0, compareNatural("f1.nc", "f1.nc"))
}
