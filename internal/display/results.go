// Package display renders search results for the terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/filefind/internal/table"
)

// useColor reports whether w is a terminal worth colorizing. Respects
// NO_COLOR via fatih/color's detection.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WriteResults renders the container as an aligned column table: header
// row, then one line per match. Headers are colored when w is a terminal.
func WriteResults(w io.Writer, c *table.Container) {
	cols := c.Columns()

	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = len(col)
	}
	cells := make([][]string, 0, c.Len())
	for filename, fields := range c.All() {
		row := make([]string, len(cols))
		row[0] = filename
		for i, col := range cols[1:] {
			row[i+1] = fields[col]
		}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		cells = append(cells, row)
	}

	header := make([]string, len(cols))
	headerColor := color.New(color.FgCyan, color.Bold)
	for i, col := range cols {
		padded := pad(col, widths[i])
		if useColor(w) {
			padded = headerColor.Sprint(padded)
		}
		header[i] = padded
	}
	fmt.Fprintln(w, strings.Join(header, "  "))

	for _, row := range cells {
		for i, cell := range row {
			row[i] = pad(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(row, "  "), " "))
	}
	fmt.Fprintf(w, "\n%d file(s)\n", c.Len())
}

// WriteCombined renders the per-row combined key identifiers, one per line.
func WriteCombined(w io.Writer, combined []string) {
	for _, key := range combined {
		fmt.Fprintln(w, key)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
