// Package catalog parses Markdown preset catalogs.
//
// A catalog is a Markdown document in which each level-2 heading names a
// preset and the fenced yaml code block under it defines the preset's
// templates:
//
//	## cmip-monthly
//
//	```yaml
//	path_pattern: data/{year}
//	file_pattern: "{var}_{year}.nc"
//	```
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/harrison/filefind/internal/config"
)

// Parser parses Markdown catalogs into preset maps.
type Parser struct {
	markdown goldmark.Markdown
}

// NewParser creates a catalog parser.
func NewParser() *Parser {
	return &Parser{
		markdown: goldmark.New(),
	}
}

// Parse reads a Markdown catalog and returns its presets keyed by name.
// A heading without a yaml block under it is skipped; a duplicate preset
// name is an error.
func (p *Parser) Parse(r io.Reader) (map[string]config.Preset, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	doc := p.markdown.Parser().Parse(text.NewReader(source))

	presets := map[string]config.Preset{}
	var current string
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 2 {
				current = strings.TrimSpace(extractText(node, source))
			} else {
				current = ""
			}

		case *ast.FencedCodeBlock:
			lang := string(node.Language(source))
			if current == "" || (lang != "yaml" && lang != "yml") {
				return ast.WalkContinue, nil
			}
			if _, dup := presets[current]; dup {
				return ast.WalkStop, fmt.Errorf("duplicate preset %q in catalog", current)
			}

			var preset config.Preset
			if err := yaml.Unmarshal(blockContent(node, source), &preset); err != nil {
				return ast.WalkStop, fmt.Errorf("parse preset %q: %w", current, err)
			}
			if preset.PathPattern == "" && preset.FilePattern == "" {
				return ast.WalkStop, fmt.Errorf("preset %q has neither path_pattern nor file_pattern", current)
			}
			presets[current] = preset
			current = ""
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return presets, nil
}

// ParseFile parses the catalog at path.
func (p *Parser) ParseFile(path string) (map[string]config.Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return p.Parse(f)
}

// extractText extracts plain text from an AST node
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if text, ok := c.(*ast.Text); ok {
			buf.Write(text.Segment.Value(source))
		}
	}
	return buf.String()
}

// blockContent returns the raw lines of a fenced code block.
func blockContent(node *ast.FencedCodeBlock, source []byte) []byte {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}
