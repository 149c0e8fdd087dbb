package finder

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Globber scans the filesystem for paths matching a glob pattern. A pattern
// ending in "/" matches only directories, and matched directories are
// reported with their trailing "/" preserved. Implementations are read-only
// and uncached: results reflect filesystem state at call time.
type Globber interface {
	Glob(pattern string) ([]string, error)
}

// osGlobber globs against the host filesystem. The pattern is split into a
// non-glob base path and a relative glob so absolute templates work.
type osGlobber struct{}

func (osGlobber) Glob(pattern string) ([]string, error) {
	dirOnly := strings.HasSuffix(pattern, "/")
	base, pat := doublestar.SplitPattern(strings.TrimSuffix(pattern, "/"))
	fsys := os.DirFS(base)
	return globFS(fsys, base, pat, dirOnly)
}

// fsGlobber globs against an injected fs.FS with patterns interpreted
// relative to its root. Used by tests and embedded trees.
type fsGlobber struct {
	fsys fs.FS
}

// NewFSGlobber returns a Globber over fsys. Patterns must be relative,
// slash-separated paths in the fs.FS convention.
func NewFSGlobber(fsys fs.FS) Globber {
	return &fsGlobber{fsys: fsys}
}

func (g *fsGlobber) Glob(pattern string) ([]string, error) {
	dirOnly := strings.HasSuffix(pattern, "/")
	return globFS(g.fsys, "", strings.TrimSuffix(pattern, "/"), dirOnly)
}

// globFS runs the glob and rejoins matches with base. When dirOnly is set,
// non-directory matches are dropped and directories get a trailing "/" so
// they still parse against a directory template.
func globFS(fsys fs.FS, base, pattern string, dirOnly bool) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		full := m
		if base != "" && base != "." {
			full = path.Join(base, m)
		}
		if dirOnly {
			info, err := fs.Stat(fsys, m)
			if err != nil || !info.IsDir() {
				continue
			}
			full += "/"
		}
		out = append(out, full)
	}
	return out, nil
}
