// Package finder locates files whose names follow parametrized templates.
//
// A Finder wraps one compiled template and can both construct concrete names
// from field values and search the filesystem for files matching a partial
// field assignment. A FileFinder composes a directory template and a
// filename template, the usual entry point for callers.
package finder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/harrison/filefind/internal/table"
	"github.com/harrison/filefind/internal/template"
)

// Logger is the observability collaborator injected into finders. It is
// satisfied by logger.ConsoleLogger; the zero default discards everything.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// nopLogger discards all messages.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Query maps field names to constraint values. A value may be a scalar
// (anything cast can stringify) or a slice of scalars; a slice matches any
// of its elements. Fields the query does not mention match anything. A nil
// value is ignored.
type Query map[string]any

// NameBuilder wraps one template and constructs concrete names from field
// values. It cannot search on its own: a filename fragment has no directory
// context to glob against.
type NameBuilder struct {
	tmpl *template.Template
}

// Pattern returns the underlying template string.
func (b *NameBuilder) Pattern() string { return b.tmpl.Pattern() }

// Keys returns the template's placeholder names.
func (b *NameBuilder) Keys() []string { return b.tmpl.Keys() }

// Name substitutes fields into the template and returns the concrete name.
// Every placeholder must be bound.
func (b *NameBuilder) Name(fields map[string]string) (string, error) {
	return b.tmpl.Format(fields)
}

// Finder is a NameBuilder attached to a filesystem location, able to search
// for files matching a partial field assignment.
type Finder struct {
	NameBuilder
	suffix string
	glob   Globber
	log    Logger
}

// Find scans the filesystem for files matching the query and returns their
// parsed field values as a table.
//
// Scalar query values are treated as one-element lists. The cartesian
// product of all list-valued fields is enumerated; each combination yields
// one glob pattern in which unconstrained placeholders become wildcards.
// Matches of each pattern are natural-sorted, parsed back through the
// template, and unioned into one table. With zero matches overall, Find
// returns a NoMatchError listing every attempted pattern, or an empty table
// when allowEmpty is set.
func (f *Finder) Find(query Query, allowEmpty bool) (*table.Container, error) {
	normalized, err := f.normalize(query)
	if err != nil {
		return nil, err
	}

	keys := f.tmpl.Keys()
	var rows []table.Row
	var patterns []string
	for _, combo := range cartesian(normalized) {
		pattern := f.tmpl.Glob(combo)
		patterns = append(patterns, pattern)

		paths, err := f.glob.Glob(pattern)
		if err != nil {
			return nil, err
		}
		sortNatural(paths)
		f.log.Debugf("pattern %q matched %d path(s)", pattern, len(paths))

		for _, p := range paths {
			fields, ok := f.tmpl.Parse(p)
			if !ok {
				err := &ParseInconsistencyError{Path: p, Pattern: f.tmpl.Pattern()}
				f.log.Errorf("%v", err)
				return nil, err
			}
			rows = append(rows, table.Row{Filename: p + f.suffix, Fields: fields})
		}
	}

	if len(rows) == 0 && !allowEmpty {
		return nil, &NoMatchError{Patterns: patterns}
	}
	f.log.Infof("found %d file(s) for template %q", len(rows), f.tmpl.Pattern())
	return table.New(keys, rows), nil
}

// normalize validates query fields against the template and coerces every
// constraint to a string slice.
func (f *Finder) normalize(query Query) (map[string][]string, error) {
	out := make(map[string][]string, len(query))
	for key, value := range query {
		if !f.tmpl.HasKey(key) {
			return nil, &UnknownKeyError{Key: key, Keys: f.tmpl.Keys()}
		}
		if value == nil {
			continue
		}
		out[key] = toStrings(value)
	}
	return out, nil
}

// toStrings coerces a scalar or slice constraint to its string forms.
func toStrings(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			out[i] = cast.ToString(e)
		}
		return out
	default:
		return []string{cast.ToString(v)}
	}
}

// cartesian enumerates every combination of the candidate lists, one
// concrete field assignment per combination. Field order is sorted so the
// enumeration, and with it error messages, is deterministic.
func cartesian(lists map[string][]string) []map[string]string {
	keys := make([]string, 0, len(lists))
	for k := range lists {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	combos := []map[string]string{{}}
	for _, k := range keys {
		values := lists[k]
		next := make([]map[string]string, 0, len(combos)*len(values))
		for _, combo := range combos {
			for _, v := range values {
				extended := make(map[string]string, len(combo)+1)
				for ck, cv := range combo {
					extended[ck] = cv
				}
				extended[k] = v
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos
}

// Option configures a FileFinder.
type Option func(*FileFinder)

// WithLogger injects the observability collaborator used by all three
// finders.
func WithLogger(log Logger) Option {
	return func(ff *FileFinder) { ff.log = log }
}

// WithGlobber replaces the filesystem scan primitive, e.g. with one over an
// in-memory fs.FS.
func WithGlobber(g Globber) Option {
	return func(ff *FileFinder) { ff.glob = g }
}

// FileFinder composes a directory template and a filename template into
// three finders: Path searches directories only, File builds filenames but
// cannot search, and Full searches complete paths.
type FileFinder struct {
	// Path searches the directory template. Its matched paths carry a
	// trailing "*" so they remain usable as search prefixes.
	Path *Finder

	// File builds names from the filename template alone.
	File *NameBuilder

	// Full searches the joined directory+filename template.
	Full *Finder

	glob Globber
	log  Logger
}

// New compiles the two templates and builds the composed finder. The
// directory template is forced to end with "/" so it always denotes a
// directory. Paths are slash-separated throughout, following the fs.FS
// convention.
func New(pathPattern, filePattern string, opts ...Option) (*FileFinder, error) {
	ff := &FileFinder{
		glob: osGlobber{},
		log:  nopLogger{},
	}
	for _, opt := range opts {
		opt(ff)
	}

	if pathPattern != "" && !strings.HasSuffix(pathPattern, "/") {
		pathPattern += "/"
	}
	fullPattern := pathPattern + filePattern

	pathTmpl, err := template.Compile(pathPattern)
	if err != nil {
		return nil, fmt.Errorf("compile path template: %w", err)
	}
	fileTmpl, err := template.Compile(filePattern)
	if err != nil {
		return nil, fmt.Errorf("compile file template: %w", err)
	}
	fullTmpl, err := template.Compile(fullPattern)
	if err != nil {
		return nil, fmt.Errorf("compile full template: %w", err)
	}

	ff.Path = &Finder{
		NameBuilder: NameBuilder{tmpl: pathTmpl},
		suffix:      "*",
		glob:        ff.glob,
		log:         ff.log,
	}
	ff.File = &NameBuilder{tmpl: fileTmpl}
	ff.Full = &Finder{
		NameBuilder: NameBuilder{tmpl: fullTmpl},
		glob:        ff.glob,
		log:         ff.log,
	}
	return ff, nil
}

// Keys returns the union of both templates' placeholder names.
func (ff *FileFinder) Keys() []string { return ff.Full.Keys() }

// PathKeys returns the directory template's placeholder names.
func (ff *FileFinder) PathKeys() []string { return ff.Path.Keys() }

// FileKeys returns the filename template's placeholder names.
func (ff *FileFinder) FileKeys() []string { return ff.File.Keys() }

// FindFiles searches the joined template and validates that the matched
// files have pairwise distinct key values.
func (ff *FileFinder) FindFiles(query Query, allowEmpty bool) (*table.Container, error) {
	c, err := ff.Full.Find(query, allowEmpty)
	if err != nil {
		return nil, err
	}
	return c, ff.validateUnique(c)
}

// FindPaths searches the directory template and validates uniqueness the
// same way.
func (ff *FileFinder) FindPaths(query Query, allowEmpty bool) (*table.Container, error) {
	c, err := ff.Path.Find(query, allowEmpty)
	if err != nil {
		return nil, err
	}
	return c, ff.validateUnique(c)
}

// validateUnique fails when two rows collapse to the same joined key
// values: the template under-specifies the data.
func (ff *FileFinder) validateUnique(c *table.Container) error {
	joined, err := c.CombineKeys(nil, ".")
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(joined))
	for _, j := range joined {
		if _, dup := seen[j]; dup {
			ff.log.Errorf("non-unique metadata for key %q", j)
			return &AmbiguousResultError{Joined: j}
		}
		seen[j] = struct{}{}
	}
	return nil
}

// String renders the finder's patterns and keys, mirroring the table repr.
func (ff *FileFinder) String() string {
	keys := ff.Keys()
	sort.Strings(keys)
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return fmt.Sprintf("<FileFinder>\npath_pattern: %q\nfile_pattern: %q\n\nkeys: %s\n",
		ff.Path.Pattern(), ff.File.Pattern(), strings.Join(quoted, ", "))
}
