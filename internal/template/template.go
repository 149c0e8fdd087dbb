// Package template compiles path templates with named placeholders into
// bidirectional matchers.
//
// A template is a string containing zero or more placeholders of the form
// {name}. A compiled Template can substitute concrete values for its
// placeholders (Format), recover placeholder values from a literal string
// matching the template's shape (Parse), and produce a glob pattern in which
// unbound placeholders become wildcards (Glob).
package template

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderRe matches {name} and {name:modifier} occurrences. Formatting
// modifiers such as {year:04d} are recognized but ignored; only the name
// matters for key extraction.
var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?::[^{}]*)?\}`)

// segment is one piece of a compiled template: either a literal run of text
// or a single placeholder.
type segment struct {
	literal string
	key     string // non-empty for placeholder segments
}

// Template is an immutable compiled path template.
type Template struct {
	pattern  string
	segments []segment
	keys     []string
	keySet   map[string]struct{}
	parseRe  *regexp.Regexp
}

// MissingFieldError reports a Format call that did not supply a value for
// one of the template's placeholders.
type MissingFieldError struct {
	Field   string
	Pattern string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing value for field %q in template %q", e.Field, e.Pattern)
}

// Compile parses a template string into a Template. Placeholder names must
// be unique within one template; a duplicate name is an error because the
// parse direction would be ambiguous.
func Compile(pattern string) (*Template, error) {
	t := &Template{
		pattern: pattern,
		keySet:  make(map[string]struct{}),
	}

	locs := placeholderRe.FindAllStringSubmatchIndex(pattern, -1)
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			t.segments = append(t.segments, segment{literal: pattern[prev:loc[0]]})
		}
		key := pattern[loc[2]:loc[3]]
		if _, dup := t.keySet[key]; dup {
			return nil, fmt.Errorf("duplicate placeholder %q in template %q", key, pattern)
		}
		t.keySet[key] = struct{}{}
		t.keys = append(t.keys, key)
		t.segments = append(t.segments, segment{key: key})
		prev = loc[1]
	}
	if prev < len(pattern) {
		t.segments = append(t.segments, segment{literal: pattern[prev:]})
	}

	t.parseRe = buildParseRegexp(t.segments)
	return t, nil
}

// MustCompile is like Compile but panics on error. Intended for templates
// known at compile time, such as test fixtures.
func MustCompile(pattern string) *Template {
	t, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

// buildParseRegexp derives the anchored parse expression from the segment
// list. Placeholders match non-greedily so that adjacent literal separators
// bound each captured value.
func buildParseRegexp(segments []segment) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString(`\A`)
	for _, seg := range segments {
		if seg.key != "" {
			fmt.Fprintf(&sb, `(?P<%s>.+?)`, seg.key)
		} else {
			sb.WriteString(regexp.QuoteMeta(seg.literal))
		}
	}
	sb.WriteString(`\z`)
	return regexp.MustCompile(sb.String())
}

// Pattern returns the original template string.
func (t *Template) Pattern() string { return t.pattern }

// Keys returns the placeholder names in order of first appearance. The
// returned slice is a copy.
func (t *Template) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// HasKey reports whether name is one of the template's placeholders.
func (t *Template) HasKey(name string) bool {
	_, ok := t.keySet[name]
	return ok
}

// Format substitutes every placeholder with its value from fields and
// returns the resulting literal string. Every placeholder must be bound;
// supplying fields the template does not name is allowed and ignored.
func (t *Template) Format(fields map[string]string) (string, error) {
	var sb strings.Builder
	for _, seg := range t.segments {
		if seg.key == "" {
			sb.WriteString(seg.literal)
			continue
		}
		value, ok := fields[seg.key]
		if !ok {
			return "", &MissingFieldError{Field: seg.key, Pattern: t.pattern}
		}
		sb.WriteString(value)
	}
	return sb.String(), nil
}

// Glob returns a glob pattern for the template: placeholders bound in fields
// become their literal value (with glob metacharacters escaped), unbound
// placeholders become "*". Escaping is per-segment, so a field value that
// itself contains a wildcard glyph matches literally rather than expanding.
func (t *Template) Glob(fields map[string]string) string {
	var sb strings.Builder
	for _, seg := range t.segments {
		if seg.key == "" {
			sb.WriteString(seg.literal)
			continue
		}
		if value, ok := fields[seg.key]; ok {
			sb.WriteString(escapeGlob(value))
		} else {
			sb.WriteString("*")
		}
	}
	return sb.String()
}

// Parse recovers placeholder values from a literal string. The second return
// value is false when the string's shape does not fit the template.
func (t *Template) Parse(literal string) (map[string]string, bool) {
	m := t.parseRe.FindStringSubmatch(literal)
	if m == nil {
		return nil, false
	}
	fields := make(map[string]string, len(t.keys))
	for i, name := range t.parseRe.SubexpNames() {
		if name != "" {
			fields[name] = m[i]
		}
	}
	return fields, true
}

// escapeGlob backslash-escapes glob metacharacters in a literal value.
func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
