package finder

import (
	"fmt"
	"strings"
)

// NoMatchError reports a search that found zero files across every concrete
// pattern it attempted. The attempted patterns are carried so overly narrow
// queries can be diagnosed.
type NoMatchError struct {
	Patterns []string
}

func (e *NoMatchError) Error() string {
	var sb strings.Builder
	sb.WriteString("found no files matching criteria. tried the following pattern(s):")
	for _, p := range e.Patterns {
		fmt.Fprintf(&sb, "\n- %q", p)
	}
	return sb.String()
}

// AmbiguousResultError reports two or more matched files collapsing to the
// same joined key values. The template under-specifies the data; the query
// cannot be auto-resolved.
type AmbiguousResultError struct {
	Joined string
}

func (e *AmbiguousResultError) Error() string {
	return fmt.Sprintf("query leads to non-unique metadata (duplicate key %q), adjust the template or query", e.Joined)
}

// UnknownKeyError reports a query field that is not among the template's
// placeholders.
type UnknownKeyError struct {
	Key  string
	Keys []string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown field %q, template fields are: %s", e.Key, strings.Join(e.Keys, ", "))
}

// ParseInconsistencyError reports a path that was matched by the generated
// glob pattern but failed to parse back through the template. This is an
// internal invariant violation between pattern generation and the parser,
// not a user error, and is never swallowed.
type ParseInconsistencyError struct {
	Path    string
	Pattern string
}

func (e *ParseInconsistencyError) Error() string {
	return fmt.Sprintf("path %q matched the search pattern but does not parse against template %q", e.Path, e.Pattern)
}
