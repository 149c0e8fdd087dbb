package cmd

import (
	"fmt"
	"strings"

	"github.com/harrison/filefind/internal/finder"
)

// parseFieldArgs turns key=value arguments into a finder query. A value
// containing commas becomes a list constraint: var=tas,pr matches either.
func parseFieldArgs(args []string) (finder.Query, error) {
	query := finder.Query{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field argument %q, expected key=value", arg)
		}
		if strings.Contains(value, ",") {
			query[key] = strings.Split(value, ",")
		} else {
			query[key] = value
		}
	}
	return query, nil
}

// fieldMap narrows a query to scalar fields for name construction. List
// values are rejected: a concrete name needs exactly one value per field.
func fieldMap(query finder.Query) (map[string]string, error) {
	fields := make(map[string]string, len(query))
	for key, value := range query {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %q must have a single value for name construction", key)
		}
		fields[key] = s
	}
	return fields, nil
}
