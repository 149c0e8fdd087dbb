package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/filefind/internal/export"
	"github.com/harrison/filefind/internal/finder"
)

// NewExportCommand creates the export command: run a search and persist
// the result rows to a SQLite database.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [path-template file-template] [key=value ...]",
		Short: "Search and write the matched files to a SQLite database",
		Long: `Export runs the same search as find and writes every matched file and
its field values to a SQLite database, tagged with a fresh scan id:

  filefind export --db scans.db 'data/{year}' '{var}_{year}.nc' var=tas`,
		RunE: runExport,
	}

	cmd.Flags().String("db", "", "path to the SQLite database (required)")
	cmd.Flags().Bool("allow-empty", false, "export an empty scan instead of failing when nothing matches")
	cmd.Flags().String("preset", "", "use a named preset instead of inline templates")
	cmd.Flags().String("catalog", "", "path to a Markdown preset catalog")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	c, preset, query, err := runSearch(cmd, args)
	if err != nil {
		return err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	store, err := export.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	scanID, err := store.SaveScan(cmd.Context(), preset.PathPattern, preset.FilePattern, describeQuery(query), c)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), scanID)
	return nil
}

// describeQuery renders the query in key=value form for the scan record.
func describeQuery(query finder.Query) string {
	parts := make([]string, 0, len(query))
	for key, value := range query {
		switch v := value.(type) {
		case []string:
			parts = append(parts, fmt.Sprintf("%s=%s", key, strings.Join(v, ",")))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", key, v))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
