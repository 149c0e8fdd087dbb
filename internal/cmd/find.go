package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/filefind/internal/config"
	"github.com/harrison/filefind/internal/display"
	"github.com/harrison/filefind/internal/finder"
	"github.com/harrison/filefind/internal/table"
)

// NewFindCommand creates the find command, the main search entry point.
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [path-template file-template] [key=value ...]",
		Short: "Search for files matching a templated naming convention",
		Long: `Find searches the filesystem for files matching the directory and
filename templates, extracts each template field from the matched
paths, and prints the results as a table.

Fields left unconstrained match anything. A comma-separated value
constrains a field to any of the listed values:

  filefind find 'data/{year}' '{var}_{year}.nc' var=tas,pr year=2000`,
		Args: cobra.MinimumNArgs(0),
		RunE: runFind,
	}

	cmd.Flags().Bool("allow-empty", false, "return an empty table instead of failing when nothing matches")
	cmd.Flags().String("preset", "", "use a named preset instead of inline templates")
	cmd.Flags().String("catalog", "", "path to a Markdown preset catalog")
	cmd.Flags().String("fuzzy", "", "fuzzy-filter results on a column, as column=needle")
	cmd.Flags().Bool("combine", false, "print combined key identifiers instead of the table")
	cmd.Flags().String("sep", ".", "separator for combined key identifiers")

	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	c, _, _, err := runSearch(cmd, args)
	if err != nil {
		return err
	}

	if fuzzyArg, _ := cmd.Flags().GetString("fuzzy"); fuzzyArg != "" {
		column, needle, ok := strings.Cut(fuzzyArg, "=")
		if !ok {
			return fmt.Errorf("invalid --fuzzy %q, expected column=needle", fuzzyArg)
		}
		if c, err = c.FuzzySearch(column, needle); err != nil {
			return err
		}
	}

	if combine, _ := cmd.Flags().GetBool("combine"); combine {
		sep, _ := cmd.Flags().GetString("sep")
		combined, err := c.CombineKeys(nil, sep)
		if err != nil {
			return err
		}
		display.WriteCombined(cmd.OutOrStdout(), combined)
		return nil
	}

	display.WriteResults(cmd.OutOrStdout(), c)
	return nil
}

// runSearch is the shared path behind find and export: resolve templates,
// parse field constraints, build the locator and run the scan. The resolved
// preset and query come back with the result so export can record them.
func runSearch(cmd *cobra.Command, args []string) (*table.Container, config.Preset, finder.Query, error) {
	cfg, log, err := setup(cmd)
	if err != nil {
		return nil, config.Preset{}, nil, err
	}

	preset, fieldArgs, err := resolveTemplates(cmd, cfg, args)
	if err != nil {
		return nil, config.Preset{}, nil, err
	}
	query, err := parseFieldArgs(fieldArgs)
	if err != nil {
		return nil, config.Preset{}, nil, err
	}

	ff, err := finder.New(preset.PathPattern, preset.FilePattern, finder.WithLogger(log))
	if err != nil {
		return nil, config.Preset{}, nil, err
	}

	allowEmpty, _ := cmd.Flags().GetBool("allow-empty")
	c, err := ff.FindFiles(query, allowEmpty)
	return c, preset, query, err
}

// resolveTemplates determines the template pair either from --preset or
// from the two leading positional arguments, returning the remaining
// key=value arguments.
func resolveTemplates(cmd *cobra.Command, cfg *config.Config, args []string) (config.Preset, []string, error) {
	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		presets, err := loadPresets(cmd, cfg)
		if err != nil {
			return config.Preset{}, nil, err
		}
		preset, err := resolvePreset(presets, name)
		return preset, args, err
	}

	if len(args) < 2 {
		return config.Preset{}, nil, fmt.Errorf("need a path template and a file template (or --preset)")
	}
	return config.Preset{PathPattern: args[0], FilePattern: args[1]}, args[2:], nil
}
