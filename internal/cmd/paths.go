package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/filefind/internal/config"
	"github.com/harrison/filefind/internal/display"
	"github.com/harrison/filefind/internal/finder"
)

// NewPathsCommand creates the paths command, searching directories only.
func NewPathsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths [path-template] [key=value ...]",
		Short: "Search for directories matching a templated naming convention",
		Long: `Paths searches for directories matching the path template and prints
one row per matched directory. Matched paths carry a trailing "*" so
they remain usable as search prefixes:

  filefind paths 'data/{year}' year=2000,2001`,
		RunE: runPaths,
	}

	cmd.Flags().Bool("allow-empty", false, "return an empty table instead of failing when nothing matches")
	cmd.Flags().String("preset", "", "use a named preset instead of an inline template")
	cmd.Flags().String("catalog", "", "path to a Markdown preset catalog")

	return cmd
}

func runPaths(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	var preset config.Preset
	var fieldArgs []string
	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		presets, err := loadPresets(cmd, cfg)
		if err != nil {
			return err
		}
		if preset, err = resolvePreset(presets, name); err != nil {
			return err
		}
		fieldArgs = args
	} else {
		if len(args) < 1 {
			return fmt.Errorf("need a path template (or --preset)")
		}
		preset = config.Preset{PathPattern: args[0]}
		fieldArgs = args[1:]
	}

	query, err := parseFieldArgs(fieldArgs)
	if err != nil {
		return err
	}

	ff, err := finder.New(preset.PathPattern, preset.FilePattern, finder.WithLogger(log))
	if err != nil {
		return err
	}

	allowEmpty, _ := cmd.Flags().GetBool("allow-empty")
	c, err := ff.FindPaths(query, allowEmpty)
	if err != nil {
		return err
	}

	display.WriteResults(cmd.OutOrStdout(), c)
	return nil
}
