package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// NewPresetsCommand creates the presets command, listing the naming
// conventions known from the config file and the catalog.
func NewPresetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List configured locator presets",
		RunE:  runPresets,
	}

	cmd.Flags().String("catalog", "", "path to a Markdown preset catalog")

	return cmd
}

func runPresets(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	presets, err := loadPresets(cmd, cfg)
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no presets configured")
		return nil
	}

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		preset := presets[name]
		fmt.Fprintf(out, "%s\n  path_pattern: %q\n  file_pattern: %q\n", name, preset.PathPattern, preset.FilePattern)
	}
	return nil
}
