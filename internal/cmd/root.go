// Package cmd implements the filefind command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/filefind/internal/catalog"
	"github.com/harrison/filefind/internal/config"
	"github.com/harrison/filefind/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for filefind
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filefind",
		Short: "Locate files whose names follow parametrized templates",
		Long: `Filefind locates files on a filesystem whose names follow a
parametrized template such as 'data/{year}/{variable}_{year}.nc',
extracts the template's field values from each matched path, and
prints the results as a table.

Templates can be given inline or through named presets from a YAML
config file or a Markdown catalog.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", ".filefind.yaml", "path to the config file")
	cmd.PersistentFlags().String("log-level", "", "log verbosity (trace, debug, info, warn, error)")

	cmd.AddCommand(NewFindCommand())
	cmd.AddCommand(NewPathsCommand())
	cmd.AddCommand(NewNameCommand())
	cmd.AddCommand(NewPresetsCommand())
	cmd.AddCommand(NewExportCommand())

	return cmd
}

// setup loads the config file and builds the logger shared by subcommands.
// A --log-level flag overrides the configured level.
func setup(cmd *cobra.Command) (*config.Config, *logger.ConsoleLogger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	return cfg, logger.NewConsoleLogger(os.Stderr, level), nil
}

// loadPresets merges config presets with the catalog named by the config
// or the --catalog flag. Catalog entries win on name collisions.
func loadPresets(cmd *cobra.Command, cfg *config.Config) (map[string]config.Preset, error) {
	presets := make(map[string]config.Preset, len(cfg.Presets))
	for name, preset := range cfg.Presets {
		presets[name] = preset
	}

	catalogPath := cfg.Catalog
	if flagPath, _ := cmd.Flags().GetString("catalog"); flagPath != "" {
		catalogPath = flagPath
	}
	if catalogPath == "" {
		return presets, nil
	}

	fromCatalog, err := catalog.NewParser().ParseFile(catalogPath)
	if err != nil {
		return nil, err
	}
	for name, preset := range fromCatalog {
		presets[name] = preset
	}
	return presets, nil
}

// resolvePreset looks up a preset by name, with a listing of known names
// in the error to aid typos.
func resolvePreset(presets map[string]config.Preset, name string) (config.Preset, error) {
	preset, ok := presets[name]
	if !ok {
		names := make([]string, 0, len(presets))
		for n := range presets {
			names = append(names, n)
		}
		return config.Preset{}, fmt.Errorf("unknown preset %q (known: %v)", name, names)
	}
	return preset, nil
}
