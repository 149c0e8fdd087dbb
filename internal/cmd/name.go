package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/filefind/internal/template"
)

// NewNameCommand creates the name command, pure name construction with no
// filesystem access.
func NewNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "name <template> [key=value ...]",
		Short: "Build a concrete name from a template and field values",
		Long: `Name substitutes field values into a template and prints the result.
Every placeholder must be given a value:

  filefind name '{var}_{year}.nc' var=tas year=2000`,
		Args: cobra.MinimumNArgs(1),
		RunE: runName,
	}
}

func runName(cmd *cobra.Command, args []string) error {
	tmpl, err := template.Compile(args[0])
	if err != nil {
		return err
	}

	query, err := parseFieldArgs(args[1:])
	if err != nil {
		return err
	}
	fields, err := fieldMap(query)
	if err != nil {
		return err
	}

	name, err := tmpl.Format(fields)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
