package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edifix/edifix/schema"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "schema", Short: "Per-PID schema subcommands"}
	cmd.AddCommand(newSchemaDiffCmd())
	return cmd
}

// newSchemaDiffCmd is one of the two subcommands (with migrate paths)
// that run for real in this module: schema.Diff needs nothing the upstream
// generator doesn't already hand us as PIDSchema JSON.
func newSchemaDiffCmd() *cobra.Command {
	var oldPath, newPath string
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Diff two PIDSchema JSON files and report moved/added/removed fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			oldSchema, err := readPIDSchema(oldPath)
			if err != nil {
				return &exitError{code: 2, err: err}
			}
			newSchema, err := readPIDSchema(newPath)
			if err != nil {
				return &exitError{code: 2, err: err}
			}

			diffs := schema.Diff(oldSchema, newSchema)
			if diffs == nil {
				diffs = []schema.FieldDiff{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(diffs); err != nil {
				return &exitError{code: 2, err: err}
			}
			if len(diffs) > 0 {
				return &exitError{code: 1, err: fmt.Errorf("%d field(s) differ between %q and %q", len(diffs), oldPath, newPath)}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&oldPath, "old", "", "path to the older PIDSchema JSON file")
	cmd.Flags().StringVar(&newPath, "new", "", "path to the newer PIDSchema JSON file")
	cmd.MarkFlagRequired("old")
	cmd.MarkFlagRequired("new")
	return cmd
}

func readPIDSchema(path string) (*schema.PIDSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	s, err := schema.DecodePIDSchema(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return s, nil
}
