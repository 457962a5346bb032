package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edifix/edifix/mapping"
	"github.com/edifix/edifix/migrate"
)

// newMigrateCmd runs migrate.Migrate against schemas and mapping
// definitions already on disk, reporting which loaded definitions had
// their source group rewritten and which schema changes have no
// definition to rewrite and need manual attention. The TOML files on disk
// are read, not modified.
func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "migrate", Short: "Cross-version schema/mapping migration"}
	cmd.AddCommand(newMigratePathsCmd())
	return cmd
}

func newMigratePathsCmd() *cobra.Command {
	var oldPath, newPath string
	var mappingDirs []string
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Rewrite mapping definition source groups that moved between two PIDSchema versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			oldSchema, err := readPIDSchema(oldPath)
			if err != nil {
				return &exitError{code: 2, err: err}
			}
			newSchema, err := readPIDSchema(newPath)
			if err != nil {
				return &exitError{code: 2, err: err}
			}

			loader := mapping.NewLoader()
			defs, loadErrs := loader.Load(mappingDirs...)
			if len(loadErrs) > 0 {
				return &exitError{code: 2, err: fmt.Errorf("loading mapping definitions: %d file(s) failed, first: %w", len(loadErrs), loadErrs[0])}
			}

			report := migrate.Migrate(oldSchema, newSchema, defs)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return &exitError{code: 2, err: err}
			}
			if len(report.Removed) > 0 {
				return &exitError{code: 1, err: fmt.Errorf("%d removed/unmatched field(s) need manual review", len(report.Removed))}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&oldPath, "old", "", "path to the older PIDSchema JSON file")
	cmd.Flags().StringVar(&newPath, "new", "", "path to the newer PIDSchema JSON file")
	cmd.Flags().StringSliceVar(&mappingDirs, "mapping-dir", nil, "directory of *.toml mapping definitions to check; files are not modified (repeatable)")
	cmd.MarkFlagRequired("old")
	cmd.MarkFlagRequired("new")
	cmd.MarkFlagRequired("mapping-dir")
	return cmd
}
