package main

import "github.com/spf13/cobra"

// newFixtureCmd groups the test-fixture rendering subcommands. Both
// stay external collaborators: raw fixture capture and AHB-aware
// enhancement are fixture-renderer/enhancer concerns, not pipeline ones.
func newFixtureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Fixture rendering subcommands (handled by the upstream fixture tools)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "raw",
		Short: "Capture a raw EDIFACT interchange as a test fixture",
		RunE:  notImplemented("the fixture-renderer collaborator"),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "enhance",
		Short: "Annotate a fixture with AHB condition coverage",
		RunE:  notImplemented("the fixture enhancer collaborator"),
	})
	return cmd
}
