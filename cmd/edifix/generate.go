package main

import "github.com/spf13/cobra"

// newGenerateCmd groups the MIG/AHB code-generator subcommands. None of
// them run in this module: the generator that reads MIG/AHB XML and
// emits Go types, TOML scaffolds, and condition evaluators lives
// upstream of the pipeline this repository implements.
func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Code generation subcommands (handled by the upstream MIG/AHB generator)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "mig-types",
		Short: "Generate Go types for one MIG format version",
		RunE:  notImplemented("the MIG XML code generator"),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pid-types",
		Short: "Generate BO4E entity types for one PID schema",
		RunE:  notImplemented("the PID schema code generator"),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "mapper",
		Short: "Generate a mapping.Definition TOML scaffold from a PID schema",
		RunE:  notImplemented("the TOML-scaffold generator"),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "evaluator",
		Short: "Generate condition-evaluator primitive stubs for an AHB",
		RunE:  notImplemented("the LLM-assisted condition synthesizer"),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toml-scaffold",
		Short: "Generate a blank mapping definition for one entity",
		RunE:  notImplemented("the TOML-scaffold generator"),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pid-mapping",
		Short: "Generate the PID-to-mapping-definition index file",
		RunE:  notImplemented("the pid_mapping_gen collaborator"),
	})
	return cmd
}
