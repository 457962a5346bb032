// Package migrate diffs per-PID schemas across MIG format versions and
// rewrites mapping definition paths that moved, recovered from
// original_source's fixture-renderer/pid_mapping_gen/enhancer crates
// (spec §1 "migrates fixtures and mapping files between MIG versions").
// This package owns only the read-only analysis and path rewriting the
// core pipeline can do without the external code generator; it does not
// regenerate schemas or TOML scaffolds itself.
package migrate
