package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errBuf bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errBuf.String(), err
}

func TestGenerateSubcommand_ExitsTwo(t *testing.T) {
	_, stderr, err := execCmd(t, "generate", "mig-types")
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
	assert.Contains(t, stderr, "MIG XML code generator")
}

func TestFixtureSubcommand_ExitsTwo(t *testing.T) {
	_, _, err := execCmd(t, "fixture", "raw")
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}

func writeSchemaFile(t *testing.T, dir, name, pid string, fields map[string]any) string {
	t.Helper()
	doc := map[string]any{"pid": pid, "fields": fields}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestSchemaDiff_NoDifferencesExitsZero(t *testing.T) {
	dir := t.TempDir()
	fields := map[string]any{"marktlokation": map[string]any{"source_group": "SG4.SG8"}}
	oldPath := writeSchemaFile(t, dir, "old.json", "55001", fields)
	newPath := writeSchemaFile(t, dir, "new.json", "55001", fields)

	stdout, _, err := execCmd(t, "schema", "diff", "--old", oldPath, "--new", newPath)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", stdout)
}

func TestSchemaDiff_DifferencesExitOne(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeSchemaFile(t, dir, "old.json", "55001", map[string]any{
		"marktlokation": map[string]any{"source_group": "SG4.SG8"},
	})
	newPath := writeSchemaFile(t, dir, "new.json", "55001", map[string]any{
		"marktlokation": map[string]any{"source_group": "SG4.SG9"},
	})

	_, _, err := execCmd(t, "schema", "diff", "--old", oldPath, "--new", newPath)
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeFor(err))
}

func TestSchemaDiff_MissingFileExitsTwo(t *testing.T) {
	_, _, err := execCmd(t, "schema", "diff", "--old", "/nonexistent/old.json", "--new", "/nonexistent/new.json")
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}
