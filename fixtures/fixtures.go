// Package fixtures provides embedded EDIFACT UTILMD interchanges for
// testing the codec and validator pipeline.
package fixtures

import (
	"embed"
	"fmt"
	"path"
)

//go:embed *.edi malformed/*.edi
var FS embed.FS

// Interchange file names.
const (
	FileMinimalRoundtrip    = "minimal_roundtrip.edi"
	FileTwoTransactions     = "two_transactions.edi"
	FileDiscriminatorSelect = "discriminator_selection.edi"
	FileMissingUNH          = "malformed/missing_unh.edi"
	FileEmpty               = "malformed/empty.edi"
	FileInvalidUNA          = "malformed/invalid_una.edi"
	FileTruncated           = "malformed/truncated.edi"
)

// LoadMinimalRoundtrip loads the single-transaction interchange used by
// the minimal parse/generate roundtrip scenario: one SG4 transaction
// with three LOC segments (Z16/Z17/Z18) and one STS.
func LoadMinimalRoundtrip() ([]byte, error) {
	return FS.ReadFile(FileMinimalRoundtrip)
}

// LoadTwoTransactions loads a two-transaction interchange, used to
// verify UNT/UNZ trailer counts recomputed by the writer.
func LoadTwoTransactions() ([]byte, error) {
	return FS.ReadFile(FileTwoTransactions)
}

// LoadDiscriminatorSelection loads an interchange with four SG8
// repetitions distinguished by LOC qualifier (Z79, ZH0, Z01, Z75), used
// to verify discriminator-based group selection.
func LoadDiscriminatorSelection() ([]byte, error) {
	return FS.ReadFile(FileDiscriminatorSelect)
}

// LoadMissingUNH loads a malformed interchange with no UNH segment.
func LoadMissingUNH() ([]byte, error) {
	return FS.ReadFile(FileMissingUNH)
}

// LoadEmpty loads an empty file for testing empty-input handling.
func LoadEmpty() ([]byte, error) {
	return FS.ReadFile(FileEmpty)
}

// LoadInvalidUNA loads an interchange whose UNA service segment is
// malformed.
func LoadInvalidUNA() ([]byte, error) {
	return FS.ReadFile(FileInvalidUNA)
}

// LoadTruncated loads a truncated, incomplete interchange.
func LoadTruncated() ([]byte, error) {
	return FS.ReadFile(FileTruncated)
}

// LoadFile loads any fixture file by name from the embedded filesystem.
func LoadFile(name string) ([]byte, error) {
	data, err := FS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("loading fixture %s: %w", name, err)
	}
	return data, nil
}

// MustLoad loads a fixture file and panics on error. Useful for test
// setup where failure should halt the test.
func MustLoad(name string) []byte {
	data, err := LoadFile(name)
	if err != nil {
		panic(err)
	}
	return data
}

// ListValidFiles returns the names of every well-formed fixture.
func ListValidFiles() ([]string, error) {
	entries, err := FS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("reading fixtures root: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// ListMalformedFiles returns the names of every malformed fixture.
func ListMalformedFiles() ([]string, error) {
	entries, err := FS.ReadDir("malformed")
	if err != nil {
		return nil, fmt.Errorf("reading malformed fixtures: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, path.Join("malformed", entry.Name()))
		}
	}
	return files, nil
}
