package mapping

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/edifix/edifix/edilog"
)

// Loader discovers and decodes mapping definition files from one or more
// directories.
type Loader struct {
	fsys fs.FS
}

// NewLoader builds a Loader rooted at the operating system filesystem.
func NewLoader() *Loader {
	return &Loader{fsys: os.DirFS("/")}
}

// Load scans each directory for "*.toml" files and decodes them. A file
// that fails to decode is skipped with a warning, per the mapping file
// contract's "malformed files are skipped with a warning" rule; its
// error is also returned alongside the successfully loaded definitions
// so callers doing strict validation can inspect it.
func (l *Loader) Load(dirs ...string) ([]*Definition, []error) {
	var defs []*Definition
	var errs []error

	for _, dir := range dirs {
		matches, err := doublestar.Glob(os.DirFS(dir), "**/*.toml")
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, rel := range matches {
			full := filepath.Join(dir, rel)
			data, err := os.ReadFile(full)
			if err != nil {
				edilog.Warn("mapping: reading definition file", zap.String("path", full), zap.Error(err))
				errs = append(errs, err)
				continue
			}
			def, err := DecodeDefinition(data)
			if err != nil {
				edilog.Warn("mapping: skipping malformed definition", zap.String("path", full), zap.Error(err))
				errs = append(errs, err)
				continue
			}
			def.Path = full
			defs = append(defs, def)
		}
	}

	return defs, errs
}
