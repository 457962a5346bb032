package edilog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_StderrMode(t *testing.T) {
	err := Init(true, "")
	require.NoError(t, err)
	assert.NotNil(t, L())
	Warn("test warning")
	Sync()
}

func TestInit_FileMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edifix.log")
	err := Init(false, path)
	require.NoError(t, err)
	Info("test info")
	Sync()
}

func TestDefaultLoggerIsNoop(t *testing.T) {
	assert.NotNil(t, L())
}
