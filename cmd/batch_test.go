package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func TestListExtracts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"ES_2012.csv", "FR_2012.CSV", "PT_2012.xlsx", "IT_2012.shp",
		"notes.txt", "lucas.db",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	files, err := listExtracts(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "ES_2012.csv"),
		filepath.Join(dir, "FR_2012.CSV"),
		filepath.Join(dir, "IT_2012.shp"),
		filepath.Join(dir, "PT_2012.xlsx"),
	}, files)
}

func TestListExtracts_MissingDir(t *testing.T) {
	_, err := listExtracts(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read extract dir")
}
