package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatFileCountsRecordsAndFieldRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n3,4,5\n6\n"), 0o644))

	count, minFields, maxFields, err := statFile(path, ',')

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, minFields)
	assert.Equal(t, 3, maxFields)
}

func TestStatFileMissingFileIsError(t *testing.T) {
	_, _, _, err := statFile(filepath.Join(t.TempDir(), "missing.csv"), ',')
	assert.Error(t, err)
}
