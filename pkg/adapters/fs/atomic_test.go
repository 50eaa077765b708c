package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		data     string
	}{
		{name: "creates the file", data: `[{"id":"note-1","content":"hello"}]`},
		{name: "replaces a previous snapshot", existing: `[{"id":"note-1","content":"old"}]`, data: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "notes.json")
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0600))
			}

			require.NoError(t, replaceSnapshot(path, []byte(tt.data), 0644))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.data, string(got))

			if runtime.GOOS != "windows" {
				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
			}
		})
	}
}

func TestReplaceSnapshot_NoStagedFilesRemain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")

	for i := 0; i < 3; i++ {
		require.NoError(t, replaceSnapshot(path, []byte("[]"), 0644))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), TempFilePrefix))
}

func TestReplaceSnapshot_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "notes.json")
	// A directory in place of the file makes the final rename fail.
	require.NoError(t, os.Mkdir(target, 0755))

	assert.Error(t, replaceSnapshot(target, []byte("[]"), 0644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
}

func TestReplaceSnapshot_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "notes.json")
	assert.Error(t, replaceSnapshot(path, []byte("[]"), 0644))
}
