package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks snapshot files that are still being written.
// resolveKey never maps them to a key.
const TempFilePrefix = "notepad-tmp-"

// replaceSnapshot swaps the file at path for data with a single rename.
// A concurrent Get or watcher read sees the previous snapshot or the new one.
// On any failure the staged file is removed and path is left as it was.
func replaceSnapshot(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	staged, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", filepath.Base(path), err)
	}
	committed := false
	defer func() {
		if !committed {
			staged.Close()
			os.Remove(staged.Name())
		}
	}()

	if err := staged.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set mode on staged snapshot: %w", err)
	}
	if _, err := staged.Write(data); err != nil {
		return fmt.Errorf("failed to write staged snapshot: %w", err)
	}
	if err := staged.Sync(); err != nil {
		return fmt.Errorf("failed to flush staged snapshot: %w", err)
	}
	if err := staged.Close(); err != nil {
		return fmt.Errorf("failed to close staged snapshot: %w", err)
	}
	if err := os.Rename(staged.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	committed = true

	syncDir(dir)
	return nil
}

// syncDir persists the rename itself. Some platforms cannot fsync a directory; that is ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
