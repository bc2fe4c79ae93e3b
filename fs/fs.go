// Package fs stores scrape results and downloaded archives on the local
// filesystem.
package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/pyscrape"
)

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pyscrape.Errorf(pyscrape.EINTERNAL, "create directory %s: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return pyscrape.Errorf(pyscrape.EINTERNAL, "create temp file: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return pyscrape.Errorf(pyscrape.EINTERNAL, "write %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return pyscrape.Errorf(pyscrape.EINTERNAL, "close %s: %v", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return pyscrape.Errorf(pyscrape.EINTERNAL, "chmod %s: %v", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return pyscrape.Errorf(pyscrape.EINTERNAL, "rename %s: %v", tmpName, err)
	}
	return nil
}
