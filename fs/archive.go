package fs

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pyscrape"
)

// Ensure ArchiveStore implements pyscrape.ArchiveStore at compile time.
var _ pyscrape.ArchiveStore = (*ArchiveStore)(nil)

// ArchiveStore saves downloaded archives into a directory, creating it on
// first use. An existing file with the same name is replaced.
type ArchiveStore struct {
	dir string
}

// NewArchiveStore creates an ArchiveStore writing into dir.
func NewArchiveStore(dir string) *ArchiveStore {
	return &ArchiveStore{dir: dir}
}

// Save writes data to dir/name and returns the path written.
func (s *ArchiveStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", pyscrape.Errorf(pyscrape.EINVALID, "invalid archive name %q", name)
	}

	path := filepath.Join(s.dir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}
