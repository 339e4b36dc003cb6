package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/logger"
)

// Finder discovers files under the knowledge root and buckets them by
// detected file type. A missing root is not an error: the pipeline runs
// against an empty tree and reports nothing to do.
type Finder struct {
	root string
}

// NewFinder creates a finder rooted at the knowledge directory.
func NewFinder(root string) *Finder {
	return &Finder{root: root}
}

// Scan walks the knowledge tree and returns one bucket per detected
// file type. The walk is lexically ordered, so bucket contents are
// deterministic across runs. Files with unrecognised extensions are
// skipped and never appear in any bucket.
func (f *Finder) Scan(ctx context.Context) (map[domain.FileType][]domain.FileRecord, error) {
	buckets := make(map[domain.FileType][]domain.FileRecord)

	if _, err := os.Stat(f.root); os.IsNotExist(err) {
		logger.Debug("finder: knowledge root %s does not exist, nothing to scan", f.root)
		return buckets, nil
	}

	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ft := domain.DetectFileType(path)
		if ft == domain.FileTypeUnknown {
			logger.Debug("finder: skipping %s (unrecognised extension)", path)
			return nil
		}

		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return fmt.Errorf("relativise %s: %w", path, err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("absolutise %s: %w", path, err)
		}

		buckets[ft] = append(buckets[ft], domain.FileRecord{
			Path:    abs,
			RelPath: rel,
			Type:    ft,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", f.root, err)
	}

	return buckets, nil
}
