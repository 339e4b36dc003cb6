package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/logger"
)

// Archiver moves processed files out of the knowledge tree into the
// archive tree, preserving their relative paths. A processed file that
// cannot be archived stays in place and is retried on the next run.
type Archiver struct {
	archiveRoot string
}

// NewArchiver creates an archiver rooted at the archive directory.
func NewArchiver(archiveRoot string) *Archiver {
	return &Archiver{archiveRoot: archiveRoot}
}

// Archive moves the record's file to the mirror path under the archive
// root, creating parent directories as needed. If the source no longer
// exists the call is a no-op.
func (a *Archiver) Archive(record domain.FileRecord) error {
	if _, err := os.Stat(record.Path); os.IsNotExist(err) {
		logger.Debug("archiver: %s already gone, nothing to move", record.Path)
		return nil
	}

	dest := filepath.Join(a.archiveRoot, record.RelPath)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create archive dir for %s: %w", record.RelPath, err)
	}

	if err := os.Rename(record.Path, dest); err != nil {
		// Rename fails across filesystems; fall back to copy and remove.
		if err := copyFile(record.Path, dest); err != nil {
			return fmt.Errorf("archive %s: %w", record.RelPath, err)
		}
		if err := os.Remove(record.Path); err != nil {
			return fmt.Errorf("remove %s after archiving: %w", record.Path, err)
		}
	}

	logger.Debug("archiver: moved %s to %s", record.RelPath, dest)
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
