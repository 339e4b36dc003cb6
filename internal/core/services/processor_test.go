package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
	"github.com/mindsonic-labs/mindsonic/internal/loaders"
)

var errBadFile = errors.New("extraction failed")

// fakeSink records ingested sources and fails for configured paths.
type fakeSink struct {
	mu      sync.Mutex
	added   []string
	failFor map[string]bool
}

var _ driven.IngestionSink = (*fakeSink)(nil)

func newFakeSink(failFor ...string) *fakeSink {
	m := make(map[string]bool, len(failFor))
	for _, p := range failFor {
		m[p] = true
	}
	return &fakeSink{failFor: m}
}

func (s *fakeSink) Add(_ context.Context, source string, _ domain.FileType, _ driven.Loader, _ driven.Chunker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[filepath.Base(source)] {
		return errBadFile
	}
	s.added = append(s.added, source)
	return nil
}

func (s *fakeSink) Reset(context.Context) error { return nil }
func (s *fakeSink) Close() error                { return nil }

func (s *fakeSink) sources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.added...)
}

func newTestProcessor(sink driven.IngestionSink, archiveRoot string) *Processor {
	registry := loaders.NewRegistry()
	loaders.RegisterDefaults(registry)
	return NewProcessor(registry, nil, sink, NewArchiver(archiveRoot))
}

func TestProcessor_ProcessBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("failures are isolated per file", func(t *testing.T) {
		knowledge := t.TempDir()
		archive := t.TempDir()
		for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
			writeFile(t, filepath.Join(knowledge, name))
		}

		sink := newFakeSink("b.txt")
		processor := newTestProcessor(sink, archive)

		records := []domain.FileRecord{
			{Path: filepath.Join(knowledge, "a.txt"), RelPath: "a.txt", Type: domain.FileTypeText},
			{Path: filepath.Join(knowledge, "b.txt"), RelPath: "b.txt", Type: domain.FileTypeText},
			{Path: filepath.Join(knowledge, "c.txt"), RelPath: "c.txt", Type: domain.FileTypeText},
		}

		report := processor.ProcessBucket(ctx, domain.FileTypeText, records)

		require.Len(t, report.Statuses, 3)
		assert.True(t, report.Statuses[0].OK())
		assert.False(t, report.Statuses[1].OK())
		assert.ErrorIs(t, report.Statuses[1].Err, errBadFile)
		assert.True(t, report.Statuses[2].OK())
		assert.Equal(t, 2, report.Processed())
		assert.Equal(t, 1, report.Failed())

		// The failed file stays in the knowledge tree for retry.
		_, err := os.Stat(filepath.Join(knowledge, "b.txt"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(archive, "b.txt"))
		assert.True(t, os.IsNotExist(err))

		// The successful files were archived.
		for _, name := range []string{"a.txt", "c.txt"} {
			_, err = os.Stat(filepath.Join(archive, name))
			assert.NoError(t, err)
			_, err = os.Stat(filepath.Join(knowledge, name))
			assert.True(t, os.IsNotExist(err))
		}
	})

	t.Run("statuses preserve record order", func(t *testing.T) {
		knowledge := t.TempDir()
		names := []string{"one.txt", "two.txt", "three.txt"}
		records := make([]domain.FileRecord, 0, len(names))
		for _, name := range names {
			writeFile(t, filepath.Join(knowledge, name))
			records = append(records, domain.FileRecord{
				Path:    filepath.Join(knowledge, name),
				RelPath: name,
				Type:    domain.FileTypeText,
			})
		}

		processor := newTestProcessor(newFakeSink(), t.TempDir())
		report := processor.ProcessBucket(ctx, domain.FileTypeText, records)

		require.Len(t, report.Statuses, len(names))
		for i, name := range names {
			assert.Equal(t, name, report.Statuses[i].Record.RelPath)
		}
	})

	t.Run("empty bucket", func(t *testing.T) {
		processor := newTestProcessor(newFakeSink(), t.TempDir())
		report := processor.ProcessBucket(ctx, domain.FileTypeText, nil)
		assert.Empty(t, report.Statuses)
		assert.Equal(t, 0, report.Processed())
	})
}
