package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
	"github.com/mindsonic-labs/mindsonic/internal/core/services"
	"github.com/mindsonic-labs/mindsonic/internal/loaders"
)

// recordingSink captures the sources handed to Add.
type recordingSink struct {
	mu    sync.Mutex
	added []string
}

var _ driven.IngestionSink = (*recordingSink)(nil)

func newRecordingSink() *recordingSink {
	return &recordingSink{}
}

func (s *recordingSink) Add(_ context.Context, source string, _ domain.FileType, _ driven.Loader, _ driven.Chunker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added = append(s.added, source)
	return nil
}

func (s *recordingSink) Reset(context.Context) error { return nil }
func (s *recordingSink) Close() error                { return nil }

func (s *recordingSink) sources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.added...)
}

func newWatcherUnderTest(t *testing.T, knowledge string, sink *recordingSink) *Watcher {
	t.Helper()

	registry := loaders.NewRegistry()
	loaders.RegisterDefaults(registry)
	processor := services.NewProcessor(registry, nil, sink, services.NewArchiver(t.TempDir()))
	return New(knowledge, processor, 50*time.Millisecond)
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestWatcher_Watch(t *testing.T) {
	t.Run("ingests files created after start", func(t *testing.T) {
		knowledge := t.TempDir()
		sink := newRecordingSink()
		w := newWatcherUnderTest(t, knowledge, sink)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		done := make(chan error, 1)
		go func() { done <- w.Watch(ctx) }()

		// Give the watcher a moment to establish its watches.
		time.Sleep(100 * time.Millisecond)

		path := filepath.Join(knowledge, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("fresh content"), 0o600))

		waitFor(t, func() bool { return len(sink.sources()) == 1 })

		cancel()
		err := <-done
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("ignores unrecognised extensions", func(t *testing.T) {
		knowledge := t.TempDir()
		sink := newRecordingSink()
		w := newWatcherUnderTest(t, knowledge, sink)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = w.Watch(ctx) }()
		time.Sleep(100 * time.Millisecond)

		require.NoError(t, os.WriteFile(filepath.Join(knowledge, "blob.bin"), []byte("x"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(knowledge, "notes.txt"), []byte("y"), 0o600))

		waitFor(t, func() bool { return len(sink.sources()) == 1 })
		assert.Equal(t, "notes.txt", filepath.Base(sink.sources()[0]))
	})

	t.Run("watches directories created after start", func(t *testing.T) {
		knowledge := t.TempDir()
		sink := newRecordingSink()
		w := newWatcherUnderTest(t, knowledge, sink)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = w.Watch(ctx) }()
		time.Sleep(100 * time.Millisecond)

		sub := filepath.Join(knowledge, "incoming")
		require.NoError(t, os.Mkdir(sub, 0o755))
		// Let the new directory watch register before writing into it.
		time.Sleep(200 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(sub, "deep.txt"), []byte("z"), 0o600))

		waitFor(t, func() bool { return len(sink.sources()) == 1 })
		assert.Equal(t, "deep.txt", filepath.Base(sink.sources()[0]))
	})

	t.Run("creates a missing knowledge root", func(t *testing.T) {
		knowledge := filepath.Join(t.TempDir(), "not-yet")
		sink := newRecordingSink()
		w := newWatcherUnderTest(t, knowledge, sink)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = w.Watch(ctx) }()

		waitFor(t, func() bool {
			_, err := os.Stat(knowledge)
			return err == nil
		})
	})
}
