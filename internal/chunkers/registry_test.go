package chunkers

import (
	"errors"
	"testing"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
)

func TestRegistry(t *testing.T) {
	t.Run("defaults provide the recursive chunker", func(t *testing.T) {
		r := NewRegistry()
		if err := RegisterDefaults(r, 400, 100); err != nil {
			t.Fatal(err)
		}

		c, err := r.Default()
		if err != nil {
			t.Fatal(err)
		}
		if c.Name() != "recursive" {
			t.Errorf("expected recursive default, got %s", c.Name())
		}

		if _, err := r.Get("recursive"); err != nil {
			t.Errorf("lookup by name failed: %v", err)
		}
	})

	t.Run("invalid chunk config rejected", func(t *testing.T) {
		r := NewRegistry()
		err := RegisterDefaults(r, 100, 100)
		if !errors.Is(err, domain.ErrInvalidChunkConfig) {
			t.Errorf("expected ErrInvalidChunkConfig, got %v", err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		r := NewRegistry()
		if _, err := r.Get("nope"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("no default configured", func(t *testing.T) {
		r := NewRegistry()
		if _, err := r.Default(); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
