package recursive

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
)

func testDoc(content string) *domain.ExtractedDocument {
	return &domain.ExtractedDocument{
		DocID:   "doc-1",
		Content: content,
		Metadata: map[string]any{
			"source":    "knowledge/txt/notes.txt",
			"file_type": "text",
		},
	}
}

// rejoin reconstructs the original content by stripping the leading
// overlap from every chunk but the first.
func rejoin(chunks []domain.Chunk, overlap int) string {
	var sb strings.Builder
	for i, ch := range chunks {
		if i == 0 {
			sb.WriteString(ch.Content)
			continue
		}
		sb.WriteString(ch.Content[overlap:])
	}
	return sb.String()
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c, err := New()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, c.overlap)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		c, err := New(WithChunkSize(500), WithOverlap(50))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.chunkSize != 500 || c.overlap != 50 {
			t.Errorf("options not applied: size %d overlap %d", c.chunkSize, c.overlap)
		}
	})

	t.Run("overlap equal to chunk size is rejected", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(100))
		if !errors.Is(err, domain.ErrInvalidChunkConfig) {
			t.Errorf("expected ErrInvalidChunkConfig, got %v", err)
		}
	})

	t.Run("overlap larger than chunk size is rejected", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(150))
		if !errors.Is(err, domain.ErrInvalidChunkConfig) {
			t.Errorf("expected ErrInvalidChunkConfig, got %v", err)
		}
	})

	t.Run("negative overlap is rejected", func(t *testing.T) {
		_, err := New(WithOverlap(-1))
		if !errors.Is(err, domain.ErrInvalidChunkConfig) {
			t.Errorf("expected ErrInvalidChunkConfig, got %v", err)
		}
	})

	t.Run("zero chunk size is rejected", func(t *testing.T) {
		_, err := New(WithChunkSize(0), WithOverlap(0))
		if !errors.Is(err, domain.ErrInvalidChunkConfig) {
			t.Errorf("expected ErrInvalidChunkConfig, got %v", err)
		}
	})
}

func TestChunker_Chunk(t *testing.T) {
	ctx := context.Background()

	t.Run("empty content yields no chunks", func(t *testing.T) {
		c, _ := New()
		chunks, err := c.Chunk(ctx, testDoc(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 0 {
			t.Errorf("expected empty sequence, got %d chunks", len(chunks))
		}
	})

	t.Run("nil document is invalid", func(t *testing.T) {
		c, _ := New()
		_, err := c.Chunk(ctx, nil)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("short content is a single chunk", func(t *testing.T) {
		c, _ := New(WithChunkSize(50), WithOverlap(10))
		content := "Slide 1:\nIntro\n\nSlide 2:\nConclusion"
		chunks, err := c.Chunk(ctx, testDoc(content))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0].Content != content {
			t.Errorf("chunk content mismatch: %q", chunks[0].Content)
		}
	})

	t.Run("chunks never exceed max size", func(t *testing.T) {
		c, _ := New(WithChunkSize(80), WithOverlap(20))
		content := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)
		chunks, err := c.Chunk(ctx, testDoc(content))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, ch := range chunks {
			if len(ch.Content) > 80 {
				t.Errorf("chunk %d has %d bytes, exceeds max 80", ch.Index, len(ch.Content))
			}
		}
	})

	t.Run("consecutive chunks share exactly the overlap", func(t *testing.T) {
		c, _ := New(WithChunkSize(60), WithOverlap(15))
		content := strings.Repeat("Paragraphs here.\n\nMore text follows in sequence. ", 20)
		chunks, err := c.Chunk(ctx, testDoc(content))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		for i := 1; i < len(chunks); i++ {
			tail := chunks[i-1].Content[len(chunks[i-1].Content)-15:]
			head := chunks[i].Content[:15]
			if tail != head {
				t.Errorf("chunks %d/%d overlap mismatch: %q vs %q", i-1, i, tail, head)
			}
		}
	})

	t.Run("round trip reconstructs the content", func(t *testing.T) {
		configs := []struct{ size, overlap int }{
			{50, 10},
			{400, 100},
			{33, 0},
			{10, 3},
		}
		docs := []string{
			"Slide 1:\nIntro\n\nSlide 2:\nConclusion",
			strings.Repeat("First paragraph with some body.\n\nSecond paragraph follows. ", 30),
			strings.Repeat("x", 999),
			"One sentence. Two sentences! Three sentences? Four.\nA line.\n\nA paragraph.",
		}
		for _, cfg := range configs {
			c, err := New(WithChunkSize(cfg.size), WithOverlap(cfg.overlap))
			if err != nil {
				t.Fatalf("config %+v: %v", cfg, err)
			}
			for _, content := range docs {
				chunks, err := c.Chunk(ctx, testDoc(content))
				if err != nil {
					t.Fatalf("config %+v: %v", cfg, err)
				}
				if got := rejoin(chunks, cfg.overlap); got != content {
					t.Errorf("config %+v: round trip mismatch (%d chunks, got %d bytes want %d)",
						cfg, len(chunks), len(got), len(content))
				}
			}
		}
	})

	t.Run("cut prefers paragraph break over mid-sentence", func(t *testing.T) {
		c, _ := New(WithChunkSize(40), WithOverlap(5))
		content := "Alpha beta gamma delta.\n\nEpsilon zeta eta theta iota kappa lambda."
		chunks, err := c.Chunk(ctx, testDoc(content))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		if !strings.HasSuffix(chunks[0].Content, "\n\n") {
			t.Errorf("first cut should land on the paragraph break, got %q", chunks[0].Content)
		}
	})

	t.Run("metadata is inherited with chunk_index added", func(t *testing.T) {
		c, _ := New(WithChunkSize(20), WithOverlap(4))
		doc := testDoc(strings.Repeat("words and more words. ", 10))
		chunks, err := c.Chunk(ctx, doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, ch := range chunks {
			if ch.Metadata["source"] != "knowledge/txt/notes.txt" {
				t.Errorf("chunk %d lost source metadata", i)
			}
			if ch.Metadata["chunk_index"] != i {
				t.Errorf("chunk %d has chunk_index %v", i, ch.Metadata["chunk_index"])
			}
			if ch.Index != i {
				t.Errorf("chunk %d has Index %d", i, ch.Index)
			}
			if ch.DocID != "doc-1" {
				t.Errorf("chunk %d lost document id", i)
			}
		}
		// Chunk metadata must not alias the document's map.
		chunks[0].Metadata["source"] = "changed"
		if doc.Metadata["source"] != "knowledge/txt/notes.txt" {
			t.Error("chunk metadata aliases the document metadata")
		}
	})
}

func TestChunker_Name(t *testing.T) {
	c, _ := New()
	if c.Name() != "recursive" {
		t.Errorf("expected name 'recursive', got %q", c.Name())
	}
}
