// Package recursive provides a text chunker that prefers natural breaks.
//
// Cut points are chosen at the latest paragraph break inside the window,
// falling back to sentence breaks and finally to a hard cut. The next
// chunk always starts exactly the configured overlap before the previous
// cut, so consecutive chunks share a fixed-size overlap region and
// stripping that region from every chunk but the first reconstructs the
// original content byte-for-byte.
package recursive

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultChunkSize is the default maximum chunk length in bytes.
const DefaultChunkSize = 400

// DefaultChunkOverlap is the default overlap between chunks in bytes.
const DefaultChunkOverlap = 100

// paragraphBreak is the preferred cut separator.
const paragraphBreak = "\n\n"

// sentenceBreaks are the fallback cut separators, tried in order.
var sentenceBreaks = []string{". ", "! ", "? ", "\n"}

// Chunker splits document content into bounded, overlapping chunks.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the maximum chunk size in bytes.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		c.chunkSize = size
	}
}

// WithOverlap sets the overlap between consecutive chunks in bytes.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker with the given options.
// A non-positive chunk size, a negative overlap, or an overlap that is
// not strictly smaller than the chunk size is a configuration error:
// such parameters cannot produce a terminating chunk sequence, so they
// are rejected here, before any file is touched.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidChunkConfig, c.chunkSize)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d must not be negative", domain.ErrInvalidChunkConfig, c.overlap)
	}
	if c.overlap >= c.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidChunkConfig, c.overlap, c.chunkSize)
	}

	return c, nil
}

// Name returns the chunker name.
func (c *Chunker) Name() string {
	return "recursive"
}

// ChunkSize returns the configured maximum chunk size.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Chunk splits the document content into chunks.
// An empty document yields an empty sequence, not a single empty chunk.
func (c *Chunker) Chunk(_ context.Context, doc *domain.ExtractedDocument) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if doc.Content == "" {
		return nil, nil
	}

	content := doc.Content
	contentLen := len(content)

	estimated := contentLen/(c.chunkSize-c.overlap) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	start := 0
	for start < contentLen {
		end := start + c.chunkSize
		if end >= contentLen {
			chunks = append(chunks, c.newChunk(doc, content[start:], len(chunks)))
			break
		}

		cut := c.findCut(content, start, end)
		chunks = append(chunks, c.newChunk(doc, content[start:cut], len(chunks)))

		// The next chunk repeats exactly overlap bytes of this one.
		start = cut - c.overlap
	}

	return chunks, nil
}

// findCut picks the cut position in (start+overlap, end]. Paragraph
// breaks win over sentence breaks; a full window with no usable break is
// cut hard at end. The lower bound keeps the next chunk's start strictly
// after the current one, which guarantees termination.
func (c *Chunker) findCut(content string, start, end int) int {
	window := content[start:end]
	minCut := c.overlap + 1 // relative to start

	if idx := strings.LastIndex(window, paragraphBreak); idx >= 0 {
		if cut := idx + len(paragraphBreak); cut >= minCut {
			return start + cut
		}
	}

	for _, sep := range sentenceBreaks {
		if idx := strings.LastIndex(window, sep); idx >= 0 {
			if cut := idx + len(sep); cut >= minCut {
				return start + cut
			}
		}
	}

	return end
}

// newChunk builds a chunk inheriting the document metadata.
func (c *Chunker) newChunk(doc *domain.ExtractedDocument, content string, index int) domain.Chunk {
	meta := domain.CopyMetadata(doc.Metadata)
	if meta == nil {
		meta = make(map[string]any)
	}
	meta["chunk_index"] = index

	return domain.Chunk{
		ID:       uuid.New().String(),
		DocID:    doc.DocID,
		Content:  content,
		Index:    index,
		Metadata: meta,
	}
}
