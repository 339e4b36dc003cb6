package driven

import (
	"context"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
)

// Chunker produces a sequence of Chunks from an ExtractedDocument.
//
// Implementations must guarantee that no chunk exceeds their configured
// maximum size, that consecutive chunks overlap by exactly the configured
// amount, and that an empty document yields an empty chunk sequence.
type Chunker interface {
	// Name returns the chunker name for logging and configuration.
	Name() string

	// Chunk splits the document content into chunks. Each chunk inherits
	// the document's metadata plus a zero-based chunk_index.
	Chunk(ctx context.Context, doc *domain.ExtractedDocument) ([]domain.Chunk, error)
}
