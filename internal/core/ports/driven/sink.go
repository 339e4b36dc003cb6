package driven

import (
	"context"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
)

// IngestionSink is the write path into the RAG store.
//
// Add runs the full ingestion of one source file: load, chunk, embed and
// persist. The loader and chunker arguments override the sink's defaults
// for this call; either may be nil to use the default for the data type.
// Failures surface as errors and are isolated per file by the caller.
type IngestionSink interface {
	// Add ingests the file at source as the given data type.
	Add(ctx context.Context, source string, dataType domain.FileType, loader Loader, chunker Chunker) error

	// Reset drops all stored documents and chunks for the collection.
	// Only permitted when the store is configured to allow it.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}
