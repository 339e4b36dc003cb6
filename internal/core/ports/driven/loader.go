package driven

import (
	"context"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
)

// Loader produces an ExtractedDocument from a file path.
// Each loader handles specific file types (e.g., PPTX, PDF).
type Loader interface {
	// FileTypes returns the file types this loader handles.
	FileTypes() []domain.FileType

	// Priority returns the selection priority (higher = preferred).
	// Format-specific loaders should return 50-89.
	// Fallback loaders should return 1-9.
	Priority() int

	// Load extracts the text content and metadata of the file at path.
	Load(ctx context.Context, path string) (*domain.ExtractedDocument, error)
}

// LoaderRegistry selects a loader for a file type.
type LoaderRegistry interface {
	// LoaderFor returns the highest-priority loader registered for the
	// given file type, or the fallback loader if none matches.
	LoaderFor(t domain.FileType) (Loader, error)
}
