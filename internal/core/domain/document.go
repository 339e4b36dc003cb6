package domain

// FileRecord identifies one file discovered under the knowledge root.
// Records are created by the Finder during a scan and discarded once
// processing completes; they are never persisted.
type FileRecord struct {
	// Path is the absolute path to the file.
	Path string

	// RelPath is the path relative to the knowledge root.
	// The Archiver mirrors this path under the archive root.
	RelPath string

	// Type is the logical data type detected from the extension.
	Type FileType
}

// ExtractedDocument is the output of a Loader: the full text content of
// one source file plus its metadata. It is consumed once by a Chunker
// and not persisted by this layer.
type ExtractedDocument struct {
	// DocID uniquely identifies the document within the store.
	// Loaders derive it from the source path, so it is stable across runs.
	DocID string

	// Content is the full extracted text.
	Content string

	// Metadata carries at least source, file_type and url. Loaders add
	// format-specific keys such as slide_count or sheet_count.
	Metadata map[string]any
}

// Chunk is a bounded-length slice of an ExtractedDocument, produced for
// embedding. Consecutive chunks overlap by a fixed number of bytes.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocID links to the source ExtractedDocument.
	DocID string

	// Content is the text content of this chunk.
	Content string

	// Index is the zero-based position within the document.
	Index int

	// Embedding is the vector representation, if one was generated.
	Embedding []float32

	// Metadata is inherited from the source document plus chunk_index.
	Metadata map[string]any
}

// CopyMetadata creates a shallow copy of a metadata map.
// Chunks must not alias the document's map: the sink serialises each
// chunk's metadata independently.
func CopyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
