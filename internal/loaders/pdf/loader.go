// Package pdf provides a loader for PDF files.
package pdf

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles PDF files.
type Loader struct{}

// New creates a new PDF loader.
func New() *Loader {
	return &Loader{}
}

// FileTypes returns the file types this loader handles.
func (l *Loader) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypePDF}
}

// Priority returns the selection priority.
func (l *Loader) Priority() int {
	return 50 // Format-specific loader
}

// Load extracts the plain text of the PDF.
// Scanned PDFs without a text layer yield empty content; the chunker
// then produces no chunks for them.
func (l *Loader) Load(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return nil, fmt.Errorf("read text %s: %w", path, err)
	}

	return &domain.ExtractedDocument{
		DocID:   documentID(path),
		Content: buf.String(),
		Metadata: map[string]any{
			"source":     path,
			"file_type":  domain.FileTypePDF.String(),
			"url":        path,
			"page_count": reader.NumPage(),
		},
	}, nil
}

// documentID derives a stable document id from the source path.
func documentID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}
