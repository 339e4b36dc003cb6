// Package csv provides a loader for comma-separated value files.
package csv

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles CSV files.
type Loader struct{}

// New creates a new CSV loader.
func New() *Loader {
	return &Loader{}
}

// FileTypes returns the file types this loader handles.
func (l *Loader) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeCSV}
}

// Priority returns the selection priority.
func (l *Loader) Priority() int {
	return 50 // Format-specific loader
}

// Load parses the CSV and renders each record as one comma-joined line.
// Ragged records are tolerated; a parse error mid-file fails the load so
// the file is reported and left in place.
func (l *Loader) Load(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, strings.Join(record, ", "))
	}

	return &domain.ExtractedDocument{
		DocID:   documentID(path),
		Content: strings.TrimSpace(strings.Join(lines, "\n")),
		Metadata: map[string]any{
			"source":    path,
			"file_type": domain.FileTypeCSV.String(),
			"url":       path,
			"row_count": len(records),
		},
	}, nil
}

// documentID derives a stable document id from the source path.
func documentID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}
