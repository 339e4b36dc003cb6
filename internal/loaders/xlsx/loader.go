// Package xlsx provides a loader for Excel (OOXML) workbooks.
package xlsx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles XLSX workbooks.
type Loader struct{}

// New creates a new XLSX loader.
func New() *Loader {
	return &Loader{}
}

// FileTypes returns the file types this loader handles.
func (l *Loader) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeXlsx}
}

// Priority returns the selection priority.
func (l *Loader) Priority() int {
	return 50 // Format-specific loader
}

// Load renders each sheet as a "Sheet <name>:" block of tab-joined rows,
// with sheets separated by blank lines. Sheets are read in workbook order.
func (l *Loader) Load(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	blocks := make([]string, 0, len(sheets))

	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s of %s: %w", name, path, err)
		}

		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, "\t"))
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("Sheet %s:\n%s", name, strings.Join(lines, "\n")))
	}

	return &domain.ExtractedDocument{
		DocID:   documentID(path),
		Content: strings.Join(blocks, "\n\n"),
		Metadata: map[string]any{
			"source":      path,
			"file_type":   domain.FileTypeXlsx.String(),
			"url":         path,
			"sheet_count": len(sheets),
		},
	}, nil
}

// documentID derives a stable document id from the source path.
func documentID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}
