// Package html provides a loader for HTML files.
package html

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles HTML files.
type Loader struct{}

// New creates a new HTML loader.
func New() *Loader {
	return &Loader{}
}

// FileTypes returns the file types this loader handles.
func (l *Loader) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeHTML}
}

// Priority returns the selection priority.
func (l *Loader) Priority() int {
	return 50 // Format-specific loader
}

var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// Load extracts the visible text of the page.
// Script, style and head content are dropped.
func (l *Loader) Load(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	doc.Find("script, style, noscript").Remove()

	var title string
	if t := doc.Find("title").First(); t.Length() > 0 {
		title = strings.TrimSpace(t.Text())
	}

	body := doc.Find("body")
	text := body.Text()
	if body.Length() == 0 {
		text = doc.Text()
	}
	content := cleanText(text)

	meta := map[string]any{
		"source":    path,
		"file_type": domain.FileTypeHTML.String(),
		"url":       path,
	}
	if title != "" {
		meta["title"] = title
	}

	return &domain.ExtractedDocument{
		DocID:    documentID(path),
		Content:  content,
		Metadata: meta,
	}, nil
}

// cleanText trims each line and collapses runs of blank lines.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	out := strings.Join(lines, "\n")
	out = blankLinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// documentID derives a stable document id from the source path.
func documentID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}
