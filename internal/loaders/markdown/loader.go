// Package markdown provides a loader for Markdown files.
package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles Markdown files.
type Loader struct{}

// New creates a new Markdown loader.
func New() *Loader {
	return &Loader{}
}

// FileTypes returns the file types this loader handles.
func (l *Loader) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeMarkdown}
}

// Priority returns the selection priority.
func (l *Loader) Priority() int {
	return 50 // Format-specific loader
}

// Load reads the file and simplifies Markdown syntax to plain text.
func (l *Loader) Load(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &domain.ExtractedDocument{
		DocID:   documentID(path),
		Content: stripMarkdown(string(data)),
		Metadata: map[string]any{
			"source":    path,
			"file_type": domain.FileTypeMarkdown.String(),
			"url":       path,
		},
	}, nil
}

var (
	codeFenceRe = regexp.MustCompile("(?s)```.*?```")
	inlineCode  = regexp.MustCompile("`([^`]*)`")
	linkRe      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	imageRe     = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	headingRe   = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	emphasisRe  = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
)

// stripMarkdown converts Markdown to approximate plain text.
// Code fences are dropped entirely; links and images keep their text.
func stripMarkdown(content string) string {
	content = codeFenceRe.ReplaceAllString(content, "")
	content = imageRe.ReplaceAllString(content, "$1")
	content = linkRe.ReplaceAllString(content, "$1")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = headingRe.ReplaceAllString(content, "")
	content = emphasisRe.ReplaceAllString(content, "$2")
	return strings.TrimSpace(content)
}

// documentID derives a stable document id from the source path.
func documentID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}
