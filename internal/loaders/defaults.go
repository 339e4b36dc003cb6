package loaders

import (
	"github.com/mindsonic-labs/mindsonic/internal/loaders/csv"
	"github.com/mindsonic-labs/mindsonic/internal/loaders/docx"
	"github.com/mindsonic-labs/mindsonic/internal/loaders/html"
	"github.com/mindsonic-labs/mindsonic/internal/loaders/markdown"
	"github.com/mindsonic-labs/mindsonic/internal/loaders/pdf"
	"github.com/mindsonic-labs/mindsonic/internal/loaders/plaintext"
	"github.com/mindsonic-labs/mindsonic/internal/loaders/pptx"
	"github.com/mindsonic-labs/mindsonic/internal/loaders/xlsx"
)

// RegisterDefaults registers all built-in loaders with the registry and
// installs the plain text loader as the generic fallback.
func RegisterDefaults(r *Registry) {
	fallback := plaintext.New()

	r.Register(fallback)
	r.Register(csv.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(docx.New())
	r.Register(pdf.New())
	r.Register(pptx.New())
	r.Register(xlsx.New())

	r.SetFallback(fallback)
}
