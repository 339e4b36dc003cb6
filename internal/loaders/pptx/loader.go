// Package pptx provides a loader for PowerPoint (OOXML) presentations.
//
// Slides are read in ascending numeric order of ppt/slides/slideN.xml.
// Within a slide, shapes are emitted in XML document order, which for
// PPTX equals z-order (bottom-most shape first). Each slide with text
// contributes a "Slide N:" block; slides without text still count
// toward slide_count but add nothing to the content.
package pptx

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles PPTX presentations.
type Loader struct{}

// New creates a new PPTX loader.
func New() *Loader {
	return &Loader{}
}

// FileTypes returns the file types this loader handles.
func (l *Loader) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypePptx}
}

// Priority returns the selection priority.
func (l *Loader) Priority() int {
	return 50 // Format-specific loader
}

// slideNameRe matches slide part names inside the OOXML container.
var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Load extracts per-slide text from the presentation.
// A deck with zero slides yields empty content and slide_count 0.
func (l *Loader) Load(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer reader.Close()

	slides, err := collectSlides(&reader.Reader)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	var blocks []string
	for _, s := range slides {
		if s.text == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("Slide %d:\n%s", s.number, s.text))
	}

	return &domain.ExtractedDocument{
		DocID:   documentID(path),
		Content: strings.Join(blocks, "\n\n"),
		Metadata: map[string]any{
			"source":      path,
			"file_type":   domain.FileTypePptx.String(),
			"url":         path,
			"slide_count": len(slides),
		},
	}, nil
}

// slide holds one slide's number and extracted text.
type slide struct {
	number int
	text   string
}

// collectSlides finds all slide parts and extracts their text,
// sorted by slide number.
func collectSlides(reader *zip.Reader) ([]slide, error) {
	var slides []slide

	for _, file := range reader.File {
		m := slideNameRe.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, domain.ErrInvalidInput
		}

		slides = append(slides, slide{
			number: number,
			text:   parseSlideXML(content),
		})
	}

	sort.Slice(slides, func(i, j int) bool {
		return slides[i].number < slides[j].number
	})

	return slides, nil
}

// slideXML represents the structure of ppt/slides/slideN.xml.
type slideXML struct {
	CSld struct {
		SpTree struct {
			Shapes []shape `xml:"sp"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

type shape struct {
	TxBody *textBody `xml:"txBody"`
}

type textBody struct {
	Paragraphs []slideParagraph `xml:"p"`
}

type slideParagraph struct {
	Runs []slideRun `xml:"r"`
}

type slideRun struct {
	Text string `xml:"t"`
}

// parseSlideXML extracts the text of every shape on a slide.
// Paragraphs within a shape and shapes within a slide are joined with
// newlines, mirroring how a reader would scan the slide.
func parseSlideXML(content []byte) string {
	var sl slideXML
	if err := xml.Unmarshal(content, &sl); err != nil {
		return ""
	}

	var shapeTexts []string
	for _, sp := range sl.CSld.SpTree.Shapes {
		if sp.TxBody == nil {
			continue
		}
		var paras []string
		for _, p := range sp.TxBody.Paragraphs {
			var sb strings.Builder
			for _, r := range p.Runs {
				sb.WriteString(r.Text)
			}
			if sb.Len() > 0 {
				paras = append(paras, sb.String())
			}
		}
		if len(paras) > 0 {
			shapeTexts = append(shapeTexts, strings.Join(paras, "\n"))
		}
	}

	return strings.Join(shapeTexts, "\n")
}

// documentID derives a stable document id from the source path.
func documentID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}
