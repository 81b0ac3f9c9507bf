// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline turns lecture-slide PDFs into normalized transcripts. A
// Pipeline runs classify, extract, and normalize for one document; the
// batch driver runs it over a directory on a bounded worker pool.
package pipeline

import (
	"fmt"

	"github.com/pdiddy/slidetext/internal/extract"
	"github.com/pdiddy/slidetext/internal/layout"
	"github.com/pdiddy/slidetext/internal/normalize"
	"github.com/pdiddy/slidetext/internal/pdfdoc"
	"github.com/pdiddy/slidetext/internal/pdfdoc/mupdf"
	"github.com/pdiddy/slidetext/pkg/types"
)

// Transcriber transforms a PDF file into transcript text. Pipeline is the
// production implementation; tests substitute fakes.
type Transcriber interface {
	// Transcribe reads the PDF at pdfPath and returns the normalized text.
	Transcribe(pdfPath string) (string, error)
}

// Pipeline wires the PDF backends to the layout, extract, and normalize
// stages.
type Pipeline struct {
	// Glyphs supplies page-0 glyphs for title filtering.
	Glyphs pdfdoc.GlyphSource

	// Structure supplies every page's block/line/span structure.
	Structure pdfdoc.StructureSource

	// IsBold decides whether a font name is a bold weight. Nil uses the
	// default "Bold" marker.
	IsBold layout.BoldPredicate

	// Preflight validates the file with pdfcpu before extraction.
	Preflight bool
}

// New builds a Pipeline from process settings.
func New(cfg types.ProcessConfig) (*Pipeline, error) {
	var structure pdfdoc.StructureSource
	switch cfg.StructureBackend {
	case "", types.BackendMuPDF:
		structure = mupdf.Source{}
	case types.BackendRows:
		structure = pdfdoc.RowsSource{}
	default:
		return nil, fmt.Errorf("unknown structure backend %q (want %s or %s)",
			cfg.StructureBackend, types.BackendMuPDF, types.BackendRows)
	}

	return &Pipeline{
		Glyphs:    pdfdoc.DefaultGlyphs(),
		Structure: structure,
		IsBold:    layout.MarkerPredicate(cfg.BoldMarker),
		Preflight: cfg.Preflight,
	}, nil
}

// Transcribe implements Transcriber.
func (p *Pipeline) Transcribe(pdfPath string) (text string, err error) {
	defer pdfdoc.Guard(pdfPath, -1, &err)

	raw, err := p.Raw(pdfPath)
	if err != nil {
		return "", err
	}
	text, err = normalize.Normalize(raw)
	if err != nil {
		return "", fmt.Errorf("normalizing %s: %w", pdfPath, err)
	}
	return text, nil
}

// Raw returns the document's extracted text before normalization.
func (p *Pipeline) Raw(pdfPath string) (raw string, err error) {
	defer pdfdoc.Guard(pdfPath, -1, &err)

	if p.Preflight {
		if _, err := pdfdoc.Preflight(pdfPath); err != nil {
			return "", err
		}
	}

	glyphs, err := p.Glyphs.FirstPageGlyphs(pdfPath)
	if err != nil {
		return "", err
	}
	nonBold := layout.ClassifyFirstPage(glyphs, p.IsBold)

	doc, err := p.Structure.Open(pdfPath)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return extract.Extract(doc, nonBold)
}

// Inspection is a diagnostic view of one document's title filtering.
type Inspection struct {
	Pages  int
	Groups []layout.LineGroup
	Raw    string
}

// Inspect reports page 0's line groups with their bold verdicts alongside
// the extracted raw text.
func (p *Pipeline) Inspect(pdfPath string) (in Inspection, err error) {
	defer pdfdoc.Guard(pdfPath, -1, &err)

	glyphs, err := p.Glyphs.FirstPageGlyphs(pdfPath)
	if err != nil {
		return Inspection{}, err
	}
	in.Groups = layout.Lines(glyphs, p.IsBold)

	doc, err := p.Structure.Open(pdfPath)
	if err != nil {
		return Inspection{}, err
	}
	defer doc.Close()

	in.Pages = doc.NumPages()
	in.Raw, err = extract.Extract(doc, layout.ClassifyFirstPage(glyphs, p.IsBold))
	if err != nil {
		return Inspection{}, err
	}
	return in, nil
}
