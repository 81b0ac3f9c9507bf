// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc exposes PDF pages at the two granularities the transcript
// pipeline needs: positioned glyphs with font names (first page only) and
// the block/line/span structure of every page. Backends wrap
// ledongthuc/pdf, dslipak/pdf and pdfcpu; the MuPDF backend lives in the
// mupdf subpackage.
package pdfdoc

import (
	"errors"
	"fmt"
)

// Glyph is one positioned character with the font that drew it.
type Glyph struct {
	// Text is the decoded character (occasionally more than one rune for
	// ligatures).
	Text string

	// Top is the distance from the top of the page to the top of the glyph,
	// in points.
	Top float64

	// Font is the font descriptor, usually the PostScript base font name
	// (e.g. "ABCDEF+Arial-BoldMT").
	Font string
}

// Span is a run of text inside a structured line.
type Span struct {
	Text string
	Font string
}

// Line is a structured line made of spans in reading order.
type Line struct {
	Spans []Span
}

// Text concatenates the span texts of the line.
func (l Line) Text() string {
	switch len(l.Spans) {
	case 0:
		return ""
	case 1:
		return l.Spans[0].Text
	}
	n := 0
	for _, s := range l.Spans {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range l.Spans {
		b = append(b, s.Text...)
	}
	return string(b)
}

// Block is a group of lines as enumerated by the backend.
type Block struct {
	Lines []Line
}

// GlyphSource reads the glyphs of a document's first page.
type GlyphSource interface {
	// FirstPageGlyphs returns page 0's glyphs in content-stream order. A
	// document without pages yields an empty slice and no error.
	FirstPageGlyphs(path string) ([]Glyph, error)
}

// Document is an open PDF whose pages expose block/line/span structure.
type Document interface {
	// NumPages returns the number of pages.
	NumPages() int

	// Blocks returns the structured text of page i (0-based).
	Blocks(i int) ([]Block, error)

	// Close releases the underlying file.
	Close() error
}

// StructureSource opens documents for structured text walks.
type StructureSource interface {
	Open(path string) (Document, error)
}

// StructureError reports a PDF that cannot be opened or whose page
// structure cannot be decoded. Page is -1 when the failure is not tied to
// a page.
type StructureError struct {
	Path string
	Page int
	Err  error
}

func (e *StructureError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("decoding %s page %d: %v", e.Path, e.Page, e.Err)
}

func (e *StructureError) Unwrap() error { return e.Err }

// structureErr wraps err as a StructureError unless it already is one.
func structureErr(path string, page int, err error) error {
	var se *StructureError
	if errors.As(err, &se) {
		return err
	}
	return &StructureError{Path: path, Page: page, Err: err}
}

// Guard converts a panic raised by a PDF library into a StructureError
// stored in *errp. Use it deferred: the pure-Go readers and the MuPDF
// bindings both panic on some malformed files.
func Guard(path string, page int, errp *error) {
	if r := recover(); r != nil {
		*errp = &StructureError{Path: path, Page: page, Err: fmt.Errorf("malformed PDF: %v", r)}
	}
}
