// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"errors"
	"fmt"
	"math"
	"os"

	lpdf "github.com/ledongthuc/pdf"
)

// defaultPageHeight is the US Letter height, used when a page carries no
// usable MediaBox.
const defaultPageHeight = 792.0

// ascentRatio approximates the glyph ascent as a fraction of the font size.
// Text positions are baselines; the top of a glyph sits ascentRatio*size
// above it.
const ascentRatio = 0.8

// LedongthucGlyphs reads first-page glyphs with ledongthuc/pdf. It is the
// most accurate pure-Go glyph source and the default.
type LedongthucGlyphs struct{}

// FirstPageGlyphs implements GlyphSource.
func (LedongthucGlyphs) FirstPageGlyphs(path string) (glyphs []Glyph, err error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, structureErr(path, -1, fmt.Errorf("opening with ledongthuc: %w", err))
	}
	defer f.Close()
	defer Guard(path, 0, &err)

	if r.NumPage() == 0 {
		return []Glyph{}, nil
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return nil, structureErr(path, 0, errors.New("page object missing"))
	}
	height := mediaBoxHeight(page.V)

	glyphs = []Glyph{}
	for _, t := range page.Content().Text {
		glyphs = appendRun(glyphs, t.S, t.Font, height-(t.Y+t.FontSize*ascentRatio))
	}
	return glyphs, nil
}

// mediaBoxHeight returns the page height from the MediaBox, following the
// Parent chain for inherited boxes.
func mediaBoxHeight(v lpdf.Value) float64 {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == lpdf.Array && box.Len() == 4 {
			return box.Index(3).Float64() - box.Index(1).Float64()
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}

// appendRun splits a text run into one glyph per rune. All glyphs of a run
// share its vertical position and font.
func appendRun(glyphs []Glyph, s, font string, top float64) []Glyph {
	for _, r := range s {
		glyphs = append(glyphs, Glyph{Text: string(r), Top: top, Font: font})
	}
	return glyphs
}

// RowsSource exposes structured text from ledongthuc/pdf text runs. Runs
// sharing a baseline (to a tenth of a point) form a row, rows keep the
// order in which their baseline is first drawn, and a row's runs split
// into spans wherever the font changes. Each page is a single block.
type RowsSource struct{}

// Open implements StructureSource.
func (RowsSource) Open(path string) (doc Document, err error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, structureErr(path, -1, fmt.Errorf("opening with ledongthuc: %w", err))
	}
	defer func() {
		if err != nil {
			f.Close()
		}
	}()
	defer Guard(path, -1, &err)

	return &rowsDocument{path: path, file: f, reader: r, pages: r.NumPage()}, nil
}

type rowsDocument struct {
	path   string
	file   *os.File
	reader *lpdf.Reader
	pages  int
}

func (d *rowsDocument) NumPages() int { return d.pages }

func (d *rowsDocument) Blocks(i int) (blocks []Block, err error) {
	if i < 0 || i >= d.pages {
		return nil, structureErr(d.path, i, fmt.Errorf("page index out of range [0, %d)", d.pages))
	}
	defer Guard(d.path, i, &err)

	page := d.reader.Page(i + 1)
	if page.V.IsNull() {
		return nil, structureErr(d.path, i, errors.New("page object missing"))
	}

	lines := groupRows(page.Content().Text)
	if len(lines) == 0 {
		return nil, nil
	}
	return []Block{{Lines: lines}}, nil
}

// groupRows collects text runs into lines by baseline in first-seen order.
// Consecutive runs of a line in the same font merge into one span.
func groupRows(texts []lpdf.Text) []Line {
	var (
		lines []Line
		index = make(map[float64]int)
	)
	for _, t := range texts {
		y := math.Round(t.Y*10) / 10
		i, ok := index[y]
		if !ok {
			i = len(lines)
			index[y] = i
			lines = append(lines, Line{})
		}
		spans := lines[i].Spans
		if n := len(spans); n > 0 && spans[n-1].Font == t.Font {
			spans[n-1].Text += t.S
			continue
		}
		lines[i].Spans = append(spans, Span{Text: t.S, Font: t.Font})
	}
	return lines
}

func (d *rowsDocument) Close() error {
	return d.file.Close()
}
