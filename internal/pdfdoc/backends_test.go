// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"testing"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/slidetext/internal/pdfdoc/pdftest"
)

// glyphLine is the text and font of glyphs sharing one top.
type glyphLine struct {
	Top  float64
	Text string
	Font string
}

// byTop folds glyphs into lines keyed by their exact top, in first-seen
// order. The first glyph's font stands for the line.
func byTop(glyphs []Glyph) []glyphLine {
	var out []glyphLine
	index := make(map[float64]int)
	for _, g := range glyphs {
		i, ok := index[g.Top]
		if !ok {
			i = len(out)
			index[g.Top] = i
			out = append(out, glyphLine{Top: g.Top, Font: g.Font})
		}
		out[i].Text += g.Text
	}
	return out
}

func TestGlyphSources_Lecture(t *testing.T) {
	path := pdftest.WriteFile(t, "lec12.pdf", pdftest.Lecture()...)

	sources := map[string]GlyphSource{
		"ledongthuc": LedongthucGlyphs{},
		"dslipak":    DslipakGlyphs{},
		"default":    DefaultGlyphs(),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			glyphs, err := src.FirstPageGlyphs(path)
			require.NoError(t, err)

			lines := byTop(glyphs)
			require.Len(t, lines, 3)

			assert.Equal(t, "Deep Learning", lines[0].Text)
			assert.Contains(t, lines[0].Font, "Helvetica-Bold")
			assert.InDelta(t, pdftest.PageHeight-(700+24*ascentRatio), lines[0].Top, 0.01)

			assert.Equal(t, "Prof. Smith", lines[1].Text)
			assert.NotContains(t, lines[1].Font, "Bold")
			assert.InDelta(t, pdftest.PageHeight-(660+14*ascentRatio), lines[1].Top, 0.01)

			assert.Equal(t, "Lecture 12", lines[2].Text)
			assert.Less(t, lines[1].Top, lines[2].Top, "tops grow down the page")
		})
	}
}

func TestGlyphSources_LaterPagesIgnored(t *testing.T) {
	path := pdftest.WriteFile(t, "blank-first.pdf",
		pdftest.Page{},
		pdftest.Page{{Text: "Body", Y: 700}},
	)

	glyphs, err := LedongthucGlyphs{}.FirstPageGlyphs(path)
	require.NoError(t, err)
	assert.Empty(t, glyphs)
}

func TestRowsSource_Lecture(t *testing.T) {
	path := pdftest.WriteFile(t, "lec12.pdf", pdftest.Lecture()...)

	doc, err := RowsSource{}.Open(path)
	require.NoError(t, err)
	defer doc.Close()
	require.Equal(t, 2, doc.NumPages())

	first, err := doc.Blocks(0)
	require.NoError(t, err)
	require.Len(t, first, 1)
	lines := first[0].Lines
	require.Len(t, lines, 3, "each baseline is its own line")
	assert.Equal(t, "Deep Learning", lines[0].Text())
	assert.Equal(t, "Prof. Smith", lines[1].Text())
	assert.Equal(t, "Lecture 12", lines[2].Text())
	require.Len(t, lines[0].Spans, 1)
	assert.Contains(t, lines[0].Spans[0].Font, "Helvetica-Bold")
	assert.NotEmpty(t, lines[1].Spans[0].Font)

	second, err := doc.Blocks(1)
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Len(t, second[0].Lines, 2)
	assert.Equal(t, "Overview", second[0].Lines[0].Text())
	assert.Equal(t, "A 64 x 64 image", second[0].Lines[1].Text())

	_, err = doc.Blocks(2)
	var se *StructureError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Page)
}

func TestRowsSource_EmptyPage(t *testing.T) {
	path := pdftest.WriteFile(t, "empty.pdf", pdftest.Page{})

	doc, err := RowsSource{}.Open(path)
	require.NoError(t, err)
	defer doc.Close()

	blocks, err := doc.Blocks(0)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestGroupRows(t *testing.T) {
	texts := []lpdf.Text{
		{Font: "Arial-BoldMT", Y: 500.02, S: "T"},
		{Font: "Arial-BoldMT", Y: 500.02, S: "itle"},
		{Font: "ArialMT", Y: 460, S: "body "},
		{Font: "Arial-BoldMT", Y: 460, S: "bold"},
		{Font: "ArialMT", Y: 460, S: " tail"},
		{Font: "Arial-BoldMT", Y: 499.98, S: "!"},
	}

	lines := groupRows(texts)
	require.Len(t, lines, 2)

	assert.Equal(t, "Title!", lines[0].Text())
	assert.Len(t, lines[0].Spans, 1, "same font merges")

	assert.Equal(t, "body bold tail", lines[1].Text())
	require.Len(t, lines[1].Spans, 3, "font changes split spans")
	assert.Equal(t, "ArialMT", lines[1].Spans[0].Font)
	assert.Equal(t, "Arial-BoldMT", lines[1].Spans[1].Font)

	assert.Empty(t, groupRows(nil))
}

func TestPreflight_Lecture(t *testing.T) {
	path := pdftest.WriteFile(t, "lec12.pdf", pdftest.Lecture()...)

	pages, err := Preflight(path)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
}
