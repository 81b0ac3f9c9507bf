// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout classifies the lines of a document's first page as bold or
// non-bold. The non-bold lines become the allow-list the extractor uses to
// drop title-slide boilerplate.
package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/slidetext/internal/pdfdoc"
)

// DefaultBoldMarker is the font-name substring that marks a bold weight in
// most embedded PostScript names (e.g. "Arial-BoldMT", "Calibri-Bold").
const DefaultBoldMarker = "Bold"

// BoldPredicate reports whether a font descriptor denotes a bold weight.
// Backends with other naming conventions supply their own.
type BoldPredicate func(font string) bool

// MarkerPredicate returns a case-sensitive substring predicate. An empty
// marker falls back to DefaultBoldMarker.
func MarkerPredicate(marker string) BoldPredicate {
	if marker == "" {
		marker = DefaultBoldMarker
	}
	return func(font string) bool {
		return strings.Contains(font, marker)
	}
}

// LineGroup is the set of glyphs sharing one rounded vertical position.
type LineGroup struct {
	// Top is the rounded vertical coordinate shared by the group.
	Top float64
	// Text is the concatenation of the glyph texts, trimmed.
	Text string
	// Bold is true when any glyph in the group uses a bold font.
	Bold bool
}

// Lines groups glyphs by their vertical position rounded to one decimal.
// Groups keep the order in which each rounded position was first seen, not
// top-to-bottom order, and glyphs inside a group keep content-stream order.
// Groups whose text trims to empty are still returned.
func Lines(glyphs []pdfdoc.Glyph, isBold BoldPredicate) []LineGroup {
	if isBold == nil {
		isBold = MarkerPredicate(DefaultBoldMarker)
	}

	var (
		order []float64
		index = make(map[float64]int)
		texts []*strings.Builder
		bold  []bool
	)
	for _, g := range glyphs {
		key := roundTenth(g.Top)
		i, ok := index[key]
		if !ok {
			i = len(order)
			index[key] = i
			order = append(order, key)
			texts = append(texts, &strings.Builder{})
			bold = append(bold, false)
		}
		texts[i].WriteString(g.Text)
		if !bold[i] && isBold(g.Font) {
			bold[i] = true
		}
	}

	groups := make([]LineGroup, len(order))
	for i, top := range order {
		groups[i] = LineGroup{
			Top:  top,
			Text: strings.TrimSpace(texts[i].String()),
			Bold: bold[i],
		}
	}
	return groups
}

// ClassifyFirstPage returns the non-empty, non-bold line strings of the
// first page in group encounter order. Empty input yields an empty list.
func ClassifyFirstPage(glyphs []pdfdoc.Glyph, isBold BoldPredicate) []string {
	lines := []string{}
	for _, g := range Lines(glyphs, isBold) {
		if g.Bold || g.Text == "" {
			continue
		}
		lines = append(lines, g.Text)
	}
	return lines
}

// roundTenth rounds v to one decimal place using the exact binary value
// with ties to even, so 2.25 rounds to 2.2 while 2.35 (stored as
// 2.350000000000000088...) rounds to 2.4. Negative zero collapses to zero.
func roundTenth(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil || r == 0 {
		return 0
	}
	return r
}
