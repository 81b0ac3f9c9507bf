// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"errors"
)

// FallbackGlyphs tries each source in order and returns the first success.
// When every source fails the errors are joined.
type FallbackGlyphs []GlyphSource

// DefaultGlyphs prefers ledongthuc/pdf and falls back to dslipak/pdf.
func DefaultGlyphs() FallbackGlyphs {
	return FallbackGlyphs{LedongthucGlyphs{}, DslipakGlyphs{}}
}

// FirstPageGlyphs implements GlyphSource.
func (fb FallbackGlyphs) FirstPageGlyphs(path string) ([]Glyph, error) {
	if len(fb) == 0 {
		return nil, structureErr(path, -1, errors.New("no glyph source configured"))
	}
	var errs []error
	for _, src := range fb {
		glyphs, err := src.FirstPageGlyphs(path)
		if err == nil {
			return glyphs, nil
		}
		errs = append(errs, err)
	}
	return nil, structureErr(path, -1, errors.Join(errs...))
}
