// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"errors"
	"fmt"
	"os"

	gopdf "github.com/dslipak/pdf"
)

// DslipakGlyphs reads first-page glyphs with dslipak/pdf. It tolerates some
// cross-reference damage that ledongthuc/pdf rejects, which makes it a
// useful fallback.
type DslipakGlyphs struct{}

// FirstPageGlyphs implements GlyphSource.
func (DslipakGlyphs) FirstPageGlyphs(path string) (glyphs []Glyph, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, structureErr(path, -1, err)
	}
	defer f.Close()
	defer Guard(path, 0, &err)

	info, err := f.Stat()
	if err != nil {
		return nil, structureErr(path, -1, err)
	}
	r, err := gopdf.NewReader(f, info.Size())
	if err != nil {
		return nil, structureErr(path, -1, fmt.Errorf("opening with dslipak: %w", err))
	}

	if r.NumPage() == 0 {
		return []Glyph{}, nil
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return nil, structureErr(path, 0, errors.New("page object missing"))
	}

	height := defaultPageHeight
	for v, depth := page.V, 0; depth < 32 && !v.IsNull(); v, depth = v.Key("Parent"), depth+1 {
		box := v.Key("MediaBox")
		if box.Kind() == gopdf.Array && box.Len() == 4 {
			height = box.Index(3).Float64() - box.Index(1).Float64()
			break
		}
	}

	glyphs = []Glyph{}
	for _, t := range page.Content().Text {
		glyphs = appendRun(glyphs, t.S, t.Font, height-(t.Y+t.FontSize*ascentRatio))
	}
	return glyphs, nil
}
