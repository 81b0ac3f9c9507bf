// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/slidetext/internal/pdfdoc"
)

// fakeDoc implements pdfdoc.Document over in-memory pages.
type fakeDoc struct {
	pages  [][]pdfdoc.Block
	errAt  int
	closed bool
}

func (d *fakeDoc) NumPages() int { return len(d.pages) }

func (d *fakeDoc) Blocks(i int) ([]pdfdoc.Block, error) {
	if d.errAt > 0 && i == d.errAt {
		return nil, &pdfdoc.StructureError{Path: "fake.pdf", Page: i, Err: errors.New("corrupt content stream")}
	}
	return d.pages[i], nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

// page builds a single-block page with one single-span line per string.
func page(lines ...string) []pdfdoc.Block {
	b := pdfdoc.Block{}
	for _, l := range lines {
		b.Lines = append(b.Lines, pdfdoc.Line{Spans: []pdfdoc.Span{{Text: l}}})
	}
	return []pdfdoc.Block{b}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		pages   [][]pdfdoc.Block
		nonBold []string
		want    string
	}{
		{
			name: "zero pages",
			want: "",
		},
		{
			name:    "first page keeps only allowed lines",
			pages:   [][]pdfdoc.Block{page("Deep Learning", "Prof. Khapra", "Lecture 1")},
			nonBold: []string{"Prof. Khapra"},
			want:    "Prof. Khapra",
		},
		{
			name: "empty allow-list drops the entire first page",
			pages: [][]pdfdoc.Block{
				page("Visible title", "Visible subtitle"),
				page("Body text"),
			},
			nonBold: nil,
			want:    "Body text",
		},
		{
			name: "later pages keep every line",
			pages: [][]pdfdoc.Block{
				page("Title"),
				page("Bold heading", "regular body"),
				page("more"),
			},
			nonBold: []string{"Title"},
			want:    "Title\nBold heading\nregular body\nmore",
		},
		{
			name: "first page matching is exact after trimming",
			pages: [][]pdfdoc.Block{
				page("  Prof. Khapra  ", "Prof. Khapra, IIT"),
			},
			nonBold: []string{"Prof. Khapra"},
			want:    "Prof. Khapra",
		},
		{
			name: "pages without kept lines contribute nothing",
			pages: [][]pdfdoc.Block{
				page("dropped"),
				{},
				page("kept"),
			},
			want: "kept",
		},
		{
			name: "empty candidates on later pages are kept",
			pages: [][]pdfdoc.Block{
				{},
				page("a", "   ", "b"),
			},
			want: "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(&fakeDoc{pages: tt.pages}, tt.nonBold)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_SpansAndBlocks(t *testing.T) {
	doc := &fakeDoc{pages: [][]pdfdoc.Block{
		{},
		{
			{Lines: []pdfdoc.Line{
				{Spans: []pdfdoc.Span{{Text: "Convolution "}, {Text: "with "}, {Text: "3 x 3"}}},
			}},
			{Lines: []pdfdoc.Line{
				{Spans: []pdfdoc.Span{{Text: " kernels "}}},
			}},
		},
	}}

	got, err := Extract(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "Convolution with 3 x 3\nkernels", got)
}

func TestExtract_PageError(t *testing.T) {
	doc := &fakeDoc{
		pages: [][]pdfdoc.Block{page("a"), page("b"), page("c")},
		errAt: 2,
	}

	got, err := Extract(doc, []string{"a"})
	require.Error(t, err)
	assert.Empty(t, got)

	var se *pdfdoc.StructureError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Page)
}

func TestPageLines(t *testing.T) {
	doc := &fakeDoc{pages: [][]pdfdoc.Block{page(" x ", "", "y")}}
	lines, err := PageLines(doc, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "", "y"}, lines)
}
