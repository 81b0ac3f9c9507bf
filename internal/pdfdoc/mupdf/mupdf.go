// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mupdf exposes PDF block/line/span structure through MuPDF
// (gen2brain/go-fitz). MuPDF renders each page's structured text as HTML
// with one <p> per line and one text run per span. Its page markup has no
// per-block wrapper, so in practice a page yields a single block holding
// every line.
package mupdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/slidetext/internal/pdfdoc"
)

// Source opens documents with MuPDF.
type Source struct{}

// Open implements pdfdoc.StructureSource.
func (Source) Open(path string) (doc pdfdoc.Document, err error) {
	defer pdfdoc.Guard(path, -1, &err)

	fd, err := fitz.New(path)
	if err != nil {
		return nil, &pdfdoc.StructureError{Path: path, Page: -1, Err: err}
	}
	return &document{path: path, doc: fd}, nil
}

type document struct {
	path string
	doc  *fitz.Document
}

func (d *document) NumPages() int { return d.doc.NumPage() }

func (d *document) Blocks(i int) (blocks []pdfdoc.Block, err error) {
	defer pdfdoc.Guard(d.path, i, &err)

	if i < 0 || i >= d.doc.NumPage() {
		return nil, &pdfdoc.StructureError{Path: d.path, Page: i, Err: fmt.Errorf("page index out of range [0, %d)", d.doc.NumPage())}
	}
	markup, err := d.doc.HTML(i, false)
	if err != nil {
		return nil, &pdfdoc.StructureError{Path: d.path, Page: i, Err: err}
	}
	blocks, err = parsePage(strings.NewReader(markup))
	if err != nil {
		return nil, &pdfdoc.StructureError{Path: d.path, Page: i, Err: err}
	}
	return blocks, nil
}

func (d *document) Close() error {
	return d.doc.Close()
}

// parsePage converts MuPDF's page HTML into blocks. A new block starts
// whenever a <p> has a different parent from the previous one; MuPDF puts
// all of a page's lines under the same page <div>.
func parsePage(r io.Reader) ([]pdfdoc.Block, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page markup: %w", err)
	}

	var (
		blocks []pdfdoc.Block
		parent *html.Node
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			if parent == nil || n.Parent != parent {
				blocks = append(blocks, pdfdoc.Block{})
				parent = n.Parent
			}
			b := &blocks[len(blocks)-1]
			b.Lines = append(b.Lines, pdfdoc.Line{Spans: spans(n, "", false)})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return blocks, nil
}

// spans collects the text nodes under n in document order. Each text node
// is one span; its font is the closest styled ancestor's family, suffixed
// with ",bold" inside a <b> element.
func spans(n *html.Node, font string, bold bool) []pdfdoc.Span {
	var out []pdfdoc.Span
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			f := font
			if bold {
				f += ",bold"
			}
			out = append(out, pdfdoc.Span{Text: c.Data, Font: f})
		case html.ElementNode:
			f := font
			if ff := fontFamily(c); ff != "" {
				f = ff
			}
			out = append(out, spans(c, f, bold || c.DataAtom == atom.B)...)
		}
	}
	return out
}

// fontFamily extracts the first family from a style="font-family:..."
// attribute.
func fontFamily(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		for _, decl := range strings.Split(a.Val, ";") {
			name, value, ok := strings.Cut(decl, ":")
			if !ok || strings.TrimSpace(name) != "font-family" {
				continue
			}
			family, _, _ := strings.Cut(value, ",")
			return strings.Trim(strings.TrimSpace(family), `'"`)
		}
	}
	return ""
}
