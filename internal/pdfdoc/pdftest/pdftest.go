// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest writes small, well-formed PDFs for backend tests. Text is
// drawn with the standard Helvetica and Helvetica-Bold fonts, one text
// object per line, on US Letter pages.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Line is one line of text drawn at baseline Y (points from the page
// bottom).
type Line struct {
	Text string
	Bold bool
	Size float64
	X, Y float64
}

// Page is the lines of one page in drawing order.
type Page []Line

// PageHeight is the MediaBox height of generated pages.
const PageHeight = 792.0

// Build renders pages as a PDF document.
func Build(pages ...Page) []byte {
	// Objects: 1 catalog, 2 page tree, 3 regular font, 4 bold font, then a
	// page object and a content stream per page.
	var objects []string
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 %g] >>",
			strings.Join(kids, " "), len(pages), PageHeight),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>",
	)
	for i, p := range pages {
		content := contentStream(p)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>", 6+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func contentStream(p Page) string {
	var b strings.Builder
	for _, l := range p {
		font := "F1"
		if l.Bold {
			font = "F2"
		}
		size := l.Size
		if size == 0 {
			size = 12
		}
		x := l.X
		if x == 0 {
			x = 72
		}
		fmt.Fprintf(&b, "BT /%s %g Tf %g %g Td (%s) Tj ET\n", font, size, x, l.Y, escape(l.Text))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// escape quotes the characters that are special inside a PDF literal
// string.
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// WriteFile writes a generated PDF into a fresh temp directory and returns
// its path.
func WriteFile(t testing.TB, name string, pages ...Page) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, Build(pages...), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// Lecture is a two-page slide deck: a bold title over two regular lines,
// then a body page.
func Lecture() []Page {
	return []Page{
		{
			{Text: "Deep Learning", Bold: true, Size: 24, Y: 700},
			{Text: "Prof. Smith", Size: 14, Y: 660},
			{Text: "Lecture 12", Size: 14, Y: 640},
		},
		{
			{Text: "Overview", Bold: true, Size: 20, Y: 700},
			{Text: "A 64 x 64 image", Size: 14, Y: 660},
		},
	}
}
