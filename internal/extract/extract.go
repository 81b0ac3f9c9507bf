// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract reconstructs a document's raw text from its
// block/line/span structure, dropping first-page lines that are not in the
// non-bold allow-list produced by the layout package.
package extract

import (
	"strings"

	"github.com/pdiddy/slidetext/internal/pdfdoc"
)

// Extract walks every page of doc and returns the raw text.
//
// Each structured line becomes its span texts concatenated and trimmed. On
// page 0 a line is kept only when it exactly matches one of nonBold; on
// later pages every line is kept. Kept lines are joined with newlines per
// page, pages without kept lines contribute nothing, and page
// contributions are joined with newlines.
//
// An empty nonBold therefore drops the whole first page. A page that fails
// to decode aborts extraction with a *pdfdoc.StructureError.
func Extract(doc pdfdoc.Document, nonBold []string) (string, error) {
	allowed := make(map[string]struct{}, len(nonBold))
	for _, s := range nonBold {
		allowed[s] = struct{}{}
	}

	var pages []string
	for p := 0; p < doc.NumPages(); p++ {
		lines, err := PageLines(doc, p)
		if err != nil {
			return "", err
		}

		kept := lines[:0]
		for _, line := range lines {
			if p == 0 {
				if _, ok := allowed[line]; !ok {
					continue
				}
			}
			kept = append(kept, line)
		}
		if len(kept) > 0 {
			pages = append(pages, strings.Join(kept, "\n"))
		}
	}
	return strings.Join(pages, "\n"), nil
}

// PageLines returns the trimmed candidate lines of page p in block order,
// including empty candidates.
func PageLines(doc pdfdoc.Document, p int) ([]string, error) {
	blocks, err := doc.Blocks(p)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, b := range blocks {
		for _, l := range b.Lines {
			lines = append(lines, strings.TrimSpace(l.Text()))
		}
	}
	return lines, nil
}
