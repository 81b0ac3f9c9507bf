// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Preflight parses and validates a PDF with pdfcpu in relaxed mode and
// returns its page count. A file pdfcpu cannot read yields a
// StructureError before any text extraction runs.
func Preflight(path string) (pages int, err error) {
	defer Guard(path, -1, &err)

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, structureErr(path, -1, err)
	}
	if ctx.Configuration != nil {
		ctx.Configuration.ValidationMode = model.ValidationRelaxed
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, structureErr(path, -1, err)
	}
	return ctx.PageCount, nil
}
