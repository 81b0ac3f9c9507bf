// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/slidetext/internal/layout"
	"github.com/pdiddy/slidetext/internal/normalize"
	"github.com/pdiddy/slidetext/internal/pdfdoc"
	"github.com/pdiddy/slidetext/pkg/types"
)

const (
	// DefaultInputDir is scanned when no input directory is given.
	DefaultInputDir = "./transcripts"
	// DefaultOutputDir receives transcripts when no output directory is given.
	DefaultOutputDir = "./preprocessed_text"

	pdfExt = ".pdf"
	txtExt = ".txt"
)

// Tracker remembers processed documents across runs. *ledger.Ledger
// implements it.
type Tracker interface {
	Unchanged(ctx context.Context, path string, info fs.FileInfo, settings string) (bool, error)
	Record(ctx context.Context, path string, info fs.FileInfo, settings string, res types.DocumentResult) error
}

// SettingsKey identifies the process settings that change a transcript.
// The Tracker stores it so a changed backend or bold marker invalidates
// earlier results. Empty values are replaced by their defaults.
func SettingsKey(cfg types.ProcessConfig) string {
	backend := cfg.StructureBackend
	if backend == "" {
		backend = types.BackendMuPDF
	}
	marker := cfg.BoldMarker
	if marker == "" {
		marker = layout.DefaultBoldMarker
	}
	return fmt.Sprintf("structure_backend=%s bold_marker=%q", backend, marker)
}

// Options control a batch run.
type Options struct {
	// Workers bounds concurrent documents; zero or less uses runtime.NumCPU.
	Workers int

	// Tracker, when set, lets unchanged documents be skipped.
	Tracker Tracker

	// Force reprocesses documents the Tracker reports as unchanged.
	Force bool

	// Settings is the SettingsKey recorded with each document.
	Settings string

	// Log receives per-document events; use zerolog.Nop() to discard them.
	Log zerolog.Logger
}

// BatchResult holds the outcome of a batch run. Results are in input order.
type BatchResult struct {
	Processed int
	Skipped   int
	Failed    int
	Results   []types.DocumentResult
}

// Total returns the number of documents accounted for.
func (r BatchResult) Total() int {
	return r.Processed + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FailedPaths returns the input paths of failed documents in input order.
func (r BatchResult) FailedPaths() []string {
	var paths []string
	for _, res := range r.Results {
		if res.Status == types.StatusFailed {
			paths = append(paths, res.PDFPath)
		}
	}
	return paths
}

// ListPDFs returns the regular files in dir whose names end in ".pdf", in
// directory order. The suffix match is case-sensitive.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), pdfExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// OutputPath returns the transcript path for pdfPath inside outDir.
func OutputPath(pdfPath, outDir string) string {
	return filepath.Join(outDir, documentID(pdfPath)+txtExt)
}

func documentID(pdfPath string) string {
	return strings.TrimSuffix(filepath.Base(pdfPath), pdfExt)
}

// ClassifyError maps a document failure to its reported kind.
func ClassifyError(err error) types.ErrorKind {
	var (
		se  *pdfdoc.StructureError
		nre *normalize.NumeralRangeError
	)
	switch {
	case err == nil:
		return types.ErrorNone
	case errors.As(err, &se):
		return types.ErrorStructure
	case errors.As(err, &nre):
		return types.ErrorNumeralRange
	default:
		return types.ErrorIO
	}
}

// ProcessDocument transcribes one PDF into outDir. The transcript is written
// to a temporary file and renamed into place, so a failure never leaves a
// partial .txt behind. With a Tracker and without Force, a document that is
// unchanged since its last success and whose transcript exists is skipped.
func ProcessDocument(ctx context.Context, t Transcriber, pdfPath, outDir string, opts Options) types.DocumentResult {
	res := types.DocumentResult{
		ID:      documentID(pdfPath),
		PDFPath: pdfPath,
	}
	outPath := OutputPath(pdfPath, outDir)
	log := opts.Log.With().Str("file", filepath.Base(pdfPath)).Logger()

	fail := func(err error) types.DocumentResult {
		res.Status = types.StatusFailed
		res.ErrorKind = ClassifyError(err)
		res.Error = err.Error()
		log.Error().Err(err).Str("kind", string(res.ErrorKind)).Msg("failed")
		return res
	}

	info, err := os.Stat(pdfPath)
	if err != nil {
		return fail(err)
	}

	if opts.Tracker != nil {
		defer func() {
			if err := opts.Tracker.Record(ctx, pdfPath, info, opts.Settings, res); err != nil {
				log.Warn().Err(err).Msg("ledger update failed")
			}
		}()
		if !opts.Force && fileExists(outPath) {
			unchanged, err := opts.Tracker.Unchanged(ctx, pdfPath, info, opts.Settings)
			if err != nil {
				log.Warn().Err(err).Msg("ledger lookup failed")
			}
			if unchanged {
				res.Status = types.StatusSkipped
				res.OutputPath = outPath
				log.Info().Str("status", string(res.Status)).Msg("unchanged since last run")
				return res
			}
		}
	}

	log.Info().Msg("Processing")

	text, err := t.Transcribe(pdfPath)
	if err != nil {
		return fail(err)
	}
	if err := writeAtomic(outPath, text); err != nil {
		return fail(err)
	}

	res.Status = types.StatusProcessed
	res.OutputPath = outPath
	log.Debug().Str("status", string(res.Status)).Str("output", outPath).Msg("wrote transcript")
	return res
}

// ProcessBatch transcribes pdfPaths on a bounded worker pool, then prints
// a summary to w. One document's failure never stops the others.
// Cancelling ctx stops scheduling; documents already started finish and
// the returned error is ctx.Err().
func ProcessBatch(ctx context.Context, t Transcriber, pdfPaths []string, outDir string, opts Options, w io.Writer) (BatchResult, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]types.DocumentResult, len(pdfPaths))
	var g errgroup.Group
	g.SetLimit(workers)

	scheduled := 0
	for i, p := range pdfPaths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = ProcessDocument(ctx, t, p, outDir, opts)
			return nil
		})
		scheduled++
	}
	_ = g.Wait()

	var result BatchResult
	result.Results = results[:scheduled]
	for _, res := range result.Results {
		switch res.Status {
		case types.StatusProcessed:
			result.Processed++
		case types.StatusSkipped:
			result.Skipped++
		case types.StatusFailed:
			result.Failed++
		}
	}

	fmt.Fprintf(w, "\n%d processed, %d skipped, %d failed (total: %d)\n",
		result.Processed, result.Skipped, result.Failed, result.Total())
	if failed := result.FailedPaths(); len(failed) > 0 {
		fmt.Fprintln(w, "Failed documents:")
		for _, res := range result.Results {
			if res.Status == types.StatusFailed {
				fmt.Fprintf(w, "  %s (%s: %s)\n", filepath.Base(res.PDFPath), res.ErrorKind, res.Error)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		fmt.Fprintf(w, "Processing cancelled after %d of %d documents.\n", scheduled, len(pdfPaths))
		return result, err
	}
	fmt.Fprintln(w, "Processing complete.")
	return result, nil
}

// ProcessDirectory transcribes every PDF in inDir into outDir.
func ProcessDirectory(ctx context.Context, t Transcriber, inDir, outDir string, opts Options, w io.Writer) (BatchResult, error) {
	paths, err := ListPDFs(inDir)
	if err != nil {
		return BatchResult{}, err
	}
	return ProcessBatch(ctx, t, paths, outDir, opts, w)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeAtomic writes text to a temporary file beside path and renames it
// into place.
func writeAtomic(path, text string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = io.WriteString(f, text); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}
