// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/slidetext/pkg/types"
)

// Report builds the run report for a finished batch.
func (r BatchResult) Report(started, finished time.Time, inDir, outDir string) types.RunReport {
	docs := r.Results
	if docs == nil {
		docs = []types.DocumentResult{}
	}
	return types.RunReport{
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		InputDir:   inDir,
		OutputDir:  outDir,
		Processed:  r.Processed,
		Skipped:    r.Skipped,
		Failed:     r.Failed,
		Documents:  docs,
	}
}

// WriteReport writes rep to path as YAML.
func WriteReport(path string, rep types.RunReport) error {
	data, err := yaml.Marshal(&rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
