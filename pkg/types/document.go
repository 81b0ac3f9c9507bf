// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the slidetext pipeline:
// configuration, per-document outcomes, and the run report.
package types

import "time"

// DocumentStatus indicates the outcome of transcribing one PDF.
type DocumentStatus string

const (
	StatusProcessed DocumentStatus = "processed"
	StatusSkipped   DocumentStatus = "skipped"
	StatusFailed    DocumentStatus = "failed"
)

// ErrorKind classifies a per-document failure.
type ErrorKind string

const (
	ErrorNone         ErrorKind = ""
	ErrorStructure    ErrorKind = "structure"
	ErrorNumeralRange ErrorKind = "numeral_range"
	ErrorIO           ErrorKind = "io"
)

// DocumentResult records what happened to one input PDF.
type DocumentResult struct {
	// ID is the file name without extension (e.g. "lec07").
	ID string `json:"id" yaml:"id"`

	// PDFPath is the input file.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// OutputPath is the written transcript; empty unless Status is processed
	// or skipped.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	Status DocumentStatus `json:"status" yaml:"status"`

	// ErrorKind and Error describe a failure.
	ErrorKind ErrorKind `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunReport summarizes one process run.
type RunReport struct {
	StartedAt  time.Time        `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time        `json:"finished_at" yaml:"finished_at"`
	InputDir   string           `json:"input_dir" yaml:"input_dir"`
	OutputDir  string           `json:"output_dir" yaml:"output_dir"`
	Processed  int              `json:"processed" yaml:"processed"`
	Skipped    int              `json:"skipped" yaml:"skipped"`
	Failed     int              `json:"failed" yaml:"failed"`
	Documents  []DocumentResult `json:"documents" yaml:"documents"`
}
