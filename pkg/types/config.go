// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StructureBackend identifies the library that exposes a PDF's
// block/line/span structure.
type StructureBackend string

const (
	// BackendMuPDF walks MuPDF's structured text (go-fitz).
	BackendMuPDF StructureBackend = "mupdf"
	// BackendRows groups ledongthuc/pdf text runs into rows. Pure Go.
	BackendRows StructureBackend = "rows"
)

// ProcessConfig holds settings for the process stage.
type ProcessConfig struct {
	// InputDir is the directory scanned for *.pdf files.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives one .txt transcript per processed PDF.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Workers bounds the number of documents processed concurrently
	// (default: number of CPUs).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// StructureBackend selects the block/line/span source: mupdf or rows.
	StructureBackend StructureBackend `json:"structure_backend" yaml:"structure_backend" mapstructure:"structure_backend"`

	// BoldMarker is the substring of a font name that marks a bold weight
	// (default "Bold").
	BoldMarker string `json:"bold_marker" yaml:"bold_marker" mapstructure:"bold_marker"`

	// Preflight validates each PDF with pdfcpu before extraction.
	Preflight bool `json:"preflight" yaml:"preflight" mapstructure:"preflight"`

	// LedgerPath is the SQLite file recording processed documents. Empty
	// disables incremental runs.
	LedgerPath string `json:"ledger_path,omitempty" yaml:"ledger_path,omitempty" mapstructure:"ledger_path"`

	// Force reprocesses documents the ledger reports as unchanged.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`

	// ReportPath, when set, receives a YAML run report.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty" mapstructure:"report_path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from slidetext.yaml, the environment,
// and command-line flags.
type Config struct {
	Process ProcessConfig `json:"process" yaml:"process" mapstructure:"process"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
