// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidetext/internal/ledger"
	"github.com/pdiddy/slidetext/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process [input-dir] [output-dir]",
	Short: "Transcribe every PDF in a directory",
	Long: `Process reads every *.pdf in the input directory (default ./transcripts)
and writes one normalized <name>.txt per document to the output directory
(default ./preprocessed_text).

Documents are processed concurrently. A document that fails is reported and
skipped; the command exits non-zero when any document failed. With --ledger,
documents unchanged since their last successful run under the same
--structure-backend and --bold-marker are skipped unless --force is given.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	pc := cfg.Process
	if len(args) > 0 {
		pc.InputDir = args[0]
	}
	if len(args) > 1 {
		pc.OutputDir = args[1]
	}

	p, err := pipeline.New(pc)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	opts := pipeline.Options{
		Workers:  pc.Workers,
		Force:    pc.Force,
		Settings: pipeline.SettingsKey(pc),
		Log:      log,
	}
	if pc.LedgerPath != "" {
		l, err := ledger.Open(pc.LedgerPath)
		if err != nil {
			return err
		}
		defer l.Close()
		opts.Tracker = l
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Debug().
		Str("input", pc.InputDir).
		Str("output", pc.OutputDir).
		Int("workers", pc.Workers).
		Str("backend", string(pc.StructureBackend)).
		Msg("starting run")

	started := time.Now()
	result, runErr := pipeline.ProcessDirectory(ctx, p, pc.InputDir, pc.OutputDir, opts, cmd.OutOrStdout())

	if pc.ReportPath != "" && result.Results != nil {
		rep := result.Report(started, time.Now(), pc.InputDir, pc.OutputDir)
		if err := pipeline.WriteReport(pc.ReportPath, rep); err != nil {
			return err
		}
		log.Info().Str("report", pc.ReportPath).Msg("wrote run report")
	}

	if runErr != nil {
		return runErr
	}
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed", result.Failed)
	}
	return nil
}

func init() {
	f := processCmd.Flags()
	f.Int("workers", 0, "documents processed concurrently (default: number of CPUs)")
	f.String("structure-backend", "mupdf", "page structure backend: mupdf or rows")
	f.String("bold-marker", "Bold", "font-name substring that marks bold text")
	f.Bool("preflight", false, "validate each PDF with pdfcpu before extraction")
	f.String("ledger", "", "SQLite ledger for skipping unchanged documents")
	f.Bool("force", false, "reprocess documents the ledger reports as unchanged")
	f.String("report", "", "write a YAML run report to this path")

	for key, flag := range map[string]string{
		"process.workers":           "workers",
		"process.structure_backend": "structure-backend",
		"process.bold_marker":       "bold-marker",
		"process.preflight":         "preflight",
		"process.ledger_path":       "ledger",
		"process.force":             "force",
		"process.report_path":       "report",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(processCmd)
}
