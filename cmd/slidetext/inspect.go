// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidetext/internal/pipeline"
	"github.com/pdiddy/slidetext/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <pdf>",
	Short: "Show how a PDF's first page is classified",
	Long: `Inspect prints the first page's line groups with their rounded vertical
position and bold verdict, followed by the raw extracted text before
normalization. Use it to see why a title line was or was not dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	pc := cfg.Process
	if f := cmd.Flags().Lookup("structure-backend"); f.Changed {
		pc.StructureBackend = types.StructureBackend(f.Value.String())
	}
	if f := cmd.Flags().Lookup("bold-marker"); f.Changed {
		pc.BoldMarker = f.Value.String()
	}
	p, err := pipeline.New(pc)
	if err != nil {
		return err
	}

	in, err := p.Inspect(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(in)
	}

	fmt.Fprintf(w, "%s: %d page(s)\n\nFirst page lines:\n", args[0], in.Pages)
	for _, g := range in.Groups {
		verdict := "keep"
		if g.Bold {
			verdict = "bold"
		}
		if g.Text == "" {
			verdict = "empty"
		}
		fmt.Fprintf(w, "  %-5s %7.1f  %s\n", verdict, g.Top, g.Text)
	}
	fmt.Fprintf(w, "\nRaw text:\n%s\n", in.Raw)
	return nil
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output the inspection as JSON")
	inspectCmd.Flags().String("structure-backend", "mupdf", "page structure backend: mupdf or rows")
	inspectCmd.Flags().String("bold-marker", "Bold", "font-name substring that marks bold text")

	rootCmd.AddCommand(inspectCmd)
}
