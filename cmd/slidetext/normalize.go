// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slidetext/internal/normalize"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Normalize plain text into a transcript",
	Long: `Normalize runs the transcript rewrite on a text file, or on standard
input when no file is given, and prints the result.

Use --stages to print the text after every stage.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	w := cmd.OutOrStdout()
	showStages, _ := cmd.Flags().GetBool("stages")
	if !showStages {
		text, err := normalize.Normalize(string(data))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, text)
		return nil
	}

	text := string(data)
	for i, st := range normalize.Stages() {
		if text, err = st.Apply(text); err != nil {
			return fmt.Errorf("%s: %w", st.Name, err)
		}
		fmt.Fprintf(w, "--- %d. %s\n%s\n", i+1, st.Name, text)
	}
	return nil
}

func init() {
	normalizeCmd.Flags().Bool("stages", false, "print the text after every stage")

	rootCmd.AddCommand(normalizeCmd)
}
