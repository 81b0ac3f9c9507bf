// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the slidetext CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidetext/internal/layout"
	"github.com/pdiddy/slidetext/internal/logging"
	"github.com/pdiddy/slidetext/internal/pipeline"
	"github.com/pdiddy/slidetext/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the slidetext CLI.
var rootCmd = &cobra.Command{
	Use:   "slidetext",
	Short: "Turn lecture-slide PDFs into clean transcripts",
	Long: `slidetext extracts the text of lecture-slide PDFs, drops the bold title
lines of each deck's first page, and normalizes what remains into lowercase,
punctuation-free transcripts with numerals spelled out.

Use process for a directory of PDFs, normalize to run the text rewrite on
plain text, and inspect to see how a deck's first page is classified.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./slidetext.yaml or ~/.config/slidetext/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	setDefaults(viper.GetViper())
}

// setDefaults registers the values used when neither a flag, the
// environment, nor the config file sets a key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("process.input_dir", pipeline.DefaultInputDir)
	v.SetDefault("process.output_dir", pipeline.DefaultOutputDir)
	v.SetDefault("process.workers", runtime.NumCPU())
	v.SetDefault("process.structure_backend", string(types.BackendMuPDF))
	v.SetDefault("process.bold_marker", layout.DefaultBoldMarker)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("slidetext")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "slidetext"))
		}
	}

	viper.SetEnvPrefix("SLIDETEXT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, environment, and file settings.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the command logger writing to stderr.
func newLogger(cfg types.Config) zerolog.Logger {
	return logging.New(cfg.Log, os.Stderr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
