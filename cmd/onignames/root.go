package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joshuapare/onigkit/cmd/onignames/logger"
	"github.com/joshuapare/onigkit/regex"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose      bool
	quiet        bool
	jsonOut      bool
	encodingName string
	syntaxName   string
	captureGroup bool
	caseFold     bool
	heapTable    bool
	configPath   string

	// activeConfig is the config file read once per invocation.
	activeConfig Config
)

var rootCmd = &cobra.Command{
	Use:   "onignames",
	Short: "Inspect the named groups of Onigmo-style patterns",
	Long: `onignames compiles a regular expression and reports its named groups:
which names exist, which group numbers each name labels, and how the
pattern's name table is laid out.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		activeConfig = cfg
		level, err := logger.ParseLevel(cmp.Or(cfg.LogLevel, "debug"))
		if err != nil {
			return fmt.Errorf("config %s: log_level: %w", configPath, err)
		}
		logger.Init(logger.Options{Enabled: verbose && !quiet, Out: os.Stderr, Level: level})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVarP(&encodingName, "encoding", "e", "", "Name encoding: utf-8, utf-16le, utf-16be, latin1, cp1252")
	rootCmd.PersistentFlags().
		StringVarP(&syntaxName, "syntax", "s", "", "Pattern syntax: ruby, perl, python")
	rootCmd.PersistentFlags().
		BoolVar(&captureGroup, "capture-group", false, "Keep plain groups capturing alongside named ones")
	rootCmd.PersistentFlags().
		BoolVarP(&caseFold, "case-fold", "i", false, "Match case-insensitively")
	rootCmd.PersistentFlags().
		BoolVar(&heapTable, "heap", false, "Build the name table on the Go heap")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a TOML config file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// compilePattern compiles pattern with the options from the config file and
// flags. The caller closes the result.
func compilePattern(pattern string) (*regex.Regex, error) {
	opts, err := resolveOptions()
	if err != nil {
		return nil, err
	}
	logger.Debug("compiling pattern",
		"pattern", pattern, "syntax", opts.Syntax, "encoding", opts.Encoding, "capture_group", opts.CaptureGroup)

	re, err := regex.CompileWithOptions(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern: %w", err)
	}
	logger.Debug("compiled",
		"groups", re.NumSubexp(), "names", re.NamesLen(), "buckets", re.NameTable().Buckets())
	return re, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
