package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/tablescan/tablescan-cli/internal/config"
)

var (
	// Global flags
	cfgFile   string
	outFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tablescan",
	Short: "Tablescan profiles untrusted CSV files into typed schemas",
	Long: `Tablescan ingests an arbitrary CSV file and produces a structured profile:
detected encoding and delimiter, per-column semantic types, missing-value
accounting, summary statistics, and a cleaned table ready for aggregation
or charting.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tablescan/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "output", "o", "json", "output format: json|yaml")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults baked into the pipeline.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// readInput reads the file to profile, enforcing the intake size limit.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if cfg != nil && cfg.MaxFileBytes > 0 && int64(len(data)) > cfg.MaxFileBytes {
		return nil, fmt.Errorf("file too large (%d bytes, limit %d)", len(data), cfg.MaxFileBytes)
	}
	return data, nil
}
