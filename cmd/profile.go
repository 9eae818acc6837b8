package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tablescan/tablescan-cli/internal/profile"
)

var (
	profPreviewRows  int
	profNumericThr   float64
	profDatetimeThr  float64
	profNullTokens   bool
	profSampleValues int
)

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Profile a CSV file: format, column types, missing values, stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}

		res, _, err := profile.Profile(data, profileOptions(cmd))
		if err != nil {
			return err
		}
		return emit(res)
	},
}

func init() {
	profileCmd.Flags().IntVar(&profPreviewRows, "preview", 0, "preview rows to include (default from config)")
	profileCmd.Flags().Float64Var(&profNumericThr, "numeric-threshold", 0, "numeric parse-success ratio gate (default 0.9)")
	profileCmd.Flags().Float64Var(&profDatetimeThr, "datetime-threshold", 0, "datetime parse-success ratio gate (default 0.9)")
	profileCmd.Flags().BoolVar(&profNullTokens, "null-tokens", false, `treat textual null spellings ("null", "NA", ...) as missing`)
	profileCmd.Flags().IntVar(&profSampleValues, "sample-values", 0, "distinct sample values per column (default from config)")
	rootCmd.AddCommand(profileCmd)
}

// profileOptions merges config defaults with command-line overrides.
func profileOptions(cmd *cobra.Command) profile.Options {
	opts := profile.DefaultOptions()
	if cfg != nil {
		opts.Thresholds.Numeric = cfg.NumericThreshold
		opts.Thresholds.Datetime = cfg.DatetimeThreshold
		opts.PreviewRows = cfg.PreviewRows
		opts.SampleValues = cfg.SampleValues
		opts.SampleBytes = cfg.SampleBytes
		opts.NormalizeNullTokens = cfg.NormalizeNullTokens
		opts.NullTokens = cfg.NullTokens
	}

	f := cmd.Flags()
	if f.Changed("preview") && profPreviewRows > 0 {
		opts.PreviewRows = profPreviewRows
	}
	if f.Changed("numeric-threshold") && profNumericThr > 0 {
		opts.Thresholds.Numeric = profNumericThr
	}
	if f.Changed("datetime-threshold") && profDatetimeThr > 0 {
		opts.Thresholds.Datetime = profDatetimeThr
	}
	if f.Changed("null-tokens") {
		opts.NormalizeNullTokens = profNullTokens
	}
	if f.Changed("sample-values") && profSampleValues > 0 {
		opts.SampleValues = profSampleValues
	}
	return opts
}
