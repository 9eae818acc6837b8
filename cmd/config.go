package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/tablescan/tablescan-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set tablescan configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("numeric_threshold: %.3f\n", cfg.NumericThreshold)
		fmt.Printf("datetime_threshold: %.3f\n", cfg.DatetimeThreshold)
		fmt.Printf("categorical_placeholder: %s\n", cfg.CategoricalPlaceholder)
		fmt.Printf("normalize_null_tokens: %v\n", cfg.NormalizeNullTokens)
		fmt.Printf("null_tokens: %s\n", strings.Join(cfg.NullTokens, ","))
		fmt.Printf("preview_rows: %d\n", cfg.PreviewRows)
		fmt.Printf("sample_values: %d\n", cfg.SampleValues)
		fmt.Printf("max_file_bytes: %d\n", cfg.MaxFileBytes)
		fmt.Printf("sample_bytes: %d\n", cfg.SampleBytes)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "numeric_threshold", "datetime_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f > 1 {
				return fmt.Errorf("invalid ratio for %s: %v (use a value in (0, 1])", key, val)
			}
			if key == "numeric_threshold" {
				cfg.NumericThreshold = f
			} else {
				cfg.DatetimeThreshold = f
			}
		case "categorical_placeholder":
			cfg.CategoricalPlaceholder = val
		case "normalize_null_tokens":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for normalize_null_tokens: %v", val)
			}
			cfg.NormalizeNullTokens = b
		case "null_tokens":
			cfg.NullTokens = strings.Split(val, ",")
		case "preview_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for preview_rows: %v", val)
			}
			cfg.PreviewRows = i
		case "sample_values":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for sample_values: %v", val)
			}
			cfg.SampleValues = i
		case "max_file_bytes":
			i, err := strconv.ParseInt(val, 10, 64)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for max_file_bytes: %v", val)
			}
			cfg.MaxFileBytes = i
		case "sample_bytes":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for sample_bytes: %v", val)
			}
			cfg.SampleBytes = i
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Set %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
