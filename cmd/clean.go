package cmd

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tablescan/tablescan-cli/internal/profile"
)

var cleanOutPath string

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Emit an imputed copy of a CSV: medians for measures, a placeholder for categoricals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}

		res, t, err := profile.Profile(data, profileOptions(cmd))
		if err != nil {
			return err
		}
		cleaned := profile.Impute(t, res.Classes, placeholder())

		out := os.Stdout
		if cleanOutPath != "" {
			f, err := os.Create(cleanOutPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			out = f
		}

		w := csv.NewWriter(out)
		w.Comma = cleaned.Delimiter
		if err := w.Write(cleaned.Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		if err := w.WriteAll(cleaned.Rows); err != nil {
			return fmt.Errorf("write rows: %w", err)
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanOutPath, "out", "", "write the cleaned CSV to a file instead of stdout")
	rootCmd.AddCommand(cleanCmd)
}
