package cmd

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tablescan/tablescan-cli/internal/filter"
	"github.com/tablescan/tablescan-cli/internal/profile"
)

var (
	fltColumn string
	fltMin    float64
	fltMax    float64
	fltValues []string
	fltOp     string
	fltValue  string
)

var filterCmd = &cobra.Command{
	Use:   "filter <file>",
	Short: "Keep rows matching a range, set or text predicate on one column",
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

		spec := filter.Spec{
			Column: fltColumn,
			Values: fltValues,
			Op:     filter.Op(fltOp),
			Value:  fltValue,
		}
		f := cmd.Flags()
		if f.Changed("min") {
			v := fltMin
			spec.Min = &v
		}
		if f.Changed("max") {
			v := fltMax
			spec.Max = &v
		}

		out, err := filter.Apply(t, res.Classes, spec)
		if err != nil {
			return err
		}

		w := csv.NewWriter(os.Stdout)
		w.Comma = out.Delimiter
		if err := w.Write(out.Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		if err := w.WriteAll(out.Rows); err != nil {
			return fmt.Errorf("write rows: %w", err)
		}
		return nil
	},
}

func init() {
	filterCmd.Flags().StringVar(&fltColumn, "column", "", "column to filter on (empty passes the table through)")
	filterCmd.Flags().Float64Var(&fltMin, "min", 0, "lower bound for numeric columns")
	filterCmd.Flags().Float64Var(&fltMax, "max", 0, "upper bound for numeric columns")
	filterCmd.Flags().StringSliceVar(&fltValues, "values", nil, "categorical membership set")
	filterCmd.Flags().StringVar(&fltOp, "op", "", "text operator: contains|equals")
	filterCmd.Flags().StringVar(&fltValue, "value", "", "value for the text operator")
	rootCmd.AddCommand(filterCmd)
}
