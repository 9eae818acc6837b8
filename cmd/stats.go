package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tablescan/tablescan-cli/internal/profile"
)

var statsImputed bool

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Compute dataset counts and per-column numeric summaries",
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
		if statsImputed {
			t = profile.Impute(t, res.Classes, placeholder())
		}
		return emit(profile.ComputeStats(t))
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsImputed, "imputed", false, "compute statistics on the imputed table instead of the raw one")
	rootCmd.AddCommand(statsCmd)
}

func placeholder() string {
	if cfg != nil && cfg.CategoricalPlaceholder != "" {
		return cfg.CategoricalPlaceholder
	}
	return profile.DefaultPlaceholder
}
