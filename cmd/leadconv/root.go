package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/growthml/leadconv/pkg/log"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "leadconv",
	Short: "Synthetic lead conversion modeling pipeline",
	Long: `Generates a synthetic sales-lead dataset with a known conversion
structure, then trains and compares baseline, linear and boosted classifiers
on it, writing metrics, ROC curves, feature importances and the best model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ToLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
