package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "extractctl",
		Short:        "Extract name and zip code records from JSON payloads",
		Long:         "Runs the record extractor locally, optionally storing results in the configured bucket, and mints ingest tokens for the HTTP API.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			if verbose {
				if l, err := zap.NewDevelopment(); err == nil {
					zap.ReplaceGlobals(l)
				}
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable development logging")

	root.AddCommand(newExtractCmd(), newKeyCmd(), newTokenCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
