package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"extract-store/internal/service"
)

func newKeyCmd() *cobra.Command {
	var (
		epochMillis int64
		suffix      string
	)
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print a storage key for the given request time",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("epoch-ms") {
				epochMillis = time.Now().UTC().UnixMilli()
			}
			keyer := service.StorageKeyer{Suffix: suffix}
			fmt.Fprintln(cmd.OutOrStdout(), keyer.Derive(epochMillis))
			return nil
		},
	}
	cmd.Flags().Int64Var(&epochMillis, "epoch-ms", 0, "request time in epoch milliseconds (default now)")
	cmd.Flags().StringVar(&suffix, "suffix", "", "optional key suffix, e.g. .json")
	return cmd
}
