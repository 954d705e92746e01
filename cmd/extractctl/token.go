package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/cobra"

	"extract-store/internal/service"
)

type tokenEnv struct {
	Secret string `env:"JWT_SECRET,required"`
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for POST /records",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg tokenEnv
			if err := env.Parse(&cfg); err != nil {
				return err
			}
			token, err := service.NewTokenService(cfg.Secret, ttl).Issue(subject)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "client identifier")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
