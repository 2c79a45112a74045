package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tupyy/async-services/internal/server/middlewares"
)

func newTokenCommand(a *app) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := middlewares.GenerateToken(a.cfg.Auth.Secret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "cli", "Token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token validity")
	registerSecretFlag(cmd.Flags(), a.cfg)
	return cmd
}
