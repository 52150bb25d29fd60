package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/service/auth"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage bearer tokens",
	}
	cmd.AddCommand(newTokenIssueCmd())
	return cmd
}

// newTokenIssueCmd mints tokens for local testing; production tokens come
// from the identity provider sharing auth.jwt_secret.
func newTokenIssueCmd() *cobra.Command {
	var (
		learner string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token for a learner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			learnerID := uuid.New()
			if learner != "" {
				id, err := uuid.Parse(learner)
				if err != nil {
					return fmt.Errorf("invalid --learner %q: %w", learner, err)
				}
				learnerID = id
			}

			ctx, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			tokens, err := auth.NewTokenService(cfg.Auth)
			if err != nil {
				return err
			}

			token, err := tokens.IssueToken(ctx, learnerID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&learner, "learner", "", "learner UUID (default: a new random id)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
