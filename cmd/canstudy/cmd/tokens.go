package cmd

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/canstudy/tracker/internal/repository"
)

func TokensCmd() *cobra.Command {
	tokens := &cobra.Command{
		Use:   "tokens",
		Short: "Maintain verification tokens",
	}

	var olderThan time.Duration
	cleanup := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete used and expired tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(database *sqlx.DB, _ string) error {
				removed, err := repository.NewTokenRepository(database).CleanupExpired(olderThan)
				if err != nil {
					return fmt.Errorf("failed to clean up tokens: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d tokens\n", removed)
				return nil
			})
		},
	}
	cleanup.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "only delete tokens used or expired before this long ago")

	tokens.AddCommand(cleanup)
	return tokens
}
