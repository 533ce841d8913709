package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/messhub/ledger/internal/auth"
	"github.com/messhub/ledger/internal/models"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Bearer tokens for the HTTP API",
	}

	var (
		userID int64
		role   string
		ttl    time.Duration
	)
	issue := &cobra.Command{
		Use:     "issue",
		Short:   "Sign a bearer token with the configured secret",
		Example: "  messledger token issue --user 7 --role user --ttl 24h",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Auth.JWTSecret == "" {
				return errors.New("no jwt_secret configured")
			}
			if userID <= 0 {
				return fmt.Errorf("--user must be a positive id")
			}

			tokens := auth.NewTokens(a.cfg.Auth.JWTSecret, a.cfg.Auth.Issuer)
			token, err := tokens.Issue(userID, models.Role(role), ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().Int64Var(&userID, "user", 0, "user id placed in the sub claim")
	issue.Flags().StringVar(&role, "role", string(models.RoleUser), "admin or user")
	issue.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = issue.MarkFlagRequired("user")

	cmd.AddCommand(issue)
	return cmd
}
