package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/server/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

const secretEnv = "REVENUE_AUTH_JWT_SECRET"

type TokenCmd struct {
	tenantID string
	ttl      time.Duration
}

func NewTokenCmd() *cobra.Command {
	tc := &TokenCmd{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a tenant bearer token for the API (secret read from " + secretEnv + ")",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.tenantID, "tenant", "", "Tenant ID to embed")
	cmd.Flags().DurationVar(&tc.ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func (tc *TokenCmd) run(cmd *cobra.Command, _ []string) error {
	secret := os.Getenv(secretEnv)
	if secret == "" {
		return fmt.Errorf("%s is not set", secretEnv)
	}

	now := time.Now()
	token, err := middleware.IssueToken([]byte(secret), tc.tenantID, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(tc.ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
