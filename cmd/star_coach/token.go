package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/star-coach/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API token for an owner id",
	Long:  "Signs a JWT with JWT_SECRET for local use against the REST API. Without --user a new owner id is generated.",
	RunE:  runToken,
}

var tokenUser string

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "Owner id (UUID) the token is issued for")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtCfg, err := appConfig.JWT()
	if err != nil {
		return err
	}

	owner := uuid.New()
	if tokenUser != "" {
		if owner, err = uuid.Parse(tokenUser); err != nil {
			return fmt.Errorf("invalid --user %q: %w", tokenUser, err)
		}
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(owner)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "owner: %s\n", owner)
	_, _ = fmt.Fprintf(out, "expires in: %s\n", jwtCfg.Expiration())
	_, _ = fmt.Fprintln(out, token)
	return nil
}
