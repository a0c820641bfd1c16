package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/frozen33/inventory/internal/auth"
	"github.com/frozen33/inventory/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an owner token for the HTTP API",
	Long: "Signs a bearer token carrying an opaque owner id. In production the\n" +
		"hosting application mints these; this command exists for local use\n" +
		"and smoke testing.",
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().String("owner", "", "opaque owner id (required)")
	tokenCmd.Flags().String("name", "", "display name recorded on saved bills")
	tokenCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if cfg.TokenSecret == "" {
		return fmt.Errorf("token_secret must be set (TILEBILL_TOKEN_SECRET)")
	}

	owner, _ := cmd.Flags().GetString("owner")
	name, _ := cmd.Flags().GetString("name")

	tokens := auth.NewTokenManager(cfg.TokenSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	token, err := tokens.Generate(owner, name)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
