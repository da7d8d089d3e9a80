package cli

import (
	"fmt"

	"socialrunner/runner-app/internal/auth"
	"socialrunner/runner-app/internal/config"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token for a runner",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseIDFlag(cmd, "user")
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		token, err := auth.GenerateToken(cfg.JWT.Secret, userID, cfg.JWT.Expiration)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("user", "", "runner ObjectID (hex)")
	_ = tokenCmd.MarkFlagRequired("user")
}
