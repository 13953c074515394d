package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempsuisse/platform/internal/config"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Hash an admin password",
	Long:  `Hash a password with bcrypt for use as ADMIN_PASSWORD_HASH.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHashPassword,
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	password, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}

	hash, err := password.HashPassword(args[0])
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
