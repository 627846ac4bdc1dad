package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/ghn/internal/credential"
)

func addAuth(topLevel *cobra.Command, o *options) {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored GitHub token",
	}

	login := &cobra.Command{
		Use:   "login",
		Short: "Store a GitHub token in the system keyring",
		Long: `Store a personal access token in the system keyring.

The token needs the "notifications" and "repo" scopes. GITHUB_TOKEN and
GH_TOKEN take precedence over the stored token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			err := huh.NewInput().
				Title("GitHub token").
				Description("Personal access token with notifications and repo scopes").
				EchoMode(huh.EchoModePassword).
				Value(&token).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("token is required")
					}
					return nil
				}).
				Run()
			if err != nil {
				return err
			}
			if err := credential.Set(credential.TokenKey, strings.TrimSpace(token)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token saved.")
			return nil
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored GitHub token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credential.Delete(credential.TokenKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token removed.")
			return nil
		},
	}

	cmd.AddCommand(login, logout)
	topLevel.AddCommand(cmd)
}
