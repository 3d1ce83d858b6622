package commands

import (
	"fmt"
	"strings"

	"taskflow/internal/api"
	"taskflow/internal/models"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the TaskFlow server",
		Long:  "Authenticate with the TaskFlow server and keep the session token for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var err error
			if email == "" {
				email, err = app.prompt(cmd, "Email: ")
				if err != nil {
					fmt.Fprintln(out, "Error reading email:", err)
					return nil
				}
			}
			if password == "" {
				password, err = app.promptPassword(cmd, "Password: ")
				if err != nil {
					fmt.Fprintln(out, "Error reading password:", err)
					return nil
				}
			}

			if _, err := app.Client.Login(cmd.Context(), strings.TrimSpace(email), password); err != nil {
				fmt.Fprintln(out, "Login failed:", api.UserMessage(err, err.Error()))
				return nil
			}

			app.Config.Email = strings.TrimSpace(email)
			if err := app.rememberEmail(app.Config.Email); err != nil {
				app.Logger.Warn("Could not remember email: %v", err)
			}

			fmt.Fprintf(out, "Successfully logged in as %s\n", app.Config.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var email, password, confirm string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		Long:  "Register a new account with the TaskFlow server. Log in afterwards to use it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var err error
			if email == "" {
				if email, err = app.prompt(cmd, "Email: "); err != nil {
					fmt.Fprintln(out, "Error reading email:", err)
					return nil
				}
			}
			if password == "" {
				if password, err = app.promptPassword(cmd, "Password: "); err != nil {
					fmt.Fprintln(out, "Error reading password:", err)
					return nil
				}
			}
			if confirm == "" {
				if confirm, err = app.promptPassword(cmd, "Confirm password: "); err != nil {
					fmt.Fprintln(out, "Error reading password confirmation:", err)
					return nil
				}
			}

			email = strings.TrimSpace(email)
			if err := models.ValidateSignup(email, password, confirm); err != nil {
				fmt.Fprintln(out, "Error:", err)
				return nil
			}

			result, err := app.Client.Signup(cmd.Context(), email, password)
			if err != nil {
				fmt.Fprintln(out, "Account creation failed:", api.UserMessage(err, err.Error()))
				return nil
			}

			message := result.Message
			if message == "" {
				message = "Account created successfully! You can now login."
			}
			fmt.Fprintln(out, message)
			fmt.Fprintf(out, "Run 'taskflow login --email %s' to start a session\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "Repeat the password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out from the TaskFlow server",
		Long:  "Remove the saved session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if err := app.Client.Logout(); err != nil {
				fmt.Fprintln(out, "Error during logout:", err)
				return nil
			}

			app.Config.Email = ""
			if err := app.rememberEmail(""); err != nil {
				app.Logger.Warn("Could not update config: %v", err)
			}

			fmt.Fprintln(out, "Successfully logged out")
			return nil
		},
	}
}
