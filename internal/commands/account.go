package commands

import (
	"fmt"

	"taskflow/internal/api"
	"taskflow/internal/session"
	"taskflow/internal/util"

	"github.com/spf13/cobra"
)

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current user information",
		Long:  "Ask the server who the saved session belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.requireLogin(cmd) {
				return nil
			}

			details, err := app.Client.GetUserDetails(cmd.Context())
			if err != nil {
				if api.IsUnauthorized(err) {
					fmt.Fprintln(out, "Your session is no longer accepted by the server. Please log in again.")
					return nil
				}
				fmt.Fprintln(out, "Error fetching account details:", api.UserMessage(err, err.Error()))
				return nil
			}

			fmt.Fprintf(out, "Logged in as: %s\n", details.Email)
			fmt.Fprintf(out, "Server: %s\n", app.Config.ServerURL)

			// the token is opaque to the client; expiry is shown when readable
			token, _ := app.Session.Token()
			if claims, err := session.Claims(token); err == nil && !claims.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "Session expires: %s\n", util.FormatTime(claims.ExpiresAt))
			}
			return nil
		},
	}
}
