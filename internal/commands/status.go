package commands

import (
	"fmt"

	"taskflow/internal/api"
	"taskflow/internal/session"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server and session status",
		Long:  `Check that the TaskFlow server answers and whether a session token is saved.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			green := color.New(color.FgGreen)
			yellow := color.New(color.FgYellow)
			red := color.New(color.FgRed)

			fmt.Fprintf(out, "Server: %s\n", app.Config.ServerURL)
			health, err := app.Client.Health(cmd.Context())
			if err != nil {
				red.Fprintf(out, "\tunreachable: %s\n", api.UserMessage(err, err.Error()))
			} else {
				green.Fprintf(out, "\t%s (%s)\n", health.Message, health.Status)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Session:")
			token, ok := app.Session.Token()
			if !ok {
				yellow.Fprintln(out, "\tnot logged in")
				fmt.Fprintln(out, "  (use \"taskflow login\" to start a session)")
				return nil
			}

			who := app.Config.Email
			if claims, err := session.Claims(token); err == nil && claims.Subject != "" {
				who = claims.Subject
			}
			if who == "" {
				green.Fprintln(out, "\tlogged in")
			} else {
				green.Fprintf(out, "\tlogged in as %s\n", who)
			}
			return nil
		},
	}
}
