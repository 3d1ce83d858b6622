package commands

import (
	"taskflow/internal/routes"
	"taskflow/internal/ui"

	"github.com/spf13/cobra"
)

func newUICmd(app *App) *cobra.Command {
	var route string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the interactive interface",
		Long: `Start the full-screen interface. Without a session it opens the login
screen; with one it opens the project dashboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(app.Client, app.Logger, route)
		},
	}

	cmd.Flags().StringVar(&route, "route", routes.Root, "Screen to open: /login, /signup or /dashboard")
	return cmd
}
