package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/session"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage TaskFlow configuration",
		Long:  "View and update TaskFlow configuration settings",
	}

	configCmd.AddCommand(
		newConfigGetCmd(app),
		newConfigSetCmd(app),
		newConfigPathsCmd(app),
	)
	return configCmd
}

func newConfigGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "get [key]",
		Short:     "Get configuration value",
		Long:      "Display one effective configuration value, or all of them",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"server-url", "email", "debug"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := app.Config

			if len(args) == 0 {
				fmt.Fprintln(out, "Current configuration:")
				fmt.Fprintf(out, "Server URL: %s\n", cfg.ServerURL)
				if cfg.Email != "" {
					fmt.Fprintf(out, "Email: %s\n", cfg.Email)
				}
				fmt.Fprintf(out, "Debug: %t\n", cfg.Debug)
				return nil
			}

			switch args[0] {
			case "server-url":
				fmt.Fprintln(out, cfg.ServerURL)
			case "email":
				fmt.Fprintln(out, cfg.Email)
			case "debug":
				fmt.Fprintln(out, cfg.Debug)
			default:
				return fmt.Errorf("unknown configuration key: %s", args[0])
			}
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	var serverURL string
	var debug bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set configuration values",
		Long:  "Update configuration settings like the server URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Edit the file as stored, without flag or environment overrides
			path := filepath.Join(app.ConfigDir, config.ConfigFileName)
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			configUpdated := false

			if cmd.Flags().Changed("server-url") {
				newURL := strings.TrimRight(strings.TrimSpace(serverURL), "/")
				if newURL == "" {
					newURL = config.DefaultServerURL
				}
				fmt.Fprintf(out, "Server URL updated: %s -> %s\n", cfg.ServerURL, newURL)
				cfg.ServerURL = newURL
				configUpdated = true
			}

			if cmd.Flags().Changed("log-to-stderr") {
				cfg.Debug = debug
				fmt.Fprintf(out, "Debug logging: %t\n", debug)
				configUpdated = true
			}

			if !configUpdated {
				fmt.Fprintln(out, "No changes were made to the configuration.")
				return nil
			}

			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			fmt.Fprintln(out, "Configuration updated successfully.")
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server-url", "", "Set API server URL")
	cmd.Flags().BoolVar(&debug, "log-to-stderr", false, "Mirror the diagnostic log to stderr by default")
	return cmd
}

func newConfigPathsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show configuration file paths",
		Long:  "Display the paths of the config file, session token and log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			paths := []struct {
				name string
				path string
			}{
				{"Config file", filepath.Join(app.ConfigDir, config.ConfigFileName)},
				{"Auth token file", filepath.Join(app.ConfigDir, session.TokenFileName)},
				{"Log file", filepath.Join(app.ConfigDir, config.LogFileName)},
			}

			fmt.Fprintln(out, "Config paths:")
			fmt.Fprintf(out, "- Config directory: %s\n", app.ConfigDir)
			for _, p := range paths {
				fmt.Fprintf(out, "- %s: %s\n", p.name, p.path)
			}

			fmt.Fprintln(out, "\nExistence status:")
			for _, p := range paths {
				state := "Exists"
				if _, err := os.Stat(p.path); os.IsNotExist(err) {
					state = "Does not exist"
				}
				fmt.Fprintf(out, "- %s: %s\n", p.name, state)
			}
			return nil
		},
	}
}
