package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"taskflow/internal/api"
	"taskflow/internal/config"
	"taskflow/internal/session"
	"taskflow/internal/util"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

const notLoggedIn = "You are not logged in. Please log in first."

// App holds what every command needs. It is filled in by the root
// command before any subcommand runs.
type App struct {
	Config    *config.Config
	ConfigDir string
	Session   *session.Session
	Logger    *util.Logger
	Client    *api.Client

	in *bufio.Reader
}

type rootOptions struct {
	server    string
	configDir string
	debug     bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	app := &App{}
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow - manage projects and tasks from the terminal",
		Long: `TaskFlow is a client for the TaskFlow API. It manages your projects and
the tasks inside them, either one command at a time or through the
interactive interface started with 'taskflow ui'.`,
		Version:      "0.1.0",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Logger.Close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", "", "API base URL (overrides TASKFLOW_API_BASE_URL and the config file)")
	flags.StringVar(&opts.configDir, "config-dir", "", "Directory for config, session token and log (default ~/.taskflow)")
	flags.BoolVar(&opts.debug, "debug", false, "Mirror the diagnostic log to stderr")

	rootCmd.AddCommand(
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newStatusCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newConfigCmd(app),
		newUICmd(app),
		newMockServerCmd(app),
	)

	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// setup resolves the configuration (flag, then environment, then file,
// then default) and wires the session, logger and API client.
func (a *App) setup(cmd *cobra.Command, opts *rootOptions) error {
	dir := opts.configDir
	if dir == "" {
		var err error
		dir, err = config.GetGlobalConfigDir()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	cfg, err := config.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if opts.server != "" {
		cfg.ServerURL = opts.server
	}
	if opts.debug {
		cfg.Debug = true
	}

	var mirror io.Writer
	if cfg.Debug {
		mirror = cmd.ErrOrStderr()
	}
	logger, err := util.NewLogger(filepath.Join(dir, config.LogFileName), mirror)
	if err != nil {
		return err
	}

	a.Config = cfg
	a.ConfigDir = dir
	a.Logger = logger
	a.Session = session.New(session.NewTokenStore(dir))
	a.Client = api.NewClient(cfg.ServerURL, a.Session, api.WithLogger(logger))
	a.in = bufio.NewReader(cmd.InOrStdin())

	logger.Info("%s (server %s)", cmd.CommandPath(), cfg.ServerURL)
	return nil
}

// rememberEmail stores email in the config file as saved on disk, so flag
// and environment overrides never end up persisted
func (a *App) rememberEmail(email string) error {
	cfg, err := config.Load(filepath.Join(a.ConfigDir, config.ConfigFileName))
	if err != nil {
		return err
	}
	cfg.Email = email
	return cfg.SaveDir(a.ConfigDir)
}

// requireLogin prints the not-logged-in notice and reports false when the
// session holds no token
func (a *App) requireLogin(cmd *cobra.Command) bool {
	if a.Session.IsAuthenticated() {
		return true
	}
	fmt.Fprintln(cmd.OutOrStdout(), notLoggedIn)
	return false
}

// prompt prints label and reads one line of input
func (a *App) prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptPassword reads a password without echo when stdin is a terminal
func (a *App) promptPassword(cmd *cobra.Command, label string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(f.Fd()) {
		fmt.Fprint(cmd.OutOrStdout(), label)
		password, err := term.ReadPassword(f.Fd())
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(password), nil
	}
	return a.prompt(cmd, label)
}

// confirm asks a y/n question; anything but y or Y is a no
func (a *App) confirm(cmd *cobra.Command, question string) bool {
	answer, err := a.prompt(cmd, question+" (y/n): ")
	if err != nil {
		return false
	}
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}
