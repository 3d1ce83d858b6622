package ui

import (
	"fmt"

	"taskflow/internal/api"
	"taskflow/internal/routes"
	"taskflow/internal/session"
	"taskflow/internal/util"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// deps are shared by every screen
type deps struct {
	client *api.Client
	logger *util.Logger
}

// App is the root model. It owns the current route and mounts a fresh
// screen each time the route changes.
type App struct {
	deps
	session   *session.Session
	route     string
	login     loginModel
	signup    signupModel
	dashboard dashboardModel
	Spinner   spinner.Model
	Width     int
	Height    int
}

// NewApp creates the root model starting at route, after the guard has
// resolved it against the client's session
func NewApp(client *api.Client, logger *util.Logger, route string) App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	a := App{
		deps:    deps{client: client, logger: logger},
		session: client.Session(),
		Spinner: s,
	}
	a.route = routes.Resolve(route, a.session)
	a.mount()
	return a
}

// Run starts the interactive client and blocks until it exits
func Run(client *api.Client, logger *util.Logger, route string) error {
	p := tea.NewProgram(NewApp(client, logger, route), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running interactive client: %w", err)
	}
	return nil
}

// Route returns the screen currently shown
func (a App) Route() string {
	return a.route
}

// mount replaces the screen for the current route with a new one
func (a *App) mount() tea.Cmd {
	switch a.route {
	case routes.Login:
		a.login = newLogin(a.deps)
		return a.login.Init()
	case routes.Signup:
		a.signup = newSignup(a.deps)
		return a.signup.Init()
	case routes.Dashboard:
		a.dashboard = newDashboard(a.deps, a.Width, a.Height)
		return a.dashboard.Init()
	}
	return nil
}

// Init initializes the model
func (a App) Init() tea.Cmd {
	var screen tea.Cmd
	switch a.route {
	case routes.Login:
		screen = a.login.Init()
	case routes.Signup:
		screen = a.signup.Init()
	case routes.Dashboard:
		screen = a.dashboard.Init()
	}
	return tea.Batch(a.Spinner.Tick, screen)
}

func (a *App) logout() tea.Cmd {
	if err := a.client.Logout(); err != nil {
		a.logger.Error("Logout failed: %v", err)
	}
	return navigate(routes.Login)
}

// Update handles UI updates
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+l":
			if a.route == routes.Dashboard {
				cmd := a.logout()
				return a, cmd
			}
		case "q":
			if a.route == routes.Dashboard && !a.dashboard.busy() {
				return a, tea.Quit
			}
		}

	case navigateMsg:
		a.route = routes.Resolve(msg.route, a.session)
		a.logger.Info("Navigate %s -> %s", msg.route, a.route)
		cmd := a.mount()
		return a, cmd

	case tea.WindowSizeMsg:
		a.Width = msg.Width
		a.Height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.Spinner, cmd = a.Spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.route {
	case routes.Login:
		a.login, cmd = a.login.Update(msg)
	case routes.Signup:
		a.signup, cmd = a.signup.Update(msg)
	case routes.Dashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	}
	return a, cmd
}

// View renders the UI
func (a App) View() string {
	spin := a.Spinner.View()

	var body, help string
	switch a.route {
	case routes.Login:
		body = a.login.View(spin)
		help = "ctrl+c: quit"
	case routes.Signup:
		body = a.signup.View(spin)
		help = "ctrl+c: quit"
	case routes.Dashboard:
		body = a.dashboard.View()
		help = "ctrl+l: logout • q: quit"
	}

	navbar := titleStyle.Render("TaskFlow")
	if a.session.IsAuthenticated() {
		who := "signed in"
		if token, ok := a.session.Token(); ok {
			if claims, err := session.Claims(token); err == nil && claims.Subject != "" {
				who = claims.Subject
			}
		}
		navbar = lipgloss.JoinHorizontal(lipgloss.Top, navbar, statusStyle.Render(who))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		navbar,
		body,
		helpStyle.Render(help),
	)
}
