package ui

import (
	"taskflow/internal/api"
	"taskflow/internal/routes"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const loginFailed = "Login failed. Please check your credentials."

type loginModel struct {
	deps
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	err        string
}

func newLogin(d deps) loginModel {
	m := loginModel{
		deps:     d,
		email:    textinput.New(),
		password: textinput.New(),
	}
	m.email.Placeholder = "you@example.com"
	m.email.CharLimit = 254
	m.password.Placeholder = "Password"
	m.password.EchoMode = textinput.EchoPassword
	m.password.EchoCharacter = '•'
	m.email.Focus()
	return m
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) setFocus(i int) tea.Cmd {
	m.focus = i
	if i == 0 {
		m.password.Blur()
		return m.email.Focus()
	}
	m.email.Blur()
	return m.password.Focus()
}

// submit starts a login unless one is already in flight
func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.err = ""
	return m, loginCmd(m.client, m.email.Value(), m.password.Value())
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = api.UserMessage(msg.err, loginFailed)
			return m, nil
		}
		m.password.SetValue("")
		return m, navigate(routes.Dashboard)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+n":
			return m, navigate(routes.Signup)
		case "tab", "shift+tab", "up", "down":
			cmd := m.setFocus(1 - m.focus)
			return m, cmd
		case "enter":
			if m.focus == 0 {
				cmd := m.setFocus(1)
				return m, cmd
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) View(spin string) string {
	lines := []string{
		titleStyle.Render("Login"),
		"",
		fieldLabel(m.focus == 0, "Email"),
		m.email.View(),
		fieldLabel(m.focus == 1, "Password"),
		m.password.View(),
		"",
	}
	switch {
	case m.submitting:
		lines = append(lines, statusStyle.Render(spin+" Logging in..."))
	case m.err != "":
		lines = append(lines, errorStyle.Render(m.err))
	}
	lines = append(lines, helpStyle.Render("enter: login • ctrl+n: create an account"))

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func fieldLabel(focused bool, text string) string {
	if focused {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}
