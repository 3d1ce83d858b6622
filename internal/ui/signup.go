package ui

import (
	"time"

	"taskflow/internal/api"
	"taskflow/internal/models"
	"taskflow/internal/routes"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	signupSucceeded = "Account created successfully! You can now login."
	signupFailed    = "Error creating account. Please try again."

	signupRedirect = 2 * time.Second
)

type signupModel struct {
	deps
	inputs     []textinput.Model
	focus      int
	submitting bool
	err        string
	success    string
}

const (
	signupEmail = iota
	signupPassword
	signupConfirm
)

func newSignup(d deps) signupModel {
	m := signupModel{
		deps:   d,
		inputs: make([]textinput.Model, 3),
	}
	for i := range m.inputs {
		m.inputs[i] = textinput.New()
	}
	m.inputs[signupEmail].Placeholder = "you@example.com"
	m.inputs[signupEmail].CharLimit = 254
	m.inputs[signupPassword].Placeholder = "At least 6 characters"
	m.inputs[signupConfirm].Placeholder = "Repeat password"
	for _, i := range []int{signupPassword, signupConfirm} {
		m.inputs[i].EchoMode = textinput.EchoPassword
		m.inputs[i].EchoCharacter = '•'
	}
	m.inputs[signupEmail].Focus()
	return m
}

func (m signupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *signupModel) setFocus(i int) tea.Cmd {
	m.focus = i
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m.inputs[i].Focus()
}

func (m signupModel) value(i int) string {
	return m.inputs[i].Value()
}

func (m signupModel) submit() (signupModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.err = ""
	m.success = ""

	email, password := m.value(signupEmail), m.value(signupPassword)
	if err := models.ValidateSignup(email, password, m.value(signupConfirm)); err != nil {
		m.err = err.Error()
		return m, nil
	}

	m.submitting = true
	return m, signupCmd(m.client, email, password)
}

func (m signupModel) Update(msg tea.Msg) (signupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case signupResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = signupError(msg.err)
			return m, nil
		}
		m.success = msg.message
		if m.success == "" {
			m.success = signupSucceeded
		}
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		return m, navigateAfter(signupRedirect, routes.Login)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+l":
			return m, navigate(routes.Login)
		case "tab", "down":
			cmd := m.setFocus((m.focus + 1) % len(m.inputs))
			return m, cmd
		case "shift+tab", "up":
			cmd := m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, cmd
		case "enter":
			if m.focus < len(m.inputs)-1 {
				cmd := m.setFocus(m.focus + 1)
				return m, cmd
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// signupError prefers the server's text, then the error itself
func signupError(err error) string {
	if msg := api.UserMessage(err, ""); msg != "" {
		return msg
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return signupFailed
}

func (m signupModel) View(spin string) string {
	labels := []string{"Email", "Password", "Confirm Password"}
	lines := []string{titleStyle.Render("Create Account"), ""}
	for i, input := range m.inputs {
		lines = append(lines, fieldLabel(m.focus == i, labels[i]), input.View())
	}
	lines = append(lines, "")

	switch {
	case m.submitting:
		lines = append(lines, statusStyle.Render(spin+" Creating account..."))
	case m.err != "":
		lines = append(lines, errorStyle.Render(m.err))
	case m.success != "":
		lines = append(lines, successStyle.Render(m.success))
	}
	lines = append(lines, helpStyle.Render("enter: sign up • ctrl+l: back to login"))

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
