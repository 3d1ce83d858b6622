package ui

import (
	"taskflow/internal/models"
	"taskflow/internal/ui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dashboardModel lists the user's projects and opens the tasks of the
// selected one.
type dashboardModel struct {
	deps
	projects      components.ProjectListModel
	formOpen      bool
	form          entityForm
	confirmDelete string
	tasksOpen     bool
	tasks         tasksModel
	width         int
	height        int
}

func newDashboard(d deps, width, height int) dashboardModel {
	m := dashboardModel{
		deps:     d,
		projects: components.NewProjectListModel(listSize(width, height)),
		width:    width,
		height:   height,
	}
	return m
}

func (m dashboardModel) Init() tea.Cmd {
	return loadProjectsCmd(m.client)
}

// busy reports whether keystrokes belong to a form or a prompt
func (m dashboardModel) busy() bool {
	return m.formOpen || m.confirmDelete != "" || m.projects.Filtering() || (m.tasksOpen && m.tasks.busy())
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.projects.List.SetSize(listSize(msg.Width, msg.Height))
		if m.tasksOpen {
			m.tasks.setSize(msg.Width, msg.Height)
		}
		return m, nil

	case projectsLoadedMsg:
		if msg.err != nil {
			m.logger.Error("Error loading projects: %v", msg.err)
			return m, nil
		}
		m.projects.SetProjects(msg.projects)
		if m.tasksOpen {
			if _, ok := models.FindProject(msg.projects, m.tasks.projectID); !ok {
				m.tasksOpen = false
			}
		}
		return m, nil

	case projectSavedMsg:
		if msg.err != nil {
			m.logger.Error("Error saving project: %v", msg.err)
			return m, nil
		}
		m.formOpen = false
		return m, loadProjectsCmd(m.client)

	case projectDeletedMsg:
		if msg.err != nil {
			m.logger.Error("Error deleting project: %v", msg.err)
			return m, nil
		}
		if m.tasksOpen && m.tasks.projectID == msg.projectID {
			m.tasksOpen = false
		}
		return m, loadProjectsCmd(m.client)

	case closeTasksMsg:
		m.tasksOpen = false
		return m, nil

	case tasksLoadedMsg, taskSavedMsg, taskDeletedMsg:
		if !m.tasksOpen {
			return m, nil
		}
		var cmd tea.Cmd
		m.tasks, cmd = m.tasks.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	return m, cmd
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	if m.confirmDelete != "" {
		id := m.confirmDelete
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete = ""
			return m, deleteProjectCmd(m.client, id)
		case "n", "N", "esc":
			m.confirmDelete = ""
		}
		return m, nil
	}

	if m.formOpen {
		switch msg.String() {
		case "esc":
			m.formOpen = false
			return m, nil
		case "enter":
			if err := m.form.validate(); err != nil {
				m.form.err = err.Error()
				return m, nil
			}
			m.form.err = ""
			return m, saveProjectCmd(m.client, m.form.editingID, m.form.projectInput())
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	if m.tasksOpen {
		var cmd tea.Cmd
		m.tasks, cmd = m.tasks.Update(msg)
		return m, cmd
	}

	if !m.projects.Filtering() {
		switch msg.String() {
		case "n":
			m.form = newProjectForm(nil)
			m.formOpen = true
			cmd := m.form.setFocus(fieldTitle)
			return m, cmd
		case "e":
			if m.projects.Selected != nil {
				m.form = newProjectForm(m.projects.Selected)
				m.formOpen = true
				cmd := m.form.setFocus(fieldTitle)
				return m, cmd
			}
			return m, nil
		case "d":
			if m.projects.Selected != nil {
				m.confirmDelete = m.projects.Selected.ID
			}
			return m, nil
		case "enter":
			if m.projects.Selected != nil {
				m.tasks = newTasks(m.deps, *m.projects.Selected, m.width, m.height)
				m.tasksOpen = true
				return m, m.tasks.Init()
			}
			return m, nil
		case "r":
			return m, loadProjectsCmd(m.client)
		}
	}

	var cmd tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	return m, cmd
}

func (m dashboardModel) View() string {
	if m.formOpen {
		return m.form.View()
	}
	if m.tasksOpen {
		return m.tasks.View()
	}

	sections := []string{m.projects.View()}
	if m.confirmDelete != "" {
		sections = append(sections, errorStyle.Render("Are you sure you want to delete this project? (y/n)"))
	}
	sections = append(sections, helpStyle.Render("n: new project • e: edit • d: delete • enter: tasks • r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// listSize leaves room for the title, status and help bars
func listSize(width, height int) (int, int) {
	w, h := width, height-6
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 20
	}
	return w, h
}
