package ui

import (
	"fmt"

	"taskflow/internal/models"
	"taskflow/internal/ui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tasksModel shows the tasks of a single project
type tasksModel struct {
	deps
	projectID     string
	tasks         components.TaskListModel
	formOpen      bool
	form          entityForm
	confirmDelete string
}

func newTasks(d deps, project models.Project, width, height int) tasksModel {
	w, h := listSize(width, height)
	return tasksModel{
		deps:      d,
		projectID: project.ID,
		tasks:     components.NewTaskListModel(fmt.Sprintf("Tasks · %s", project.Title), w, h),
	}
}

func (m tasksModel) Init() tea.Cmd {
	return loadTasksCmd(m.client, m.projectID)
}

func (m *tasksModel) setSize(width, height int) {
	m.tasks.List.SetSize(listSize(width, height))
}

func (m tasksModel) busy() bool {
	return m.formOpen || m.confirmDelete != "" || m.tasks.Filtering()
}

func (m tasksModel) Update(msg tea.Msg) (tasksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.projectID != m.projectID {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("Error loading tasks: %v", msg.err)
			return m, nil
		}
		m.tasks.SetTasks(msg.tasks)
		return m, nil

	case taskSavedMsg:
		if msg.projectID != m.projectID {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("Error saving task: %v", msg.err)
			return m, nil
		}
		m.formOpen = false
		return m, loadTasksCmd(m.client, m.projectID)

	case taskDeletedMsg:
		if msg.projectID != m.projectID {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("Error deleting task: %v", msg.err)
			return m, nil
		}
		return m, loadTasksCmd(m.client, m.projectID)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg)
	return m, cmd
}

func (m tasksModel) handleKey(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	if m.confirmDelete != "" {
		id := m.confirmDelete
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete = ""
			return m, deleteTaskCmd(m.client, m.projectID, id)
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
			return m, saveTaskCmd(m.client, m.projectID, m.form.editingID, m.form.taskInput())
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	if !m.tasks.Filtering() {
		selected := m.tasks.Selected
		switch msg.String() {
		case "n":
			m.form = newTaskForm(nil)
			m.formOpen = true
			cmd := m.form.setFocus(fieldTitle)
			return m, cmd
		case "e":
			if selected != nil {
				m.form = newTaskForm(selected)
				m.formOpen = true
				cmd := m.form.setFocus(fieldTitle)
				return m, cmd
			}
			return m, nil
		case "d":
			if selected != nil {
				m.confirmDelete = selected.ID
			}
			return m, nil
		case "s":
			// advance the status in place, like picking the next option
			if selected != nil {
				input := models.TaskInput{
					Title:       selected.Title,
					Description: selected.Description,
					Status:      selected.Status.Next(),
				}
				return m, saveTaskCmd(m.client, m.projectID, selected.ID, input)
			}
			return m, nil
		case "r":
			return m, loadTasksCmd(m.client, m.projectID)
		case "esc":
			if m.tasks.List.IsFiltered() {
				break
			}
			return m, func() tea.Msg { return closeTasksMsg{} }
		}
	}

	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg)
	return m, cmd
}

func (m tasksModel) View() string {
	if m.formOpen {
		return m.form.View()
	}

	sections := []string{m.tasks.View()}
	if m.confirmDelete != "" {
		sections = append(sections, errorStyle.Render("Are you sure you want to delete this task? (y/n)"))
	}
	sections = append(sections, helpStyle.Render("n: add task • e: edit • s: next status • d: delete • r: refresh • esc: close"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
