package ui

import (
	"fmt"
	"strings"

	"taskflow/internal/models"
	"taskflow/internal/ui/components"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldStatus
)

// entityForm is the create/edit modal shared by projects and tasks.
// editingID is empty when creating.
type entityForm struct {
	heading     string
	editingID   string
	title       textinput.Model
	description textinput.Model
	withStatus  bool
	status      models.TaskStatus
	focus       int
	err         string
}

func newEntityForm(heading, editingID, title, description string) entityForm {
	f := entityForm{
		heading:     heading,
		editingID:   editingID,
		title:       textinput.New(),
		description: textinput.New(),
	}
	f.title.Placeholder = "Title"
	f.title.CharLimit = 200
	f.title.SetValue(title)
	f.description.Placeholder = "Description"
	f.description.CharLimit = 1000
	f.description.SetValue(description)
	return f
}

func newProjectForm(project *models.Project) entityForm {
	if project == nil {
		return newEntityForm("Create Project", "", "", "")
	}
	return newEntityForm("Edit Project", project.ID, project.Title, project.Description)
}

func newTaskForm(task *models.Task) entityForm {
	var f entityForm
	if task == nil {
		f = newEntityForm("Add Task", "", "", "")
		f.status = models.StatusTodo
	} else {
		f = newEntityForm("Edit Task", task.ID, task.Title, task.Description)
		f.status = task.Status
		if f.status == "" {
			f.status = models.StatusTodo
		}
	}
	f.withStatus = true
	return f
}

func (f entityForm) fieldCount() int {
	if f.withStatus {
		return 3
	}
	return 2
}

func (f *entityForm) setFocus(field int) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	switch field {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	}
	return nil
}

// Update handles field navigation and text entry. Submit and cancel are
// left to the owning screen.
func (f entityForm) Update(msg tea.KeyMsg) (entityForm, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		cmd := f.setFocus((f.focus + 1) % f.fieldCount())
		return f, cmd
	case "shift+tab", "up":
		cmd := f.setFocus((f.focus + f.fieldCount() - 1) % f.fieldCount())
		return f, cmd
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldStatus:
		switch msg.String() {
		case "right", "l", " ":
			f.status = f.status.Next()
		case "left", "h":
			f.status = f.status.Prev()
		}
	}
	return f, cmd
}

// validate reports a local failure; nothing is sent when it returns an error
func (f entityForm) validate() error {
	if strings.TrimSpace(f.title.Value()) == "" {
		return models.Invalid("Title is required")
	}
	return nil
}

func (f entityForm) projectInput() models.ProjectInput {
	return models.ProjectInput{
		Title:       f.title.Value(),
		Description: f.description.Value(),
	}
}

func (f entityForm) taskInput() models.TaskInput {
	return models.TaskInput{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Status:      f.status,
	}
}

func (f entityForm) label(field int, text string) string {
	if f.focus == field {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (f entityForm) View() string {
	lines := []string{
		titleStyle.Render(f.heading),
		"",
		f.label(fieldTitle, "Title"),
		f.title.View(),
		f.label(fieldDescription, "Description"),
		f.description.View(),
	}
	if f.withStatus {
		lines = append(lines,
			f.label(fieldStatus, "Status"),
			fmt.Sprintf("◀ %s ▶", components.StatusStyle(f.status).Render(string(f.status))),
		)
	}
	if f.err != "" {
		lines = append(lines, "", errorStyle.Render(f.err))
	}
	submit := "Create"
	if f.editingID != "" {
		submit = "Update"
	}
	lines = append(lines, "", helpStyle.Render(fmt.Sprintf("enter: %s • tab: next field • esc: cancel", submit)))

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
