package components

import (
	"fmt"

	"taskflow/internal/models"
	"taskflow/internal/util"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TaskItem represents a task in the list
type TaskItem struct {
	Task models.Task
}

// FilterValue returns the filter value for the task item
func (i TaskItem) FilterValue() string {
	return i.Task.Title
}

// Title returns the title for the task item
func (i TaskItem) Title() string {
	return i.Task.Title
}

// Description returns the status and description for the task item
func (i TaskItem) Description() string {
	desc := util.OrPlaceholder(util.Truncate(util.SingleLine(i.Task.Description), 60), "-")
	return fmt.Sprintf("%s · %s", StatusStyle(i.Task.Status).Render(string(i.Task.Status)), desc)
}

// StatusStyle returns the color used for a task status
func StatusStyle(status models.TaskStatus) lipgloss.Style {
	switch status {
	case models.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	case models.StatusInProgress:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}
}

// TaskListModel represents the task list of one project
type TaskListModel struct {
	List     list.Model
	Tasks    []models.Task
	Selected *models.Task
}

// NewTaskListModel creates a new task list model
func NewTaskListModel(title string, width, height int) TaskListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = title
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(true)
	listModel.SetStatusBarItemName("task", "tasks")
	listModel.Styles.Title = titleStyle

	return TaskListModel{
		List:  listModel,
		Tasks: []models.Task{},
	}
}

// SetTasks sets the tasks in the list
func (m *TaskListModel) SetTasks(tasks []models.Task) {
	m.Tasks = tasks

	items := make([]list.Item, len(tasks))
	for i, task := range tasks {
		items[i] = TaskItem{Task: task}
	}

	m.List.SetItems(items)
	m.syncSelected()
}

// Select moves the cursor to the task at index i
func (m *TaskListModel) Select(i int) {
	m.List.Select(i)
	m.syncSelected()
}

// Filtering reports whether the filter input is capturing keys
func (m TaskListModel) Filtering() bool {
	return m.List.FilterState() == list.Filtering
}

// Update handles task list updates
func (m TaskListModel) Update(msg tea.Msg) (TaskListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncSelected()
	return m, cmd
}

func (m *TaskListModel) syncSelected() {
	if item, ok := m.List.SelectedItem().(TaskItem); ok {
		task := item.Task
		m.Selected = &task
	} else {
		m.Selected = nil
	}
}

// View renders the task list
func (m TaskListModel) View() string {
	return m.List.View()
}
