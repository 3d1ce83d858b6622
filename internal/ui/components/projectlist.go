package components

import (
	"taskflow/internal/models"
	"taskflow/internal/util"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProjectItem represents a project in the list
type ProjectItem struct {
	Project models.Project
}

// FilterValue returns the filter value for the project item
func (i ProjectItem) FilterValue() string {
	return i.Project.Title
}

// Title returns the title for the project item
func (i ProjectItem) Title() string {
	return i.Project.Title
}

// Description returns the description for the project item
func (i ProjectItem) Description() string {
	desc := util.Truncate(util.SingleLine(i.Project.Description), 80)
	return util.OrPlaceholder(desc, "No description")
}

// ProjectListModel represents the project list model
type ProjectListModel struct {
	List     list.Model
	Projects []models.Project
	Selected *models.Project
}

// NewProjectListModel creates a new project list model
func NewProjectListModel(width, height int) ProjectListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = "My Projects"
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(true)
	listModel.SetStatusBarItemName("project", "projects")
	listModel.Styles.Title = titleStyle

	return ProjectListModel{
		List:     listModel,
		Projects: []models.Project{},
	}
}

// SetProjects replaces the list contents, keeping the server's order
func (m *ProjectListModel) SetProjects(projects []models.Project) {
	m.Projects = projects

	items := make([]list.Item, len(projects))
	for i, project := range projects {
		items[i] = ProjectItem{Project: project}
	}

	m.List.SetItems(items)
	m.syncSelected()
}

// Select moves the cursor to the project at index i
func (m *ProjectListModel) Select(i int) {
	m.List.Select(i)
	m.syncSelected()
}

// Filtering reports whether the filter input is capturing keys
func (m ProjectListModel) Filtering() bool {
	return m.List.FilterState() == list.Filtering
}

// Update handles project list updates
func (m ProjectListModel) Update(msg tea.Msg) (ProjectListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncSelected()
	return m, cmd
}

func (m *ProjectListModel) syncSelected() {
	if item, ok := m.List.SelectedItem().(ProjectItem); ok {
		project := item.Project
		m.Selected = &project
	} else {
		m.Selected = nil
	}
}

// View renders the project list
func (m ProjectListModel) View() string {
	return m.List.View()
}

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("39")).
	Bold(true).
	MarginLeft(2)
