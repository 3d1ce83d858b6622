package ui

import (
	"context"
	"time"

	"taskflow/internal/api"
	"taskflow/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages
type navigateMsg struct{ route string }

type loginResultMsg struct{ err error }

type signupResultMsg struct {
	message string
	err     error
}

type projectsLoadedMsg struct {
	projects []models.Project
	err      error
}

type projectSavedMsg struct{ err error }

type projectDeletedMsg struct {
	projectID string
	err       error
}

type tasksLoadedMsg struct {
	projectID string
	tasks     []models.Task
	err       error
}

type taskSavedMsg struct {
	projectID string
	err       error
}

type taskDeletedMsg struct {
	projectID string
	err       error
}

type closeTasksMsg struct{}

// Commands
//
// Every request runs on context.Background(). Leaving a screen does not
// cancel what it started; late results are dropped by the receiver.

func navigate(route string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{route: route}
	}
}

func navigateAfter(d time.Duration, route string) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return navigateMsg{route: route}
	})
}

func loginCmd(client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := client.Login(context.Background(), email, password)
		return loginResultMsg{err: err}
	}
}

func signupCmd(client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Signup(context.Background(), email, password)
		if err != nil {
			return signupResultMsg{err: err}
		}
		return signupResultMsg{message: result.Message}
	}
}

func loadProjectsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		projects, err := client.ListProjects(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

// saveProjectCmd creates a project when projectID is empty and updates it
// otherwise.
func saveProjectCmd(client *api.Client, projectID string, input models.ProjectInput) tea.Cmd {
	return func() tea.Msg {
		var err error
		if projectID == "" {
			_, err = client.CreateProject(context.Background(), input)
		} else {
			_, err = client.UpdateProject(context.Background(), projectID, input)
		}
		return projectSavedMsg{err: err}
	}
}

func deleteProjectCmd(client *api.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		_, err := client.DeleteProject(context.Background(), projectID)
		return projectDeletedMsg{projectID: projectID, err: err}
	}
}

func loadTasksCmd(client *api.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.ListTasks(context.Background(), projectID)
		return tasksLoadedMsg{projectID: projectID, tasks: tasks, err: err}
	}
}

// saveTaskCmd creates a task in projectID when taskID is empty and updates
// the task otherwise.
func saveTaskCmd(client *api.Client, projectID, taskID string, input models.TaskInput) tea.Cmd {
	return func() tea.Msg {
		var err error
		if taskID == "" {
			_, err = client.CreateTask(context.Background(), projectID, input)
		} else {
			_, err = client.UpdateTask(context.Background(), taskID, input)
		}
		return taskSavedMsg{projectID: projectID, err: err}
	}
}

func deleteTaskCmd(client *api.Client, projectID, taskID string) tea.Cmd {
	return func() tea.Msg {
		_, err := client.DeleteTask(context.Background(), taskID)
		return taskDeletedMsg{projectID: projectID, err: err}
	}
}
