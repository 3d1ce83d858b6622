package commands

import (
	"fmt"
	"strings"

	"taskflow/internal/api"
	"taskflow/internal/models"
	"taskflow/internal/util"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	taskCmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage the tasks of a project",
		Long:    "Create, list, update, and delete tasks. Tasks always belong to one project.",
	}

	taskCmd.AddCommand(
		newTaskListCmd(app),
		newTaskCreateCmd(app),
		newTaskUpdateCmd(app),
		newTaskDeleteCmd(app),
	)
	return taskCmd
}

func statusColor(status models.TaskStatus) *color.Color {
	switch status {
	case models.StatusDone:
		return color.New(color.FgGreen)
	case models.StatusInProgress:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}

func newTaskListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list [project_id]",
		Short: "List the tasks of a project",
		Long:  "List the tasks of a project, optionally only those with one status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.requireLogin(cmd) {
				return nil
			}
			projectID := args[0]

			var (
				tasks []models.Task
				err   error
			)
			if status != "" {
				s, parseErr := models.ParseTaskStatus(status)
				if parseErr != nil {
					fmt.Fprintln(out, "Error:", parseErr)
					return nil
				}
				tasks, err = app.Client.FilterTasks(cmd.Context(), projectID, s)
			} else {
				tasks, err = app.Client.ListTasks(cmd.Context(), projectID)
			}
			if err != nil {
				fmt.Fprintln(out, "Error listing tasks:", api.UserMessage(err, err.Error()))
				return nil
			}

			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found. Create one with 'taskflow task create "+projectID+"'")
				return nil
			}

			fmt.Fprintf(out, "Tasks:\n\n")
			for _, task := range tasks {
				statusColor(task.Status).Fprintf(out, "\t%-12s", task.Status)
				fmt.Fprintf(out, " %s (ID: %s)\n", task.Title, task.ID)
				if task.Description != "" {
					fmt.Fprintf(out, "\t%-12s %s\n", "", util.Truncate(util.SingleLine(task.Description), 72))
				}
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%d task(s)\n", len(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only show tasks with this status (Todo, In Progress, Done)")
	return cmd
}

func newTaskCreateCmd(app *App) *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "create [project_id]",
		Short: "Create a task in a project",
		Long:  "Create a task in a project. New tasks start as Todo unless --status is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.requireLogin(cmd) {
				return nil
			}

			if !cmd.Flags().Changed("title") {
				var err error
				if title, err = app.prompt(cmd, "Task title: "); err != nil {
					fmt.Fprintln(out, "Error reading title:", err)
					return nil
				}
			}

			s, err := models.ParseTaskStatus(status)
			if err != nil {
				fmt.Fprintln(out, "Error:", err)
				return nil
			}
			input := models.TaskInput{Title: strings.TrimSpace(title), Description: description, Status: s}
			if input.Title == "" {
				fmt.Fprintln(out, "Error:", models.Invalid("Title is required"))
				return nil
			}

			result, err := app.Client.CreateTask(cmd.Context(), args[0], input)
			if err != nil {
				fmt.Fprintln(out, "Error creating task:", api.UserMessage(err, err.Error()))
				return nil
			}

			fmt.Fprintln(out, "Task created successfully!")
			fmt.Fprintf(out, "ID: %s\n", result.ID)
			fmt.Fprintf(out, "Title: %s\n", input.Title)
			fmt.Fprintf(out, "Status: %s\n", input.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", string(models.StatusTodo), "Task status (Todo, In Progress, Done)")
	return cmd
}

// findTask looks the task up in its project's list; the API has no
// single-task endpoint
func findTask(app *App, cmd *cobra.Command, projectID, taskID string) (*models.Task, error) {
	tasks, err := app.Client.ListTasks(cmd.Context(), projectID)
	if err != nil {
		return nil, err
	}
	task, ok := models.FindTask(tasks, taskID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrTaskNotFound, taskID)
	}
	return task, nil
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "update [project_id] [task_id]",
		Short: "Update a task",
		Long:  "Update a task's title, description or status. Fields without a flag keep their value.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.requireLogin(cmd) {
				return nil
			}

			task, err := findTask(app, cmd, args[0], args[1])
			if err != nil {
				fmt.Fprintln(out, "Error getting task:", api.UserMessage(err, err.Error()))
				return nil
			}

			input := models.TaskInput{Title: task.Title, Description: task.Description, Status: task.Status}
			if cmd.Flags().Changed("title") {
				input.Title = strings.TrimSpace(title)
			}
			if cmd.Flags().Changed("description") {
				input.Description = description
			}
			if cmd.Flags().Changed("status") {
				s, err := models.ParseTaskStatus(status)
				if err != nil {
					fmt.Fprintln(out, "Error:", err)
					return nil
				}
				input.Status = s
			}

			if input.Title == "" {
				fmt.Fprintln(out, "Error:", models.Invalid("Title is required"))
				return nil
			}
			if input == (models.TaskInput{Title: task.Title, Description: task.Description, Status: task.Status}) {
				fmt.Fprintln(out, "No changes to make. Task remains unchanged.")
				return nil
			}

			if _, err := app.Client.UpdateTask(cmd.Context(), task.ID, input); err != nil {
				fmt.Fprintln(out, "Error updating task:", api.UserMessage(err, err.Error()))
				return nil
			}

			fmt.Fprintln(out, "Task updated successfully!")
			fmt.Fprintf(out, "Title: %s\n", input.Title)
			fmt.Fprintf(out, "Status: %s\n", input.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "Task status (Todo, In Progress, Done)")
	return cmd
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete [project_id] [task_id]",
		Short: "Delete a task",
		Long:  "Delete a task from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.requireLogin(cmd) {
				return nil
			}

			task, err := findTask(app, cmd, args[0], args[1])
			if err != nil {
				fmt.Fprintln(out, "Error getting task:", api.UserMessage(err, err.Error()))
				return nil
			}

			if !force && !app.confirm(cmd, fmt.Sprintf("Are you sure you want to delete task '%s'?", task.Title)) {
				fmt.Fprintln(out, "Task deletion cancelled.")
				return nil
			}

			if _, err := app.Client.DeleteTask(cmd.Context(), task.ID); err != nil {
				fmt.Fprintln(out, "Error deleting task:", api.UserMessage(err, err.Error()))
				return nil
			}

			fmt.Fprintln(out, "Task deleted successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete without confirmation")
	return cmd
}
