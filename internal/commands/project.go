package commands

import (
	"errors"
	"fmt"
	"strings"

	"taskflow/internal/api"
	"taskflow/internal/models"
	"taskflow/internal/util"

	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
		Long:    "Create, list, update, and delete projects",
	}

	projectCmd.AddCommand(
		newProjectListCmd(app),
		newProjectCreateCmd(app),
		newProjectUpdateCmd(app),
		newProjectDeleteCmd(app),
	)
	return projectCmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long:  "List all projects of the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.requireLogin(cmd) {
				return nil
			}

			projects, err := app.Client.ListProjects(cmd.Context())
			if err != nil {
				fmt.Fprintln(out, "Error listing projects:", api.UserMessage(err, err.Error()))
				return nil
			}

			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found. Create one with 'taskflow project create'")
				return nil
			}

			fmt.Fprintf(out, "Projects:\n\n")
			for i, project := range projects {
				fmt.Fprintf(out, "%d. %s (ID: %s)\n", i+1, project.Title, project.ID)
				fmt.Fprintf(out, "   Description: %s\n", util.OrPlaceholder(project.Description, "-"))
				fmt.Fprintf(out, "   Created: %s\n", util.FormatTime(project.CreatedAt.Time))
				fmt.Fprintf(out, "   Updated: %s\n", util.FormatTime(project.UpdatedAt.Time))
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long:  "Create a new project. The title is prompted for when not given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.requireLogin(cmd) {
				return nil
			}

			if !cmd.Flags().Changed("title") {
				var err error
				if title, err = app.prompt(cmd, "Project title: "); err != nil {
					fmt.Fprintln(out, "Error reading title:", err)
					return nil
				}
				if !cmd.Flags().Changed("description") {
					if description, err = app.prompt(cmd, "Project description (optional): "); err != nil {
						fmt.Fprintln(out, "Error reading description:", err)
						return nil
					}
				}
			}

			input := models.ProjectInput{Title: strings.TrimSpace(title), Description: description}
			if input.Title == "" {
				fmt.Fprintln(out, "Error:", models.Invalid("Title is required"))
				return nil
			}

			result, err := app.Client.CreateProject(cmd.Context(), input)
			if err != nil {
				fmt.Fprintln(out, "Error creating project:", api.UserMessage(err, err.Error()))
				return nil
			}

			fmt.Fprintln(out, "Project created successfully!")
			fmt.Fprintf(out, "ID: %s\n", result.ID)
			fmt.Fprintf(out, "Title: %s\n", input.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	return cmd
}

// findProject looks the project up in the user's list; the API has no
// single-project endpoint
func findProject(app *App, cmd *cobra.Command, projectID string) (*models.Project, error) {
	projects, err := app.Client.ListProjects(cmd.Context())
	if err != nil {
		return nil, err
	}
	project, ok := models.FindProject(projects, projectID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrProjectNotFound, projectID)
	}
	return project, nil
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "update [project_id]",
		Short: "Update project",
		Long:  "Update a project's title or description. Without flags each field is prompted for.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.requireLogin(cmd) {
				return nil
			}

			project, err := findProject(app, cmd, args[0])
			if err != nil {
				fmt.Fprintln(out, "Error getting project:", api.UserMessage(err, err.Error()))
				return nil
			}

			input := models.ProjectInput{Title: project.Title, Description: project.Description}
			titleSet, descSet := cmd.Flags().Changed("title"), cmd.Flags().Changed("description")
			if titleSet {
				input.Title = title
			}
			if descSet {
				input.Description = description
			}

			// Prompt when no flag was given, keeping the current value on empty input
			if !titleSet && !descSet {
				if v, _ := app.prompt(cmd, fmt.Sprintf("Title [%s]: ", project.Title)); v != "" {
					input.Title = v
				}
				if v, _ := app.prompt(cmd, fmt.Sprintf("Description [%s]: ", project.Description)); v != "" {
					input.Description = v
				}
			}

			input.Title = strings.TrimSpace(input.Title)
			if input.Title == "" {
				fmt.Fprintln(out, "Error:", models.Invalid("Title is required"))
				return nil
			}
			if input.Title == project.Title && input.Description == project.Description {
				fmt.Fprintln(out, "No changes to make. Project remains unchanged.")
				return nil
			}

			if _, err := app.Client.UpdateProject(cmd.Context(), project.ID, input); err != nil {
				fmt.Fprintln(out, "Error updating project:", api.UserMessage(err, err.Error()))
				return nil
			}

			fmt.Fprintln(out, "Project updated successfully!")
			fmt.Fprintf(out, "ID: %s\n", project.ID)
			fmt.Fprintf(out, "Title: %s\n", input.Title)
			fmt.Fprintf(out, "Description: %s\n", util.OrPlaceholder(input.Description, "-"))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	return cmd
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete [project_id]",
		Short: "Delete project",
		Long:  "Delete a project together with all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.requireLogin(cmd) {
				return nil
			}

			project, err := findProject(app, cmd, args[0])
			if err != nil {
				if errors.Is(err, models.ErrProjectNotFound) {
					fmt.Fprintln(out, "Error:", err)
					return nil
				}
				fmt.Fprintln(out, "Error getting project:", api.UserMessage(err, err.Error()))
				return nil
			}

			if !force && !app.confirm(cmd, fmt.Sprintf("Are you sure you want to delete project '%s' and its tasks?", project.Title)) {
				fmt.Fprintln(out, "Project deletion cancelled.")
				return nil
			}

			if _, err := app.Client.DeleteProject(cmd.Context(), project.ID); err != nil {
				fmt.Fprintln(out, "Error deleting project:", api.UserMessage(err, err.Error()))
				return nil
			}

			fmt.Fprintln(out, "Project deleted successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete without confirmation")
	return cmd
}
