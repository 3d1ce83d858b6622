package api

import (
	"context"
	"net/http"
	"net/url"

	"taskflow/internal/models"
)

// ListProjects retrieves all projects of the current user in server order
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/projects/", nil, &projects); err != nil {
		c.logger.Error("Error fetching projects: %v", err)
		return nil, err
	}

	c.logger.Info("Projects response: %d projects", len(projects))
	return projects, nil
}

// CreateProject creates a new project
func (c *Client) CreateProject(ctx context.Context, input models.ProjectInput) (*models.MutationResult, error) {
	var result models.MutationResult
	if err := c.do(ctx, http.MethodPost, "/projects/", input, &result); err != nil {
		c.logger.Error("Error creating project: %v", err)
		return nil, err
	}

	c.logger.Info("Create project response: %s (%s)", result.Message, result.ID)
	return &result, nil
}

// UpdateProject updates a project
func (c *Client) UpdateProject(ctx context.Context, projectID string, input models.ProjectInput) (*models.MutationResult, error) {
	var result models.MutationResult
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(projectID), input, &result); err != nil {
		c.logger.Error("Error updating project: %v", err)
		return nil, err
	}

	c.logger.Info("Update project response: %s", result.Message)
	return &result, nil
}

// DeleteProject deletes a project. The server removes its tasks as well.
func (c *Client) DeleteProject(ctx context.Context, projectID string) (*models.MutationResult, error) {
	var result models.MutationResult
	if err := c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(projectID), nil, &result); err != nil {
		c.logger.Error("Error deleting project: %v", err)
		return nil, err
	}

	c.logger.Info("Delete project response: %s", result.Message)
	return &result, nil
}
