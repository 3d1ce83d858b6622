package api

import (
	"context"
	"net/http"
	"net/url"

	"taskflow/internal/models"
)

// ListTasks retrieves the tasks of one project in server order
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	c.logger.Info("Fetching tasks for project: %s", projectID)

	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/project/"+url.PathEscape(projectID), nil, &tasks); err != nil {
		c.logger.Error("Error fetching tasks: %v", err)
		return nil, err
	}

	c.logger.Info("Tasks response: %d tasks", len(tasks))
	return tasks, nil
}

// FilterTasks retrieves the tasks of one project that have the given status
func (c *Client) FilterTasks(ctx context.Context, projectID string, status models.TaskStatus) ([]models.Task, error) {
	path := "/tasks/project/" + url.PathEscape(projectID) + "/filter?" +
		url.Values{"status": {string(status)}}.Encode()

	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		c.logger.Error("Error filtering tasks: %v", err)
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task under a project
func (c *Client) CreateTask(ctx context.Context, projectID string, input models.TaskInput) (*models.MutationResult, error) {
	var result models.MutationResult
	if err := c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(projectID), input, &result); err != nil {
		c.logger.Error("Error creating task: %v", err)
		return nil, err
	}

	c.logger.Info("Create task response: %s (%s)", result.Message, result.ID)
	return &result, nil
}

// UpdateTask updates a task
func (c *Client) UpdateTask(ctx context.Context, taskID string, input models.TaskInput) (*models.MutationResult, error) {
	var result models.MutationResult
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(taskID), input, &result); err != nil {
		c.logger.Error("Error updating task: %v", err)
		return nil, err
	}

	c.logger.Info("Update task response: %s", result.Message)
	return &result, nil
}

// DeleteTask deletes a task
func (c *Client) DeleteTask(ctx context.Context, taskID string) (*models.MutationResult, error) {
	var result models.MutationResult
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(taskID), nil, &result); err != nil {
		c.logger.Error("Error deleting task: %v", err)
		return nil, err
	}

	c.logger.Info("Delete task response: %s", result.Message)
	return &result, nil
}
