package models

import (
	"fmt"
	"strings"
)

// TaskStatus is the workflow state of a task
type TaskStatus string

const (
	StatusTodo       TaskStatus = "Todo"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// TaskStatuses lists the statuses in workflow order
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

// ParseTaskStatus accepts the display form and common CLI spellings
// such as "in-progress" or "done".
func ParseTaskStatus(s string) (TaskStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)

	for _, status := range TaskStatuses {
		if strings.ToLower(string(status)) == norm {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of Todo, In Progress, Done)", ErrInvalidStatus, s)
}

// Next returns the following status, wrapping around after Done
func (s TaskStatus) Next() TaskStatus {
	for i, status := range TaskStatuses {
		if status == s {
			return TaskStatuses[(i+1)%len(TaskStatuses)]
		}
	}
	return StatusTodo
}

// Prev returns the preceding status, wrapping around before Todo
func (s TaskStatus) Prev() TaskStatus {
	for i, status := range TaskStatuses {
		if status == s {
			return TaskStatuses[(i+len(TaskStatuses)-1)%len(TaskStatuses)]
		}
	}
	return StatusTodo
}

// Task represents a task that belongs to one project
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	ProjectID   string     `json:"project_id"`
	Owner       string     `json:"owner,omitempty"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   Timestamp  `json:"updated_at"`
}

// TaskInput is the body sent when creating or updating a task
type TaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

// FindTask returns the task with the given ID
func FindTask(tasks []Task, id string) (*Task, bool) {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], true
		}
	}
	return nil, false
}
