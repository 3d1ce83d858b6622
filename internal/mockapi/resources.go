package mockapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"taskflow/internal/models"
)

var validStatuses = []string{"Todo", "In Progress", "Done"}

type projectBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type taskBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func validateProject(b projectBody, create bool) []issue {
	var issues []issue
	if b.Title == nil {
		if create {
			issues = append(issues, issue{Loc: []string{"body", "title"}, Msg: "Field required", Type: "missing"})
		}
	} else if n := len(*b.Title); n < 1 || n > 100 {
		issues = append(issues, issue{Loc: []string{"body", "title"}, Msg: "String should have between 1 and 100 characters", Type: "string_length"})
	}
	if b.Description != nil && len(*b.Description) > 500 {
		issues = append(issues, issue{Loc: []string{"body", "description"}, Msg: "String should have at most 500 characters", Type: "string_too_long"})
	}
	return issues
}

func (s *Server) findProject(id, owner string) *models.Project {
	for _, p := range s.projects {
		if p.ID == id && p.Owner == owner {
			return p
		}
	}
	return nil
}

func (s *Server) findTask(id, owner string) *models.Task {
	for _, t := range s.tasks {
		if t.ID == id && t.Owner == owner {
			return t
		}
	}
	return nil
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	projects := []models.Project{}
	for _, p := range s.projects {
		if p.Owner == owner {
			projects = append(projects, *p)
		}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var body projectBody
	if !decodeBody(w, r, &body) {
		return
	}
	if issues := validateProject(body, true); len(issues) > 0 {
		writeIssues(w, issues)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := models.Timestamp{Time: s.now().UTC()}
	p := &models.Project{
		ID:        newID(),
		Title:     *body.Title,
		Owner:     ownerFrom(r.Context()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if body.Description != nil {
		p.Description = *body.Description
	}
	s.projects = append(s.projects, p)

	writeJSON(w, http.StatusOK, map[string]string{
		"id":          p.ID,
		"message":     "Project created ✅",
		"title":       p.Title,
		"description": p.Description,
	})
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var body projectBody
	if !decodeBody(w, r, &body) {
		return
	}
	if issues := validateProject(body, false); len(issues) > 0 {
		writeIssues(w, issues)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProject(mux.Vars(r)["project_id"], ownerFrom(r.Context()))
	if p == nil {
		writeDetail(w, http.StatusNotFound, "Project not found")
		return
	}
	if body.Title != nil {
		p.Title = *body.Title
	}
	if body.Description != nil {
		p.Description = *body.Description
	}
	p.UpdatedAt = models.Timestamp{Time: s.now().UTC()}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project updated ✅"})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["project_id"]
	owner := ownerFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findProject(id, owner) == nil {
		writeDetail(w, http.StatusNotFound, "Project not found")
		return
	}

	projects := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			projects = append(projects, p)
		}
	}
	s.projects = projects

	// cascade delete tasks
	tasks := s.tasks[:0]
	for _, t := range s.tasks {
		if !(t.ProjectID == id && t.Owner == owner) {
			tasks = append(tasks, t)
		}
	}
	s.tasks = tasks

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project & related tasks deleted ✅"})
}

func (s *Server) tasksFor(projectID, owner, status string) []models.Task {
	tasks := []models.Task{}
	for _, t := range s.tasks {
		if t.ProjectID != projectID || t.Owner != owner {
			continue
		}
		if status != "" && string(t.Status) != status {
			continue
		}
		tasks = append(tasks, *t)
	}
	return tasks
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.tasksFor(mux.Vars(r)["project_id"], ownerFrom(r.Context()), ""))
}

func (s *Server) handleFilterTasks(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if !isValidStatus(status) {
		writeDetail(w, http.StatusBadRequest, "Invalid status. Must be one of: "+strings.Join(validStatuses, ", "))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.tasksFor(mux.Vars(r)["project_id"], ownerFrom(r.Context()), status))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var body taskBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Title == nil {
		writeIssues(w, []issue{{Loc: []string{"body", "title"}, Msg: "Field required", Type: "missing"}})
		return
	}

	projectID := mux.Vars(r)["project_id"]
	owner := ownerFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findProject(projectID, owner) == nil {
		writeDetail(w, http.StatusNotFound, "Project not found")
		return
	}

	now := models.Timestamp{Time: s.now().UTC()}
	t := &models.Task{
		ID:        newID(),
		Title:     *body.Title,
		Status:    models.StatusTodo,
		ProjectID: projectID,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if body.Description != nil {
		t.Description = *body.Description
	}
	if body.Status != nil {
		t.Status = models.TaskStatus(*body.Status)
	}
	s.tasks = append(s.tasks, t)

	writeJSON(w, http.StatusOK, map[string]string{
		"id":      t.ID,
		"message": "Task created ✅",
		"title":   t.Title,
		"status":  string(t.Status),
	})
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var body taskBody
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.findTask(mux.Vars(r)["task_id"], ownerFrom(r.Context()))
	if t == nil {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}
	if body.Title != nil {
		t.Title = *body.Title
	}
	if body.Description != nil {
		t.Description = *body.Description
	}
	if body.Status != nil {
		t.Status = models.TaskStatus(*body.Status)
	}
	t.UpdatedAt = models.Timestamp{Time: s.now().UTC()}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task updated ✅"})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["task_id"]
	owner := ownerFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findTask(id, owner) == nil {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}

	tasks := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	s.tasks = tasks

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted ✅"})
}

func isValidStatus(status string) bool {
	for _, v := range validStatuses {
		if v == status {
			return true
		}
	}
	return false
}
