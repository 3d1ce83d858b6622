package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskflow/internal/api"
	"taskflow/internal/mockapi"
	"taskflow/internal/models"
	"taskflow/internal/session"
	"taskflow/internal/util"
)

// newTestAPI starts a mock server with one registered user and returns a
// client with an empty session pointed at it.
func newTestAPI(t *testing.T) (*api.Client, *mockapi.Server) {
	t.Helper()

	srv := mockapi.New(mockapi.WithSecret([]byte("test-secret")))
	if err := srv.RegisterUser("ada@example.com", "secret1"); err != nil {
		t.Fatalf("register user: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return api.NewClient(ts.URL, session.New(nil)), srv
}

func loginOrFail(t *testing.T, client *api.Client) {
	t.Helper()
	if _, err := client.Login(context.Background(), "ada@example.com", "secret1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}

func TestLoginAttachesBearerToSubsequentRequests(t *testing.T) {
	client, srv := newTestAPI(t)
	ctx := context.Background()

	token, err := client.Login(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !client.Session().IsAuthenticated() {
		t.Fatal("session should be authenticated after login")
	}

	if _, err := client.ListProjects(ctx); err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}

	last, _ := srv.LastRequest()
	if last.Authorization != "Bearer "+token.AccessToken {
		t.Fatalf("Authorization = %q, want bearer token", last.Authorization)
	}
}

func TestLogoutOmitsAuthorizationHeader(t *testing.T) {
	client, srv := newTestAPI(t)
	ctx := context.Background()
	loginOrFail(t, client)

	if err := client.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if client.Session().IsAuthenticated() {
		t.Fatal("session should be cleared after logout")
	}

	_, err := client.ListProjects(ctx)
	if !api.IsUnauthorized(err) {
		t.Fatalf("expected 401 after logout, got %v", err)
	}

	last, _ := srv.LastRequest()
	if last.Authorization != "" {
		t.Fatalf("Authorization = %q, want none", last.Authorization)
	}
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	client, _ := newTestAPI(t)

	_, err := client.Login(context.Background(), "ada@example.com", "wrong-password")
	if err == nil {
		t.Fatal("expected error")
	}
	if client.Session().IsAuthenticated() {
		t.Fatal("failed login must not create a session")
	}
	if got := api.UserMessage(err, "Login failed."); got != "Invalid email or password" {
		t.Fatalf("UserMessage() = %q", got)
	}
}

func TestLoginWithoutTokenInResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
	}))
	defer ts.Close()

	client := api.NewClient(ts.URL, nil)
	_, err := client.Login(context.Background(), "ada@example.com", "secret1")
	if !errors.Is(err, api.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if client.Session().IsAuthenticated() {
		t.Fatal("session should stay empty")
	}
}

func TestSignupDoesNotCreateSession(t *testing.T) {
	client, _ := newTestAPI(t)

	result, err := client.Signup(context.Background(), "new@example.com", "secret1")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if !strings.Contains(result.Message, "registered successfully") {
		t.Fatalf("Message = %q", result.Message)
	}
	if client.Session().IsAuthenticated() {
		t.Fatal("signup must not log the user in")
	}
}

func TestCreateProjectThenListIncludesIt(t *testing.T) {
	client, _ := newTestAPI(t)
	ctx := context.Background()
	loginOrFail(t, client)

	created, err := client.CreateProject(ctx, models.ProjectInput{Title: "Alpha", Description: "first"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	project, ok := models.FindProject(projects, created.ID)
	if !ok || project.Title != "Alpha" {
		t.Fatalf("projects = %+v, want Alpha", projects)
	}
}

func TestUpdateAndDeleteProject(t *testing.T) {
	client, _ := newTestAPI(t)
	ctx := context.Background()
	loginOrFail(t, client)

	created, err := client.CreateProject(ctx, models.ProjectInput{Title: "Alpha"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.UpdateProject(ctx, created.ID, models.ProjectInput{Title: "Beta", Description: "renamed"}); err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}

	projects, _ := client.ListProjects(ctx)
	if len(projects) != 1 || projects[0].Title != "Beta" || projects[0].Description != "renamed" {
		t.Fatalf("projects after update = %+v", projects)
	}

	if _, err := client.DeleteProject(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	projects, _ = client.ListProjects(ctx)
	if len(projects) != 0 {
		t.Fatalf("projects after delete = %+v", projects)
	}

	_, err = client.DeleteProject(ctx, created.ID)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "Project not found" {
		t.Fatalf("second delete error = %v", err)
	}
}

func TestDeleteTaskRemovesItFromProjectList(t *testing.T) {
	client, _ := newTestAPI(t)
	ctx := context.Background()
	loginOrFail(t, client)

	project, err := client.CreateProject(ctx, models.ProjectInput{Title: "Alpha"})
	if err != nil {
		t.Fatal(err)
	}
	keep, err := client.CreateTask(ctx, project.ID, models.TaskInput{Title: "keep", Status: models.StatusTodo})
	if err != nil {
		t.Fatal(err)
	}
	drop, err := client.CreateTask(ctx, project.ID, models.TaskInput{Title: "drop", Status: models.StatusInProgress})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.DeleteTask(ctx, drop.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}

	tasks, err := client.ListTasks(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != keep.ID {
		t.Fatalf("tasks = %+v, want only %q", tasks, keep.ID)
	}
	if tasks[0].ProjectID != project.ID {
		t.Fatalf("task ProjectID = %q, want %q", tasks[0].ProjectID, project.ID)
	}
}

func TestUpdateAndFilterTasks(t *testing.T) {
	client, _ := newTestAPI(t)
	ctx := context.Background()
	loginOrFail(t, client)

	project, _ := client.CreateProject(ctx, models.ProjectInput{Title: "Alpha"})
	task, _ := client.CreateTask(ctx, project.ID, models.TaskInput{Title: "ship", Status: models.StatusTodo})

	if _, err := client.UpdateTask(ctx, task.ID, models.TaskInput{Title: "ship", Status: models.StatusDone}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	done, err := client.FilterTasks(ctx, project.ID, models.StatusDone)
	if err != nil {
		t.Fatalf("FilterTasks() error = %v", err)
	}
	if len(done) != 1 || done[0].Status != models.StatusDone {
		t.Fatalf("done tasks = %+v", done)
	}

	todo, err := client.FilterTasks(ctx, project.ID, models.StatusTodo)
	if err != nil {
		t.Fatalf("FilterTasks() error = %v", err)
	}
	if len(todo) != 0 {
		t.Fatalf("todo tasks = %+v", todo)
	}
}

func TestServerMessageFallback(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail", `{"detail":"Email already registered"}`, "Email already registered"},
		{"message", `{"message":"Something broke"}`, "Something broke"},
		{"detail wins", `{"detail":"first","message":"second"}`, "first"},
		{"validation list", `{"detail":[{"loc":["body","email"],"msg":"bad email"},{"msg":"too short"}]}`, "bad email; too short"},
		{"no message", `{"error":"nope"}`, "fallback"},
		{"not json", `<html>oops</html>`, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := api.NewClient(ts.URL, nil).ListProjects(context.Background())
			var apiErr *api.APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected APIError 400, got %v", err)
			}
			if got := api.UserMessage(err, "fallback"); got != tt.want {
				t.Fatalf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNetworkFailureIsUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := api.NewClient(url, nil).ListProjects(context.Background())
	if !errors.Is(err, api.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) || reqErr.Method != http.MethodGet {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if got := api.UserMessage(err, "generic"); got != "generic" {
		t.Fatalf("UserMessage() = %q", got)
	}
}

func TestRequestsAreLoggedWithoutPasswords(t *testing.T) {
	var logs bytes.Buffer
	srv := mockapi.New()
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := api.NewClient(ts.URL, nil, api.WithLogger(util.NewWriterLogger(&logs)))
	_, _ = client.Signup(context.Background(), "ada@example.com", "hunter22")

	out := logs.String()
	if !strings.Contains(out, "→ POST "+ts.URL+"/auth/signup") {
		t.Errorf("request line missing from log:\n%s", out)
	}
	if !strings.Contains(out, "← 200 "+ts.URL+"/auth/signup") {
		t.Errorf("response line missing from log:\n%s", out)
	}
	if strings.Contains(out, "hunter22") {
		t.Errorf("password leaked into log:\n%s", out)
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	sess := session.New(nil)
	if err := sess.SetToken("opaque-token"); err != nil {
		t.Fatal(err)
	}
	if _, err := api.NewClient(ts.URL+"/", sess, api.WithHTTPClient(ts.Client())).ListProjects(context.Background()); err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}

	if got.Get("Authorization") != "Bearer opaque-token" {
		t.Errorf("Authorization = %q", got.Get("Authorization"))
	}
	if got.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", got.Get("Content-Type"))
	}
	if got.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing")
	}
}
