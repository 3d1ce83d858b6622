package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type testClient struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func newTestClient(t *testing.T) (*testClient, *Server) {
	t.Helper()
	api := New(WithSecret([]byte("test-secret")))
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return &testClient{t: t, srv: srv}, api
}

func (c *testClient) call(method, path string, body any, out any) int {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.srv.URL+path, reader)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (c *testClient) login(email, password string) {
	c.t.Helper()
	if code := c.call(http.MethodPost, "/auth/signup", map[string]string{"email": email, "password": password}, nil); code != http.StatusOK {
		c.t.Fatalf("signup status = %d", code)
	}
	var tok map[string]string
	if code := c.call(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &tok); code != http.StatusOK {
		c.t.Fatalf("login status = %d", code)
	}
	if tok["token_type"] != "bearer" || tok["access_token"] == "" {
		c.t.Fatalf("unexpected login payload %v", tok)
	}
	c.token = tok["access_token"]
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	c, _ := newTestClient(t)
	body := map[string]string{"email": "ada@example.com", "password": "secret1"}

	if code := c.call(http.MethodPost, "/auth/signup", body, nil); code != http.StatusOK {
		t.Fatalf("first signup status = %d", code)
	}

	var payload map[string]string
	if code := c.call(http.MethodPost, "/auth/signup", body, &payload); code != http.StatusBadRequest {
		t.Fatalf("duplicate signup status = %d", code)
	}
	if payload["detail"] != "Email already registered" {
		t.Fatalf("detail = %q", payload["detail"])
	}
}

func TestSignupValidationUsesIssueList(t *testing.T) {
	c, _ := newTestClient(t)

	var payload struct {
		Detail []issue `json:"detail"`
	}
	code := c.call(http.MethodPost, "/auth/signup", map[string]string{"email": "ada@example.com", "password": "abc"}, &payload)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", code)
	}
	if len(payload.Detail) != 1 || !strings.Contains(payload.Detail[0].Msg, "at least 6") {
		t.Fatalf("unexpected issues %+v", payload.Detail)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	c, api := newTestClient(t)
	if err := api.RegisterUser("ada@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	var payload map[string]string
	code := c.call(http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com", "password": "wrong-pass"}, &payload)
	if code != http.StatusUnauthorized || payload["detail"] != "Invalid email or password" {
		t.Fatalf("got %d %v", code, payload)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	c, _ := newTestClient(t)

	if code := c.call(http.MethodGet, "/projects/", nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d", code)
	}

	c.token = "garbage"
	if code := c.call(http.MethodGet, "/projects/", nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("status with bad token = %d", code)
	}
}

func TestProjectAndTaskLifecycle(t *testing.T) {
	c, _ := newTestClient(t)
	c.login("ada@example.com", "secret1")

	var created map[string]string
	if code := c.call(http.MethodPost, "/projects/", map[string]string{"title": "Alpha", "description": "first"}, &created); code != http.StatusOK {
		t.Fatalf("create project status = %d", code)
	}
	projectID := created["id"]
	if projectID == "" {
		t.Fatal("create project returned no id")
	}

	var task map[string]string
	if code := c.call(http.MethodPost, "/tasks/"+projectID, map[string]string{"title": "Write"}, &task); code != http.StatusOK {
		t.Fatalf("create task status = %d", code)
	}
	if task["status"] != "Todo" {
		t.Fatalf("default status = %q", task["status"])
	}

	if code := c.call(http.MethodPut, "/tasks/"+task["id"], map[string]string{"status": "Done"}, nil); code != http.StatusOK {
		t.Fatalf("update task status = %d", code)
	}

	var done []map[string]any
	if code := c.call(http.MethodGet, "/tasks/project/"+projectID+"/filter?status=Done", nil, &done); code != http.StatusOK {
		t.Fatalf("filter status = %d", code)
	}
	if len(done) != 1 || done[0]["_id"] != task["id"] {
		t.Fatalf("filter result = %v", done)
	}

	if code := c.call(http.MethodGet, "/tasks/project/"+projectID+"/filter?status=Blocked", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("bad filter status = %d", code)
	}

	if code := c.call(http.MethodDelete, "/projects/"+projectID, nil, nil); code != http.StatusOK {
		t.Fatalf("delete project status = %d", code)
	}

	var remaining []map[string]any
	c.call(http.MethodGet, "/tasks/project/"+projectID, nil, &remaining)
	if len(remaining) != 0 {
		t.Fatalf("tasks should be cascade deleted, got %v", remaining)
	}
}

func TestProjectsAreScopedToOwner(t *testing.T) {
	c, _ := newTestClient(t)
	c.login("ada@example.com", "secret1")
	c.call(http.MethodPost, "/projects/", map[string]string{"title": "Private"}, nil)

	c.login("bob@example.com", "secret2")
	var projects []map[string]any
	c.call(http.MethodGet, "/projects/", nil, &projects)
	if len(projects) != 0 {
		t.Fatalf("bob should not see ada's projects: %v", projects)
	}
}

func TestRequestsAreRecorded(t *testing.T) {
	c, api := newTestClient(t)
	c.call(http.MethodGet, "/", nil, nil)

	if api.RequestCount() != 1 {
		t.Fatalf("RequestCount() = %d", api.RequestCount())
	}
	last, ok := api.LastRequest()
	if !ok || last.Method != http.MethodGet || last.Path != "/" {
		t.Fatalf("LastRequest() = %+v, %v", last, ok)
	}

	c.token = "opaque"
	c.call(http.MethodGet, "/projects/", nil, nil)
	reqs := api.Requests()
	if len(reqs) != 2 || reqs[1].Authorization != "Bearer opaque" {
		t.Fatalf("Requests() = %+v", reqs)
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	var clock atomic.Int64
	clock.Store(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC).Unix())

	api := New(WithClock(func() time.Time { return time.Unix(clock.Load(), 0) }))
	if err := api.RegisterUser("ada@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	c := &testClient{t: t, srv: srv}

	token, err := api.IssueToken("ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	c.token = token

	if code := c.call(http.MethodGet, "/users/me", nil, nil); code != http.StatusOK {
		t.Fatalf("fresh token status = %d", code)
	}

	clock.Add(int64((TokenTTL + time.Minute) / time.Second))
	var payload map[string]string
	code := c.call(http.MethodGet, "/users/me", nil, &payload)
	if code != http.StatusUnauthorized || payload["detail"] != "Could not validate credentials" {
		t.Fatalf("expired token got %d %v", code, payload)
	}
}
