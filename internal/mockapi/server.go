// Package mockapi is an in-memory implementation of the TaskFlow REST API.
// It mirrors the real server's routes, payload shapes and error bodies and
// is used by tests and by the mock-server command.
package mockapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"taskflow/internal/models"
)

// TokenTTL is the lifetime of issued access tokens
const TokenTTL = 60 * time.Minute

// RecordedRequest is one request seen by the server
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
}

type user struct {
	Email        string
	PasswordHash []byte
}

// Server holds all state in memory. The zero value is not usable; call New.
type Server struct {
	mu       sync.Mutex
	router   *mux.Router
	secret   []byte
	now      func() time.Time
	users    map[string]*user
	projects []*models.Project
	tasks    []*models.Task
	requests []RecordedRequest
}

// Option configures a Server
type Option func(*Server)

// WithSecret sets the HMAC key used to sign access tokens
func WithSecret(secret []byte) Option {
	return func(s *Server) {
		s.secret = secret
	}
}

// WithClock replaces time.Now, for deterministic timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates an empty server
func New(opts ...Option) *Server {
	s := &Server{
		secret: []byte(uuid.NewString()),
		now:    time.Now,
		users:  make(map[string]*user),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.record)

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.authenticate)
	authed.HandleFunc("/users/me", s.handleMe).Methods(http.MethodGet)

	authed.HandleFunc("/projects/", s.handleListProjects).Methods(http.MethodGet)
	authed.HandleFunc("/projects/", s.handleCreateProject).Methods(http.MethodPost)
	authed.HandleFunc("/projects/{project_id}", s.handleUpdateProject).Methods(http.MethodPut)
	authed.HandleFunc("/projects/{project_id}", s.handleDeleteProject).Methods(http.MethodDelete)

	authed.HandleFunc("/tasks/project/{project_id}", s.handleListTasks).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/project/{project_id}/filter", s.handleFilterTasks).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/{project_id}", s.handleCreateTask).Methods(http.MethodPost)
	authed.HandleFunc("/tasks/{task_id}", s.handleUpdateTask).Methods(http.MethodPut)
	authed.HandleFunc("/tasks/{task_id}", s.handleDeleteTask).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Requests returns every request received so far
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns how many requests were received
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request, if any
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}
