// Package web wires the browser-facing HTTP surface: server-rendered forms
// for registration, login, and task CRUD. Handlers resolve the session
// cookie to a user id up front and pass it explicitly into the services.
package web

import (
	"context"
	"net/http"

	"github.com/sooratali/TaskManager/internal/logging"
	"github.com/sooratali/TaskManager/internal/server/models"
)

// IdentityService is the slice of the user service the web layer needs.
type IdentityService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ResolveSession(ctx context.Context, email string) (string, error)
}

// TaskService is the slice of the task service the web layer needs.
type TaskService interface {
	Create(ctx context.Context, ownerID, title, description, dueDate, priority string) (*models.Task, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	GetIfOwned(ctx context.Context, taskID, ownerID string) (*models.Task, error)
	Update(ctx context.Context, taskID, ownerID, title, description, dueDate, priority string, status models.Status) error
	Delete(ctx context.Context, taskID, ownerID string) error
	ToggleStatus(ctx context.Context, taskID, ownerID string) (models.Status, error)
}

// SessionManager establishes, resolves, and clears browser sessions.
type SessionManager interface {
	Establish(w http.ResponseWriter, email string) error
	Resolve(r *http.Request) (string, error)
	Clear(w http.ResponseWriter)
}

// Router wires HTTP endpoints to services.
type Router struct {
	mux      *http.ServeMux
	logger   logging.Logger
	users    IdentityService
	tasks    TaskService
	sessions SessionManager
	tmpl     *templates
}

// NewRouter assembles routes with dependencies.
func NewRouter(logger logging.Logger, users IdentityService, tasks TaskService, sessions SessionManager) (*Router, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	r := &Router{
		mux:      http.NewServeMux(),
		logger:   logger,
		users:    users,
		tasks:    tasks,
		sessions: sessions,
		tmpl:     tmpl,
	}
	r.register()
	return r, nil
}

// ServeHTTP delegates to the underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) register() {
	r.mux.HandleFunc("GET /{$}", r.audit(r.requireUser(r.handleIndex)))
	r.mux.HandleFunc("GET /register", r.audit(r.handleRegisterForm))
	r.mux.HandleFunc("POST /register", r.audit(r.handleRegister))
	r.mux.HandleFunc("GET /login", r.audit(r.handleLoginForm))
	r.mux.HandleFunc("POST /login", r.audit(r.handleLogin))
	r.mux.HandleFunc("GET /logout", r.audit(r.handleLogout))
	r.mux.HandleFunc("GET /task/new", r.audit(r.requireUser(r.handleTaskNewForm)))
	r.mux.HandleFunc("POST /task/new", r.audit(r.requireUser(r.handleTaskCreate)))
	r.mux.HandleFunc("GET /task/edit/{id}", r.audit(r.requireUser(r.handleTaskEditForm)))
	r.mux.HandleFunc("POST /task/edit/{id}", r.audit(r.requireUser(r.handleTaskUpdate)))
	r.mux.HandleFunc("POST /task/delete/{id}", r.audit(r.requireUser(r.handleTaskDelete)))
	r.mux.HandleFunc("POST /task/toggle/{id}", r.audit(r.requireUser(r.handleTaskToggle)))
}
