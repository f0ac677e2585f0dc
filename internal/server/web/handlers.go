package web

import (
	"errors"
	"net/http"

	"github.com/sooratali/TaskManager/internal/common"
	"github.com/sooratali/TaskManager/internal/server/models"
	"github.com/sooratali/TaskManager/internal/server/services"
)

func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) {
	userID, ok := userIDFromContext(req.Context())
	if !ok {
		http.Redirect(w, req, "/login", http.StatusSeeOther)
		return
	}

	tasks, err := r.tasks.ListForOwner(req.Context(), userID)
	if err != nil {
		r.renderError(w, req, err)
		return
	}

	r.renderPage(w, req, "index", viewData{Title: "Your tasks", Tasks: tasks})
}

func (r *Router) handleRegisterForm(w http.ResponseWriter, req *http.Request) {
	r.renderPage(w, req, "register", viewData{Title: "Register"})
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	email := req.FormValue("email")
	password := req.FormValue("password")

	_, err := r.users.Register(req.Context(), email, password)
	switch {
	case err == nil:
		setFlash(w, "success", "Account created. Please login.")
		http.Redirect(w, req, "/login", http.StatusSeeOther)
	case errors.Is(err, common.ErrorValidation):
		setFlash(w, "error", "Email and password are required.")
		http.Redirect(w, req, "/register", http.StatusSeeOther)
	case errors.Is(err, common.ErrorDuplicateEmail):
		setFlash(w, "error", "Email already registered. Please login.")
		http.Redirect(w, req, "/login", http.StatusSeeOther)
	default:
		r.renderError(w, req, err)
	}
}

func (r *Router) handleLoginForm(w http.ResponseWriter, req *http.Request) {
	r.renderPage(w, req, "login", viewData{Title: "Login"})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	email := req.FormValue("email")
	password := req.FormValue("password")

	_, err := r.users.Authenticate(req.Context(), email, password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			setFlash(w, "error", "Invalid email or password.")
			http.Redirect(w, req, "/login", http.StatusSeeOther)
			return
		}
		r.renderError(w, req, err)
		return
	}

	if err := r.sessions.Establish(w, services.NormalizeEmail(email)); err != nil {
		r.renderError(w, req, err)
		return
	}
	setFlash(w, "success", "Logged in successfully.")
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) {
	r.sessions.Clear(w)
	setFlash(w, "info", "Logged out.")
	http.Redirect(w, req, "/login", http.StatusSeeOther)
}

func (r *Router) handleTaskNewForm(w http.ResponseWriter, req *http.Request) {
	r.renderPage(w, req, "task_form", viewData{Title: "New task", Action: "Create"})
}

func (r *Router) handleTaskCreate(w http.ResponseWriter, req *http.Request) {
	userID, _ := userIDFromContext(req.Context())

	_, err := r.tasks.Create(req.Context(), userID,
		req.FormValue("title"),
		req.FormValue("description"),
		req.FormValue("due_date"),
		req.FormValue("priority"),
	)
	switch {
	case err == nil:
		setFlash(w, "success", "Task created.")
		http.Redirect(w, req, "/", http.StatusSeeOther)
	case errors.Is(err, common.ErrorValidation):
		setFlash(w, "error", "Title is required.")
		http.Redirect(w, req, "/task/new", http.StatusSeeOther)
	default:
		r.renderError(w, req, err)
	}
}

func (r *Router) handleTaskEditForm(w http.ResponseWriter, req *http.Request) {
	userID, _ := userIDFromContext(req.Context())
	taskID := req.PathValue("id")

	task, err := r.tasks.GetIfOwned(req.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			setFlash(w, "error", "Task not found.")
			http.Redirect(w, req, "/", http.StatusSeeOther)
			return
		}
		r.renderError(w, req, err)
		return
	}

	r.renderPage(w, req, "task_form", viewData{Title: "Edit task", Task: task, Action: "Edit"})
}

func (r *Router) handleTaskUpdate(w http.ResponseWriter, req *http.Request) {
	userID, _ := userIDFromContext(req.Context())
	taskID := req.PathValue("id")

	status := models.Status(req.FormValue("status"))
	if status == "" {
		status = models.StatusIncomplete
	}

	err := r.tasks.Update(req.Context(), taskID, userID,
		req.FormValue("title"),
		req.FormValue("description"),
		req.FormValue("due_date"),
		req.FormValue("priority"),
		status,
	)
	switch {
	case err == nil:
		setFlash(w, "success", "Task updated.")
		http.Redirect(w, req, "/", http.StatusSeeOther)
	case errors.Is(err, common.ErrorNotFound):
		setFlash(w, "error", "Task not found.")
		http.Redirect(w, req, "/", http.StatusSeeOther)
	case errors.Is(err, common.ErrorValidation):
		setFlash(w, "error", "Title is required.")
		http.Redirect(w, req, "/task/edit/"+taskID, http.StatusSeeOther)
	default:
		r.renderError(w, req, err)
	}
}

func (r *Router) handleTaskDelete(w http.ResponseWriter, req *http.Request) {
	userID, _ := userIDFromContext(req.Context())
	taskID := req.PathValue("id")

	err := r.tasks.Delete(req.Context(), taskID, userID)
	switch {
	case err == nil:
		setFlash(w, "success", "Task deleted.")
	case errors.Is(err, common.ErrorNotFound):
		setFlash(w, "error", "Task not found or permission denied.")
	default:
		r.renderError(w, req, err)
		return
	}
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func (r *Router) handleTaskToggle(w http.ResponseWriter, req *http.Request) {
	userID, _ := userIDFromContext(req.Context())
	taskID := req.PathValue("id")

	_, err := r.tasks.ToggleStatus(req.Context(), taskID, userID)
	switch {
	case err == nil:
		setFlash(w, "success", "Task status updated.")
	case errors.Is(err, common.ErrorNotFound):
		setFlash(w, "error", "Task not found or permission denied.")
	default:
		r.renderError(w, req, err)
		return
	}
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

// renderPage attaches any pending flash message and renders the page.
func (r *Router) renderPage(w http.ResponseWriter, req *http.Request, name string, data viewData) {
	data.Flash = popFlash(w, req)
	if err := r.tmpl.render(w, name, data); err != nil {
		r.logger.Error(req.Context(), "template render failed", "page", name, "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// renderError logs an unexpected failure and surfaces a generic message.
// Storage-layer failures are terminal for the request, never retried.
func (r *Router) renderError(w http.ResponseWriter, req *http.Request, err error) {
	r.logger.Error(req.Context(), "request failed", "path", req.URL.Path, "error", err.Error())
	http.Error(w, "something went wrong, please try again", http.StatusInternalServerError)
}
