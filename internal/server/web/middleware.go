package web

import (
	"context"
	"net/http"
	"time"

	"github.com/sooratali/TaskManager/internal/common"
)

type userContextKey string

const contextKeyUserID userContextKey = "tm-user-id"

// requireUser resolves the session cookie to a user id before invoking the
// handler. Unauthenticated requests are redirected to the login page.
func (r *Router) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		email, err := r.sessions.Resolve(req)
		if err != nil {
			http.Redirect(w, req, "/login", http.StatusSeeOther)
			return
		}
		userID, err := r.users.ResolveSession(req.Context(), email)
		if err != nil {
			r.sessions.Clear(w)
			http.Redirect(w, req, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(req.Context(), contextKeyUserID, userID)
		next(w, req.WithContext(ctx))
	}
}

// userIDFromContext extracts the resolved caller id set by requireUser.
func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	return userID, ok
}

// audit logs every request with a short random id and its duration.
func (r *Router) audit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		requestID, err := common.MakeRandHexString(8)
		if err != nil {
			requestID = "unknown"
		}
		start := time.Now()
		next(w, req)
		r.logger.Info(req.Context(), "request handled",
			"request_id", requestID,
			"method", req.Method,
			"path", req.URL.Path,
			"duration", time.Since(start).String(),
		)
	}
}
