package session

import (
	"net/http"
	"time"

	"github.com/sooratali/TaskManager/internal/common"
)

// CookieName is the browser cookie carrying the session token.
const CookieName = "tm_session"

// Manager establishes, resolves, and clears browser sessions.
type Manager struct {
	secret   []byte
	validity time.Duration
}

func NewManager(secret []byte, validity time.Duration) *Manager {
	return &Manager{secret: secret, validity: validity}
}

// Establish issues a session token for email and sets it as a cookie.
func (m *Manager) Establish(w http.ResponseWriter, email string) error {
	token, err := GenerateToken(email, m.secret, m.validity)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.validity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Resolve extracts and verifies the session cookie, returning the email it
// was issued for. A missing or invalid cookie yields ErrorUnauthenticated.
func (m *Manager) Resolve(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", common.ErrorUnauthenticated
	}
	email, err := EmailFromToken(cookie.Value, m.secret)
	if err != nil {
		return "", common.ErrorUnauthenticated
	}
	return email, nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
