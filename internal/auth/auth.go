// ABOUTME: Password verification and session lifecycle for the admin API
// ABOUTME: Issues cookie-backed sessions persisted in the store with a configurable TTL

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/2389/diner-menu/internal/store"
)

// SessionCookieName is the name of the admin session cookie.
const SessionCookieName = "menu_admin_session"

// ErrInvalidPassword is returned when the supplied password does not match
// the configured admin password.
var ErrInvalidPassword = errors.New("invalid password")

// Authenticator verifies the admin password and manages sessions.
type Authenticator struct {
	password   string
	sessionTTL time.Duration
	sessions   store.SessionStore
	logger     *slog.Logger
}

// NewAuthenticator creates an authenticator backed by the given session store.
// The password may be either a plaintext secret or a bcrypt hash.
func NewAuthenticator(password string, sessionTTL time.Duration, sessions store.SessionStore) *Authenticator {
	return &Authenticator{
		password:   password,
		sessionTTL: sessionTTL,
		sessions:   sessions,
		logger:     slog.Default().With("component", "auth"),
	}
}

// Login verifies the password and, on success, creates a new session.
// Returns ErrInvalidPassword when the password does not match.
func (a *Authenticator) Login(ctx context.Context, password string) (*store.Session, error) {
	if !a.verifyPassword(password) {
		a.logger.Warn("failed login attempt")
		return nil, ErrInvalidPassword
	}

	now := time.Now().UTC()
	session := &store.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionTTL),
	}

	if err := a.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	a.logger.Info("admin logged in", "session_id", session.ID, "expires_at", session.ExpiresAt)
	return session, nil
}

// Logout deletes the session, if any. Deleting an unknown session is not an
// error.
func (a *Authenticator) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := a.sessions.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	a.logger.Info("admin logged out", "session_id", sessionID)
	return nil
}

// Validate looks up a session and returns it if it exists and has not
// expired.
func (a *Authenticator) Validate(ctx context.Context, sessionID string) (*store.Session, error) {
	if sessionID == "" {
		return nil, store.ErrSessionNotFound
	}
	return a.sessions.GetSession(ctx, sessionID)
}

// SessionTTL reports the configured session lifetime.
func (a *Authenticator) SessionTTL() time.Duration {
	return a.sessionTTL
}

// SetSessionCookie writes the session cookie for an established session.
func (a *Authenticator) SetSessionCookie(w http.ResponseWriter, r *http.Request, session *store.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func (a *Authenticator) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// SweepExpiredSessions removes expired sessions from the store. Intended to
// be called periodically by the server.
func (a *Authenticator) SweepExpiredSessions(ctx context.Context) error {
	return a.sessions.DeleteExpiredSessions(ctx)
}

// verifyPassword compares the supplied password against the configured
// secret. Bcrypt hashes are detected by their prefix; anything else is
// compared in constant time.
func (a *Authenticator) verifyPassword(password string) bool {
	if strings.HasPrefix(a.password, "$2a$") || strings.HasPrefix(a.password, "$2b$") || strings.HasPrefix(a.password, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(a.password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.password), []byte(password)) == 1
}
