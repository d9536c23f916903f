// ABOUTME: Session context for tracking the authenticated admin through request handlers
// ABOUTME: Provides WithSession/SessionFromContext for propagating the session via context

package auth

import (
	"context"

	"github.com/2389/diner-menu/internal/store"
)

// sessionContextKey is the key type for storing the session in context.Context.
type sessionContextKey struct{}

// WithSession returns a new context with the admin session attached.
func WithSession(ctx context.Context, session *store.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext retrieves the admin session from the context, returning
// nil if not present.
func SessionFromContext(ctx context.Context) *store.Session {
	val := ctx.Value(sessionContextKey{})
	if val == nil {
		return nil
	}
	session, ok := val.(*store.Session)
	if !ok {
		return nil
	}
	return session
}
