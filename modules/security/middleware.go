package security

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/vzoverflow/vzoverflow/handler"
)

// userIDKey carries the authenticated user's id, set by the application's
// session or token layer before requests reach this module.
var userIDKey = handler.NewContextKey("security.user_id")

// WithUserID marks the context as authenticated for the given user. The
// surrounding auth middleware calls this after validating the session.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return handler.ContextValueOK[uuid.UUID](ctx, userIDKey)
}

// currentUser resolves the request's user through storage.
func (s *Service) currentUser(ctx context.Context) (*User, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return user, nil
}

// RequireUser rejects requests with no authenticated user id on the context.
// The full user record is loaded per handler, not here, so a handler always
// sees fresh two-factor state.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
