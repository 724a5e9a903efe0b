package api

import (
	"context"
	"time"

	"github.com/maptheaccused/maptheaccused-api/models"
)

// QueryTimeout is the default timeout for database queries
const QueryTimeout = 10 * time.Second

type contextKey string

const userContextKey contextKey = "currentUser"

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

// ContextWithUser stores the authenticated user on the request context
func ContextWithUser(parent context.Context, user *models.User) context.Context {
	return context.WithValue(parent, userContextKey, user)
}

// UserFromContext returns the authenticated user stored by the auth middleware
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
