package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextAdminKey ctxKey = "adminEmail"

// AdminFromContext returns the signed-in admin's email, or "" when the
// request carried no valid session. Only the admin session endpoints ever
// populate this; the civic surface runs unauthenticated.
func AdminFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if email, ok := ctx.Value(ContextAdminKey).(string); ok {
		return email
	}
	return ""
}

func ContextWithAdmin(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ContextAdminKey, email)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
