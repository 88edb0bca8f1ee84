package common

import "context"

// IdentityContext holds the resolved identity for a request, populated by
// the bearer token middleware. A nil IdentityContext means the request is
// unauthenticated and the system stays inert (read-only surfaces only).
type IdentityContext struct {
	UserID string
	Name   string
	Email  string
}

type contextKey int

const identityContextKey contextKey = iota

// WithIdentity stores an IdentityContext in the request context.
func WithIdentity(ctx context.Context, ic *IdentityContext) context.Context {
	return context.WithValue(ctx, identityContextKey, ic)
}

// IdentityFromContext retrieves the IdentityContext from context, or nil if absent.
func IdentityFromContext(ctx context.Context) *IdentityContext {
	ic, _ := ctx.Value(identityContextKey).(*IdentityContext)
	return ic
}
