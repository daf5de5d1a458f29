package auth

import "context"

type contextKey struct{}

// Identity is the authenticated user attached to a request by the session
// middleware. Handlers read it instead of re-verifying the cookie.
type Identity struct {
	UserID int64
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// UserID returns the authenticated user id, or 0 when the request carries
// no identity.
func UserID(ctx context.Context) int64 {
	id, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return id.UserID
}
