package auth

import "context"

type contextKey struct{}

// identityKey is the context key under which the authenticated identity is stored.
var identityKey = contextKey{}

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated identity attached to ctx, or
// nil if the request did not pass the bearer middleware.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return nil
	}
	return &id
}
