// Package auth carries the caller identity of a request and the bearer tokens
// it is derived from.
package auth

import (
	"context"

	"github.com/messhub/ledger/internal/models"
)

// Identity is the authenticated caller of a request
type Identity struct {
	Role   models.Role
	UserID int64
}

// IsAdmin reports whether the caller may act on any user's cards
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// CanActFor reports whether the caller may recharge or read on behalf of userID
func (i Identity) CanActFor(userID int64) bool {
	return i.IsAdmin() || i.UserID == userID
}

// Trusted is the identity used when token verification is disabled
var Trusted = Identity{Role: models.RoleAdmin}

type contextKey struct{}

// WithIdentity returns a context carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
