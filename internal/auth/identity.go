package auth

import "context"

// Identity is the request-scoped authenticated principal. A zero Identity
// means anonymous.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity sets the authenticated identity into context (called by middleware).
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom retrieves the identity safely.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
