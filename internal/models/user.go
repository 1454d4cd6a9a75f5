package models

import (
	"context"
	"fmt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the mocked logged-in user attached to a request.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type identityKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller identity or ErrUnauthenticated.
func IdentityFrom(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, fmt.Errorf("%w: no logged-in user", ErrUnauthenticated)
	}
	return id, nil
}
