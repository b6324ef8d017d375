package auth

import (
	"context"

	"github.com/Rajeswari195/kayak/internal/models"
)

// Principal is the authenticated identity attached to a request context.
type Principal struct {
	UserID int64
	Role   models.Role
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p *Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

type contextKey int

const principalKey contextKey = iota

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the Principal stored by Required/Optional. Returns nil
// for anonymous requests.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
