package tenants

import (
	"context"
	"errors"
)

var ErrTenantNotFound = errors.New("tenant not found")

type Repo interface {
	// GetByEmail returns the tenant record keyed by email, or ErrTenantNotFound.
	GetByEmail(ctx context.Context, email string) (*Tenant, error)
	// LinkUser records the provider account id against the tenant row.
	LinkUser(ctx context.Context, email, userID string) error
}
