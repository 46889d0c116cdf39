package tenantpg

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/leasehub/go-auth-gateway/tenants"
)

// TenantRepo is the PostgreSQL implementation of tenants.Repo. The tenant
// table is provisioned and maintained externally; the gateway only reads it
// and writes the provider user id on registration.
type TenantRepo struct {
	db *sqlx.DB
}

var _ tenants.Repo = (*TenantRepo)(nil)

func New(db *sqlx.DB) *TenantRepo {
	return &TenantRepo{db: db}
}

func (r *TenantRepo) GetByEmail(ctx context.Context, email string) (*tenants.Tenant, error) {
	const query = `SELECT email, tenant_id, COALESCE(user_id, '') AS user_id FROM tenants WHERE email = $1`

	var tenant tenants.Tenant
	if err := r.db.GetContext(ctx, &tenant, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tenants.ErrTenantNotFound
		}
		return nil, errors.Wrap(err, "[TenantRepo.GetByEmail] query")
	}
	return &tenant, nil
}

func (r *TenantRepo) LinkUser(ctx context.Context, email, userID string) error {
	const query = `UPDATE tenants SET user_id = $1 WHERE email = $2`

	result, err := r.db.ExecContext(ctx, query, userID, email)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return errors.New("[TenantRepo.LinkUser] user already linked to another tenant")
		}
		return errors.Wrap(err, "[TenantRepo.LinkUser] exec")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "[TenantRepo.LinkUser] rows affected")
	}
	if rowsAffected == 0 {
		return tenants.ErrTenantNotFound
	}
	return nil
}
