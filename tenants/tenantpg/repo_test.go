package tenantpg_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/leasehub/go-auth-gateway/tenants"
	"github.com/leasehub/go-auth-gateway/tenants/tenantpg"
)

const (
	selectTenantQuery = `SELECT email, tenant_id, COALESCE(user_id, '') AS user_id FROM tenants WHERE email = $1`
	linkUserQuery     = `UPDATE tenants SET user_id = $1 WHERE email = $2`
)

func setupRepo(t *testing.T) (*tenantpg.TenantRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return tenantpg.New(sqlx.NewDb(db, "postgres")), mock
}

func TestGetByEmailReturnsTenant(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectTenantQuery)).
		WithArgs("resident@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "tenant_id", "user_id"}).
			AddRow("resident@example.com", "tenant-1", "user-1"))

	tenant, err := repo.GetByEmail(context.Background(), "resident@example.com")
	require.NoError(t, err)
	require.Equal(t, "tenant-1", tenant.TenantID)
	require.Equal(t, "user-1", tenant.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailMissingRowIsNotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectTenantQuery)).
		WithArgs("stranger@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "stranger@example.com")
	require.ErrorIs(t, err, tenants.ErrTenantNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailQueryFailureIsNotNotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectTenantQuery)).
		WithArgs("resident@example.com").
		WillReturnError(sql.ErrConnDone)

	_, err := repo.GetByEmail(context.Background(), "resident@example.com")
	require.Error(t, err)
	require.NotErrorIs(t, err, tenants.ErrTenantNotFound, "a failing query must not read as a missing tenant")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkUserUpdatesRow(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(linkUserQuery)).
		WithArgs("user-1", "resident@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.LinkUser(context.Background(), "resident@example.com", "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkUserMissingRowIsNotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(linkUserQuery)).
		WithArgs("user-1", "stranger@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.LinkUser(context.Background(), "stranger@example.com", "user-1")
	require.ErrorIs(t, err, tenants.ErrTenantNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkUserUniqueViolation(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(linkUserQuery)).
		WithArgs("user-1", "resident@example.com").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.LinkUser(context.Background(), "resident@example.com", "user-1")
	require.Error(t, err)
	require.NotErrorIs(t, err, tenants.ErrTenantNotFound)
	require.Contains(t, err.Error(), "already linked")
	require.NoError(t, mock.ExpectationsWereMet())
}
