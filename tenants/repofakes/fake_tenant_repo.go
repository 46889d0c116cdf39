package tenantrepofakes

import (
	"context"
	"sync"

	"github.com/leasehub/go-auth-gateway/tenants"
)

var _ tenants.Repo = (*FakeTenantRepo)(nil)

type FakeTenantRepo struct {
	tenants map[string]*tenants.Tenant
	lock    sync.RWMutex

	LinkUserErr error // scripted link failure
}

func NewFakeTenantRepo() *FakeTenantRepo {
	return &FakeTenantRepo{
		tenants: make(map[string]*tenants.Tenant),
	}
}

func (tr *FakeTenantRepo) Add(tenantData *tenants.Tenant) {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	tr.tenants[tenantData.Email] = tenantData
}

func (tr *FakeTenantRepo) GetByEmail(_ context.Context, email string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	tenant, ok := tr.tenants[email]
	if !ok {
		return nil, tenants.ErrTenantNotFound
	}
	return tenant, nil
}

func (tr *FakeTenantRepo) LinkUser(_ context.Context, email, userID string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if tr.LinkUserErr != nil {
		return tr.LinkUserErr
	}
	tenant, ok := tr.tenants[email]
	if !ok {
		return tenants.ErrTenantNotFound
	}
	tenant.UserID = userID
	return nil
}
