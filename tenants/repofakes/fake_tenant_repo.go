package tenantrepofakes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/tenants"
)

var _ tenants.Repo = (*FakeTenantRepo)(nil)

// FakeTenantRepo is an in-memory tenants.Repo. List preserves insertion order so
// tests can reason about aggregation order.
type FakeTenantRepo struct {
	tenants map[string]*tenants.Tenant
	order   []string
	stats   map[string]*tenants.Stats
	listErr error
	lock    sync.RWMutex
}

func NewFakeTenantRepo() *FakeTenantRepo {
	return &FakeTenantRepo{
		tenants: make(map[string]*tenants.Tenant),
		stats:   make(map[string]*tenants.Stats),
	}
}

// FailList makes List return err.
func (tr *FakeTenantRepo) FailList(err error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	tr.listErr = err
}

// SetStats stores the stats returned for tenantID.
func (tr *FakeTenantRepo) SetStats(tenantID string, stats tenants.Stats) {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	stats.TenantID = tenantID
	tr.stats[tenantID] = &stats
}

func (tr *FakeTenantRepo) List(_ context.Context) ([]*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	if tr.listErr != nil {
		return nil, tr.listErr
	}

	result := make([]*tenants.Tenant, 0, len(tr.order))
	for _, id := range tr.order {
		t := *tr.tenants[id]
		result = append(result, &t)
	}
	return result, nil
}

func (tr *FakeTenantRepo) Get(_ context.Context, id string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	t, ok := tr.tenants[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (tr *FakeTenantRepo) Create(_ context.Context, tenant *tenants.Tenant) (*tenants.Tenant, error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	t := *tenant
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if _, exists := tr.tenants[t.ID]; exists {
		return nil, errors.Validationf("tenant %s already exists", t.ID)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	t.UpdatedAt = t.CreatedAt
	tr.tenants[t.ID] = &t
	tr.order = append(tr.order, t.ID)
	cp := t
	return &cp, nil
}

func (tr *FakeTenantRepo) Update(_ context.Context, tenant *tenants.Tenant) (*tenants.Tenant, error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	existing, ok := tr.tenants[tenant.ID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	t := *tenant
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	tr.tenants[t.ID] = &t
	cp := t
	return &cp, nil
}

func (tr *FakeTenantRepo) Delete(_ context.Context, id string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if _, ok := tr.tenants[id]; !ok {
		return errors.ErrNotFound
	}
	delete(tr.tenants, id)
	delete(tr.stats, id)
	for i, existing := range tr.order {
		if existing == id {
			tr.order = append(tr.order[:i], tr.order[i+1:]...)
			break
		}
	}
	return nil
}

func (tr *FakeTenantRepo) Stats(_ context.Context, id string) (*tenants.Stats, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	if _, ok := tr.tenants[id]; !ok {
		return nil, errors.ErrNotFound
	}
	if s, ok := tr.stats[id]; ok {
		cp := *s
		return &cp, nil
	}
	return &tenants.Stats{TenantID: id}, nil
}
