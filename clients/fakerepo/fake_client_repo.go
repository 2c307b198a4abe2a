package fakeclientrepo

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-console/clients"
	"github.com/jrsteele09/go-auth-console/internal/errors"
)

var _ clients.Repo = (*FakeClientRepo)(nil)

// FakeClientRepo is an in-memory clients.Repo. Failures can be injected per client id
// for stats calls, and for the whole listing.
type FakeClientRepo struct {
	clients   map[string]*clients.Client
	stats     map[string]*clients.Stats
	statsErrs map[string]error
	listErr   error
	lock      sync.RWMutex
}

func NewFakeClientRepo() *FakeClientRepo {
	return &FakeClientRepo{
		clients:   make(map[string]*clients.Client),
		stats:     make(map[string]*clients.Stats),
		statsErrs: make(map[string]error),
	}
}

// SetStats stores the usage stats returned for clientID.
func (r *FakeClientRepo) SetStats(clientID string, stats clients.Stats) {
	r.lock.Lock()
	defer r.lock.Unlock()
	stats.ClientID = clientID
	r.stats[clientID] = &stats
}

// FailStats makes Stats(clientID) return err.
func (r *FakeClientRepo) FailStats(clientID string, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.statsErrs[clientID] = err
}

// FailList makes List return err.
func (r *FakeClientRepo) FailList(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.listErr = err
}

func (r *FakeClientRepo) List(_ context.Context, filter clients.ListFilter) ([]*clients.Client, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.listErr != nil {
		return nil, r.listErr
	}

	result := make([]*clients.Client, 0, len(r.clients))
	for _, c := range r.clients {
		if filter.TenantID != "" && !c.InTenant(filter.TenantID) {
			continue
		}
		result = append(result, redact(c))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *FakeClientRepo) Get(_ context.Context, id string) (*clients.Client, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return redact(c), nil
}

func (r *FakeClientRepo) Create(_ context.Context, client *clients.Client) (*clients.Client, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	c := copyClient(client)
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.ClientID == "" {
		c.ClientID = "client_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	}
	if !c.IsPublic() && c.ClientSecret == "" {
		c.ClientSecret = newSecret()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.UpdatedAt = c.CreatedAt
	r.clients[c.ID] = c
	return copyClient(c), nil
}

func (r *FakeClientRepo) Update(_ context.Context, client *clients.Client) (*clients.Client, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	existing, ok := r.clients[client.ID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	c := copyClient(client)
	c.ClientID = existing.ClientID
	c.ClientSecret = existing.ClientSecret
	c.TenantIDs = existing.TenantIDs
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.clients[c.ID] = c
	return redact(c), nil
}

func (r *FakeClientRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.clients[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.clients, id)
	delete(r.stats, id)
	return nil
}

func (r *FakeClientRepo) RegenerateSecret(_ context.Context, id string) (*clients.Client, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if c.IsPublic() {
		return nil, errors.Validationf("public clients have no secret")
	}
	c.ClientSecret = newSecret()
	c.UpdatedAt = time.Now().UTC()
	return copyClient(c), nil
}

func (r *FakeClientRepo) Stats(_ context.Context, id string) (*clients.Stats, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if err, ok := r.statsErrs[id]; ok {
		return nil, err
	}
	if _, ok := r.clients[id]; !ok {
		return nil, errors.ErrNotFound
	}
	if s, ok := r.stats[id]; ok {
		stats := *s
		return &stats, nil
	}
	return &clients.Stats{ClientID: id}, nil
}

func (r *FakeClientRepo) AddTenants(_ context.Context, id string, tenantIDs []string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return errors.ErrNotFound
	}
	for _, tenantID := range tenantIDs {
		if !c.InTenant(tenantID) {
			c.TenantIDs = append(c.TenantIDs, tenantID)
		}
	}
	return nil
}

func (r *FakeClientRepo) RemoveTenants(_ context.Context, id string, tenantIDs []string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return errors.ErrNotFound
	}
	c.TenantIDs = slices.DeleteFunc(c.TenantIDs, func(t string) bool {
		return slices.Contains(tenantIDs, t)
	})
	return nil
}

func newSecret() string {
	return strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
}

func copyClient(c *clients.Client) *clients.Client {
	cp := *c
	cp.RedirectURIs = slices.Clone(c.RedirectURIs)
	cp.GrantTypes = slices.Clone(c.GrantTypes)
	cp.Scopes = slices.Clone(c.Scopes)
	cp.TenantIDs = slices.Clone(c.TenantIDs)
	return &cp
}

func redact(c *clients.Client) *clients.Client {
	cp := copyClient(c)
	cp.ClientSecret = ""
	return cp
}
