// Package dashboard folds clients, tenants and users into the console's landing view.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/jrsteele09/go-auth-console/clients"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/internal/metrics"
	"github.com/jrsteele09/go-auth-console/tenants"
	"github.com/jrsteele09/go-auth-console/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	RecentUsersLimit   = 5
	DefaultConcurrency = 8
)

// Stats is the aggregate shown on the dashboard. It is rebuilt on every request.
type Stats struct {
	TotalClients  int          `json:"total_clients"`
	ActiveClients int          `json:"active_clients"`
	TotalTokens   int64        `json:"total_tokens"`
	TotalTenants  int          `json:"total_tenants"`
	TotalUsers    int          `json:"total_users"`
	ActiveUsers   int          `json:"active_users"`
	RecentUsers   []RecentUser `json:"recent_users"`
}

// RecentUser is a tenant user tagged with the tenant it was listed under.
type RecentUser struct {
	users.TenantUser
	TenantName string `json:"tenant_name"`
}

type Service struct {
	backend     Backend
	concurrency int
	metrics     *metrics.Metrics
}

type Option func(*Service)

// WithConcurrency bounds the per-item calls in flight for each branch.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(backend Backend, opts ...Option) *Service {
	s := &Service{backend: backend, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type clientSummary struct {
	total, active int
	tokens        int64
}

type tenantSummary struct {
	tenants, users, activeUsers int
	recent                      []RecentUser
}

// Compute builds the dashboard. Per-item failures are replaced by empty stubs; only a
// failed listing or a rejected session fails the whole computation.
func (s *Service) Compute(ctx context.Context) (*Stats, error) {
	defer s.metrics.ObserveAggregation(time.Now())

	var (
		cs clientSummary
		ts tenantSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cs, err = s.summariseClients(gctx)
		return err
	})
	g.Go(func() (err error) {
		ts, err = s.summariseTenants(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Stats{
		TotalClients:  cs.total,
		ActiveClients: cs.active,
		TotalTokens:   cs.tokens,
		TotalTenants:  ts.tenants,
		TotalUsers:    ts.users,
		ActiveUsers:   ts.activeUsers,
		RecentUsers:   ts.recent,
	}, nil
}

func (s *Service) summariseClients(ctx context.Context) (clientSummary, error) {
	list, err := s.backend.ListClients(ctx)
	if err != nil {
		return clientSummary{}, errors.Wrapf(err, "[dashboard Compute] list clients")
	}

	results := Gather(ctx, s.concurrency, list, func(ctx context.Context, c *clients.Client) (*clients.Stats, error) {
		return s.backend.ClientStats(ctx, c.ID)
	})
	if err := ctx.Err(); err != nil {
		return clientSummary{}, err
	}

	sum := clientSummary{total: len(list)}
	for i, c := range list {
		if c.IsActive {
			sum.active++
		}
		stats := results[i].Value
		if err := results[i].Err; err != nil {
			if errors.Is(err, errors.ErrUnauthorized) {
				return clientSummary{}, err
			}
			log.Warn().Err(err).Str("client_id", c.ID).Msg("[dashboard] client stats unavailable, counting zero tokens")
			s.metrics.IncrementAggregationFailure(metrics.KindClientStats)
			stats = &clients.Stats{ClientID: c.ID}
		}
		if stats != nil {
			sum.tokens += stats.TotalTokens
		}
	}
	return sum, nil
}

func (s *Service) summariseTenants(ctx context.Context) (tenantSummary, error) {
	list, err := s.backend.ListTenants(ctx)
	if err != nil {
		return tenantSummary{}, errors.Wrapf(err, "[dashboard Compute] list tenants")
	}

	results := Gather(ctx, s.concurrency, list, func(ctx context.Context, t *tenants.Tenant) ([]*users.TenantUser, error) {
		return s.backend.ListTenantUsers(ctx, t.ID)
	})
	if err := ctx.Err(); err != nil {
		return tenantSummary{}, err
	}

	var all []RecentUser
	for i, t := range list {
		tenantUsers := results[i].Value
		if err := results[i].Err; err != nil {
			if errors.Is(err, errors.ErrUnauthorized) {
				return tenantSummary{}, err
			}
			log.Warn().Err(err).Str("tenant_id", t.ID).Msg("[dashboard] tenant users unavailable, counting none")
			s.metrics.IncrementAggregationFailure(metrics.KindTenantUsers)
			tenantUsers = nil
		}
		for _, u := range tenantUsers {
			if u == nil {
				continue
			}
			ru := RecentUser{TenantUser: *u, TenantName: t.Name}
			ru.TenantID = t.ID
			all = append(all, ru)
		}
	}

	sum := tenantSummary{tenants: len(list), users: len(all)}
	for _, u := range all {
		if u.IsActive {
			sum.activeUsers++
		}
	}
	sum.recent = mostRecent(all, RecentUsersLimit)
	return sum, nil
}

// mostRecent orders by creation time, newest first. Equal times keep tenant order, then
// the order the API listed the users in.
func mostRecent(all []RecentUser, n int) []RecentUser {
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > n {
		all = all[:n]
	}
	if all == nil {
		all = []RecentUser{}
	}
	return all
}
