package dashboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-console/clients"
	"github.com/jrsteele09/go-auth-console/dashboard"
	"github.com/jrsteele09/go-auth-console/dashboard/mocks"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/internal/metrics"
	"github.com/jrsteele09/go-auth-console/tenants"
	"github.com/jrsteele09/go-auth-console/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type DashboardSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	backend *mocks.MockBackend
	metrics *metrics.Metrics
	service *dashboard.Service
}

func (s *DashboardSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.backend = mocks.NewMockBackend(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = dashboard.NewService(s.backend, dashboard.WithConcurrency(4), dashboard.WithMetrics(s.metrics))
}

func (s *DashboardSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}

func (s *DashboardSuite) noClients() {
	s.backend.EXPECT().ListClients(gomock.Any()).Return([]*clients.Client{}, nil).AnyTimes()
}

func (s *DashboardSuite) noTenants() {
	s.backend.EXPECT().ListTenants(gomock.Any()).Return([]*tenants.Tenant{}, nil).AnyTimes()
}

func user(id string, created time.Time, active bool) *users.TenantUser {
	return &users.TenantUser{ID: id, Username: id, Email: id + "@example.com", CreatedAt: created, IsActive: active}
}

func (s *DashboardSuite) failures(kind string) float64 {
	return testutil.ToFloat64(s.metrics.AggregationFailures.WithLabelValues(kind))
}

func (s *DashboardSuite) TestOneTenantFailing() {
	s.noClients()
	s.backend.EXPECT().ListTenants(gomock.Any()).Return([]*tenants.Tenant{
		{ID: "t1", Name: "Broken"},
		{ID: "t2", Name: "Acme"},
		{ID: "t3", Name: "Empty"},
	}, nil)
	s.backend.EXPECT().ListTenantUsers(gomock.Any(), "t1").Return(nil, fmt.Errorf("dial tcp: connection refused"))
	s.backend.EXPECT().ListTenantUsers(gomock.Any(), "t2").Return([]*users.TenantUser{
		user("older", base.Add(-time.Hour), true),
		user("newer", base, false),
	}, nil)
	s.backend.EXPECT().ListTenantUsers(gomock.Any(), "t3").Return([]*users.TenantUser{}, nil)

	stats, err := s.service.Compute(context.Background())
	s.Require().NoError(err)

	s.Equal(3, stats.TotalTenants)
	s.Equal(2, stats.TotalUsers)
	s.Equal(1, stats.ActiveUsers)
	s.Require().Len(stats.RecentUsers, 2)
	s.Equal("newer", stats.RecentUsers[0].ID)
	s.Equal("older", stats.RecentUsers[1].ID)
	s.Equal("t2", stats.RecentUsers[0].TenantID)
	s.Equal("Acme", stats.RecentUsers[0].TenantName)
	s.Equal(1.0, s.failures(metrics.KindTenantUsers))
}

func (s *DashboardSuite) TestClientStatsFailing() {
	s.noTenants()
	s.backend.EXPECT().ListClients(gomock.Any()).Return([]*clients.Client{
		{ID: "c1", Name: "web", IsActive: true},
		{ID: "c2", Name: "cli", IsActive: false},
	}, nil)
	s.backend.EXPECT().ClientStats(gomock.Any(), "c1").Return(&clients.Stats{ClientID: "c1", TotalTokens: 5}, nil)
	s.backend.EXPECT().ClientStats(gomock.Any(), "c2").Return(nil, errors.ErrNotFound)

	stats, err := s.service.Compute(context.Background())
	s.Require().NoError(err)

	s.EqualValues(5, stats.TotalTokens)
	s.Equal(2, stats.TotalClients)
	s.Equal(1, stats.ActiveClients)
	s.Equal(1.0, s.failures(metrics.KindClientStats))
}

func (s *DashboardSuite) TestRecentUsersLimitedAndOrdered() {
	s.noClients()
	s.backend.EXPECT().ListTenants(gomock.Any()).Return([]*tenants.Tenant{{ID: "a"}, {ID: "b"}}, nil)
	s.backend.EXPECT().ListTenantUsers(gomock.Any(), "a").Return([]*users.TenantUser{
		user("a1", base.Add(-5*time.Hour), true),
		user("a2", base.Add(-1*time.Hour), true),
		user("a3", base.Add(-7*time.Hour), true),
		user("a4", base.Add(-3*time.Hour), true),
	}, nil)
	s.backend.EXPECT().ListTenantUsers(gomock.Any(), "b").Return([]*users.TenantUser{
		user("b1", base.Add(-2*time.Hour), true),
		user("b2", base.Add(-6*time.Hour), true),
		user("b3", base, true),
		user("b4", base.Add(-4*time.Hour), true),
	}, nil)

	stats, err := s.service.Compute(context.Background())
	s.Require().NoError(err)

	s.Equal(8, stats.TotalUsers)
	s.Equal(8, stats.ActiveUsers)
	s.Require().Len(stats.RecentUsers, dashboard.RecentUsersLimit)
	var ids []string
	for i, u := range stats.RecentUsers {
		ids = append(ids, u.ID)
		if i > 0 {
			s.False(u.CreatedAt.After(stats.RecentUsers[i-1].CreatedAt))
		}
	}
	s.Equal([]string{"b3", "a2", "b1", "a4", "b4"}, ids)
}

func (s *DashboardSuite) TestEqualTimestampsKeepListingOrder() {
	s.noClients()
	s.backend.EXPECT().ListTenants(gomock.Any()).Return([]*tenants.Tenant{{ID: "a"}, {ID: "b"}}, nil)
	s.backend.EXPECT().ListTenantUsers(gomock.Any(), "a").Return([]*users.TenantUser{
		user("a1", base, true), user("a2", base, true),
	}, nil)
	s.backend.EXPECT().ListTenantUsers(gomock.Any(), "b").Return([]*users.TenantUser{
		user("b1", base, true), user("b2", base.Add(time.Second), true),
	}, nil)

	stats, err := s.service.Compute(context.Background())
	s.Require().NoError(err)

	var ids []string
	for _, u := range stats.RecentUsers {
		ids = append(ids, u.ID)
	}
	s.Equal([]string{"b2", "a1", "a2", "b1"}, ids)
}

func (s *DashboardSuite) TestEmpty() {
	s.noClients()
	s.noTenants()

	stats, err := s.service.Compute(context.Background())
	s.Require().NoError(err)
	s.Equal(dashboard.Stats{RecentUsers: []dashboard.RecentUser{}}, *stats)
}

func (s *DashboardSuite) TestListFailureAborts() {
	s.noClients()
	s.backend.EXPECT().ListTenants(gomock.Any()).Return(nil, errors.ErrUnexpectedStatus)

	_, err := s.service.Compute(context.Background())
	s.True(errors.Is(err, errors.ErrUnexpectedStatus))
}

func (s *DashboardSuite) TestUnauthorizedItemAborts() {
	s.noClients()
	s.backend.EXPECT().ListTenants(gomock.Any()).Return([]*tenants.Tenant{{ID: "t1"}}, nil)
	s.backend.EXPECT().ListTenantUsers(gomock.Any(), "t1").Return(nil, errors.Wrapf(errors.ErrUnauthorized, "[apiclient GET /admin/tenants/t1/users]"))

	_, err := s.service.Compute(context.Background())
	s.True(errors.Is(err, errors.ErrUnauthorized))
	s.Equal(0.0, s.failures(metrics.KindTenantUsers))
}

func (s *DashboardSuite) TestCanceledContext() {
	s.noClients()
	s.noTenants()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.service.Compute(ctx)
	s.True(errors.Is(err, context.Canceled))
}
