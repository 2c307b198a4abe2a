package reqlogs

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/jrsteele09/go-auth-console/internal/errors"
)

// Periods accepted by {base}/logs/stats.
const (
	PeriodHour  = "1h"
	PeriodDay   = "24h"
	PeriodWeek  = "7d"
	PeriodMonth = "30d"
)

var periods = []string{PeriodHour, PeriodDay, PeriodWeek, PeriodMonth}

// RequestLog is one request recorded by the identity server.
type RequestLog struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	DurationMS int64     `json:"duration_ms"`
	ClientID   string    `json:"client_id,omitempty"`
	TenantID   string    `json:"tenant_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats summarises the logs of one period.
type Stats struct {
	Period        string           `json:"period"`
	TotalRequests int64            `json:"total_requests"`
	ErrorRequests int64            `json:"error_requests"`
	AvgDurationMS float64          `json:"avg_duration_ms"`
	ByStatus      map[string]int64 `json:"by_status,omitempty"`
	ByPath        map[string]int64 `json:"by_path,omitempty"`
}

// Filter narrows a log listing. Zero values are omitted from the query.
type Filter struct {
	TenantID string
	ClientID string
	Method   string
	Status   int
	Limit    int
	Offset   int
}

// Repo is the set of request log operations.
type Repo interface {
	List(ctx context.Context, filter Filter) ([]*RequestLog, error)
	Get(ctx context.Context, id string) (*RequestLog, error)
	Stats(ctx context.Context, period string) (*Stats, error)
}

// Query encodes the filter as URL query parameters.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.TenantID != "" {
		q.Set("tenant_id", f.TenantID)
	}
	if f.ClientID != "" {
		q.Set("client_id", f.ClientID)
	}
	if f.Method != "" {
		q.Set("method", f.Method)
	}
	if f.Status != 0 {
		q.Set("status", strconv.Itoa(f.Status))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// FilterFromQuery is the inverse of Filter.Query. Unparseable numbers are ignored.
func FilterFromQuery(q url.Values) Filter {
	f := Filter{
		TenantID: q.Get("tenant_id"),
		ClientID: q.Get("client_id"),
		Method:   q.Get("method"),
	}
	f.Status, _ = strconv.Atoi(q.Get("status"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	f.Offset, _ = strconv.Atoi(q.Get("offset"))
	return f
}

// ValidatePeriod rejects periods the stats endpoint does not understand.
func ValidatePeriod(period string) error {
	if !slices.Contains(periods, period) {
		return errors.Wrapf(errors.ErrInvalidPeriod, "period %q must be one of %v", period, periods)
	}
	return nil
}

// IsError reports whether the logged request failed.
func (l *RequestLog) IsError() bool {
	return l.StatusCode >= 400
}
