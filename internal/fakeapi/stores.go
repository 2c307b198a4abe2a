package fakeapi

import (
	"context"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-console/apikeys"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/reqlogs"
)

var (
	_ apikeys.Repo = (*APIKeyStore)(nil)
	_ reqlogs.Repo = (*LogStore)(nil)
)

// APIKeyStore is an in-memory apikeys.Repo.
type APIKeyStore struct {
	keys  []*apikeys.APIKey
	clock func() time.Time
	lock  sync.RWMutex
}

func NewAPIKeyStore() *APIKeyStore {
	return &APIKeyStore{clock: time.Now}
}

func (ks *APIKeyStore) List(_ context.Context) ([]*apikeys.APIKey, error) {
	ks.lock.RLock()
	defer ks.lock.RUnlock()
	result := make([]*apikeys.APIKey, 0, len(ks.keys))
	for _, k := range ks.keys {
		result = append(result, withoutSecret(k))
	}
	return result, nil
}

func (ks *APIKeyStore) Get(_ context.Context, id string) (*apikeys.APIKey, error) {
	ks.lock.RLock()
	defer ks.lock.RUnlock()
	k := ks.find(id)
	if k == nil {
		return nil, errors.ErrNotFound
	}
	return withoutSecret(k), nil
}

// Generate returns the only copy carrying the key value.
func (ks *APIKeyStore) Generate(_ context.Context, req apikeys.GenerateRequest) (*apikeys.APIKey, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ks.lock.Lock()
	defer ks.lock.Unlock()

	now := ks.clock().UTC()
	secret := "ak_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	k := &apikeys.APIKey{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Prefix:    secret[:8],
		Scopes:    slices.Clone(req.Scopes),
		IsActive:  true,
		CreatedAt: now,
	}
	if req.ExpiresInDays > 0 {
		exp := now.AddDate(0, 0, req.ExpiresInDays)
		k.ExpiresAt = &exp
	}
	ks.keys = append(ks.keys, k)

	out := *k
	out.Key = secret
	return &out, nil
}

func (ks *APIKeyStore) Delete(_ context.Context, id string) error {
	ks.lock.Lock()
	defer ks.lock.Unlock()
	i := slices.IndexFunc(ks.keys, func(k *apikeys.APIKey) bool { return k.ID == id })
	if i < 0 {
		return errors.ErrNotFound
	}
	ks.keys = slices.Delete(ks.keys, i, i+1)
	return nil
}

func (ks *APIKeyStore) Toggle(_ context.Context, id string) (*apikeys.APIKey, error) {
	ks.lock.Lock()
	defer ks.lock.Unlock()
	k := ks.find(id)
	if k == nil {
		return nil, errors.ErrNotFound
	}
	k.IsActive = !k.IsActive
	return withoutSecret(k), nil
}

func (ks *APIKeyStore) find(id string) *apikeys.APIKey {
	for _, k := range ks.keys {
		if k.ID == id {
			return k
		}
	}
	return nil
}

func withoutSecret(k *apikeys.APIKey) *apikeys.APIKey {
	out := *k
	out.Key = ""
	return &out
}

// LogStore is an in-memory reqlogs.Repo. Listing is newest first.
type LogStore struct {
	logs  []*reqlogs.RequestLog
	clock func() time.Time
	lock  sync.RWMutex
}

func NewLogStore() *LogStore {
	return &LogStore{clock: time.Now}
}

// Add records a log entry, filling the id and timestamp when missing.
func (ls *LogStore) Add(l reqlogs.RequestLog) *reqlogs.RequestLog {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = ls.clock().UTC()
	}
	ls.logs = append(ls.logs, &l)
	out := l
	return &out
}

func (ls *LogStore) List(_ context.Context, f reqlogs.Filter) ([]*reqlogs.RequestLog, error) {
	ls.lock.RLock()
	defer ls.lock.RUnlock()

	result := []*reqlogs.RequestLog{}
	for _, l := range ls.logs {
		if matches(l, f) {
			out := *l
			result = append(result, &out)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })

	if f.Offset > 0 {
		if f.Offset >= len(result) {
			return []*reqlogs.RequestLog{}, nil
		}
		result = result[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(result) {
		result = result[:f.Limit]
	}
	return result, nil
}

func (ls *LogStore) Get(_ context.Context, id string) (*reqlogs.RequestLog, error) {
	ls.lock.RLock()
	defer ls.lock.RUnlock()
	for _, l := range ls.logs {
		if l.ID == id {
			out := *l
			return &out, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (ls *LogStore) Stats(_ context.Context, period string) (*reqlogs.Stats, error) {
	return ls.StatsFor(period, "")
}

// StatsFor summarises the logs of period, optionally limited to one tenant.
func (ls *LogStore) StatsFor(period, tenantID string) (*reqlogs.Stats, error) {
	if err := reqlogs.ValidatePeriod(period); err != nil {
		return nil, err
	}
	ls.lock.RLock()
	defer ls.lock.RUnlock()

	since := ls.clock().Add(-periodDuration(period))
	stats := &reqlogs.Stats{Period: period, ByStatus: map[string]int64{}, ByPath: map[string]int64{}}
	var totalMS int64
	for _, l := range ls.logs {
		if l.CreatedAt.Before(since) || (tenantID != "" && l.TenantID != tenantID) {
			continue
		}
		stats.TotalRequests++
		if l.IsError() {
			stats.ErrorRequests++
		}
		totalMS += l.DurationMS
		stats.ByStatus[strconv.Itoa(l.StatusCode)]++
		stats.ByPath[l.Path]++
	}
	if stats.TotalRequests > 0 {
		stats.AvgDurationMS = float64(totalMS) / float64(stats.TotalRequests)
	}
	return stats, nil
}

func matches(l *reqlogs.RequestLog, f reqlogs.Filter) bool {
	return (f.TenantID == "" || l.TenantID == f.TenantID) &&
		(f.ClientID == "" || l.ClientID == f.ClientID) &&
		(f.Method == "" || strings.EqualFold(l.Method, f.Method)) &&
		(f.Status == 0 || l.StatusCode == f.Status)
}

func periodDuration(period string) time.Duration {
	switch period {
	case reqlogs.PeriodHour:
		return time.Hour
	case reqlogs.PeriodDay:
		return 24 * time.Hour
	case reqlogs.PeriodWeek:
		return 7 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}
