package fakeuserrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type storedUser struct {
	user         users.TenantUser
	passwordHash string
}

// FakeUserRepo is an in-memory users.Repo keyed by tenant. Listing keeps insertion order.
type FakeUserRepo struct {
	users    map[string][]*storedUser // tenant id -> users
	listErrs map[string]error         // tenant id -> injected List failure
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[string][]*storedUser),
		listErrs: make(map[string]error),
	}
}

// FailList makes List(tenantID) return err.
func (ur *FakeUserRepo) FailList(tenantID string, err error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.listErrs[tenantID] = err
}

func (ur *FakeUserRepo) List(_ context.Context, tenantID string) ([]*users.TenantUser, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	if err, ok := ur.listErrs[tenantID]; ok {
		return nil, err
	}
	if tenantID == "" {
		return nil, errors.ErrTenantRequired
	}

	stored := ur.users[tenantID]
	result := make([]*users.TenantUser, 0, len(stored))
	for _, s := range stored {
		u := s.user
		result = append(result, &u)
	}
	return result, nil
}

func (ur *FakeUserRepo) Get(_ context.Context, tenantID, userID string) (*users.TenantUser, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	s, _ := ur.find(tenantID, userID)
	if s == nil {
		return nil, errors.ErrNotFound
	}
	u := s.user
	return &u, nil
}

func (ur *FakeUserRepo) Create(_ context.Context, tenantID string, user *users.TenantUser) (*users.TenantUser, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	if tenantID == "" {
		return nil, errors.ErrTenantRequired
	}

	s := &storedUser{user: *user}
	if s.user.ID == "" {
		s.user.ID = uuid.New().String()
	}
	if s.user.CreatedAt.IsZero() {
		s.user.CreatedAt = time.Now().UTC()
	}
	s.user.TenantID = tenantID
	if s.user.Password != "" {
		hash, err := users.HashPassword(s.user.Password)
		if err != nil {
			return nil, err
		}
		s.passwordHash = hash
	}
	s.user.Password = ""
	ur.users[tenantID] = append(ur.users[tenantID], s)

	u := s.user
	return &u, nil
}

func (ur *FakeUserRepo) Update(_ context.Context, tenantID string, user *users.TenantUser) (*users.TenantUser, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	s, _ := ur.find(tenantID, user.ID)
	if s == nil {
		return nil, errors.ErrNotFound
	}
	createdAt, lastLogin := s.user.CreatedAt, s.user.LastLogin
	s.user = *user
	s.user.TenantID = tenantID
	s.user.CreatedAt = createdAt
	s.user.LastLogin = lastLogin
	s.user.Password = ""

	u := s.user
	return &u, nil
}

func (ur *FakeUserRepo) Delete(_ context.Context, tenantID, userID string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	s, i := ur.find(tenantID, userID)
	if s == nil {
		return errors.ErrNotFound
	}
	ur.users[tenantID] = append(ur.users[tenantID][:i], ur.users[tenantID][i+1:]...)
	return nil
}

func (ur *FakeUserRepo) ResetPassword(_ context.Context, tenantID, userID string) (*users.PasswordReset, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	s, _ := ur.find(tenantID, userID)
	if s == nil {
		return nil, errors.ErrNotFound
	}
	temp := "Tmp" + uuid.New().String()[:8] + "9"
	hash, err := users.HashPassword(temp)
	if err != nil {
		return nil, err
	}
	s.passwordHash = hash
	return &users.PasswordReset{TemporaryPassword: temp}, nil
}

// Authenticate returns the user whose username and password match, searching all tenants.
func (ur *FakeUserRepo) Authenticate(username, password string) (*users.TenantUser, bool) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	for _, stored := range ur.users {
		for _, s := range stored {
			if s.user.Username == username && s.passwordHash != "" && users.CheckPasswordHash(password, s.passwordHash) {
				u := s.user
				return &u, true
			}
		}
	}
	return nil, false
}

func (ur *FakeUserRepo) find(tenantID, userID string) (*storedUser, int) {
	for i, s := range ur.users[tenantID] {
		if s.user.ID == userID {
			return s, i
		}
	}
	return nil, -1
}
