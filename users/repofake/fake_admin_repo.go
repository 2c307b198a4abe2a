package fakeuserrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/users"
)

var _ users.AdminRepo = (*FakeAdminRepo)(nil)

type storedAdmin struct {
	admin        users.SystemAdmin
	passwordHash string
}

type FakeAdminRepo struct {
	admins map[string]*storedAdmin
	lock   sync.RWMutex
}

func NewFakeAdminRepo() *FakeAdminRepo {
	return &FakeAdminRepo{
		admins: make(map[string]*storedAdmin),
	}
}

// Add stores an admin with a login password. It stands in for server side provisioning.
func (ar *FakeAdminRepo) Add(admin users.SystemAdmin, password string) (*users.SystemAdmin, error) {
	ar.lock.Lock()
	defer ar.lock.Unlock()
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}
	hash, err := users.HashPassword(password)
	if err != nil {
		return nil, err
	}
	ar.admins[admin.ID] = &storedAdmin{admin: admin, passwordHash: hash}
	return &admin, nil
}

func (ar *FakeAdminRepo) List(_ context.Context) ([]*users.SystemAdmin, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()
	result := make([]*users.SystemAdmin, 0, len(ar.admins))
	for _, s := range ar.admins {
		a := s.admin
		result = append(result, &a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Username < result[j].Username
	})
	return result, nil
}

func (ar *FakeAdminRepo) Get(_ context.Context, id string) (*users.SystemAdmin, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()
	s, ok := ar.admins[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	a := s.admin
	return &a, nil
}

func (ar *FakeAdminRepo) Delete(_ context.Context, id string) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()
	if _, ok := ar.admins[id]; !ok {
		return errors.ErrNotFound
	}
	delete(ar.admins, id)
	return nil
}

func (ar *FakeAdminRepo) ResetPassword(_ context.Context, id string) (*users.PasswordReset, error) {
	ar.lock.Lock()
	defer ar.lock.Unlock()
	s, ok := ar.admins[id]
	if !ok {
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

// Authenticate returns the admin whose username and password match.
func (ar *FakeAdminRepo) Authenticate(username, password string) (*users.SystemAdmin, bool) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()
	for _, s := range ar.admins {
		if s.admin.Username == username && users.CheckPasswordHash(password, s.passwordHash) {
			a := s.admin
			return &a, true
		}
	}
	return nil, false
}
