package storefakes

import (
	"sync"

	"github.com/jrsteele09/go-auth-console/sessions"
)

var _ sessions.TokenStore = (*FakeTokenStore)(nil)

type FakeTokenStore struct {
	values  map[string]string
	cleared int
	lock    sync.RWMutex
}

func NewFakeTokenStore(token string) *FakeTokenStore {
	s := &FakeTokenStore{values: make(map[string]string)}
	if token != "" {
		s.values[sessions.TokenKey] = token
	}
	return s
}

func (s *FakeTokenStore) Load() (string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.values[sessions.TokenKey], nil
}

func (s *FakeTokenStore) Save(token string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.values[sessions.TokenKey] = token
	return nil
}

func (s *FakeTokenStore) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.values, sessions.TokenKey)
	s.cleared++
	return nil
}

// ClearCount reports how many times Clear was called.
func (s *FakeTokenStore) ClearCount() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cleared
}
