package sessions

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the keyring service name the token is filed under.
const DefaultKeyringService = "go-auth-console"

var _ TokenStore = (*KeyringStore)(nil)

// KeyringStore keeps the token in the OS keyring (Keychain, Secret Service, Credential Manager).
type KeyringStore struct {
	service string
}

func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringStore{service: service}
}

func (ks *KeyringStore) Load() (string, error) {
	token, err := keyring.Get(ks.service, TokenKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("[KeyringStore Load] %w", err)
	}
	return token, nil
}

func (ks *KeyringStore) Save(token string) error {
	if err := keyring.Set(ks.service, TokenKey, token); err != nil {
		return fmt.Errorf("[KeyringStore Save] %w", err)
	}
	return nil
}

func (ks *KeyringStore) Clear() error {
	if err := keyring.Delete(ks.service, TokenKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("[KeyringStore Clear] %w", err)
	}
	return nil
}
