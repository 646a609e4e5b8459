package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/99designs/keyring"
)

// Credential coordinates for the online AI model key.
const (
	AICredentialResource = "https://platform.openai.com/api-keys"
	AICredentialAccount  = "PowerToys_AdvancedPaste_OpenAIKey"
)

var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrSecretEmpty        = errors.New("secret is empty")
)

// CredentialStore keeps opaque secrets addressed by resource and account.
type CredentialStore interface {
	Store(resource, account, secret string) error
	Retrieve(resource, account string) (string, error)
	Remove(resource, account string) error
}

// KeyringOpener opens the keyring holding items for one resource.
type KeyringOpener func(resource string) (keyring.Keyring, error)

// KeyringService is a CredentialStore over the platform keyring. Each
// resource maps to a keyring service name; accounts are item keys.
type KeyringService struct {
	open  KeyringOpener
	mu    sync.Mutex
	rings map[string]keyring.Keyring
}

// NewKeyringService opens rings with base applied, overriding ServiceName
// with the resource.
func NewKeyringService(base keyring.Config) *KeyringService {
	return NewKeyringServiceWithOpener(func(resource string) (keyring.Keyring, error) {
		cfg := base
		cfg.ServiceName = resource
		return keyring.Open(cfg)
	})
}

func NewKeyringServiceWithOpener(open KeyringOpener) *KeyringService {
	return &KeyringService{open: open, rings: make(map[string]keyring.Keyring)}
}

func (s *KeyringService) ring(resource string) (keyring.Keyring, error) {
	if resource == "" {
		return nil, errors.New("resource is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rings[resource]; ok {
		return r, nil
	}
	r, err := s.open(resource)
	if err != nil {
		return nil, fmt.Errorf("keyring: open %s: %w", resource, err)
	}
	s.rings[resource] = r
	return r, nil
}

func (s *KeyringService) Store(resource, account, secret string) error {
	if secret == "" {
		return ErrSecretEmpty
	}
	if account == "" {
		return errors.New("account is required")
	}
	r, err := s.ring(resource)
	if err != nil {
		return err
	}
	return r.Set(keyring.Item{
		Key:         account,
		Data:        []byte(secret),
		Label:       account,
		Description: "API key for " + resource,
	})
}

func (s *KeyringService) Retrieve(resource, account string) (string, error) {
	if account == "" {
		return "", errors.New("account is required")
	}
	r, err := s.ring(resource)
	if err != nil {
		return "", err
	}
	item, err := r.Get(account)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrCredentialNotFound
		}
		return "", err
	}
	return string(item.Data), nil
}

func (s *KeyringService) Remove(resource, account string) error {
	if account == "" {
		return errors.New("account is required")
	}
	r, err := s.ring(resource)
	if err != nil {
		return err
	}
	if err := r.Remove(account); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return ErrCredentialNotFound
		}
		return err
	}
	return nil
}
