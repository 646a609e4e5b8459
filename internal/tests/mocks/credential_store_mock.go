package mocks

import "pastesync/internal/services"

// CredentialStoreMock keeps secrets in memory unless a Func override is set.
type CredentialStoreMock struct {
	StoreFunc    func(resource, account, secret string) error
	RetrieveFunc func(resource, account string) (string, error)
	RemoveFunc   func(resource, account string) error

	Secrets map[string]string
}

func key(resource, account string) string { return resource + "|" + account }

func (m *CredentialStoreMock) Store(resource, account, secret string) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(resource, account, secret)
	}
	if m.Secrets == nil {
		m.Secrets = make(map[string]string)
	}
	m.Secrets[key(resource, account)] = secret
	return nil
}

func (m *CredentialStoreMock) Retrieve(resource, account string) (string, error) {
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(resource, account)
	}
	secret, ok := m.Secrets[key(resource, account)]
	if !ok {
		return "", services.ErrCredentialNotFound
	}
	return secret, nil
}

func (m *CredentialStoreMock) Remove(resource, account string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(resource, account)
	}
	if _, ok := m.Secrets[key(resource, account)]; !ok {
		return services.ErrCredentialNotFound
	}
	delete(m.Secrets, key(resource, account))
	return nil
}

func (m *CredentialStoreMock) Has(resource, account string) bool {
	_, ok := m.Secrets[key(resource, account)]
	return ok
}
