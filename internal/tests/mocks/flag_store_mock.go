package mocks

type FlagStoreMock struct {
	GetFlagFunc       func(key string) (bool, error)
	SetFlagFunc       func(key string, value bool) error
	GetPolicyFlagFunc func(key string) (int, bool, error)

	Flags    map[string]bool
	SetCalls int
}

func (m *FlagStoreMock) GetFlag(key string) (bool, error) {
	if m.GetFlagFunc != nil {
		return m.GetFlagFunc(key)
	}
	return m.Flags[key], nil
}

func (m *FlagStoreMock) SetFlag(key string, value bool) error {
	m.SetCalls++
	if m.SetFlagFunc != nil {
		return m.SetFlagFunc(key, value)
	}
	if m.Flags == nil {
		m.Flags = make(map[string]bool)
	}
	m.Flags[key] = value
	return nil
}

func (m *FlagStoreMock) GetPolicyFlag(key string) (int, bool, error) {
	if m.GetPolicyFlagFunc != nil {
		return m.GetPolicyFlagFunc(key)
	}
	return 0, false, nil
}
