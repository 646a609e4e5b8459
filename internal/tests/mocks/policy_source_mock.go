package mocks

import "pastesync/internal/models"

type PolicySourceMock struct {
	QueryVerdictFunc func(ruleID string) (models.Verdict, error)
	Calls            []string
}

func (m *PolicySourceMock) QueryVerdict(ruleID string) (models.Verdict, error) {
	m.Calls = append(m.Calls, ruleID)
	if m.QueryVerdictFunc != nil {
		return m.QueryVerdictFunc(ruleID)
	}
	return models.VerdictUnset, nil
}
