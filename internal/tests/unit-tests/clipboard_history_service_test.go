package unit_tests

import (
	"errors"
	"testing"

	"pastesync/internal/models"
	"pastesync/internal/policy"
	"pastesync/internal/repositories"
	"pastesync/internal/services"
	"pastesync/internal/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipboardHistory_ReadsUserFlag(t *testing.T) {
	flags := &mocks.FlagStoreMock{Flags: map[string]bool{services.ClipboardHistoryUserKey: true}}
	svc := services.NewClipboardHistoryService(flags, flags, nil)

	assert.True(t, svc.Enabled())
	assert.False(t, svc.DisabledByPolicy())
}

func TestClipboardHistory_PolicyOverridesUserFlag(t *testing.T) {
	flags := &mocks.FlagStoreMock{Flags: map[string]bool{services.ClipboardHistoryUserKey: true}}
	src := policy.NewStaticSource()
	src.SetFlag(services.ClipboardHistoryPolicyKey, 0)
	svc := services.NewClipboardHistoryService(flags, src, nil)

	assert.True(t, svc.DisabledByPolicy())
	assert.False(t, svc.Enabled())

	src.SetFlag(services.ClipboardHistoryPolicyKey, 1)
	assert.False(t, svc.DisabledByPolicy())
	assert.True(t, svc.Enabled())
}

func TestClipboardHistory_ReadErrorsReadAsOff(t *testing.T) {
	flags := &mocks.FlagStoreMock{
		GetFlagFunc: func(string) (bool, error) { return true, errors.New("denied") },
		GetPolicyFlagFunc: func(string) (int, bool, error) {
			return 0, true, errors.New("denied")
		},
	}
	svc := services.NewClipboardHistoryService(flags, flags, nil)

	assert.False(t, svc.Enabled())
	assert.False(t, svc.DisabledByPolicy())
}

func TestClipboardHistory_SetEnabled(t *testing.T) {
	flags := &mocks.FlagStoreMock{}
	svc := services.NewClipboardHistoryService(flags, nil, nil)

	svc.SetEnabled(false)
	assert.Equal(t, 0, flags.SetCalls, "unchanged value is not written")

	svc.SetEnabled(true)
	assert.Equal(t, 1, flags.SetCalls)
	assert.True(t, flags.Flags[services.ClipboardHistoryUserKey])
}

func TestClipboardHistory_SetEnabledSwallowsErrors(t *testing.T) {
	flags := &mocks.FlagStoreMock{
		SetFlagFunc: func(string, bool) error { return errors.New("read-only") },
	}
	svc := services.NewClipboardHistoryService(flags, nil, nil)

	assert.NotPanics(t, func() { svc.SetEnabled(true) })
	assert.Equal(t, 1, flags.SetCalls)
	assert.False(t, svc.Enabled())
}

func TestRepositoryFlagStore(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewFlagRepository(db)
	store := services.NewRepositoryFlagStore(repo)

	on, err := store.GetFlag(services.ClipboardHistoryUserKey)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, store.SetFlag(services.ClipboardHistoryUserKey, true))
	on, err = store.GetFlag(services.ClipboardHistoryUserKey)
	require.NoError(t, err)
	assert.True(t, on)

	_, ok, err := store.GetPolicyFlag(services.ClipboardHistoryPolicyKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(t.Context(), models.FlagScopeMachine, services.ClipboardHistoryPolicyKey, 0))
	svc := services.NewClipboardHistoryService(store, store, nil)
	assert.True(t, svc.DisabledByPolicy())
	assert.False(t, svc.Enabled())
}
