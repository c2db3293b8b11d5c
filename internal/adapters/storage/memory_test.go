package storage

import (
	"testing"
	"time"

	"metahub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore() (*MemoryStore, *time.Time) {
	now := time.Now()
	store := NewMemoryStore(30 * time.Second)
	store.now = func() time.Time { return now }

	return store, &now
}

func TestMemoryStoreRegisterAndGet(t *testing.T) {
	store, _ := newMemoryStore()
	module := testModule("help", "block_actions:help_button")

	require.NoError(t, store.Register(t.Context(), module))

	got, err := store.GetModule(t.Context(), "help")
	require.NoError(t, err)
	assert.Equal(t, module, got)

	got, err = store.GetModuleByAction(t.Context(), "block_actions:help_button")
	require.NoError(t, err)
	assert.Equal(t, "help", got.Name)

	_, err = store.GetModule(t.Context(), "unknown")
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)
}

func TestMemoryStoreRejectsInvalidModule(t *testing.T) {
	store, _ := newMemoryStore()

	err := store.Register(t.Context(), testModule("not a name"))
	assert.ErrorIs(t, err, domain.ErrInvalidModule)
}

func TestMemoryStoreLeaseExpires(t *testing.T) {
	store, now := newMemoryStore()
	module := testModule("help", "block_actions:help_button")

	require.NoError(t, store.Register(t.Context(), module))

	*now = now.Add(31 * time.Second)

	_, err := store.GetModule(t.Context(), "help")
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)

	_, err = store.GetModuleByAction(t.Context(), "block_actions:help_button")
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)
}

func TestMemoryStoreExpiredEntriesSkippedInEnumeration(t *testing.T) {
	store, now := newMemoryStore()

	require.NoError(t, store.Register(t.Context(), testModule("old")))

	*now = now.Add(20 * time.Second)
	require.NoError(t, store.Register(t.Context(), testModule("fresh")))

	*now = now.Add(15 * time.Second)

	names, err := store.ModuleNames(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, names)

	modules, err := store.AllModules(t.Context())
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "fresh", modules["fresh"].Name)
}
