package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akgec/studentreg/internal/app/captcha"
)

func newStore(t *testing.T, size int) *SessionStore {
	t.Helper()
	store, err := NewSessionStore(size, func() *SubmissionController {
		return NewSubmissionController(SubmissionConfig{
			DisplayTimeout: time.Minute,
			Logger:         zerolog.Nop(),
		}, &fakeRegistrar{}, captcha.NewWidget())
	})
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestSessionStore_GetOrCreate(t *testing.T) {
	store := newStore(t, 4)

	id, c, created := store.GetOrCreate("")
	assert.True(t, created)
	assert.NotEmpty(t, id)

	id2, c2, created := store.GetOrCreate(id)
	assert.False(t, created)
	assert.Equal(t, id, id2)
	assert.Same(t, c, c2)

	id3, _, created := store.GetOrCreate("not-a-uuid")
	assert.True(t, created)
	assert.NotEqual(t, id, id3)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStore_EvictsLeastRecentlyUsed(t *testing.T) {
	store := newStore(t, 2)

	first, _ := store.Create()
	second, _ := store.Create()
	_, ok := store.Get(first)
	require.True(t, ok)

	store.Create()
	_, ok = store.Get(second)
	assert.False(t, ok)
	_, ok = store.Get(first)
	assert.True(t, ok)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStore_SessionsAreIsolated(t *testing.T) {
	store := newStore(t, 4)

	_, a := store.Create()
	_, b := store.Create()
	_, err := a.UpdateField("name", "rohan")
	require.NoError(t, err)

	assert.Equal(t, "rohan", a.Snapshot().Record.Name)
	assert.Empty(t, b.Snapshot().Record.Name)
}
