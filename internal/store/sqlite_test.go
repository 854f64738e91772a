package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelog/internal/errors"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kv.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	_, err = s.Get(ctx, "trades")
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)

	require.NoError(t, s.Put(ctx, "trades", []byte(`[{"id":"a"}]`)))
	got, err := s.Get(ctx, "trades")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), got)

	// Overwrite replaces the previous value.
	require.NoError(t, s.Put(ctx, "trades", []byte(`[]`)))
	got, err = s.Get(ctx, "trades")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, s.Delete(ctx, "trades"))
	_, err = s.Get(ctx, "trades")
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete(ctx, "trades"))
}

func TestSQLiteStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "trades", []byte("persisted")))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "trades")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), got)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)

	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	// The store holds its own copy of the value.
	got[0] = 'x'
	got2, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got2)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)
}
