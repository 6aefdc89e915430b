package session_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andydyb/roamstop-v1/internal/session"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := session.OpenSQLite(path)
	require.NoError(t, err)

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("k", "v1"))
	require.NoError(t, store.Set("k", "v2"))

	value, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	require.NoError(t, store.Delete("k"))
	_, ok, err = store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.db")

	store, err := session.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("roamstop_access_token", "tok"))

	reopened, err := session.OpenSQLite(path)
	require.NoError(t, err)

	value, ok, err := reopened.Get("roamstop_access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", value)
}
