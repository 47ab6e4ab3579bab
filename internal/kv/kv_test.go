package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreContract exercises the Store behavior every backend must share.
func testStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Missing key.
	_, err := store.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Get after Set.
	require.NoError(t, store.Set(ctx, "k1", "v1"))
	value, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v1", value)

	// Set replaces.
	require.NoError(t, store.Set(ctx, "k1", "v2"))
	value, err = store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)

	// Keys are independent.
	require.NoError(t, store.Set(ctx, "k2", "other"))
	value, err = store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)

	// Remove, then the key is gone.
	require.NoError(t, store.Remove(ctx, "k1"))
	_, err = store.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Removing an absent key is not an error.
	assert.NoError(t, store.Remove(ctx, "never-set"))

	// Values round-trip verbatim, including JSON blobs.
	blob := `[{"id":"1717236000000-deadbeef","total":"25"}]`
	require.NoError(t, store.Set(ctx, "blob", blob))
	value, err = store.Get(ctx, "blob")
	require.NoError(t, err)
	assert.Equal(t, blob, value)
}
