package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simm-challenger/internal/params"
	"simm-challenger/internal/storage"
)

func TestParameterStore_PutAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewParameterStore(pool)

	err := store.Put(ctx, params.Default())
	require.NoError(t, err)

	set, err := store.Get(ctx, params.Version28x2506)
	require.NoError(t, err)

	assert.Equal(t, params.Version28x2506, set.Version)
	assert.Equal(t, 0.0441, set.IRRiskWeightsRegular["5Y"])
	assert.Equal(t, 0.071, set.FXRiskWeightRegular)
	assert.Equal(t, 0.67, set.CRQRiskWeights[1])
	assert.Equal(t, 0.97, set.Correlations[params.ClassIR])
	assert.Equal(t, 0.02, set.Breaker.BarrierProximityKO)
	assert.True(t, set.IsQualifyingRating("BBB-"))
	assert.True(t, set.IsDistressedRating("CCC"))
}

func TestParameterStore_DuplicateVersion(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewParameterStore(pool)

	err := store.Put(ctx, params.Default())
	require.NoError(t, err)

	err = store.Put(ctx, params.Default())
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestParameterStore_VersionNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewParameterStore(pool)

	_, err := store.Get(ctx, "9.9+0000")
	assert.ErrorIs(t, err, storage.ErrVersionNotFound)
}

func TestParameterStore_EmptyVersionRejected(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewParameterStore(pool)

	set := params.Default()
	set.Version = ""
	err := store.Put(ctx, set)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestParameterStore_ListVersions(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewParameterStore(pool)

	older := params.Default()
	older.Version = "2.7+2412"
	require.NoError(t, store.Put(ctx, older))
	require.NoError(t, store.Put(ctx, params.Default()))

	versions, err := store.ListVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2.7+2412", params.Version28x2506}, versions)
}
