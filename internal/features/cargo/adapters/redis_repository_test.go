package adapters

import (
	"context"
	"testing"

	"privacy-cargo-tracking/internal/core/cache"
	"privacy-cargo-tracking/internal/features/cargo/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *RedisShipmentRepository {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewRedisShipmentRepository(store)
}

func testRecord(id, owner string) *domain.ShipmentRecord {
	rec, _ := domain.NewShipmentRecord(id, "Paris", owner, "hp", "hf", "hv")
	return rec
}

func TestRedisShipmentRepository_CreateGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := testRecord("C1", "0xAlice")
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.Get(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Destination, got.Destination)
	assert.Equal(t, rec.Owner, got.Owner)
	assert.Equal(t, domain.StatusCreated, got.Status)
	assert.True(t, got.Exists)
}

func TestRedisShipmentRepository_CreateDuplicate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := testRecord("C1", "0xAlice")
	require.NoError(t, repo.Create(ctx, first))

	dup := testRecord("C1", "0xBob")
	dup.Destination = "Berlin"
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// The first record is untouched and the impostor is not indexed.
	got, err := repo.Get(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Destination)
	assert.Equal(t, "0xAlice", got.Owner)

	ids, err := repo.OwnedIDs(ctx, "0xBob")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisShipmentRepository_GetNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisShipmentRepository_Update(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := testRecord("C1", "0xAlice")
	require.NoError(t, repo.Create(ctx, rec))

	rec.Status = "InTransit"
	rec.Location = "Lyon"
	require.NoError(t, repo.Update(ctx, rec))

	got, err := repo.Get(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "InTransit", got.Status)
	assert.Equal(t, "Lyon", got.Location)
}

func TestRedisShipmentRepository_UpdateMissing(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Update(context.Background(), testRecord("ghost", "0xAlice"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisShipmentRepository_OwnedIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testRecord("C1", "0xAlice")))
	require.NoError(t, repo.Create(ctx, testRecord("C2", "0xAlice")))
	require.NoError(t, repo.Create(ctx, testRecord("C3", "0xBob")))

	ids, err := repo.OwnedIDs(ctx, "0xAlice")
	require.NoError(t, err)
	assert.Equal(t, []string{"C1", "C2"}, ids)

	ids, err = repo.OwnedIDs(ctx, "0xNobody")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
