package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZamarianPatrick/mygarden-backend/garden"
)

func openTestStore(t *testing.T) *GormStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db.sqlite"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func insert(t *testing.T, s *GormStore, created, watered time.Time, pt garden.PlantType) uint64 {
	t.Helper()
	p := garden.Plant{
		CreationTime:    created.UnixMilli(),
		LastWateredTime: watered.UnixMilli(),
		PlantType:       pt,
	}
	id, err := s.Insert(context.Background(), &p)
	require.NoError(t, err)
	return id
}

func TestInsertAndQueryOne(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000)

	p := garden.NewPlant(now, garden.Tree)
	id, err := s.Insert(ctx, &p)
	require.NoError(t, err)
	assert.NotEqual(t, garden.InvalidPlantID, id)

	got, err := s.QueryOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), got.CreationTime)
	assert.Equal(t, got.CreationTime, got.LastWateredTime)
	assert.Equal(t, garden.Tree, got.PlantType)

	_, err = s.QueryOne(ctx, id+100)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestInsertNeverWateredBeforeCreation(t *testing.T) {
	s := openTestStore(t)
	now := time.UnixMilli(1_700_000_000_000)
	id := insert(t, s, now, now.Add(-time.Hour), garden.Cactus)

	got, err := s.QueryOne(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, got.CreationTime, got.LastWateredTime)
}

func TestQueryAllOrders(t *testing.T) {
	s := openTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)
	a := insert(t, s, base, base.Add(3*time.Hour), garden.Cactus)
	b := insert(t, s, base.Add(time.Hour), base.Add(time.Hour), garden.Tree)
	c := insert(t, s, base.Add(2*time.Hour), base.Add(2*time.Hour), garden.Flower)

	byCreation, err := s.QueryAll(context.Background(), ByCreationTime)
	require.NoError(t, err)
	assert.Equal(t, []uint64{a, b, c}, ids(byCreation))

	byWatered, err := s.QueryAll(context.Background(), ByLastWateredTime)
	require.NoError(t, err)
	assert.Equal(t, []uint64{b, c, a}, ids(byWatered))
}

func TestUpdateLastWateredIsConditional(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	th := garden.Thresholds{MinAgeBetweenWater: time.Hour, MaxAgeWithoutWater: 72 * time.Hour}
	t0 := time.UnixMilli(1_700_000_000_000)
	id := insert(t, s, t0, t0, garden.Cactus)

	water := func(now time.Time) int64 {
		diedAt, cooledAt := th.WaterWindow(now)
		n, err := s.UpdateLastWatered(ctx, id, now, WaterCondition{DiedAt: diedAt, CooledAt: cooledAt})
		require.NoError(t, err)
		return n
	}

	t.Run("too soon", func(t *testing.T) {
		assert.Equal(t, int64(0), water(t0.Add(30*time.Minute)))
	})
	t.Run("in window", func(t *testing.T) {
		assert.Equal(t, int64(1), water(t0.Add(2*time.Hour)))
		got, err := s.QueryOne(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, t0.Add(2*time.Hour).UnixMilli(), got.LastWateredTime)
	})
	t.Run("dead", func(t *testing.T) {
		late := t0.Add(2*time.Hour + 72*time.Hour)
		for i := 0; i < 3; i++ {
			assert.Equal(t, int64(0), water(late))
		}
		got, err := s.QueryOne(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, t0.Add(2*time.Hour).UnixMilli(), got.LastWateredTime)
	})
	t.Run("missing plant", func(t *testing.T) {
		n, err := s.UpdateLastWatered(ctx, id+1, t0, WaterCondition{DiedAt: t0.Add(-time.Hour), CooledAt: t0})
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}

func TestQueryCursor(t *testing.T) {
	s := openTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)
	insert(t, s, base, base, garden.Cactus)
	insert(t, s, base.Add(time.Minute), base.Add(time.Minute), garden.Tree)

	cur, err := s.Query(context.Background(), ByCreationTime)
	require.NoError(t, err)
	assert.Equal(t, 2, cur.Count())
	assert.Equal(t, garden.Tree, cur.At(1).PlantType)

	require.NoError(t, cur.Close())
	assert.Equal(t, 0, cur.Count())
}

func ids(plants []garden.Plant) []uint64 {
	out := make([]uint64, len(plants))
	for i, p := range plants {
		out[i] = p.ID
	}
	return out
}
