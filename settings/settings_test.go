package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/loggo/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZamarianPatrick/mygarden-backend/garden"
	"github.com/ZamarianPatrick/mygarden-backend/store"
	"github.com/ZamarianPatrick/mygarden-backend/widget"
)

func TestLoadWritesDefaults(t *testing.T) {
	dir := t.TempDir() + string(filepath.Separator)

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings.Thresholds, s.Thresholds)
	assert.Equal(t, s.Thresholds.MaxAgeWithoutWater, s.Stages.DeadAge)

	data, err := os.ReadFile(dir + FileName)
	require.NoError(t, err)
	assert.Contains(t, string(data), "minAgeBetweenWater: 2h0m0s")

	again, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir() + string(filepath.Separator)
	err := os.WriteFile(dir+FileName, []byte(`
database: garden.db
thresholds:
  minAgeBetweenWater: 1h
  maxAgeWithoutWater: 72h
singleItemWidth: 250
skipDeadPlants: true
`), 0o644)
	require.NoError(t, err)

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "garden.db", s.Database)
	assert.Equal(t, time.Hour, s.Thresholds.MinAgeBetweenWater)
	assert.Equal(t, 72*time.Hour, s.Stages.DeadAge)
	assert.Equal(t, 250, s.SingleItemWidth)
	assert.True(t, s.SkipDeadPlants)
	assert.Equal(t, DefaultSettings.RefreshSchedule, s.RefreshSchedule)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir() + string(filepath.Separator)
	t.Setenv("GARDEN_LISTEN", ":9999")
	t.Setenv("GARDEN_REFRESH_SCHEDULE", "@every 5m")

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9999", s.Listen)
	assert.Equal(t, "@every 5m", s.RefreshSchedule)
}

func TestValidate(t *testing.T) {
	s := DefaultSettings
	s.Stages.DeadAge = s.Thresholds.MaxAgeWithoutWater
	require.NoError(t, s.Validate())

	bad := s
	bad.Thresholds.MaxAgeWithoutWater = time.Minute
	assert.Error(t, bad.Validate())

	bad = s
	bad.SingleItemWidth = 0
	assert.Error(t, bad.Validate())

	bad = s
	bad.RefreshSchedule = "whenever"
	assert.Error(t, bad.Validate())
}

func TestDefaultsDoNotFeatureDeadPlants(t *testing.T) {
	dir := t.TempDir() + string(filepath.Separator)
	s, err := Load(dir)
	require.NoError(t, err)
	require.True(t, s.SkipDeadPlants)

	db, err := store.Open(filepath.Join(dir, s.Database), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2024, 4, 1, 20, 0, 0, 0, time.UTC)
	ctx := context.Background()
	cactus := garden.Plant{
		CreationTime:    now.Add(-20 * time.Hour).UnixMilli(),
		LastWateredTime: now.Add(-13 * time.Hour).UnixMilli(),
		PlantType:       garden.Cactus,
	}
	_, err = db.Insert(ctx, &cactus)
	require.NoError(t, err)
	tree := garden.Plant{
		CreationTime:    now.Add(-5 * time.Hour).UnixMilli(),
		LastWateredTime: now.Add(-3 * time.Hour).UnixMilli(),
		PlantType:       garden.Tree,
	}
	_, err = db.Insert(ctx, &tree)
	require.NoError(t, err)

	orch, err := widget.New(widget.Config{
		Store:           db,
		Classifier:      garden.Classifier{Thresholds: s.Thresholds, Stages: s.Stages},
		Clock:           testclock.NewClock(now),
		Logger:          loggo.GetLogger("mygarden.settings.test"),
		SingleItemWidth: s.SingleItemWidth,
		SkipDeadPlants:  s.SkipDeadPlants,
	})
	require.NoError(t, err)

	state := orch.Featured(ctx, now)
	assert.Equal(t, tree.ID, state.PlantID)
	assert.True(t, state.CanWater)
	assert.Equal(t, garden.Stage("tree_1"), state.Stage)
}
