package store

import (
	"context"
	"time"

	"github.com/juju/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ZamarianPatrick/mygarden-backend/garden"
)

// GormStore keeps plants in a sqlite database.
type GormStore struct {
	db *gorm.DB
}

// Open opens (and migrates) the sqlite database at path.
func Open(path string, debug bool) (*GormStore, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.Annotatef(err, "opening plant database %q", path)
	}

	if err := db.AutoMigrate(&garden.Plant{}); err != nil {
		return nil, errors.Annotate(err, "migrating plants")
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) QueryAll(ctx context.Context, order Order) ([]garden.Plant, error) {
	var plants []garden.Plant
	r := s.db.WithContext(ctx).Order(order.clause()).Find(&plants)
	if r.Error != nil {
		return nil, errors.Trace(r.Error)
	}
	return plants, nil
}

func (s *GormStore) QueryOne(ctx context.Context, id uint64) (garden.Plant, error) {
	var plant garden.Plant
	r := s.db.WithContext(ctx).First(&plant, id)
	if errors.Is(r.Error, gorm.ErrRecordNotFound) {
		return garden.Plant{}, errors.NotFoundf("plant %d", id)
	}
	if r.Error != nil {
		return garden.Plant{}, errors.Trace(r.Error)
	}
	return plant, nil
}

func (s *GormStore) Query(ctx context.Context, order Order) (Cursor, error) {
	plants, err := s.QueryAll(ctx, order)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewSliceCursor(plants), nil
}

// UpdateLastWatered sets the last watered time of plant id when cond holds,
// in a single conditional statement. It returns the number of rows changed.
func (s *GormStore) UpdateLastWatered(ctx context.Context, id uint64, wateredAt time.Time, cond WaterCondition) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(&garden.Plant{}).
		Where("id = ? AND last_watered_time > ? AND last_watered_time <= ?",
			id, cond.DiedAt.UnixMilli(), cond.CooledAt.UnixMilli()).
		Update("last_watered_time", wateredAt.UnixMilli())
	if r.Error != nil {
		return 0, errors.Trace(r.Error)
	}
	return r.RowsAffected, nil
}

func (s *GormStore) Insert(ctx context.Context, plant *garden.Plant) (uint64, error) {
	if plant.LastWateredTime < plant.CreationTime {
		plant.LastWateredTime = plant.CreationTime
	}
	plant.ID = 0
	r := s.db.WithContext(ctx).Create(plant)
	if r.Error != nil {
		return 0, errors.Trace(r.Error)
	}
	return plant.ID, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Trace(err)
	}
	return sqlDB.Close()
}
