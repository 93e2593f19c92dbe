package store

import (
	"context"
	"time"

	"github.com/ZamarianPatrick/mygarden-backend/garden"
)

type Order int

const (
	ByCreationTime Order = iota
	ByLastWateredTime
)

func (o Order) clause() string {
	switch o {
	case ByLastWateredTime:
		return "last_watered_time asc, id asc"
	default:
		return "creation_time asc, id asc"
	}
}

// WaterCondition guards a watering update: the stored last watered time
// must be strictly after DiedAt and not after CooledAt.
type WaterCondition struct {
	DiedAt   time.Time
	CooledAt time.Time
}

// Store is the plant record store. Rows are never deleted through it.
type Store interface {
	QueryAll(ctx context.Context, order Order) ([]garden.Plant, error)
	QueryOne(ctx context.Context, id uint64) (garden.Plant, error)
	Query(ctx context.Context, order Order) (Cursor, error)
	UpdateLastWatered(ctx context.Context, id uint64, wateredAt time.Time, cond WaterCondition) (int64, error)
	Insert(ctx context.Context, plant *garden.Plant) (uint64, error)
}

// Cursor is a held query result. It must be closed by whoever opened it.
type Cursor interface {
	Count() int
	At(i int) garden.Plant
	Close() error
}

type sliceCursor struct {
	plants []garden.Plant
	closed bool
}

// NewSliceCursor wraps an already materialized result set.
func NewSliceCursor(plants []garden.Plant) Cursor {
	return &sliceCursor{plants: plants}
}

func (c *sliceCursor) Count() int {
	if c.closed {
		return 0
	}
	return len(c.plants)
}

func (c *sliceCursor) At(i int) garden.Plant {
	return c.plants[i]
}

func (c *sliceCursor) Close() error {
	c.closed = true
	c.plants = nil
	return nil
}
