package widget

import (
	"context"
	"strconv"
	"sync"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"github.com/ZamarianPatrick/mygarden-backend/display"
	"github.com/ZamarianPatrick/mygarden-backend/garden"
	"github.com/ZamarianPatrick/mygarden-backend/store"
)

// Querier opens a held query over every plant.
type Querier interface {
	Query(ctx context.Context, order store.Order) (store.Cursor, error)
}

// GridAdapter feeds the rows of a grid surface, oldest plant first.
// It holds at most one cursor, acquired by OnDataSetInvalidated and
// released before the next acquisition and by Close.
type GridAdapter struct {
	store      Querier
	classifier garden.Classifier
	clock      clock.Clock
	logger     Logger

	mu     sync.Mutex
	cursor store.Cursor
}

func NewGridAdapter(q Querier, classifier garden.Classifier, clk clock.Clock, logger Logger) *GridAdapter {
	return &GridAdapter{
		store:      q,
		classifier: classifier,
		clock:      clk,
		logger:     logger,
	}
}

// OnDataSetInvalidated drops the held cursor and queries the store again.
// On failure the adapter is left empty.
func (a *GridAdapter) OnDataSetInvalidated(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.release()
	cursor, err := a.store.Query(ctx, store.ByCreationTime)
	if err != nil {
		return errors.Annotate(err, "querying garden rows")
	}
	a.cursor = cursor
	return nil
}

func (a *GridAdapter) RowCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cursor == nil {
		return 0
	}
	return a.cursor.Count()
}

// RowAt renders the plant at index. The water button is never shown in a grid.
func (a *GridAdapter) RowAt(index int) display.Row {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.classifier.NoPlant()
	if a.cursor != nil && a.cursor.Count() > 0 {
		state = a.classifier.ClassifyPlant(a.clock.Now(), a.cursor.At(index))
	}
	return display.Row{
		ItemID:      int64(state.PlantID),
		PlantID:     state.PlantID,
		Image:       state.Stage,
		Label:       label(state),
		WaterButton: display.Gone,
		OnTap:       display.Intent{Kind: display.IntentOpenPlant, PlantID: state.PlantID},
	}
}

// ItemID is the plant id at index, so it follows the plant across reorderings.
func (a *GridAdapter) ItemID(index int) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cursor == nil {
		return int64(garden.InvalidPlantID)
	}
	return int64(a.cursor.At(index).ID)
}

func (a *GridAdapter) HasStableIDs() bool {
	return true
}

// ViewTypeCount is one: every row uses the same layout.
func (a *GridAdapter) ViewTypeCount() int {
	return 1
}

// Close releases the held cursor.
func (a *GridAdapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.release()
}

func (a *GridAdapter) release() {
	if a.cursor == nil {
		return
	}
	if err := a.cursor.Close(); err != nil {
		a.logger.Warningf("closing garden cursor: %v", err)
	}
	a.cursor = nil
}

func label(state garden.DisplayState) string {
	if !state.HasPlant() {
		return ""
	}
	return strconv.FormatUint(state.PlantID, 10)
}
