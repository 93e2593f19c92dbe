package widget

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"github.com/ZamarianPatrick/mygarden-backend/display"
	"github.com/ZamarianPatrick/mygarden-backend/garden"
	"github.com/ZamarianPatrick/mygarden-backend/store"
)

// DefaultSingleItemWidth is the width under which a surface shows only the
// featured plant.
const DefaultSingleItemWidth = 300

const emptyGardenText = "Your garden is empty"

// Logger represents the methods used by the orchestrator to log information.
type Logger interface {
	Debugf(string, ...interface{})
	Warningf(string, ...interface{})
}

// Store is the part of the plant store read on refresh.
type Store interface {
	Querier
	QueryAll(ctx context.Context, order store.Order) ([]garden.Plant, error)
}

// Config defines the operation of the Orchestrator.
type Config struct {
	Store      Store
	Classifier garden.Classifier
	Clock      clock.Clock
	Logger     Logger
	Metrics    *Metrics

	// SingleItemWidth selects single-item rendering below it, grid at or above.
	SingleItemWidth int
	// SkipDeadPlants keeps dead plants from being featured.
	SkipDeadPlants bool
}

// Validate returns an error if config cannot drive the Orchestrator.
func (config Config) Validate() error {
	if config.Store == nil {
		return errors.NotValidf("nil Store")
	}
	if config.Classifier.Stages == nil {
		return errors.NotValidf("nil Classifier.Stages")
	}
	if config.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	if config.SingleItemWidth <= 0 {
		return errors.NotValidf("SingleItemWidth %d", config.SingleItemWidth)
	}
	return errors.Trace(config.Classifier.Thresholds.Validate())
}

// Orchestrator decides what every attached surface shows and pushes it.
// RefreshAll, Attach and Detach are meant to run on the action queue
// worker, one at a time.
type Orchestrator struct {
	config   Config
	surfaces *registry
}

func New(config Config) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Orchestrator{
		config:   config,
		surfaces: newRegistry(),
	}, nil
}

// Attach registers a surface. A surface attached twice under the same id
// replaces the first one.
func (o *Orchestrator) Attach(ctx context.Context, s display.Surface) {
	if old := o.surfaces.add(s); old != nil && old.adapter != nil {
		old.adapter.Close()
	}
	o.config.Logger.Debugf("surface %s attached", s.ID())
}

// Detach forgets a surface and releases its grid rows.
func (o *Orchestrator) Detach(ctx context.Context, id string) {
	e := o.surfaces.remove(id)
	if e == nil {
		return
	}
	if e.adapter != nil {
		e.adapter.Close()
	}
	o.config.Logger.Debugf("surface %s detached", id)
}

// Surfaces returns the ids of the attached surfaces.
func (o *Orchestrator) Surfaces() []string {
	return o.surfaces.ids()
}

// Featured returns the display state of the plant most in need of water,
// or the empty garden state when there is none or the store is unreadable.
func (o *Orchestrator) Featured(ctx context.Context, now time.Time) garden.DisplayState {
	plants, err := o.config.Store.QueryAll(ctx, store.ByLastWateredTime)
	if err != nil {
		o.config.Logger.Warningf("reading garden, showing it empty: %v", err)
		return o.config.Classifier.NoPlant()
	}
	if o.config.SkipDeadPlants {
		plants = o.alive(now, plants)
	}
	plant, ok := garden.Featured(plants)
	if !ok {
		return o.config.Classifier.NoPlant()
	}
	return o.config.Classifier.ClassifyPlant(now, plant)
}

func (o *Orchestrator) alive(now time.Time, plants []garden.Plant) []garden.Plant {
	out := plants[:0:0]
	for _, p := range plants {
		if o.config.Classifier.Thresholds.Alive(now.Sub(p.Watered())) {
			out = append(out, p)
		}
	}
	return out
}

// RefreshAll pushes the current garden to every attached surface. A surface
// that fails is logged and skipped.
func (o *Orchestrator) RefreshAll(ctx context.Context) {
	now := o.config.Clock.Now()
	state := o.Featured(ctx, now)
	o.config.Metrics.refreshed()

	for _, e := range o.surfaces.list() {
		o.refresh(ctx, state, e)
	}
}

func (o *Orchestrator) refresh(ctx context.Context, state garden.DisplayState, e *entry) {
	id := e.surface.ID()
	if e.surface.Size().Width < o.config.SingleItemWidth {
		if e.adapter != nil {
			e.adapter.Close()
			e.adapter = nil
		}
		err := e.surface.PushSingle(SingleView(state))
		o.pushed(id, modeSingle, err)
		return
	}

	if e.adapter == nil {
		e.adapter = NewGridAdapter(o.config.Store, o.config.Classifier, o.config.Clock, o.config.Logger)
	}
	if err := e.adapter.OnDataSetInvalidated(ctx); err != nil {
		o.config.Logger.Warningf("surface %s: %v", id, err)
	}
	err := e.surface.PushGrid(GridView(e.adapter))
	if err == nil {
		err = e.surface.InvalidateGridData()
	}
	o.pushed(id, modeGrid, err)
}

func (o *Orchestrator) pushed(id, mode string, err error) {
	if err != nil {
		o.config.Logger.Warningf("pushing %s view to surface %s: %v", mode, id, err)
		o.config.Metrics.pushed(mode, false)
		return
	}
	o.config.Metrics.pushed(mode, true)
}

// SingleView renders state for a single-item surface.
func SingleView(state garden.DisplayState) display.SingleView {
	view := display.SingleView{
		Image:       state.Stage,
		Label:       label(state),
		PlantID:     state.PlantID,
		WaterButton: display.Invisible,
		OnImageTap:  display.Intent{Kind: display.IntentOpenGarden},
	}
	if state.HasPlant() {
		view.OnImageTap = display.Intent{Kind: display.IntentOpenPlant, PlantID: state.PlantID}
	}
	if state.CanWater && state.HasPlant() {
		view.WaterButton = display.Visible
		view.OnWaterTap = &display.Intent{Kind: display.IntentWater, PlantID: state.PlantID}
	}
	return view
}

// GridView renders a grid surface bound to rows.
func GridView(rows display.RowSource) display.GridView {
	return display.GridView{
		Rows:      rows,
		ItemTap:   display.IntentOpenPlant,
		EmptyText: emptyGardenText,
	}
}
