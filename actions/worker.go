package actions

import (
	"context"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/worker/v4/catacomb"

	"github.com/ZamarianPatrick/mygarden-backend/display"
	"github.com/ZamarianPatrick/mygarden-backend/garden"
	"github.com/ZamarianPatrick/mygarden-backend/store"
)

type Kind int

const (
	WaterPlant Kind = iota
	RefreshAllDisplays
	SurfaceCreated
	SurfaceResized
	SurfaceDestroyed
	InsertPlant
)

var kindNames = []string{"water-plant", "refresh-all", "surface-created", "surface-resized", "surface-destroyed", "insert-plant"}

// ErrStopped is returned for actions offered to a stopped queue.
const ErrStopped = errors.ConstError("action queue stopped")

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Action is one entry of the queue.
type Action struct {
	Kind      Kind
	PlantID   uint64
	SurfaceID string
	Surface   display.Surface

	Plant    garden.Plant
	inserted chan<- insertResult
}

type insertResult struct {
	plant garden.Plant
	err   error
}

// Logger represents the methods used by the worker to log information.
type Logger interface {
	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Warningf(string, ...interface{})
}

// Writer is the part of the plant store the worker writes. Nothing else
// writes plant rows.
type Writer interface {
	UpdateLastWatered(ctx context.Context, id uint64, wateredAt time.Time, cond store.WaterCondition) (int64, error)
	Insert(ctx context.Context, plant *garden.Plant) (uint64, error)
}

// Displays is driven by refresh and surface lifecycle actions.
type Displays interface {
	RefreshAll(ctx context.Context)
	Attach(ctx context.Context, surface display.Surface)
	Detach(ctx context.Context, surfaceID string)
}

// Config defines the operation of the Worker.
type Config struct {
	Store      Writer
	Displays   Displays
	Clock      clock.Clock
	Thresholds garden.Thresholds
	Logger     Logger
	Metrics    *Metrics
}

// Validate returns an error if config cannot drive the Worker.
func (config Config) Validate() error {
	if config.Store == nil {
		return errors.NotValidf("nil Store")
	}
	if config.Displays == nil {
		return errors.NotValidf("nil Displays")
	}
	if config.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	return errors.Trace(config.Thresholds.Validate())
}

// Worker executes actions one at a time in arrival order. All writes to
// plant state happen on its single goroutine.
type Worker struct {
	catacomb catacomb.Catacomb
	config   Config

	mu      sync.Mutex
	pending []Action
	dead    bool
	wake    chan struct{}
}

// NewWorker starts a worker backed by config.
func NewWorker(config Config) (*Worker, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}

	w := &Worker{
		config: config,
		wake:   make(chan struct{}, 1),
	}
	if err := catacomb.Invoke(catacomb.Plan{
		Site: &w.catacomb,
		Work: w.loop,
	}); err != nil {
		return nil, errors.Trace(err)
	}
	return w, nil
}

// Kill is part of the worker.Worker interface.
func (w *Worker) Kill() {
	w.catacomb.Kill(nil)
}

// Wait is part of the worker.Worker interface.
func (w *Worker) Wait() error {
	return w.catacomb.Wait()
}

func (w *Worker) EnqueueWaterPlant(id uint64) {
	w.enqueue(Action{Kind: WaterPlant, PlantID: id})
}

func (w *Worker) EnqueueRefreshAll() {
	w.enqueue(Action{Kind: RefreshAllDisplays})
}

func (w *Worker) EnqueueSurfaceCreated(surface display.Surface) {
	w.enqueue(Action{Kind: SurfaceCreated, SurfaceID: surface.ID(), Surface: surface})
}

func (w *Worker) EnqueueSurfaceResized(id string) {
	w.enqueue(Action{Kind: SurfaceResized, SurfaceID: id})
}

func (w *Worker) EnqueueSurfaceDestroyed(id string) {
	w.enqueue(Action{Kind: SurfaceDestroyed, SurfaceID: id})
}

// InsertPlant queues the insertion of p and waits for it. The stored plant,
// with its id, is returned.
func (w *Worker) InsertPlant(ctx context.Context, p garden.Plant) (garden.Plant, error) {
	done := make(chan insertResult, 1)
	if !w.enqueue(Action{Kind: InsertPlant, Plant: p, inserted: done}) {
		return garden.Plant{}, ErrStopped
	}
	select {
	case r := <-done:
		return r.plant, errors.Trace(r.err)
	case <-ctx.Done():
		return garden.Plant{}, errors.Trace(ctx.Err())
	}
}

// Pending returns the number of queued actions not yet started.
func (w *Worker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Worker) enqueue(a Action) bool {
	w.mu.Lock()
	if w.dead {
		w.mu.Unlock()
		w.config.Logger.Debugf("dropping %s action, queue stopped", a.Kind)
		return false
	}
	w.pending = append(w.pending, a)
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return true
}

func (w *Worker) next() (Action, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return Action{}, false
	}
	a := w.pending[0]
	w.pending[0] = Action{}
	w.pending = w.pending[1:]
	return a, true
}

func (w *Worker) loop() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		select {
		case <-w.catacomb.Dying():
			w.drain(ctx)
			return w.catacomb.ErrDying()
		case <-w.wake:
			for {
				a, ok := w.next()
				if !ok {
					break
				}
				w.run(ctx, a)
			}
		}
	}
}

// drain runs what was enqueued before the worker was killed.
func (w *Worker) drain(ctx context.Context) {
	for {
		w.mu.Lock()
		if len(w.pending) == 0 {
			w.dead = true
			w.mu.Unlock()
			return
		}
		a := w.pending[0]
		w.pending = w.pending[1:]
		w.mu.Unlock()

		w.run(ctx, a)
	}
}

func (w *Worker) run(ctx context.Context, a Action) {
	w.config.Logger.Debugf("running %s action %+v", a.Kind, a)
	switch a.Kind {
	case WaterPlant:
		w.water(ctx, a.PlantID)
		// Displays always follow a watering, whatever its outcome.
		w.enqueue(Action{Kind: RefreshAllDisplays})
	case RefreshAllDisplays:
		w.config.Displays.RefreshAll(ctx)
	case SurfaceCreated:
		w.config.Displays.Attach(ctx, a.Surface)
		w.enqueue(Action{Kind: RefreshAllDisplays})
	case SurfaceResized:
		w.config.Logger.Debugf("surface %s resized", a.SurfaceID)
		w.enqueue(Action{Kind: RefreshAllDisplays})
	case SurfaceDestroyed:
		w.config.Displays.Detach(ctx, a.SurfaceID)
	case InsertPlant:
		p := a.Plant
		_, err := w.config.Store.Insert(ctx, &p)
		a.inserted <- insertResult{plant: p, err: err}
		if err == nil {
			w.enqueue(Action{Kind: RefreshAllDisplays})
		}
	}
	w.config.Metrics.processed(a.Kind)
}

func (w *Worker) water(ctx context.Context, id uint64) {
	now := w.config.Clock.Now()
	diedAt, cooledAt := w.config.Thresholds.WaterWindow(now)
	n, err := w.config.Store.UpdateLastWatered(ctx, id, now, store.WaterCondition{
		DiedAt:   diedAt,
		CooledAt: cooledAt,
	})
	switch {
	case err != nil:
		w.config.Logger.Warningf("watering plant %d: %v", id, err)
		w.config.Metrics.watered(outcomeFailed)
	case n == 0:
		w.config.Logger.Debugf("plant %d not watered: missing, dead or watered too recently", id)
		w.config.Metrics.watered(outcomeRejected)
	default:
		w.config.Logger.Infof("plant %d watered at %s", id, now.Format(time.RFC3339))
		w.config.Metrics.watered(outcomeApplied)
	}
}
