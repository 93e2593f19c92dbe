package graph

import (
	"context"
	"path/filepath"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ZamarianPatrick/mygarden-backend/actions"
	"github.com/ZamarianPatrick/mygarden-backend/display"
	"github.com/ZamarianPatrick/mygarden-backend/garden"
	"github.com/ZamarianPatrick/mygarden-backend/hardware"
	"github.com/ZamarianPatrick/mygarden-backend/settings"
	"github.com/ZamarianPatrick/mygarden-backend/store"
	"github.com/ZamarianPatrick/mygarden-backend/widget"
)

var logger = loggo.GetLogger("mygarden.graph")

const indicatorID = "indicator"

// Queue is the part of the action queue driven from the outside.
type Queue interface {
	EnqueueWaterPlant(id uint64)
	EnqueueRefreshAll()
	EnqueueSurfaceCreated(surface display.Surface)
	EnqueueSurfaceResized(id string)
	EnqueueSurfaceDestroyed(id string)
}

type Controller interface {
	Settings() settings.Settings
	Plants(ctx context.Context) ([]garden.Plant, error)
	Plant(ctx context.Context, id uint64) (garden.Plant, error)
	CreatePlant(ctx context.Context, plantType garden.PlantType) (garden.Plant, error)
	State(p garden.Plant) garden.DisplayState
	Queue() Queue
	Activator() display.Activator
	Surfaces() []string
	Registry() *prometheus.Registry
	PressFakeButton() error
	Close() error
}

type controller struct {
	settings     settings.Settings
	clock        clock.Clock
	store        *store.GormStore
	classifier   garden.Classifier
	registry     *prometheus.Registry
	orchestrator *widget.Orchestrator
	worker       *actions.Worker
	dispatcher   *widget.Dispatcher
	scheduler    *actions.Scheduler

	indicator *hardware.Indicator
	fakePins  *hardware.FakePins
}

// NewController loads the settings in basePath and starts the garden. With
// fakeValues the indicator runs on fake pins.
func NewController(basePath string, fakeValues bool) (Controller, error) {
	s, err := settings.Load(basePath)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if err := loggo.ConfigureLoggers(s.Logging); err != nil {
		return nil, errors.Annotatef(err, "logging %q", s.Logging)
	}

	dbPath := s.Database
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(basePath, dbPath)
	}
	st, err := store.Open(dbPath, logger.IsDebugEnabled())
	if err != nil {
		return nil, errors.Trace(err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &controller{
		settings:   s,
		clock:      clock.WallClock,
		store:      st,
		classifier: garden.Classifier{Thresholds: s.Thresholds, Stages: s.Stages},
		registry:   registry,
	}
	if err := c.start(fakeValues); err != nil {
		_ = c.Close()
		return nil, errors.Trace(err)
	}
	return c, nil
}

func (c *controller) start(fakeValues bool) error {
	var err error
	c.orchestrator, err = widget.New(widget.Config{
		Store:           c.store,
		Classifier:      c.classifier,
		Clock:           c.clock,
		Logger:          loggo.GetLogger("mygarden.widget"),
		Metrics:         widget.NewMetrics(c.registry),
		SingleItemWidth: c.settings.SingleItemWidth,
		SkipDeadPlants:  c.settings.SkipDeadPlants,
	})
	if err != nil {
		return errors.Trace(err)
	}

	c.worker, err = actions.NewWorker(actions.Config{
		Store:      c.store,
		Displays:   c.orchestrator,
		Clock:      c.clock,
		Thresholds: c.settings.Thresholds,
		Logger:     loggo.GetLogger("mygarden.actions"),
		Metrics:    actions.NewMetrics(c.registry),
	})
	if err != nil {
		return errors.Trace(err)
	}
	c.dispatcher = widget.NewDispatcher(c.worker, detailLog{}, logger)

	c.scheduler, err = actions.NewScheduler(c.settings.RefreshSchedule, c.worker, loggo.GetLogger("mygarden.actions.scheduler"))
	if err != nil {
		return errors.Trace(err)
	}
	c.scheduler.Start()

	hwLogger := loggo.GetLogger("mygarden.hardware")
	switch {
	case fakeValues:
		ind, pins := hardware.NewFakeIndicator(indicatorID, hwLogger)
		c.indicator, c.fakePins = ind, &pins
	case c.settings.Indicator.Enabled:
		c.indicator, err = hardware.OpenIndicator(indicatorID, c.settings.Indicator.LedGPIO, c.settings.Indicator.ButtonGPIO, hwLogger)
		if err != nil {
			return errors.Trace(err)
		}
	}
	if c.indicator != nil {
		if err := c.indicator.Start(c.dispatcher); err != nil {
			return errors.Trace(err)
		}
		c.worker.EnqueueSurfaceCreated(c.indicator)
	}
	return nil
}

func (c *controller) Settings() settings.Settings {
	return c.settings
}

func (c *controller) Plants(ctx context.Context) ([]garden.Plant, error) {
	return c.store.QueryAll(ctx, store.ByCreationTime)
}

func (c *controller) Plant(ctx context.Context, id uint64) (garden.Plant, error) {
	return c.store.QueryOne(ctx, id)
}

// CreatePlant stores a fresh plant through the action queue, which then
// refreshes every surface.
func (c *controller) CreatePlant(ctx context.Context, plantType garden.PlantType) (garden.Plant, error) {
	if !plantType.Valid() {
		return garden.Plant{}, errors.NotValidf("plant type %d", plantType)
	}
	p, err := c.worker.InsertPlant(ctx, garden.NewPlant(c.clock.Now(), plantType))
	return p, errors.Trace(err)
}

func (c *controller) State(p garden.Plant) garden.DisplayState {
	return c.classifier.ClassifyPlant(c.clock.Now(), p)
}

func (c *controller) Queue() Queue {
	return c.worker
}

func (c *controller) Activator() display.Activator {
	return c.dispatcher
}

func (c *controller) Surfaces() []string {
	return c.orchestrator.Surfaces()
}

func (c *controller) Registry() *prometheus.Registry {
	return c.registry
}

func (c *controller) PressFakeButton() error {
	if c.fakePins == nil {
		return errors.NotSupportedf("fake button without fake values")
	}
	if !c.fakePins.Press() {
		return errors.Errorf("previous button press still pending")
	}
	return nil
}

func (c *controller) Close() error {
	if c.scheduler != nil {
		c.scheduler.Stop()
	}
	if c.indicator != nil {
		c.indicator.Stop()
	}
	var err error
	if c.worker != nil {
		c.worker.Kill()
		err = c.worker.Wait()
	}
	if closeErr := c.store.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return errors.Trace(err)
}

// detailLog stands in for the plant screens, which are not part of this
// service.
type detailLog struct{}

func (detailLog) OpenPlant(id uint64) {
	logger.Infof("open plant %d", id)
}

func (detailLog) OpenGarden() {
	logger.Infof("open garden")
}
