package actions

import (
	"github.com/juju/errors"
	"github.com/robfig/cron/v3"
)

// Refresher is anything that can queue a refresh of every display.
type Refresher interface {
	EnqueueRefreshAll()
}

// Scheduler is the periodic refresh timer.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	logger    Logger
}

// ParseSchedule checks a cron spec; descriptors such as "@every 30m" are accepted.
func ParseSchedule(spec string) error {
	_, err := cron.ParseStandard(spec)
	if err != nil {
		return errors.NotValidf("refresh schedule %q", spec)
	}
	return nil
}

func NewScheduler(spec string, refresher Refresher, logger Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		logger:    logger,
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, errors.Annotatef(err, "scheduling refresh %q", spec)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Infof("refresh scheduler started")
}

// Stop stops the scheduler and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) tick() {
	s.logger.Debugf("scheduled refresh")
	s.refresher.EnqueueRefreshAll()
}
