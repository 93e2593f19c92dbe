package widget

import (
	"github.com/ZamarianPatrick/mygarden-backend/display"
)

// Enqueuer queues watering actions.
type Enqueuer interface {
	EnqueueWaterPlant(id uint64)
}

// DetailOpener shows plant screens. It lives outside this service.
type DetailOpener interface {
	OpenPlant(id uint64)
	OpenGarden()
}

// Dispatcher turns taps on surfaces into actions.
type Dispatcher struct {
	queue  Enqueuer
	opener DetailOpener
	logger Logger
}

func NewDispatcher(queue Enqueuer, opener DetailOpener, logger Logger) *Dispatcher {
	return &Dispatcher{queue: queue, opener: opener, logger: logger}
}

func (d *Dispatcher) Activate(intent display.Intent) {
	switch intent.Kind {
	case display.IntentWater:
		d.queue.EnqueueWaterPlant(intent.PlantID)
	case display.IntentOpenPlant:
		d.opener.OpenPlant(intent.PlantID)
	case display.IntentOpenGarden:
		d.opener.OpenGarden()
	default:
		d.logger.Debugf("ignoring intent %v", intent.Kind)
	}
}
