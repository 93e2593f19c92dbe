// Package hardware drives a physical garden indicator: an LED that is lit
// while the featured plant can be watered and a push button that waters it.
package hardware

import (
	"sync"
	"time"

	"github.com/juju/errors"
	"periph.io/x/conn/v3/gpio"

	"github.com/ZamarianPatrick/mygarden-backend/display"
)

const buttonPoll = 100 * time.Millisecond

type Logger interface {
	Debugf(string, ...interface{})
	Warningf(string, ...interface{})
}

// Indicator is a display surface one pixel wide, so it always shows the
// featured plant.
type Indicator struct {
	id     string
	led    gpio.PinOut
	button gpio.PinIn
	logger Logger

	mu      sync.Mutex
	water   *display.Intent
	started bool

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewIndicator(id string, led gpio.PinOut, button gpio.PinIn, logger Logger) *Indicator {
	return &Indicator{
		id:     id,
		led:    led,
		button: button,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// OpenIndicator initialises the host and claims the given BCM pins.
func OpenIndicator(id string, ledGPIO, buttonGPIO int, logger Logger) (*Indicator, error) {
	if err := Init(); err != nil {
		return nil, errors.Trace(err)
	}
	led, err := GetGPIO(ledGPIO)
	if err != nil {
		return nil, errors.Annotate(err, "led")
	}
	button, err := GetGPIO(buttonGPIO)
	if err != nil {
		return nil, errors.Annotate(err, "button")
	}
	if err := led.Out(gpio.Low); err != nil {
		return nil, errors.Annotatef(err, "clearing led %s", led)
	}
	return NewIndicator(id, led, button, logger), nil
}

func (ind *Indicator) ID() string {
	return ind.id
}

func (ind *Indicator) Size() display.Size {
	return display.Size{Width: 1, Height: 1}
}

func (ind *Indicator) PushSingle(view display.SingleView) error {
	level := gpio.Low
	var water *display.Intent
	if view.WaterButton == display.Visible && view.OnWaterTap != nil {
		intent := *view.OnWaterTap
		water = &intent
		level = gpio.High
	}

	ind.mu.Lock()
	ind.water = water
	ind.mu.Unlock()

	return errors.Annotate(ind.led.Out(level), "setting indicator led")
}

func (ind *Indicator) PushGrid(display.GridView) error {
	return errors.NotSupportedf("grid on indicator %q", ind.id)
}

func (ind *Indicator) InvalidateGridData() error {
	return nil
}

// Start watches the button until Stop, activating the pending water intent
// on every press.
func (ind *Indicator) Start(activator display.Activator) error {
	if err := ind.button.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return errors.Annotatef(err, "watching button %s", ind.button)
	}
	ind.mu.Lock()
	ind.started = true
	ind.mu.Unlock()
	go ind.watch(activator)
	return nil
}

func (ind *Indicator) Stop() {
	ind.stopOnce.Do(func() {
		close(ind.stop)
	})
	ind.mu.Lock()
	started := ind.started
	ind.mu.Unlock()
	if started {
		<-ind.done
	}
}

func (ind *Indicator) watch(activator display.Activator) {
	defer close(ind.done)
	for {
		select {
		case <-ind.stop:
			return
		default:
		}
		if !ind.button.WaitForEdge(buttonPoll) {
			continue
		}

		ind.mu.Lock()
		intent := ind.water
		ind.mu.Unlock()

		if intent == nil {
			ind.logger.Debugf("indicator %q pressed with nothing to water", ind.id)
			continue
		}
		activator.Activate(*intent)
	}
}
