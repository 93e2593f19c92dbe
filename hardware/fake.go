package hardware

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// FakePins stand in for the indicator LED and button when no board is
// attached.
type FakePins struct {
	LED    *gpiotest.Pin
	Button *gpiotest.Pin
}

func NewFakePins() FakePins {
	return FakePins{
		LED:    &gpiotest.Pin{N: "FAKE_LED"},
		Button: &gpiotest.Pin{N: "FAKE_BUTTON", EdgesChan: make(chan gpio.Level, 1)},
	}
}

// NewFakeIndicator returns an indicator wired to fresh fake pins.
func NewFakeIndicator(id string, logger Logger) (*Indicator, FakePins) {
	pins := NewFakePins()
	return NewIndicator(id, pins.LED, pins.Button, logger), pins
}

// Press simulates a button press. It reports false if a press is still
// pending.
func (p FakePins) Press() bool {
	select {
	case p.Button.EdgesChan <- gpio.Low:
		return true
	default:
		return false
	}
}

// Lit reports whether the fake LED is on.
func (p FakePins) Lit() bool {
	return p.LED.Read() == gpio.High
}
