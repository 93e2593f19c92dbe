package hardware

import (
	"github.com/juju/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/rpi"
)

// Init loads the periph host drivers. It must run before any pin is used.
func Init() error {
	_, err := host.Init()
	return errors.Annotate(err, "initialising gpio host")
}

// headerPins points at the rpi header variables, which host.Init replaces.
var headerPins = map[int]*gpio.PinIO{
	2:  &rpi.P1_3,
	3:  &rpi.P1_5,
	4:  &rpi.P1_7,
	5:  &rpi.P1_29,
	6:  &rpi.P1_31,
	7:  &rpi.P1_26,
	8:  &rpi.P1_24,
	9:  &rpi.P1_21,
	10: &rpi.P1_19,
	11: &rpi.P1_23,
	12: &rpi.P1_32,
	13: &rpi.P1_33,
	16: &rpi.P1_36,
	17: &rpi.P1_11,
	18: &rpi.P1_12,
	19: &rpi.P1_35,
	20: &rpi.P1_38,
	21: &rpi.P1_40,
	22: &rpi.P1_15,
	23: &rpi.P1_16,
	24: &rpi.P1_18,
	25: &rpi.P1_22,
	26: &rpi.P1_37,
	27: &rpi.P1_13,
}

// GetGPIO maps a BCM gpio number to its Raspberry Pi header pin.
func GetGPIO(number int) (gpio.PinIO, error) {
	pin, ok := headerPins[number]
	if !ok {
		return nil, errors.NotFoundf("gpio %d", number)
	}
	return *pin, nil
}
