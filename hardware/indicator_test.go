package hardware

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ZamarianPatrick/mygarden-backend/display"
)

var logger = loggo.GetLogger("mygarden.hardware.test")

type activations chan display.Intent

func (a activations) Activate(intent display.Intent) {
	a <- intent
}

func waterable(id uint64) display.SingleView {
	return display.SingleView{
		PlantID:     id,
		WaterButton: display.Visible,
		OnWaterTap:  &display.Intent{Kind: display.IntentWater, PlantID: id},
	}
}

func TestIndicatorLED(t *testing.T) {
	ind, pins := NewFakeIndicator("led", logger)
	assert.Equal(t, display.Size{Width: 1, Height: 1}, ind.Size())
	assert.Equal(t, "led", ind.ID())

	require.NoError(t, ind.PushSingle(waterable(4)))
	assert.True(t, pins.Lit())

	require.NoError(t, ind.PushSingle(display.SingleView{PlantID: 4, WaterButton: display.Invisible}))
	assert.False(t, pins.Lit())
}

func TestIndicatorRejectsGrid(t *testing.T) {
	ind, _ := NewFakeIndicator("led", logger)
	err := ind.PushGrid(display.GridView{})
	assert.True(t, errors.Is(err, errors.NotSupported), "got %v", err)
	assert.NoError(t, ind.InvalidateGridData())
}

func TestIndicatorButtonWaters(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ind, pins := NewFakeIndicator("led", logger)
	got := make(activations, 4)
	require.NoError(t, ind.Start(got))
	defer ind.Stop()

	require.True(t, pins.Press())
	select {
	case intent := <-got:
		t.Fatalf("unexpected activation %+v", intent)
	case <-time.After(3 * buttonPoll):
	}

	require.NoError(t, ind.PushSingle(waterable(9)))
	require.True(t, pins.Press())
	select {
	case intent := <-got:
		assert.Equal(t, display.Intent{Kind: display.IntentWater, PlantID: 9}, intent)
	case <-time.After(5 * time.Second):
		t.Fatal("button press not activated")
	}
}

func TestIndicatorStopWithoutStart(t *testing.T) {
	ind, _ := NewFakeIndicator("led", logger)
	ind.Stop()
	ind.Stop()
}

func TestGetGPIO(t *testing.T) {
	_, err := GetGPIO(1)
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)

	pin, err := GetGPIO(23)
	require.NoError(t, err)
	assert.NotNil(t, pin)
}
