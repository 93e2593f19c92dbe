package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZamarianPatrick/mygarden-backend/display"
)

type recorder struct {
	watered []uint64
	opened  []uint64
	garden  int
}

func (r *recorder) EnqueueWaterPlant(id uint64) { r.watered = append(r.watered, id) }
func (r *recorder) OpenPlant(id uint64) { r.opened = append(r.opened, id) }
func (r *recorder) OpenGarden() { r.garden++ }

func TestDispatcher(t *testing.T) {
	r := &recorder{}
	d := NewDispatcher(r, r, logger)

	d.Activate(display.Intent{Kind: display.IntentWater, PlantID: 3})
	d.Activate(display.Intent{Kind: display.IntentOpenPlant, PlantID: 5})
	d.Activate(display.Intent{Kind: display.IntentOpenGarden})
	d.Activate(display.Intent{})

	assert.Equal(t, []uint64{3}, r.watered)
	assert.Equal(t, []uint64{5}, r.opened)
	assert.Equal(t, 1, r.garden)
}
