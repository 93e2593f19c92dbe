package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZamarianPatrick/mygarden-backend/display"
)

type fixedRows []display.Row

func (r fixedRows) RowCount() int { return len(r) }
func (r fixedRows) RowAt(i int) display.Row { return r[i] }
func (r fixedRows) ItemID(i int) int64 { return r[i].ItemID }
func (r fixedRows) HasStableIDs() bool { return true }

func water(id uint64) display.Intent {
	return display.Intent{Kind: display.IntentWater, PlantID: id}
}

func openPlant(id uint64) display.Intent {
	return display.Intent{Kind: display.IntentOpenPlant, PlantID: id}
}

func TestSocketSurfaceAllowsShownTaps(t *testing.T) {
	s := newSocketSurface("s", nil, display.Size{Width: 100, Height: 100})
	assert.False(t, s.allows(water(1)), "nothing shown yet")

	onWater := water(7)
	require.NoError(t, s.PushSingle(display.SingleView{
		PlantID:     7,
		WaterButton: display.Visible,
		OnImageTap:  openPlant(7),
		OnWaterTap:  &onWater,
	}))
	assert.True(t, s.allows(water(7)))
	assert.True(t, s.allows(openPlant(7)))
	assert.False(t, s.allows(water(8)))
	assert.False(t, s.allows(openPlant(8)))
	assert.False(t, s.allows(display.Intent{Kind: display.IntentOpenGarden}))

	require.NoError(t, s.PushSingle(display.SingleView{
		PlantID:     7,
		WaterButton: display.Invisible,
		OnImageTap:  openPlant(7),
	}))
	assert.False(t, s.allows(water(7)), "water button hidden")
	assert.True(t, s.allows(openPlant(7)))

	rows := fixedRows{
		{ItemID: 1, PlantID: 3, OnTap: openPlant(3)},
		{ItemID: 2, PlantID: 4, OnTap: openPlant(4)},
	}
	require.NoError(t, s.PushGrid(display.GridView{Rows: rows, ItemTap: display.IntentOpenPlant}))
	assert.False(t, s.allows(openPlant(3)), "rows not delivered yet")
	require.NoError(t, s.InvalidateGridData())
	assert.True(t, s.allows(openPlant(3)))
	assert.True(t, s.allows(openPlant(4)))
	assert.False(t, s.allows(openPlant(5)))
	assert.False(t, s.allows(water(3)), "grid taps only open plants")
	assert.False(t, s.allows(openPlant(7)), "single view replaced by the grid")
}

func TestSocketSurfaceRowsNeedGrid(t *testing.T) {
	s := newSocketSurface("s", nil, display.Size{Width: 400, Height: 400})
	assert.Error(t, s.InvalidateGridData())
}
