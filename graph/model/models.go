package model

import (
	"github.com/ZamarianPatrick/mygarden-backend/display"
	"github.com/ZamarianPatrick/mygarden-backend/garden"
)

type Plant struct {
	ID          uint64       `json:"id"`
	Type        string       `json:"type"`
	CreatedAt   int64        `json:"createdAt"`
	LastWatered int64        `json:"lastWatered"`
	Image       garden.Stage `json:"image"`
	CanWater    bool         `json:"canWater"`
}

func NewPlant(p garden.Plant, state garden.DisplayState) Plant {
	return Plant{
		ID:          p.ID,
		Type:        p.PlantType.String(),
		CreatedAt:   p.CreationTime,
		LastWatered: p.LastWateredTime,
		Image:       state.Stage,
		CanWater:    state.CanWater,
	}
}

type Health struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Surfaces int    `json:"surfaces"`
}

// SurfaceEvent is sent to websocket surfaces. Type is "single", "grid" or "rows".
type SurfaceEvent struct {
	Type   string              `json:"type"`
	Single *display.SingleView `json:"single,omitempty"`
	Grid   *display.GridView   `json:"grid,omitempty"`
	Rows   []display.Row       `json:"rows,omitempty"`
}
