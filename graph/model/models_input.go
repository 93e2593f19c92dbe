package model

import (
	"github.com/ZamarianPatrick/mygarden-backend/display"
)

type PlantInput struct {
	Type string `json:"type" binding:"required"`
}

// SurfaceMessage is received from websocket surfaces. Type is "resize" or "tap".
type SurfaceMessage struct {
	Type   string          `json:"type"`
	Width  int             `json:"width,omitempty"`
	Height int             `json:"height,omitempty"`
	Intent *display.Intent `json:"intent,omitempty"`
}
