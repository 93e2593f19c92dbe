// Package display describes display surfaces and what is pushed to them.
package display

import (
	"github.com/juju/errors"
)

// ErrSurfaceGone is returned by a surface that can no longer be drawn on.
const ErrSurfaceGone = errors.ConstError("display surface gone")

// Size is the current rendering size of a surface.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Surface is one placement of the garden widget.
//
// Pushes are best effort: implementations must not block on their consumer.
type Surface interface {
	ID() string
	Size() Size
	PushSingle(view SingleView) error
	PushGrid(view GridView) error
	// InvalidateGridData tells a grid surface to pull its rows again.
	InvalidateGridData() error
}

// Activator handles taps on surface elements.
type Activator interface {
	Activate(intent Intent)
}
