package display

import (
	"github.com/juju/errors"

	"github.com/ZamarianPatrick/mygarden-backend/garden"
)

type Visibility int

const (
	Visible Visibility = iota
	// Invisible hides an element but keeps its space.
	Invisible
	// Gone hides an element and its space.
	Gone
)

var visibilityNames = []string{"visible", "invisible", "gone"}

func (v Visibility) String() string {
	if v < 0 || int(v) >= len(visibilityNames) {
		return "unknown"
	}
	return visibilityNames[v]
}

func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Visibility) UnmarshalText(text []byte) error {
	for i, n := range visibilityNames {
		if n == string(text) {
			*v = Visibility(i)
			return nil
		}
	}
	return errors.NotValidf("visibility %q", text)
}

type IntentKind int

const (
	IntentNone IntentKind = iota
	// IntentWater waters the plant in the intent.
	IntentWater
	// IntentOpenPlant opens the detail screen of the plant in the intent.
	IntentOpenPlant
	// IntentOpenGarden opens the garden overview.
	IntentOpenGarden
)

var intentNames = []string{"none", "water", "openPlant", "openGarden"}

func (k IntentKind) String() string {
	if k < 0 || int(k) >= len(intentNames) {
		return "unknown"
	}
	return intentNames[k]
}

func (k IntentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *IntentKind) UnmarshalText(text []byte) error {
	for i, n := range intentNames {
		if n == string(text) {
			*k = IntentKind(i)
			return nil
		}
	}
	return errors.NotValidf("intent %q", text)
}

// Intent is what a tap on a surface element asks for.
type Intent struct {
	Kind    IntentKind `json:"kind"`
	PlantID uint64     `json:"plantId,omitempty"`
}

// SingleView shows the featured plant.
type SingleView struct {
	Image       garden.Stage `json:"image"`
	Label       string       `json:"label"`
	PlantID     uint64       `json:"plantId,omitempty"`
	WaterButton Visibility   `json:"waterButton"`
	OnImageTap  Intent       `json:"onImageTap"`
	OnWaterTap  *Intent      `json:"onWaterTap,omitempty"`
}

// GridView binds a surface to a row source.
type GridView struct {
	Rows RowSource `json:"-"`
	// ItemTap is completed with the plant id of the tapped row.
	ItemTap   IntentKind `json:"itemTap"`
	EmptyText string     `json:"emptyText"`
}

// Row is one item of a grid view.
type Row struct {
	ItemID      int64        `json:"itemId"`
	PlantID     uint64       `json:"plantId"`
	Image       garden.Stage `json:"image"`
	Label       string       `json:"label"`
	WaterButton Visibility   `json:"waterButton"`
	OnTap       Intent       `json:"onTap"`
}

// RowSource is a randomly indexable, ordered sequence of rows.
// Callers must keep indexes below RowCount.
type RowSource interface {
	RowCount() int
	RowAt(index int) Row
	ItemID(index int) int64
	HasStableIDs() bool
}

// Snapshot copies every row of src.
func Snapshot(src RowSource) []Row {
	if src == nil {
		return nil
	}
	n := src.RowCount()
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, src.RowAt(i))
	}
	return rows
}
