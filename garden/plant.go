package garden

import (
	"strings"
	"time"
)

// InvalidPlantID is never assigned by the store. It marks the empty garden.
const InvalidPlantID uint64 = 0

type PlantType int

const (
	Cactus PlantType = iota
	Tree
	Flower
)

var plantTypeNames = []string{"cactus", "tree", "flower"}

func (t PlantType) Valid() bool {
	return t >= 0 && int(t) < len(plantTypeNames)
}

func (t PlantType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return plantTypeNames[t]
}

// ParsePlantType accepts the lower case plant type name.
func ParsePlantType(name string) (PlantType, bool) {
	for i, n := range plantTypeNames {
		if strings.EqualFold(n, name) {
			return PlantType(i), true
		}
	}
	return 0, false
}

// Plant is one row of the plant store. Timestamps are unix milliseconds.
type Plant struct {
	ID              uint64    `json:"id" gorm:"primaryKey"`
	CreationTime    int64     `json:"creationTime" gorm:"column:creation_time;not null;index"`
	LastWateredTime int64     `json:"lastWateredTime" gorm:"column:last_watered_time;not null;index"`
	PlantType       PlantType `json:"plantType" gorm:"column:plant_type;not null"`
}

func (p Plant) Created() time.Time {
	return time.UnixMilli(p.CreationTime)
}

func (p Plant) Watered() time.Time {
	return time.UnixMilli(p.LastWateredTime)
}

// NewPlant returns a plant created and watered at now.
func NewPlant(now time.Time, plantType PlantType) Plant {
	ts := now.UnixMilli()
	return Plant{
		CreationTime:    ts,
		LastWateredTime: ts,
		PlantType:       plantType,
	}
}

// DisplayState is the projection of a plant shown on a display surface.
// It is recomputed on every refresh and never stored.
type DisplayState struct {
	PlantID  uint64 `json:"plantId"`
	Stage    Stage  `json:"stage"`
	CanWater bool   `json:"canWater"`
}

func (s DisplayState) HasPlant() bool {
	return s.PlantID != InvalidPlantID
}

// Featured returns the plant most in need of water: the smallest
// LastWateredTime, ties going to the smallest ID.
func Featured(plants []Plant) (Plant, bool) {
	if len(plants) == 0 {
		return Plant{}, false
	}
	best := plants[0]
	for _, p := range plants[1:] {
		if p.LastWateredTime < best.LastWateredTime ||
			(p.LastWateredTime == best.LastWateredTime && p.ID < best.ID) {
			best = p
		}
	}
	return best, true
}
