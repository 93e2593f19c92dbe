package garden

import (
	"time"

	"github.com/juju/errors"
)

// Thresholds bound the watering window. A plant can be watered once
// MinAgeBetweenWater has passed since its last watering and until
// MaxAgeWithoutWater has passed, after which it is dead.
type Thresholds struct {
	MinAgeBetweenWater time.Duration `yaml:"minAgeBetweenWater"`
	MaxAgeWithoutWater time.Duration `yaml:"maxAgeWithoutWater"`
}

func (t Thresholds) Validate() error {
	if t.MinAgeBetweenWater < 0 {
		return errors.NotValidf("negative minAgeBetweenWater %v", t.MinAgeBetweenWater)
	}
	if t.MaxAgeWithoutWater <= t.MinAgeBetweenWater {
		return errors.NotValidf("maxAgeWithoutWater %v not above minAgeBetweenWater %v",
			t.MaxAgeWithoutWater, t.MinAgeBetweenWater)
	}
	return nil
}

// CanWater reports whether waterAge lies in [MinAgeBetweenWater, MaxAgeWithoutWater).
func (t Thresholds) CanWater(waterAge time.Duration) bool {
	return waterAge >= t.MinAgeBetweenWater && waterAge < t.MaxAgeWithoutWater
}

func (t Thresholds) Alive(waterAge time.Duration) bool {
	return waterAge < t.MaxAgeWithoutWater
}

// WaterWindow returns the range of last watered times that may be watered at now:
// strictly after the first value and no later than the second.
func (t Thresholds) WaterWindow(now time.Time) (diedAt, cooledAt time.Time) {
	return now.Add(-t.MaxAgeWithoutWater), now.Add(-t.MinAgeBetweenWater)
}

// Classifier derives display states from plant timestamps.
type Classifier struct {
	Thresholds Thresholds
	Stages     StageResolver
}

// Classify is pure: the same arguments always give the same state.
func (c Classifier) Classify(now, createdAt, wateredAt time.Time, plantType PlantType) DisplayState {
	plantAge := nonNegative(now.Sub(createdAt))
	waterAge := nonNegative(now.Sub(wateredAt))
	return DisplayState{
		Stage:    c.Stages.Resolve(plantAge, waterAge, plantType),
		CanWater: c.Thresholds.CanWater(waterAge),
	}
}

func (c Classifier) ClassifyPlant(now time.Time, p Plant) DisplayState {
	state := c.Classify(now, p.Created(), p.Watered(), p.PlantType)
	state.PlantID = p.ID
	return state
}

// NoPlant is the state shown for an empty garden.
func (c Classifier) NoPlant() DisplayState {
	return DisplayState{
		PlantID: InvalidPlantID,
		Stage:   c.Stages.Empty(),
	}
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
