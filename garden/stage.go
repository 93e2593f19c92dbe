package garden

import (
	"fmt"
	"time"
)

// Stage names the image drawn for a plant.
type Stage string

const EmptyGarden Stage = "grass"

// StageResolver maps ages and plant type to an image. Implementations must
// be pure and total over non-negative ages.
type StageResolver interface {
	Resolve(plantAge, waterAge time.Duration, plantType PlantType) Stage
	Empty() Stage
}

// Stages is the default resolver. Images are named <type>_<1|2|3>, with a
// _danger suffix once DangerAge has passed without water and <type>_dead
// from DeadAge on.
type Stages struct {
	JuvenileAge   time.Duration `yaml:"juvenileAge"`
	FullyGrownAge time.Duration `yaml:"fullyGrownAge"`
	DangerAge     time.Duration `yaml:"dangerAge"`
	DeadAge       time.Duration `yaml:"-"`
}

var DefaultStages = Stages{
	JuvenileAge:   24 * time.Hour,
	FullyGrownAge: 48 * time.Hour,
	DangerAge:     6 * time.Hour,
	DeadAge:       12 * time.Hour,
}

func (s Stages) Resolve(plantAge, waterAge time.Duration, plantType PlantType) Stage {
	if !plantType.Valid() {
		return s.Empty()
	}
	if waterAge >= s.DeadAge {
		return Stage(plantType.String() + "_dead")
	}
	growth := 1
	switch {
	case plantAge >= s.FullyGrownAge:
		growth = 3
	case plantAge >= s.JuvenileAge:
		growth = 2
	}
	name := fmt.Sprintf("%s_%d", plantType, growth)
	if waterAge >= s.DangerAge {
		name += "_danger"
	}
	return Stage(name)
}

func (s Stages) Empty() Stage {
	return EmptyGarden
}
