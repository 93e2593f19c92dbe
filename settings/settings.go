package settings

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/juju/errors"
	"gopkg.in/yaml.v2"

	"github.com/ZamarianPatrick/mygarden-backend/actions"
	"github.com/ZamarianPatrick/mygarden-backend/garden"
	"github.com/ZamarianPatrick/mygarden-backend/widget"
)

const FileName = "gardenSettings.yml"

type Settings struct {
	Database        string            `yaml:"database"`
	Listen          string            `yaml:"listen"`
	Logging         string            `yaml:"logging"`
	Thresholds      garden.Thresholds `yaml:"thresholds"`
	Stages          garden.Stages     `yaml:"stages"`
	SingleItemWidth int               `yaml:"singleItemWidth"`
	SkipDeadPlants  bool              `yaml:"skipDeadPlants"`
	RefreshSchedule string            `yaml:"refreshSchedule"`
	Indicator       IndicatorSettings `yaml:"indicator"`
}

// IndicatorSettings wires an LED that lights while the featured plant can
// be watered and a push button that waters it.
type IndicatorSettings struct {
	Enabled    bool `yaml:"enabled"`
	LedGPIO    int  `yaml:"ledGPIO"`
	ButtonGPIO int  `yaml:"buttonGPIO"`
}

var (
	DefaultSettings = Settings{
		Database: "db.sqlite",
		Listen:   ":8080",
		Logging:  "<root>=INFO",
		Thresholds: garden.Thresholds{
			MinAgeBetweenWater: 2 * time.Hour,
			MaxAgeWithoutWater: 12 * time.Hour,
		},
		Stages:          garden.DefaultStages,
		SingleItemWidth: widget.DefaultSingleItemWidth,
		SkipDeadPlants:  true,
		RefreshSchedule: "@every 30m",
		Indicator: IndicatorSettings{
			LedGPIO:    23,
			ButtonGPIO: 24,
		},
	}
)

// Load reads the settings file in basePath, writing the defaults there first
// if it does not exist. Environment variables (and a .env file) override it.
func Load(basePath string) (Settings, error) {
	path := basePath + FileName

	var s Settings
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		s = DefaultSettings
		data, err := yaml.Marshal(s)
		if err != nil {
			return Settings{}, errors.Trace(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return Settings{}, errors.Annotatef(err, "writing default settings to %q", path)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, errors.Annotatef(err, "reading settings %q", path)
		}
		s = DefaultSettings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, errors.Annotatef(err, "parsing settings %q", path)
		}
	}

	// No .env file is fine.
	_ = godotenv.Load(basePath + ".env")
	s.applyEnv()

	s.Stages.DeadAge = s.Thresholds.MaxAgeWithoutWater
	if err := s.Validate(); err != nil {
		return Settings{}, errors.Trace(err)
	}
	return s, nil
}

func (s *Settings) applyEnv() {
	override := func(key string, into *string) {
		if v := os.Getenv(key); v != "" {
			*into = v
		}
	}
	override("GARDEN_DATABASE", &s.Database)
	override("GARDEN_LISTEN", &s.Listen)
	override("GARDEN_LOGGING", &s.Logging)
	override("GARDEN_REFRESH_SCHEDULE", &s.RefreshSchedule)
}

func (s Settings) Validate() error {
	if s.Database == "" {
		return errors.NotValidf("empty database path")
	}
	if err := s.Thresholds.Validate(); err != nil {
		return errors.Trace(err)
	}
	if s.SingleItemWidth <= 0 {
		return errors.NotValidf("singleItemWidth %d", s.SingleItemWidth)
	}
	return errors.Trace(actions.ParseSchedule(s.RefreshSchedule))
}
