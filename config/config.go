package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/railops/trackplan/core/metrics"
	"github.com/railops/trackplan/core/model"
	"github.com/railops/trackplan/infra/mqtt"
	"github.com/railops/trackplan/simulator"
)

// Config is the root configuration of the trackplan service.
type Config struct {
	Railway    model.RailwayConfig `json:"railway"`
	Fleet      FleetConfig         `json:"fleet"`
	Disruption DisruptionConfig    `json:"disruption"`
	Metrics    coremetrics.Config  `json:"metrics"`
	MQTT       mqtt.Config         `json:"mqtt"`
	Logging    LoggingConfig       `json:"logging"`
}

// FleetConfig supplies the trains of a scenario, either listed explicitly or
// generated. When both are present the generated trains are appended.
type FleetConfig struct {
	Trains   []model.Train          `json:"trains"`
	Generate *simulator.FleetConfig `json:"generate"`
}

// TrainList returns the scenario's full train list.
func (c FleetConfig) TrainList() []model.Train {
	trains := make([]model.Train, len(c.Trains))
	copy(trains, c.Trains)
	if c.Generate != nil {
		trains = append(trains, simulator.GenerateFleet(*c.Generate)...)
	}
	return trains
}

// Validate checks that the scenario has at least one source of trains and
// that every explicit train is well formed.
func (c FleetConfig) Validate() error {
	if len(c.Trains) == 0 && (c.Generate == nil || c.Generate.Size <= 0) {
		return fmt.Errorf("fleet requires trains or a generator")
	}
	for _, t := range c.Trains {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DisruptionConfig describes the optional what-if disruption run alongside
// the baseline.
type DisruptionConfig struct {
	Enabled      bool                 `json:"enabled"`
	Type         model.DisruptionType `json:"type"`
	TrainID      string               `json:"train_id"`
	DelayMinutes float64              `json:"delay_minutes"`
	Track        int                  `json:"track"`
}

// Disruption converts the section into a core disruption value.
func (c DisruptionConfig) Disruption() model.Disruption {
	return model.Disruption{
		Type:         c.Type,
		TrainID:      c.TrainID,
		DelayMinutes: c.DelayMinutes,
		Track:        c.Track,
	}
}

// Validate checks the section when enabled.
func (c DisruptionConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return c.Disruption().Validate()
}

// Load reads the configuration file at path, applies K_-prefixed environment
// overrides and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. K_RAILWAY__TRACKS=4.
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Logging.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Railway.Validate(); err != nil {
		return nil, fmt.Errorf("railway: %w", err)
	}
	if err := cfg.Fleet.Validate(); err != nil {
		return nil, fmt.Errorf("fleet: %w", err)
	}
	if err := cfg.Disruption.Validate(); err != nil {
		return nil, fmt.Errorf("disruption: %w", err)
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, fmt.Errorf("mqtt: %w", err)
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return &cfg, nil
}
