package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railops/trackplan/core/model"
)

const sampleYAML = `railway:
  section_km: 20
  horizon_minutes: 180
  tracks: 3
  max_trains_per_track: 6
  headway_minutes: 3
fleet:
  trains:
    - id: ic-100
      scheduled_arrival: 0
      speed_kmh: 120
      priority: high
      length_m: 200
    - id: re-7
      scheduled_arrival: 5
      speed_kmh: 90
      priority: medium
      length_m: 140
disruption:
  enabled: true
  type: delay
  train_id: re-7
  delay_minutes: 12
metrics:
  prometheus_enabled: true
logging:
  level: debug
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Railway.Tracks)
	assert.Equal(t, 3.0, cfg.Railway.HeadwayMinutes)
	require.Len(t, cfg.Fleet.Trains, 2)
	assert.Equal(t, model.PriorityHigh, cfg.Fleet.Trains[0].Priority)
	assert.True(t, cfg.Disruption.Enabled)
	assert.Equal(t, model.DisruptionDelay, cfg.Disruption.Type)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusPort)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "trackplan", cfg.MQTT.TopicPrefix)
}

func TestLoadJSON(t *testing.T) {
	js := `{
  "railway": {"section_km": 10, "horizon_minutes": 120, "tracks": 1},
  "fleet": {"generate": {"size": 10, "seed": 4}}
}`
	cfg, err := Load(writeConfig(t, "config.json", js))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Railway.Tracks)
	assert.Len(t, cfg.Fleet.TrainList(), 10)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("K_RAILWAY__TRACKS", "5")
	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Railway.Tracks)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", "x = 1"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"missing fleet": `railway:
  section_km: 20
  horizon_minutes: 180
  tracks: 2
`,
		"bad tracks": `railway:
  section_km: 20
  horizon_minutes: 180
  tracks: 0
fleet:
  generate: {size: 3}
`,
		"bad disruption": `railway:
  section_km: 20
  horizon_minutes: 180
  tracks: 2
fleet:
  generate: {size: 3}
disruption:
  enabled: true
  type: delay
`,
		"bad log level": `railway:
  section_km: 20
  horizon_minutes: 180
  tracks: 2
fleet:
  generate: {size: 3}
logging:
  level: loud
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", content))
			assert.Error(t, err)
		})
	}
}

func TestFleetTrainListCombines(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", `railway:
  section_km: 20
  horizon_minutes: 180
  tracks: 2
fleet:
  trains:
    - {id: x, scheduled_arrival: 0, speed_kmh: 100, priority: low}
  generate: {size: 2, seed: 9}
`))
	require.NoError(t, err)
	trains := cfg.Fleet.TrainList()
	require.Len(t, trains, 3)
	assert.Equal(t, "x", trains[0].ID)
	assert.Equal(t, "trn-0001", trains[1].ID)
}
