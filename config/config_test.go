package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"balboa-parking-backend/internal/engine"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: "host=localhost"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, float64(10), cfg.Server.RateLimitPerSec)
	assert.Equal(t, engine.DefaultTimeZone, cfg.Engine.Timezone)
	assert.Equal(t, float64(2), cfg.Engine.DefaultVisitHours)
	assert.Equal(t, engine.DefaultRankWeights, cfg.Engine.RankWeights)
	assert.Equal(t, 3600, cfg.Ingest.IntervalSeconds)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
}

func TestLoadExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
engine:
  timezone: "America/Los_Angeles"
  default_visit_hours: 4
  rank_weights:
    cost: 0.5
    walk: 0.3
    tram: 0.1
    tier: 0.05
    baseline: 0.05
ingest:
  enabled: true
  interval_seconds: 600
  url: "https://feeds.example.com/lots.json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, float64(4), cfg.Engine.DefaultVisitHours)
	assert.Equal(t, 0.5, cfg.Engine.RankWeights.Cost)
	assert.True(t, cfg.Ingest.Enabled)
	assert.Equal(t, float64(600), cfg.Ingest.Interval.Seconds())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
