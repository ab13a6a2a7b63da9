package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
allocation:
  gap: 10
store:
  backend: sqlite
  path: /tmp/plans.db
mqtt:
  broker: tcp://localhost:1883
  status_topic: fleet/jobs/status
metrics:
  prometheus_enabled: true
  prometheus_port: ":9090"
api:
  addr: ":8081"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 10.0, cfg.Allocation.Gap)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, "/tmp/plans.db", cfg.Store.Path)
	require.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	require.True(t, cfg.Metrics.PrometheusEnabled)
	require.Equal(t, ":8081", cfg.API.Addr)
	// Defaults filled in.
	require.NotZero(t, cfg.Allocation.WidthPerCubicMeter)
	require.Equal(t, "fleet/jobs/status", cfg.MQTT.StatusTopic)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"store":{"backend":"memory"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Store.Backend)
	require.Equal(t, ":8080", cfg.API.Addr)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LP_STORE__BACKEND", "sqlite")
	t.Setenv("LP_STORE__PATH", "/tmp/override.db")
	path := writeConfig(t, "config.yaml", `store: {backend: memory}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, "/tmp/override.db", cfg.Store.Path)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", `x = 1`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_InvalidStoreBackend(t *testing.T) {
	path := writeConfig(t, "config.yaml", `store: {backend: etcd}`)
	_, err := Load(path)
	require.Error(t, err)
}
