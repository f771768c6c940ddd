package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
)

const sampleYAML = `
logging:
  level: verbose
  file: stderr
chime:
  enabled: true
monitor:
  enabled: true
  threshold: 5
  interval: 30s
inventory:
  coffee: 20
  milk: 10
  sugar: 5
  chocolate: 0
recipes:
  - name: Coffee
    price: 50
    coffee: 3
    milk: 1
    sugar: 1
  - name: Latte
    price: 100
    coffee: 3
    milk: 3
    sugar: 1
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coffeemaker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, domain.NewQuantities(15, 15, 15, 15), cfg.Levels())
	assert.Empty(t, cfg.Recipes)
	assert.False(t, cfg.Chime.Enabled)
	assert.Equal(t, "normal", cfg.Logging.Level)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "verbose", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.File)
	assert.True(t, cfg.Chime.Enabled)
	assert.Equal(t, MonitorConfig{Enabled: true, Threshold: 5, Interval: 30 * time.Second}, cfg.Monitor)
	assert.Equal(t, domain.NewQuantities(20, 10, 5, 0), cfg.Levels())

	seeds := cfg.SeedRecipes()
	require.Len(t, seeds, 2)
	assert.Equal(t, domain.Recipe{Name: "Coffee", Price: 50, Amounts: domain.NewQuantities(3, 1, 1, 0)}, seeds[0])
	assert.Equal(t, "Latte", seeds[1].Name)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"negative stock", "inventory:\n  milk: -1\n", domain.ErrInvalidInput},
		{"too many recipes", "recipes:\n  - {name: A}\n  - {name: B}\n  - {name: C}\n  - {name: D}\n", domain.ErrBookFull},
		{"duplicate recipe", "recipes:\n  - {name: A}\n  - {name: A}\n", domain.ErrDuplicateRecipe},
		{"negative monitor threshold", "monitor:\n  threshold: -1\n", domain.ErrInvalidInput},
		{"zero monitor interval", "monitor:\n  interval: 0s\n", domain.ErrInvalidInput},
		{"unnamed recipe", "recipes:\n  - {price: 10}\n", domain.ErrInvalidRecipe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "recipes: [unterminated"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "off")
	t.Setenv(EnvLogFile, "stderr")
	t.Setenv(EnvChime, "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "off", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.File)
	assert.True(t, cfg.Chime.Enabled)
}

func TestEnvOverrideIgnoresBadBool(t *testing.T) {
	t.Setenv(EnvChime, "loud")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	assert.False(t, cfg.Chime.Enabled)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(path))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}
