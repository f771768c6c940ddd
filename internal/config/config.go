// Package config loads coffee maker settings from YAML.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/inventory"
	"github.com/hammamikhairi/coffeemaker/internal/monitor"
	"github.com/hammamikhairi/coffeemaker/internal/recipe"
)

// Env var names that override file settings.
const (
	EnvLogLevel = "COFFEEMAKER_LOG_LEVEL"
	EnvLogFile  = "COFFEEMAKER_LOG_FILE"
	EnvChime    = "COFFEEMAKER_CHIME"
)

// Config holds all coffee maker configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Chime     ChimeConfig     `yaml:"chime"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Inventory InventoryConfig `yaml:"inventory"`
	Recipes   []RecipeConfig  `yaml:"recipes"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // off, normal, verbose
	File  string `yaml:"file"`  // "stderr" or a path
}

// ChimeConfig configures the audio cue.
type ChimeConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MonitorConfig configures the console's low-stock alerts.
type MonitorConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Threshold int           `yaml:"threshold"`
	Interval  time.Duration `yaml:"interval"`
}

// InventoryConfig is the starting stock.
type InventoryConfig struct {
	Coffee    int `yaml:"coffee"`
	Milk      int `yaml:"milk"`
	Sugar     int `yaml:"sugar"`
	Chocolate int `yaml:"chocolate"`
}

// RecipeConfig is a recipe seeded at startup.
type RecipeConfig struct {
	Name      string `yaml:"name"`
	Price     int    `yaml:"price"`
	Coffee    int    `yaml:"coffee"`
	Milk      int    `yaml:"milk"`
	Sugar     int    `yaml:"sugar"`
	Chocolate int    `yaml:"chocolate"`
}

// DefaultConfig returns the settings used when no file is present: full
// default stock and an empty recipe book.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "normal",
			File:  ".coffeemaker/coffeemaker.log",
		},
		Monitor: MonitorConfig{
			Enabled:   true,
			Threshold: monitor.DefaultThreshold,
			Interval:  5 * time.Second,
		},
		Inventory: InventoryConfig{
			Coffee:    inventory.DefaultLevel,
			Milk:      inventory.DefaultLevel,
			Sugar:     inventory.DefaultLevel,
			Chocolate: inventory.DefaultLevel,
		},
	}
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(EnvChime); v != "" {
		if on, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Chime.Enabled = on
		}
	}
}

// Validate checks stock and seed recipes.
func (c *Config) Validate() error {
	inv := c.Levels()
	for _, ing := range domain.Ingredients {
		if inv[ing] < 0 {
			return fmt.Errorf("inventory %s is negative: %w", strings.ToLower(ing.String()), domain.ErrInvalidInput)
		}
	}
	if c.Monitor.Threshold < 0 {
		return fmt.Errorf("monitor threshold %d is negative: %w", c.Monitor.Threshold, domain.ErrInvalidInput)
	}
	if c.Monitor.Enabled && c.Monitor.Interval <= 0 {
		return fmt.Errorf("monitor interval must be positive: %w", domain.ErrInvalidInput)
	}
	if len(c.Recipes) > recipe.Capacity {
		return fmt.Errorf("%d recipes configured, at most %d fit: %w", len(c.Recipes), recipe.Capacity, domain.ErrBookFull)
	}
	seen := make(map[string]bool, len(c.Recipes))
	for _, r := range c.SeedRecipes() {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("recipe %q: %w", r.Name, err)
		}
		if seen[r.Name] {
			return fmt.Errorf("recipe %q: %w", r.Name, domain.ErrDuplicateRecipe)
		}
		seen[r.Name] = true
	}
	return nil
}

// Levels returns the starting stock.
func (c *Config) Levels() domain.Quantities {
	i := c.Inventory
	return domain.NewQuantities(i.Coffee, i.Milk, i.Sugar, i.Chocolate)
}

// SeedRecipes returns the configured recipes in slot order.
func (c *Config) SeedRecipes() []domain.Recipe {
	out := make([]domain.Recipe, 0, len(c.Recipes))
	for _, r := range c.Recipes {
		out = append(out, domain.Recipe{
			Name:    r.Name,
			Price:   r.Price,
			Amounts: domain.NewQuantities(r.Coffee, r.Milk, r.Sugar, r.Chocolate),
		})
	}
	return out
}
