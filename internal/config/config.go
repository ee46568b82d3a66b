package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Latest-value accessors the overview can be configured to use.
const (
	LatestModeMax  = "max"
	LatestModeDate = "date"
)

// Config holds all fidash configuration.
type Config struct {
	Data       DataConfig         `toml:"data"`
	Goal       GoalConfig         `toml:"goal"`
	Metrics    MetricsConfig      `toml:"metrics"`
	Forecast   ForecastConfig     `toml:"forecast"`
	Appearance AppearanceConfig   `toml:"appearance"`
	Indicators IndicatorOverrides `toml:"indicators"`
}

// DataConfig locates the two input tables.
type DataConfig struct {
	Dir            string `toml:"dir,omitempty"`
	HistoricalPath string `toml:"historical_path,omitempty"`
	ForecastPath   string `toml:"forecast_path,omitempty"`
}

// GoalConfig holds the NFIS target the overview measures progress against.
type GoalConfig struct {
	TargetPct  float64 `toml:"target_pct"`
	TargetYear int     `toml:"target_year"`
}

// MetricsConfig controls how headline values are summarized.
type MetricsConfig struct {
	// LatestMode is "max" (largest observed value) or "date" (most recent row).
	LatestMode string `toml:"latest_mode"`
}

// ForecastConfig holds the forecast engine's initial selections.
type ForecastConfig struct {
	DefaultIndicator string `toml:"default_indicator"`
	DefaultScenario  string `toml:"default_scenario"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// IndicatorOverrides allows user-defined labels and units for indicator codes.
type IndicatorOverrides struct {
	Overrides map[string]IndicatorOverride `toml:"overrides,omitempty"`
}

// IndicatorOverride holds per-indicator display overrides.
type IndicatorOverride struct {
	Label *string `toml:"label,omitempty"`
	Unit  *string `toml:"unit,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Goal: GoalConfig{
			TargetPct:  60,
			TargetYear: 2027,
		},
		Metrics: MetricsConfig{
			LatestMode: LatestModeMax,
		},
		Forecast: ForecastConfig{
			DefaultIndicator: "ACC_OWNERSHIP",
			DefaultScenario:  "base",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fidash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fidash")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Metrics.LatestMode != LatestModeMax && cfg.Metrics.LatestMode != LatestModeDate {
		return cfg, fmt.Errorf("parsing config: metrics.latest_mode %q (want %q or %q)",
			cfg.Metrics.LatestMode, LatestModeMax, LatestModeDate)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetDataDir returns the data root from env var or config, in that order.
// An empty result means the working directory.
func GetDataDir(cfg Config) string {
	if dir := os.Getenv("FIDASH_DATA_DIR"); dir != "" {
		return dir
	}
	return cfg.Data.Dir
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
