// Package config loads claudash configuration, model pricing and Claude settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all claudash configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Pricing    PricingOverrides `toml:"pricing"`
}

// GeneralConfig holds data-source and pipeline preferences.
type GeneralConfig struct {
	ClaudeDir          string   `toml:"claude_dir,omitempty"`
	WorkspacePrefix    string   `toml:"workspace_prefix,omitempty"`
	CachePath          string   `toml:"cache_path,omitempty"`
	SessionsPerProject int      `toml:"sessions_per_project"`
	Workers            int      `toml:"workers,omitempty"`
	FetchTimeout       Duration `toml:"fetch_timeout"`
	Timezone           string   `toml:"timezone,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// PricingOverrides allows user-defined pricing for specific models.
type PricingOverrides struct {
	Overrides map[string]ModelPricingOverride `toml:"overrides,omitempty"`
}

// ModelPricingOverride holds per-model pricing overrides.
type ModelPricingOverride struct {
	InputPerMTok        *float64 `toml:"input_per_mtok,omitempty"`
	OutputPerMTok       *float64 `toml:"output_per_mtok,omitempty"`
	CacheWrite5mPerMTok *float64 `toml:"cache_write_5m_per_mtok,omitempty"`
	CacheWrite1hPerMTok *float64 `toml:"cache_write_1h_per_mtok,omitempty"`
	CacheReadPerMTok    *float64 `toml:"cache_read_per_mtok,omitempty"`
}

// Duration is a time.Duration written as a string ("10s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			FetchTimeout: Duration{10 * time.Second},
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// DefaultClaudeDir returns ~/.claude.
func DefaultClaudeDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude")
}

// ResolveClaudeDir returns the configured Claude data dir or the default.
func (c Config) ResolveClaudeDir() string {
	if c.General.ClaudeDir != "" {
		return expandHome(c.General.ClaudeDir)
	}
	return DefaultClaudeDir()
}

// ResolveCachePath returns the configured artifact path, defaulting to
// <claude_dir>/stats-cache.json.
func (c Config) ResolveCachePath() string {
	if c.General.CachePath != "" {
		return expandHome(c.General.CachePath)
	}
	return filepath.Join(c.ResolveClaudeDir(), "stats-cache.json")
}

// Location returns the configured timezone, falling back to local time.
func (c Config) Location() (*time.Location, error) {
	if c.General.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("loading timezone %q: %w", c.General.Timezone, err)
	}
	return loc, nil
}

func expandHome(p string) string {
	if len(p) >= 2 && p[:2] == "~/" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[2:])
	}
	return p
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "claudash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "claudash")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path, returning defaults if it doesn't exist.
// A file that fails to parse also yields defaults, never a partial decode.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
