// Package config reads athensplus settings from the environment, with an
// optional .env file in the working directory.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvAPIURL       = "ATHENSPLUS_API_URL"
	EnvAPIKey       = "ATHENSPLUS_API_KEY"
	EnvCacheTTL     = "ATHENSPLUS_CACHE_TTL"
	EnvTimetableDir = "ATHENSPLUS_TIMETABLE_DIR"
	EnvHarborMapURL = "ATHENSPLUS_HARBOR_MAP_URL"
	EnvLogFile      = "ATHENSPLUS_LOG_FILE"
	EnvLogLevel     = "ATHENSPLUS_LOG_LEVEL"
	EnvSettingsFile = "ATHENSPLUS_SETTINGS_FILE"
)

// Defaults
const (
	DefaultAPIURL       = "https://maps.googleapis.com/maps/api"
	DefaultCacheTTL     = 2 * time.Minute
	DefaultHarborMapURL = "https://www.olp.gr/en/"
	DefaultLogLevel     = "info"
)

type Config struct {
	Directions DirectionsConfig
	Timetable  TimetableConfig
	Harbor     HarborConfig
	Logging    LoggingConfig
	Settings   SettingsConfig
}

type DirectionsConfig struct {
	BaseURL  string
	APIKey   string // empty disables the directions provider
	CacheTTL time.Duration
}

// Configured reports whether directions can be requested.
func (c DirectionsConfig) Configured() bool {
	return c.APIKey != ""
}

type TimetableConfig struct {
	Dir string // empty uses the embedded service patterns
}

type HarborConfig struct {
	MapURL string
}

type LoggingConfig struct {
	Level    string
	FilePath string
}

type SettingsConfig struct {
	FilePath string
}

// Load reads .env (when present) and then the environment. Variables already
// set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	cfg := &Config{
		Directions: DirectionsConfig{
			BaseURL:  strings.TrimRight(getEnv(EnvAPIURL, DefaultAPIURL), "/"),
			APIKey:   getEnv(EnvAPIKey, ""),
			CacheTTL: getDurationEnv(EnvCacheTTL, DefaultCacheTTL),
		},
		Timetable: TimetableConfig{
			Dir: getEnv(EnvTimetableDir, ""),
		},
		Harbor: HarborConfig{
			MapURL: getEnv(EnvHarborMapURL, DefaultHarborMapURL),
		},
		Logging: LoggingConfig{
			Level:    getEnv(EnvLogLevel, DefaultLogLevel),
			FilePath: getEnv(EnvLogFile, filepath.Join(StateDir(), "athensplus.log")),
		},
		Settings: SettingsConfig{
			FilePath: getEnv(EnvSettingsFile, filepath.Join(ConfigDir(), "settings.json")),
		},
	}

	return cfg, nil
}

// ConfigDir returns $XDG_CONFIG_HOME/athensplus or ~/.config/athensplus.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns $XDG_STATE_HOME/athensplus or ~/.local/state/athensplus.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, "athensplus")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "athensplus")
	}
	return filepath.Join(home, fallback, "athensplus")
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil && duration >= 0 {
			return duration
		}
	}
	return defaultValue
}
