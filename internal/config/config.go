package config

import (
	"fmt"
	"sync"

	"geocalc.onebusaway.org/internal/geo"
)

// Settings is the JSON document loaded from --config-file or --config-url.
type Settings struct {
	// Units replaces the built-in unit table when set.
	Units             geo.UnitTable `json:"units,omitempty"`
	DistanceKeyPrefix string        `json:"distance_key_prefix"`
	GtfsURL           string        `json:"gtfs_url,omitempty"`
	ObaBaseURL        string        `json:"oba_base_url,omitempty"`
	ObaAPIKey         string        `json:"oba_api_key,omitempty"`
}

// Validate rejects settings the engine cannot run with.
func (s Settings) Validate() error {
	if len(s.Units) > 0 {
		if err := s.Units.Validate(); err != nil {
			return fmt.Errorf("invalid units: %w", err)
		}
	}
	if s.ObaBaseURL != "" && s.ObaAPIKey == "" {
		return fmt.Errorf("oba_api_key is required when oba_base_url is set")
	}
	return nil
}

// UnitTable returns the configured units or the built-in table.
func (s Settings) UnitTable() geo.UnitTable {
	if len(s.Units) == 0 {
		return geo.DefaultUnits()
	}
	return s.Units.Clone()
}

func (s Settings) clone() Settings {
	out := s
	if s.Units != nil {
		out.Units = s.Units.Clone()
	}
	return out
}

// Config holds all the configuration settings for our application.
type Config struct {
	Port     int
	Env      string
	Mu       sync.RWMutex
	Settings Settings
}

// NewConfig creates a new instance of a Config struct.
func NewConfig(port int, env string, settings Settings) *Config {
	return &Config{
		Port:     port,
		Env:      env,
		Settings: settings.clone(),
	}
}

// UpdateConfig safely replaces the settings.
func (cfg *Config) UpdateConfig(settings Settings) {
	cfg.Mu.Lock()
	defer cfg.Mu.Unlock()
	cfg.Settings = settings.clone()
}

// GetSettings returns a copy of the current settings that callers may keep
// and modify without locking.
func (cfg *Config) GetSettings() Settings {
	cfg.Mu.RLock()
	defer cfg.Mu.RUnlock()
	return cfg.Settings.clone()
}

// Engine builds an engine from the current unit table and label prefix.
// Each request takes its own snapshot so a refresh never changes units in
// the middle of a computation.
func (cfg *Config) Engine() *geo.Engine {
	s := cfg.GetSettings()
	return geo.NewEngine(s.UnitTable(), s.DistanceKeyPrefix)
}
