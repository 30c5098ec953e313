package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings are the operator-tunable knobs persisted in settings.yaml.
type Settings struct {
	HourlyRate         float64       `yaml:"hourly_rate"`
	ShiftDurationHours float64       `yaml:"shift_duration_hours"`
	DeveloperMode      bool          `yaml:"developer_mode"`
	DriftTabAway       time.Duration `yaml:"drift_tab_away"`
	IdleThreshold      time.Duration `yaml:"idle_threshold"`
	IdleCheckInterval  time.Duration `yaml:"idle_check_interval"`
	HeartbeatInterval  time.Duration `yaml:"heartbeat_interval"`
	LagThreshold       time.Duration `yaml:"lag_threshold"`
	ProbeAddress       string        `yaml:"probe_address"`
	SafetyWindow       time.Duration `yaml:"safety_window"`
	SafetyLimit        int           `yaml:"safety_limit"`
	Simulation         Simulation    `yaml:"simulation"`
	Operator           Operator      `yaml:"operator"`
	FallbackLocation   Location      `yaml:"fallback_location"`
	Location           *Location     `yaml:"location,omitempty"`
	StatusAddr         string        `yaml:"status_addr"`
	LogLevel           string        `yaml:"log_level"`
}

type Simulation struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Chance   float64       `yaml:"chance"`
}

type Operator struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

type Location struct {
	Label     string  `yaml:"label"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

func DefaultSettings() Settings {
	return Settings{
		HourlyRate:         50,
		ShiftDurationHours: 10,
		DriftTabAway:       5 * time.Minute,
		IdleThreshold:      10 * time.Minute,
		IdleCheckInterval:  time.Minute,
		HeartbeatInterval:  30 * time.Second,
		LagThreshold:       time.Second,
		ProbeAddress:       "1.1.1.1:443",
		SafetyWindow:       time.Hour,
		SafetyLimit:        3,
		Simulation: Simulation{
			Enabled:  true,
			Interval: 45 * time.Second,
			Chance:   0.1,
		},
		Operator:         Operator{ID: "captain", Name: "Captain", Role: "Captain"},
		FallbackLocation: Location{Label: "Greenwich", Latitude: 51.4779, Longitude: -0.0015},
		StatusAddr:       "127.0.0.1:8787",
		LogLevel:         "info",
	}
}

func (s Settings) Validate() error {
	if s.HourlyRate < 0 {
		return fmt.Errorf("hourly_rate must be non-negative, got %v", s.HourlyRate)
	}
	if s.ShiftDurationHours <= 0 {
		return fmt.Errorf("shift_duration_hours must be positive, got %v", s.ShiftDurationHours)
	}
	if s.SafetyLimit < 1 {
		return fmt.Errorf("safety_limit must be at least 1, got %d", s.SafetyLimit)
	}
	if s.Simulation.Chance < 0 || s.Simulation.Chance > 1 {
		return fmt.Errorf("simulation.chance must be within 0..1, got %v", s.Simulation.Chance)
	}
	for name, d := range map[string]time.Duration{
		"drift_tab_away":      s.DriftTabAway,
		"idle_threshold":      s.IdleThreshold,
		"idle_check_interval": s.IdleCheckInterval,
		"heartbeat_interval":  s.HeartbeatInterval,
		"lag_threshold":       s.LagThreshold,
		"safety_window":       s.SafetyWindow,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if s.Simulation.Enabled && s.Simulation.Interval <= 0 {
		return fmt.Errorf("simulation.interval must be positive when enabled")
	}
	if s.Operator.ID == "" {
		return fmt.Errorf("operator.id is required")
	}
	return nil
}

// LoadSettings reads settings.yaml on top of the defaults. A missing file
// yields the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings validation: %w", err)
	}
	return settings, nil
}

func SaveSettings(path string, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("settings validation: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	raw, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
