package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"helmwatch/internal/platform/config"
)

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	t.Parallel()
	settings, err := config.LoadSettings(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.HourlyRate != 50 || settings.ShiftDurationHours != 10 {
		t.Fatalf("unexpected defaults: %+v", settings)
	}
	if settings.DriftTabAway != 5*time.Minute || settings.IdleThreshold != 10*time.Minute {
		t.Fatalf("unexpected drift thresholds: %s %s", settings.DriftTabAway, settings.IdleThreshold)
	}
}

func TestSettingsPersistDeveloperModeAndDurations(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".helmwatch", "settings.yaml")
	settings := config.DefaultSettings()
	settings.DeveloperMode = true
	settings.LagThreshold = 750 * time.Millisecond
	if err := config.SaveSettings(path, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	loaded, err := config.LoadSettings(path)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if !loaded.DeveloperMode {
		t.Fatalf("developer mode was not persisted")
	}
	if loaded.LagThreshold != 750*time.Millisecond {
		t.Fatalf("expected lag threshold 750ms, got %s", loaded.LagThreshold)
	}
}

func TestLoadSettingsRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("shift_duration_hours: 0\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if _, err := config.LoadSettings(path); err == nil {
		t.Fatalf("expected validation error for zero shift duration")
	}
}

func TestNewRequiresDataDir(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("expected error for empty data dir")
	}
	cfg, err := config.New("/tmp/deck")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join("/tmp/deck", ".helmwatch", "helmwatch.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
}
