package config

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	DataDir       string
	DBPath        string
	SettingsPath  string
	TelemetryPath string
	LogbookDir    string
	LogPath       string
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, ".helmwatch", "helmwatch.db"),
		SettingsPath:  filepath.Join(dataDir, ".helmwatch", "settings.yaml"),
		TelemetryPath: filepath.Join(dataDir, ".helmwatch", "telemetry.cbor"),
		LogbookDir:    filepath.Join(dataDir, "logbook"),
		LogPath:       filepath.Join(dataDir, ".helmwatch", "helmwatch.log"),
	}, nil
}
