package out

import (
	"context"

	telemetryout "helmwatch/internal/modules/telemetry/port/out"
	"helmwatch/internal/platform/config"
)

// SettingsFlagStore keeps the developer-mode flag in settings.yaml.
type SettingsFlagStore struct {
	path string
}

func NewSettingsFlagStore(settingsPath string) telemetryout.DeveloperModeStore {
	return &SettingsFlagStore{path: settingsPath}
}

func (s *SettingsFlagStore) Load(_ context.Context) (bool, error) {
	settings, err := config.LoadSettings(s.path)
	if err != nil {
		return false, err
	}
	return settings.DeveloperMode, nil
}

func (s *SettingsFlagStore) Save(_ context.Context, enabled bool) error {
	settings, err := config.LoadSettings(s.path)
	if err != nil {
		return err
	}
	settings.DeveloperMode = enabled
	return config.SaveSettings(s.path, settings)
}
