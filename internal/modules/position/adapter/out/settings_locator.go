package out

import (
	"context"
	"os"
	"strconv"
	"strings"

	"helmwatch/internal/modules/position/domain"
	positionout "helmwatch/internal/modules/position/port/out"
	"helmwatch/internal/platform/config"
)

// SettingsLocator reports the position configured in settings.yaml.
// No configured position means unavailable.
type SettingsLocator struct {
	location *config.Location
}

func NewSettingsLocator(location *config.Location) positionout.Locator {
	return &SettingsLocator{location: location}
}

func (l *SettingsLocator) Locate(ctx context.Context) (domain.Coordinates, string, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, "", err
	}
	if l.location == nil {
		return domain.Coordinates{}, "", domain.ErrUnavailable
	}
	return domain.Coordinates{Latitude: l.location.Latitude, Longitude: l.location.Longitude}, l.location.Label, nil
}

// EnvLocator reads HELMWATCH_POSITION as "lat,lon". Setting it to "deny"
// simulates a refused permission.
type EnvLocator struct {
	lookup func(string) (string, bool)
	next   positionout.Locator
}

const positionEnv = "HELMWATCH_POSITION"

func NewEnvLocator(next positionout.Locator) positionout.Locator {
	return &EnvLocator{lookup: os.LookupEnv, next: next}
}

func (l *EnvLocator) Locate(ctx context.Context) (domain.Coordinates, string, error) {
	raw, ok := l.lookup(positionEnv)
	if !ok || strings.TrimSpace(raw) == "" {
		if l.next == nil {
			return domain.Coordinates{}, "", domain.ErrUnavailable
		}
		return l.next.Locate(ctx)
	}
	if strings.EqualFold(strings.TrimSpace(raw), "deny") {
		return domain.Coordinates{}, "", domain.ErrPermissionDenied
	}
	lat, lon, found := strings.Cut(raw, ",")
	if !found {
		return domain.Coordinates{}, "", domain.ErrUnavailable
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return domain.Coordinates{}, "", domain.ErrUnavailable
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return domain.Coordinates{}, "", domain.ErrUnavailable
	}
	return domain.Coordinates{Latitude: latitude, Longitude: longitude}, "Live fix", nil
}
