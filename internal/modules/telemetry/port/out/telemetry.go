package out

import (
	"context"

	"helmwatch/internal/modules/telemetry/domain"
)

// LogPersistence holds the persisted copy of the diagnostic buffer.
type LogPersistence interface {
	Save(ctx context.Context, newestFirst []domain.Entry) error
	Load(ctx context.Context) ([]domain.Entry, error)
	Purge(ctx context.Context) error
}

type EnvironmentProbe interface {
	Environment() domain.Environment
	Memory() (domain.Memory, bool)
}

// DeveloperModeStore persists the flag that gates log recording.
type DeveloperModeStore interface {
	Load(ctx context.Context) (bool, error)
	Save(ctx context.Context, enabled bool) error
}
