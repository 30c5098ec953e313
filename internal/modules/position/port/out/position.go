package out

import (
	"context"

	"helmwatch/internal/modules/position/domain"
)

// Locator is a best-effort position source. It returns one of the domain
// errors when it cannot produce a fix.
type Locator interface {
	Locate(ctx context.Context) (domain.Coordinates, string, error)
}

type Diagnostics interface {
	Info(source, message string, data map[string]any)
	Warn(source, message string, data map[string]any)
	Error(source, message string, data map[string]any)
}
