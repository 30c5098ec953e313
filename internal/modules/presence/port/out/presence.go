package out

import (
	"context"

	crewdomain "helmwatch/internal/modules/crew/domain"
)

// Crew is the slice of the roster the watchdog drives.
type Crew interface {
	OperatorID() string
	Apply(ctx context.Context, id string, event crewdomain.Event, source crewdomain.Source, reason string) (bool, error)
	Heartbeat(id string)
}

// SessionState tells the watchdog whether a work session is open.
type SessionState interface {
	IsOpen() bool
}

type Diagnostics interface {
	Info(source, message string, data map[string]any)
	Warn(source, message string, data map[string]any)
	Error(source, message string, data map[string]any)
}
