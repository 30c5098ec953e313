package out

import (
	"context"

	auditdomain "helmwatch/internal/modules/audit/domain"
	"helmwatch/internal/modules/crew/domain"
)

// RosterStore keeps the last known roster so separate processes agree.
type RosterStore interface {
	Load(ctx context.Context) ([]domain.Member, error)
	Save(ctx context.Context, member domain.Member) error
}

type AuditJournal interface {
	Record(record auditdomain.Record) string
}

type Diagnostics interface {
	Info(source, message string, data map[string]any)
	Warn(source, message string, data map[string]any)
	Error(source, message string, data map[string]any)
}

// Random is the subset of math/rand the simulator draws from.
type Random interface {
	Float64() float64
	Intn(n int) int
}
