package out

import (
	"context"
	"time"

	auditdomain "helmwatch/internal/modules/audit/domain"
)

// Probe measures the link once. An error means no link.
type Probe interface {
	Probe(ctx context.Context) (time.Duration, error)
}

type AuditJournal interface {
	Record(record auditdomain.Record) string
}

type Diagnostics interface {
	Info(source, message string, data map[string]any)
	Warn(source, message string, data map[string]any)
	Error(source, message string, data map[string]any)
}
