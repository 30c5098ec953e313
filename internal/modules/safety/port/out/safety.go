package out

import auditdomain "helmwatch/internal/modules/audit/domain"

type AuditJournal interface {
	Record(record auditdomain.Record) string
}

type Diagnostics interface {
	Info(source, message string, data map[string]any)
	Warn(source, message string, data map[string]any)
	Error(source, message string, data map[string]any)
}
