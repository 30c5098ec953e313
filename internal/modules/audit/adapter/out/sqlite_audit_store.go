package out

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"helmwatch/internal/modules/audit/domain"
	auditout "helmwatch/internal/modules/audit/port/out"
)

type SQLiteAuditStore struct {
	db *sql.DB
}

func NewSQLiteAuditStore(db *sql.DB) (auditout.Store, error) {
	store := &SQLiteAuditStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteAuditStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS audit_records (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  timestamp_ms INTEGER NOT NULL,
  details TEXT NOT NULL DEFAULT '',
  duration_ms INTEGER NOT NULL DEFAULT 0,
  crew_id TEXT NOT NULL DEFAULT '',
  reason_code TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_audit_type ON audit_records(type);
CREATE INDEX IF NOT EXISTS idx_audit_crew_id ON audit_records(crew_id);
CREATE INDEX IF NOT EXISTS idx_audit_reason_code ON audit_records(reason_code);
CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_records(timestamp_ms);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create audit_records table: %w", err)
	}
	return nil
}

func (s *SQLiteAuditStore) Append(ctx context.Context, record domain.Record) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}
	const stmt = `
INSERT INTO audit_records (id, type, timestamp_ms, details, duration_ms, crew_id, reason_code)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		string(record.Type),
		record.Timestamp.UnixMilli(),
		record.Details,
		record.Duration.Milliseconds(),
		record.CrewID,
		record.ReasonCode,
	)
	if err != nil {
		return "", fmt.Errorf("append audit record: %w", err)
	}
	return record.ID, nil
}

func (s *SQLiteAuditStore) QueryByField(ctx context.Context, field domain.Field, value string) ([]domain.Record, error) {
	if err := field.Validate(); err != nil {
		return nil, err
	}
	// field is whitelisted above, so it is safe to splice.
	query := `SELECT id, type, timestamp_ms, details, duration_ms, crew_id, reason_code
FROM audit_records WHERE ` + string(field) + ` = ? ORDER BY timestamp_ms ASC, id ASC`
	return s.query(ctx, query, value)
}

func (s *SQLiteAuditStore) Count(ctx context.Context, filter domain.Filter) (int, error) {
	clauses := []string{}
	args := []any{}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.CrewID != "" {
		clauses = append(clauses, "crew_id = ?")
		args = append(args, filter.CrewID)
	}
	if !filter.Since.IsZero() {
		clauses = append(clauses, "timestamp_ms >= ?")
		args = append(args, filter.Since.UnixMilli())
	}
	query := `SELECT COUNT(*) FROM audit_records`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count audit records: %w", err)
	}
	return n, nil
}

func (s *SQLiteAuditStore) Recent(ctx context.Context, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, type, timestamp_ms, details, duration_ms, crew_id, reason_code
FROM audit_records ORDER BY timestamp_ms DESC, id DESC LIMIT ?`
	return s.query(ctx, query, limit)
}

func (s *SQLiteAuditStore) query(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		var (
			rec        domain.Record
			kind       string
			tsMillis   int64
			durationMs int64
		)
		if err := rows.Scan(&rec.ID, &kind, &tsMillis, &rec.Details, &durationMs, &rec.CrewID, &rec.ReasonCode); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		rec.Type = domain.Type(kind)
		rec.Timestamp = time.UnixMilli(tsMillis)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	return records, nil
}
