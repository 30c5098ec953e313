package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"helmwatch/internal/modules/crew/domain"
	crewout "helmwatch/internal/modules/crew/port/out"
)

type SQLiteRosterStore struct {
	db *sql.DB
}

func NewSQLiteRosterStore(db *sql.DB) (crewout.RosterStore, error) {
	store := &SQLiteRosterStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRosterStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS crew_members (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT '',
  kind TEXT NOT NULL,
  status TEXT NOT NULL,
  last_heartbeat_ms INTEGER NOT NULL DEFAULT 0,
  active_flare TEXT NOT NULL DEFAULT '',
  updated_at_ms INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create crew_members table: %w", err)
	}
	return nil
}

func (s *SQLiteRosterStore) Save(ctx context.Context, m domain.Member) error {
	const stmt = `
INSERT INTO crew_members (id, name, role, kind, status, last_heartbeat_ms, active_flare, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name,
  role = excluded.role,
  kind = excluded.kind,
  status = excluded.status,
  last_heartbeat_ms = excluded.last_heartbeat_ms,
  active_flare = excluded.active_flare,
  updated_at_ms = excluded.updated_at_ms
`
	var heartbeat int64
	if !m.LastHeartbeat.IsZero() {
		heartbeat = m.LastHeartbeat.UnixMilli()
	}
	_, err := s.db.ExecContext(ctx, stmt,
		m.ID,
		m.Name,
		m.Role,
		string(m.Kind),
		string(m.Status),
		heartbeat,
		string(m.ActiveFlare),
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save crew member %s: %w", m.ID, err)
	}
	return nil
}

func (s *SQLiteRosterStore) Load(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, role, kind, status, last_heartbeat_ms, active_flare
FROM crew_members ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("load crew members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var (
			m           domain.Member
			kind        string
			status      string
			heartbeatMS int64
			flare       string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &kind, &status, &heartbeatMS, &flare); err != nil {
			return nil, fmt.Errorf("scan crew member: %w", err)
		}
		m.Kind = domain.Kind(kind)
		m.Status = domain.Status(status)
		m.ActiveFlare = domain.Flare(flare)
		if heartbeatMS > 0 {
			m.LastHeartbeat = time.UnixMilli(heartbeatMS)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate crew members: %w", err)
	}
	return members, nil
}
