package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"helmwatch/internal/modules/session/domain"
	sessionout "helmwatch/internal/modules/session/port/out"
	apperrors "helmwatch/internal/platform/errors"
	"helmwatch/internal/platform/tx"
)

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) (sessionout.SessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	// The partial unique index allows a single row with ended_at_ms = 0.
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  started_at_ms INTEGER NOT NULL,
  ended_at_ms INTEGER NOT NULL DEFAULT 0,
  items_caught INTEGER NOT NULL DEFAULT 0,
  earnings REAL NOT NULL DEFAULT 0,
  signed_at_ms INTEGER NOT NULL DEFAULT 0,
  efficiency REAL NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_open ON sessions(ended_at_ms) WHERE ended_at_ms = 0;
CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at_ms);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

const sessionColumns = `id, started_at_ms, ended_at_ms, items_caught, earnings, signed_at_ms, efficiency`

func (s *SQLiteSessionStore) Insert(ctx context.Context, session domain.Session) error {
	_, err := tx.From(ctx, s.db).ExecContext(ctx, `
INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.StartedAt.UnixMilli(),
		millis(session.EndedAt),
		session.ItemsCaught,
		session.Earnings,
		millis(session.SignedAt),
		session.Efficiency,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) FindOpen(ctx context.Context) (domain.Session, error) {
	row := tx.From(ctx, s.db).QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE ended_at_ms = 0 LIMIT 1`)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	return session, err
}

func (s *SQLiteSessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	row := tx.From(ctx, s.db).QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
	}
	return session, err
}

func (s *SQLiteSessionStore) CountStartedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := tx.From(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE started_at_ms >= ?`, since.UnixMilli()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func (s *SQLiteSessionStore) Close(ctx context.Context, session domain.Session) error {
	if session.IsOpen() {
		return fmt.Errorf("%w: close needs an end time", apperrors.ErrInvalidInput)
	}
	res, err := tx.From(ctx, s.db).ExecContext(ctx, `
UPDATE sessions SET ended_at_ms = ?, items_caught = ?, earnings = ? WHERE id = ? AND ended_at_ms = 0`,
		session.EndedAt.UnixMilli(), session.ItemsCaught, session.Earnings, session.ID)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return expectOneRow(res, apperrors.ErrNoActiveSession)
}

func (s *SQLiteSessionStore) IncrementCatch(ctx context.Context, id string) (int, error) {
	q := tx.From(ctx, s.db)
	res, err := q.ExecContext(ctx, `UPDATE sessions SET items_caught = items_caught + 1 WHERE id = ? AND ended_at_ms = 0`, id)
	if err != nil {
		return 0, fmt.Errorf("increment catch: %w", err)
	}
	if err := expectOneRow(res, apperrors.ErrNoActiveSession); err != nil {
		return 0, err
	}
	var n int
	if err := q.QueryRowContext(ctx, `SELECT items_caught FROM sessions WHERE id = ?`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("read catch count: %w", err)
	}
	return n, nil
}

func (s *SQLiteSessionStore) Sign(ctx context.Context, id string, signedAt time.Time, efficiency float64) error {
	res, err := tx.From(ctx, s.db).ExecContext(ctx, `
UPDATE sessions SET signed_at_ms = ?, efficiency = ? WHERE id = ? AND ended_at_ms > 0 AND signed_at_ms = 0`,
		signedAt.UnixMilli(), efficiency, id)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	return expectOneRow(res, apperrors.ErrAlreadySigned)
}

func (s *SQLiteSessionStore) List(ctx context.Context, limit int) ([]domain.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := tx.From(ctx, s.db).QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY started_at_ms DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	var out []domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (domain.Session, error) {
	var (
		session                      domain.Session
		startedMS, endedMS, signedMS int64
	)
	if err := row.Scan(&session.ID, &startedMS, &endedMS, &session.ItemsCaught, &session.Earnings, &signedMS, &session.Efficiency); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}
	session.StartedAt = time.UnixMilli(startedMS)
	session.EndedAt = fromMillis(endedMS)
	session.SignedAt = fromMillis(signedMS)
	return session, nil
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func expectOneRow(res sql.Result, none error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return none
	}
	return nil
}
