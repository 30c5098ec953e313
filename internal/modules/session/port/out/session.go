package out

import (
	"context"
	"time"

	"helmwatch/internal/modules/session/domain"
)

// SessionStore persists sessions. FindOpen returns
// apperrors.ErrNoActiveSession when every session is closed.
type SessionStore interface {
	Insert(ctx context.Context, session domain.Session) error
	FindOpen(ctx context.Context) (domain.Session, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	CountStartedSince(ctx context.Context, since time.Time) (int, error)
	Close(ctx context.Context, session domain.Session) error
	IncrementCatch(ctx context.Context, id string) (int, error)
	Sign(ctx context.Context, id string, signedAt time.Time, efficiency float64) error
	List(ctx context.Context, limit int) ([]domain.Session, error)
}

// SummarySink receives settlements and the later countersignature.
type SummarySink interface {
	Deliver(ctx context.Context, settlement domain.Settlement) (string, error)
	Countersign(ctx context.Context, session domain.Session) error
}

// LogbookReader returns the written entry for a closed session.
// Missing entries are apperrors.ErrNotFound.
type LogbookReader interface {
	Read(ctx context.Context, session domain.Session) (string, error)
}

// MorningReview is told when the first session of the day opens.
type MorningReview interface {
	MorningReview(ctx context.Context, session domain.Session)
}

// StopGate decides whether a requested stop goes ahead.
type StopGate interface {
	ConfirmStop(ctx context.Context, status domain.Status) (bool, error)
}

type Diagnostics interface {
	Info(source, message string, data map[string]any)
	Warn(source, message string, data map[string]any)
	Error(source, message string, data map[string]any)
}
