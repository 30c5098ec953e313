package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"helmwatch/internal/modules/session/domain"
	sessionout "helmwatch/internal/modules/session/port/out"
	"helmwatch/internal/platform/clock"
	apperrors "helmwatch/internal/platform/errors"
	"helmwatch/internal/platform/id"
	"helmwatch/internal/platform/notify"
	"helmwatch/internal/platform/tx"
)

const (
	tickInterval      = time.Second
	diagnosticsSource = "session"
)

type Options struct {
	HourlyRate    float64
	ShiftDuration time.Duration
}

// Hooks are the external collaborators a session talks to. Every field
// is optional.
type Hooks struct {
	Summary       sessionout.SummarySink
	MorningReview sessionout.MorningReview
	StopGate      sessionout.StopGate
}

// SessionClock runs the open session: the per-second tick, overtime and
// settlement. The store is authoritative; the cached open session only
// drives the tick.
type SessionClock struct {
	clock       clock.Clock
	ids         id.Generator
	store       sessionout.SessionStore
	tx          tx.Manager
	hooks       Hooks
	diagnostics sessionout.Diagnostics
	notifier    notify.Notifier
	logger      *slog.Logger
	opts        Options

	mu       sync.Mutex
	open     *domain.Session
	elapsed  time.Duration
	overtime bool
	ticker   *clock.Periodic
	attached bool
}

func NewSessionClock(
	clk clock.Clock,
	ids id.Generator,
	store sessionout.SessionStore,
	txm tx.Manager,
	hooks Hooks,
	diagnostics sessionout.Diagnostics,
	notifier notify.Notifier,
	logger *slog.Logger,
	opts Options,
) *SessionClock {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &SessionClock{
		clock:       clk,
		ids:         ids,
		store:       store,
		tx:          txm,
		hooks:       hooks,
		diagnostics: diagnostics,
		notifier:    notifier,
		logger:      logger,
		opts:        opts,
	}
}

// Attach recovers an open session from the store and resumes its tick.
func (c *SessionClock) Attach(ctx context.Context) error {
	open, err := c.store.FindOpen(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNoActiveSession) {
		return fmt.Errorf("recover open session: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attached = true
	if err == nil {
		c.open = &open
		c.overtime = false
		c.elapsed = open.Elapsed(c.clock.Now())
		c.startTickLocked()
	}
	return nil
}

func (c *SessionClock) Detach() {
	c.mu.Lock()
	t := c.ticker
	c.ticker = nil
	c.attached = false
	c.mu.Unlock()
	t.Stop()
}

// Start opens a session. It is rejected while another one is open.
func (c *SessionClock) Start(ctx context.Context) (domain.Session, error) {
	now := c.clock.Now()
	session := domain.Session{ID: c.ids.New(), StartedAt: now}
	var firstToday bool
	err := c.tx.Within(ctx, func(ctx context.Context) error {
		_, err := c.store.FindOpen(ctx)
		if err == nil {
			return apperrors.ErrActiveSessionExists
		}
		if !errors.Is(err, apperrors.ErrNoActiveSession) {
			return err
		}
		count, err := c.store.CountStartedSince(ctx, domain.LocalMidnight(now))
		if err != nil {
			return err
		}
		firstToday = count == 0
		return c.store.Insert(ctx, session)
	})
	if err != nil {
		return domain.Session{}, err
	}

	c.mu.Lock()
	c.open = &session
	c.elapsed = 0
	c.overtime = false
	if c.attached {
		c.startTickLocked()
	}
	c.mu.Unlock()

	c.diagnostics.Info(diagnosticsSource, "session started", map[string]any{"session_id": session.ID, "first_today": firstToday})
	if firstToday && c.hooks.MorningReview != nil {
		c.hooks.MorningReview.MorningReview(ctx, session)
	}
	return session, nil
}

// Tick recomputes elapsed time and raises overtime once per session.
func (c *SessionClock) Tick(now time.Time) {
	c.mu.Lock()
	if c.open == nil {
		c.mu.Unlock()
		return
	}
	c.elapsed = c.open.Elapsed(now)
	fire := !c.overtime && c.opts.ShiftDuration > 0 && c.elapsed > c.opts.ShiftDuration
	if fire {
		c.overtime = true
	}
	sessionID := c.open.ID
	c.mu.Unlock()

	if !fire {
		return
	}
	c.diagnostics.Warn(diagnosticsSource, "overtime", map[string]any{"session_id": sessionID})
	if c.notifier != nil {
		c.notifier.Send("Overtime", fmt.Sprintf("You have rowed past your %s shift. Consider making port.", c.opts.ShiftDuration))
	}
}

// Stop closes the open session and hands the settlement on. It never
// asks for confirmation; see RequestStop.
func (c *SessionClock) Stop(ctx context.Context) (domain.Settlement, error) {
	var settlement domain.Settlement
	err := c.tx.Within(ctx, func(ctx context.Context) error {
		open, err := c.store.FindOpen(ctx)
		if err != nil {
			return err
		}
		closed, s := domain.Settle(open, c.clock.Now(), c.opts.HourlyRate)
		if err := c.store.Close(ctx, closed); err != nil {
			return err
		}
		settlement = s
		return nil
	})
	if err != nil {
		return domain.Settlement{}, err
	}

	c.mu.Lock()
	settlement.Overtime = c.overtime
	if !settlement.Overtime && c.opts.ShiftDuration > 0 {
		settlement.Overtime = time.Duration(settlement.DurationSeconds)*time.Second > c.opts.ShiftDuration
	}
	c.open = nil
	c.elapsed = 0
	c.overtime = false
	t := c.ticker
	c.ticker = nil
	c.mu.Unlock()
	t.Stop()

	c.diagnostics.Info(diagnosticsSource, "session stopped", map[string]any{
		"session_id":       settlement.SessionID,
		"duration_seconds": settlement.DurationSeconds,
		"earnings":         settlement.Earnings,
	})
	if c.hooks.Summary != nil {
		if _, err := c.hooks.Summary.Deliver(ctx, settlement); err != nil {
			c.logger.Warn("deliver settlement failed", "session_id", settlement.SessionID, "error", err)
		}
	}
	return settlement, nil
}

// RequestStop asks the stop gate first and stops only when it agrees.
func (c *SessionClock) RequestStop(ctx context.Context) (domain.Settlement, error) {
	if c.hooks.StopGate != nil {
		status, err := c.Status(ctx)
		if err != nil {
			return domain.Settlement{}, err
		}
		if !status.Open {
			return domain.Settlement{}, apperrors.ErrNoActiveSession
		}
		ok, err := c.hooks.StopGate.ConfirmStop(ctx, status)
		if err != nil {
			return domain.Settlement{}, err
		}
		if !ok {
			return domain.Settlement{}, apperrors.ErrStopDeclined
		}
	}
	return c.Stop(ctx)
}

// RecordCatch counts one item caught in the open session.
func (c *SessionClock) RecordCatch(ctx context.Context) (int, error) {
	open, err := c.store.FindOpen(ctx)
	if err != nil {
		return 0, err
	}
	n, err := c.store.IncrementCatch(ctx, open.ID)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	if c.open != nil && c.open.ID == open.ID {
		c.open.ItemsCaught = n
	}
	c.mu.Unlock()
	return n, nil
}

// Sign records the operator's review of a closed session. It happens
// once.
func (c *SessionClock) Sign(ctx context.Context, sessionID string, efficiency float64) (domain.Session, error) {
	if err := domain.ValidateEfficiency(efficiency); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	session, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	if session.IsOpen() {
		return domain.Session{}, fmt.Errorf("%w: session %s is still open", apperrors.ErrInvalidInput, sessionID)
	}
	if session.IsSigned() {
		return domain.Session{}, apperrors.ErrAlreadySigned
	}
	session.SignedAt = c.clock.Now()
	session.Efficiency = efficiency
	if err := c.store.Sign(ctx, session.ID, session.SignedAt, efficiency); err != nil {
		return domain.Session{}, err
	}
	if c.hooks.Summary != nil {
		if err := c.hooks.Summary.Countersign(ctx, session); err != nil {
			c.logger.Warn("countersign settlement failed", "session_id", session.ID, "error", err)
		}
	}
	return session, nil
}

// Status reports the open session as the store sees it.
func (c *SessionClock) Status(ctx context.Context) (domain.Status, error) {
	open, err := c.store.FindOpen(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return domain.Status{}, nil
	}
	if err != nil {
		return domain.Status{}, err
	}
	now := c.clock.Now()
	c.mu.Lock()
	overtime := c.overtime && c.open != nil && c.open.ID == open.ID
	c.mu.Unlock()
	elapsed := open.Elapsed(now)
	if !overtime && c.opts.ShiftDuration > 0 {
		overtime = elapsed > c.opts.ShiftDuration
	}
	return domain.Status{
		Open:        true,
		SessionID:   open.ID,
		StartedAt:   open.StartedAt,
		Elapsed:     elapsed,
		Shift:       c.opts.ShiftDuration,
		Overtime:    overtime,
		ItemsCaught: open.ItemsCaught,
		Earnings:    domain.Earnings(int64(elapsed/time.Second), c.opts.HourlyRate),
	}, nil
}

// IsOpen reports from memory whether a session is running. The presence
// watchdog calls it from timer callbacks.
func (c *SessionClock) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open != nil
}

// Overtime reports the flag raised by the tick.
func (c *SessionClock) Overtime() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overtime
}

func (c *SessionClock) History(ctx context.Context, limit int) ([]domain.Session, error) {
	return c.store.List(ctx, limit)
}

func (c *SessionClock) Session(ctx context.Context, id string) (domain.Session, error) {
	return c.store.Get(ctx, id)
}

func (c *SessionClock) startTickLocked() {
	c.ticker.Stop()
	c.ticker = clock.Every(c.clock, tickInterval, c.Tick)
}
