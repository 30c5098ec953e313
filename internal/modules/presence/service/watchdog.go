package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	crewdomain "helmwatch/internal/modules/crew/domain"
	presenceout "helmwatch/internal/modules/presence/port/out"
	"helmwatch/internal/platform/clock"
)

const (
	DefaultTabAway       = 5 * time.Minute
	DefaultIdleThreshold = 10 * time.Minute
	DefaultIdleCheck     = time.Minute

	ReasonTabAway  = "tab_away"
	ReasonIdle     = "idle"
	ReasonReturned = "returned"
	ReasonActivity = "activity"
)

type Options struct {
	TabAway       time.Duration
	IdleThreshold time.Duration
	IdleCheck     time.Duration
}

func (o Options) withDefaults() Options {
	if o.TabAway <= 0 {
		o.TabAway = DefaultTabAway
	}
	if o.IdleThreshold <= 0 {
		o.IdleThreshold = DefaultIdleThreshold
	}
	if o.IdleCheck <= 0 {
		o.IdleCheck = DefaultIdleCheck
	}
	return o
}

// Watchdog turns visibility and input signals into operator drift.
// The tab-away timer and the idle check run independently and both feed
// the roster, which keeps a second drift from doing anything.
type Watchdog struct {
	clock       clock.Clock
	crew        presenceout.Crew
	session     presenceout.SessionState
	diagnostics presenceout.Diagnostics
	logger      *slog.Logger
	opts        Options

	mu           sync.Mutex
	ctx          context.Context
	visible      bool
	lastActivity time.Time
	tabAway      *clock.Timer
	idle         *clock.Periodic
}

func NewWatchdog(
	clk clock.Clock,
	crew presenceout.Crew,
	session presenceout.SessionState,
	diagnostics presenceout.Diagnostics,
	logger *slog.Logger,
	opts Options,
) *Watchdog {
	return &Watchdog{
		clock:        clk,
		crew:         crew,
		session:      session,
		diagnostics:  diagnostics,
		logger:       logger,
		opts:         opts.withDefaults(),
		ctx:          context.Background(),
		visible:      true,
		lastActivity: clk.Now(),
	}
}

// Attach starts the idle check. Signals received before Attach still
// update visibility and activity.
func (w *Watchdog) Attach(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctx = ctx
	w.lastActivity = w.clock.Now()
	w.idle.Stop()
	w.idle = clock.Every(w.clock, w.opts.IdleCheck, w.CheckIdle)
}

// Detach cancels the idle check and any pending tab-away timer.
func (w *Watchdog) Detach() {
	w.mu.Lock()
	idle, tabAway := w.idle, w.tabAway
	w.idle, w.tabAway = nil, nil
	w.mu.Unlock()
	idle.Stop()
	tabAway.Stop()
}

// OnVisibilityChange handles the page going hidden or visible.
func (w *Watchdog) OnVisibilityChange(visible bool) {
	if !visible {
		w.hide()
		return
	}
	w.mu.Lock()
	wasVisible := w.visible
	w.visible = true
	pending := w.tabAway
	w.tabAway = nil
	ctx := w.ctx
	w.mu.Unlock()

	if pending.Stop() {
		w.diagnostics.Info("presence", "tab-away timer cancelled", nil)
		return
	}
	if !wasVisible {
		w.transition(ctx, crewdomain.EventActivityResumed, ReasonReturned)
	}
}

func (w *Watchdog) hide() {
	if !w.session.IsOpen() {
		w.mu.Lock()
		w.visible = false
		w.mu.Unlock()
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = false
	if w.tabAway != nil {
		return
	}
	w.tabAway = w.clock.AfterFunc(w.opts.TabAway, w.TabAwayElapsed)
}

// TabAwayElapsed is the tab-away timer callback. Running it twice is
// harmless: the roster ignores a drift on a drifting operator.
func (w *Watchdog) TabAwayElapsed() {
	w.mu.Lock()
	w.tabAway = nil
	visible := w.visible
	ctx := w.ctx
	w.mu.Unlock()

	if visible || !w.session.IsOpen() {
		return
	}
	w.transition(ctx, crewdomain.EventDriftDetected, ReasonTabAway)
}

// RecordActivity registers pointer or keyboard input. It clears drift
// only while visible.
func (w *Watchdog) RecordActivity() {
	w.mu.Lock()
	w.lastActivity = w.clock.Now()
	visible := w.visible
	ctx := w.ctx
	w.mu.Unlock()

	w.crew.Heartbeat(w.crew.OperatorID())
	if visible {
		w.transition(ctx, crewdomain.EventActivityResumed, ReasonActivity)
	}
}

// CheckIdle declares drift when no input arrived within the threshold
// while a session is open. Visibility is not consulted.
func (w *Watchdog) CheckIdle(now time.Time) {
	w.mu.Lock()
	idleFor := now.Sub(w.lastActivity)
	ctx := w.ctx
	w.mu.Unlock()

	if idleFor <= w.opts.IdleThreshold || !w.session.IsOpen() {
		return
	}
	w.transition(ctx, crewdomain.EventDriftDetected, ReasonIdle)
}

func (w *Watchdog) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Watchdog) LastActivity() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActivity
}

func (w *Watchdog) TabAwayPending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tabAway != nil
}

func (w *Watchdog) transition(ctx context.Context, event crewdomain.Event, reason string) {
	changed, err := w.crew.Apply(ctx, w.crew.OperatorID(), event, crewdomain.SourceWatchdog, reason)
	if err != nil {
		w.logger.Warn("presence transition failed", "event", string(event), "error", err)
		return
	}
	if changed {
		w.diagnostics.Info("presence", "operator "+string(event), map[string]any{"reason": reason})
	}
}
