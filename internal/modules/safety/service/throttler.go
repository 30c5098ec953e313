package service

import (
	"fmt"
	"sync"
	"time"

	auditdomain "helmwatch/internal/modules/audit/domain"
	"helmwatch/internal/modules/safety/domain"
	safetyout "helmwatch/internal/modules/safety/port/out"
	"helmwatch/internal/platform/clock"
	"helmwatch/internal/platform/notify"
)

// Throttler audits every safety check and advises when checks pile up.
// The advisory repeats on every check while the window stays over the
// limit.
type Throttler struct {
	clock       clock.Clock
	journal     safetyout.AuditJournal
	diagnostics safetyout.Diagnostics
	notifier    notify.Notifier
	limit       int

	mu     sync.Mutex
	window *domain.Window
}

func NewThrottler(
	clk clock.Clock,
	journal safetyout.AuditJournal,
	diagnostics safetyout.Diagnostics,
	notifier notify.Notifier,
	window time.Duration,
	limit int,
) *Throttler {
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	return &Throttler{
		clock:       clk,
		journal:     journal,
		diagnostics: diagnostics,
		notifier:    notifier,
		limit:       limit,
		window:      domain.NewWindow(window),
	}
}

// PerformCheck records one check on targetID, which may be empty for a
// general inspection. It reports whether the ease-off advisory was sent.
func (t *Throttler) PerformCheck(targetID string) (inWindow int, advised bool) {
	now := t.clock.Now()
	t.mu.Lock()
	inWindow = t.window.Add(now)
	t.mu.Unlock()

	t.journal.Record(auditdomain.Record{
		Type:      auditdomain.TypeSafetyCheck,
		Timestamp: now,
		CrewID:    targetID,
		Details:   fmt.Sprintf("safety check %d in window", inWindow),
	})
	t.diagnostics.Info("safety", "safety check", map[string]any{"crew_id": targetID, "in_window": inWindow})

	if inWindow <= t.limit {
		return inWindow, false
	}
	if t.notifier != nil {
		t.notifier.Send("Ease off", fmt.Sprintf("%d safety checks in the last hour. The crew can row on their own.", inWindow))
	}
	return inWindow, true
}
