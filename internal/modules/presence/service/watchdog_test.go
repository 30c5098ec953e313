package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	auditdomain "helmwatch/internal/modules/audit/domain"
	crewdomain "helmwatch/internal/modules/crew/domain"
	crewservice "helmwatch/internal/modules/crew/service"
	"helmwatch/internal/modules/presence/service"
	"helmwatch/internal/platform/clock"
	"helmwatch/internal/platform/logging"
)

type fakeJournal struct {
	mu      sync.Mutex
	records []auditdomain.Record
}

func (j *fakeJournal) Record(rec auditdomain.Record) string {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, rec)
	return "rec"
}

func (j *fakeJournal) drifts() []auditdomain.Record {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []auditdomain.Record
	for _, r := range j.records {
		if r.Type == auditdomain.TypeDrift {
			out = append(out, r)
		}
	}
	return out
}

type nopDiagnostics struct{}

func (nopDiagnostics) Info(string, string, map[string]any)  {}
func (nopDiagnostics) Warn(string, string, map[string]any)  {}
func (nopDiagnostics) Error(string, string, map[string]any) {}

type countingNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (n *countingNotifier) Send(title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
}

func (n *countingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.titles...)
}

type sessionFlag struct{ open atomic.Bool }

func (s *sessionFlag) IsOpen() bool { return s.open.Load() }

type fixture struct {
	clock    *clock.FakeClock
	journal  *fakeJournal
	notifier *countingNotifier
	roster   *crewservice.Roster
	session  *sessionFlag
	watchdog *service.Watchdog
}

func newFixture(t *testing.T, sessionOpen bool) fixture {
	t.Helper()
	f := fixture{
		clock:    clock.NewFake(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)),
		journal:  &fakeJournal{},
		notifier: &countingNotifier{},
		session:  &sessionFlag{},
	}
	f.session.open.Store(sessionOpen)
	roster, err := crewservice.NewRoster(f.clock, nil, f.journal, nopDiagnostics{}, f.notifier, logging.Discard(), []crewdomain.Member{
		{ID: "captain", Name: "Captain", Kind: crewdomain.KindOperator},
		{ID: "mate", Name: "Mate", Kind: crewdomain.KindSimulated},
	})
	if err != nil {
		t.Fatalf("new roster: %v", err)
	}
	f.roster = roster
	f.watchdog = service.NewWatchdog(f.clock, roster, f.session, nopDiagnostics{}, logging.Discard(), service.Options{})
	f.watchdog.Attach(context.Background())
	t.Cleanup(f.watchdog.Detach)
	return f
}

func (f fixture) operatorStatus(t *testing.T) crewdomain.Status {
	t.Helper()
	m, err := f.roster.Member("captain")
	if err != nil {
		t.Fatalf("operator: %v", err)
	}
	return m.Status
}

func TestTabAwayDriftsAfterThreshold(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)

	f.watchdog.OnVisibilityChange(false)
	f.clock.Advance(service.DefaultTabAway - time.Second)
	if got := f.operatorStatus(t); got != crewdomain.StatusAtOars {
		t.Fatalf("drift fired early: %s", got)
	}
	f.clock.Advance(time.Second)
	if got := f.operatorStatus(t); got != crewdomain.StatusDrifting {
		t.Fatalf("expected DRIFTING after tab-away, got %s", got)
	}
	drifts := f.journal.drifts()
	if len(drifts) != 1 || drifts[0].ReasonCode != service.ReasonTabAway || drifts[0].CrewID != "captain" {
		t.Fatalf("expected one tab-away DRIFT record, got %+v", drifts)
	}

	f.watchdog.OnVisibilityChange(true)
	if got := f.operatorStatus(t); got != crewdomain.StatusAtOars {
		t.Fatalf("returning should clear drift, got %s", got)
	}
	if len(f.journal.drifts()) != 2 {
		t.Fatalf("expected a second audit record on return")
	}
	titles := f.notifier.all()
	if len(titles) != 2 || titles[1] != "Welcome back" {
		t.Fatalf("expected drift then welcome back advisories, got %v", titles)
	}
}

func TestReturningBeforeThresholdCancelsSilently(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	f.watchdog.OnVisibilityChange(false)
	f.clock.Advance(2 * time.Minute)
	f.watchdog.OnVisibilityChange(true)
	if f.watchdog.TabAwayPending() {
		t.Fatalf("timer should be cancelled")
	}
	f.watchdog.RecordActivity()
	f.clock.Advance(5 * time.Minute)
	if got := f.operatorStatus(t); got != crewdomain.StatusAtOars {
		t.Fatalf("cancelled timer must not drift, got %s", got)
	}
	if len(f.journal.records) != 0 || len(f.notifier.all()) != 0 {
		t.Fatalf("cancel must have no side effects")
	}
}

func TestTabAwayFireHandlerIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	f.watchdog.OnVisibilityChange(false)
	f.watchdog.TabAwayElapsed()
	f.watchdog.TabAwayElapsed()
	if got := f.operatorStatus(t); got != crewdomain.StatusDrifting {
		t.Fatalf("expected DRIFTING, got %s", got)
	}
	if got := len(f.journal.drifts()); got != 1 {
		t.Fatalf("expected exactly one DRIFT record, got %d", got)
	}
	f.clock.Advance(service.DefaultTabAway)
	if got := len(f.journal.drifts()); got != 1 {
		t.Fatalf("late timer must not add a record, got %d", got)
	}
}

func TestHiddenWithoutSessionDoesNotArmTimer(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	f.watchdog.OnVisibilityChange(false)
	if f.watchdog.TabAwayPending() {
		t.Fatalf("no session means no tab-away timer")
	}
	f.clock.Advance(time.Hour)
	if got := f.operatorStatus(t); got != crewdomain.StatusAtOars {
		t.Fatalf("no session means no drift, got %s", got)
	}
}

func TestIdleDriftAndVisibleActivityClears(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)

	f.clock.Advance(service.DefaultIdleThreshold)
	if got := f.operatorStatus(t); got != crewdomain.StatusAtOars {
		t.Fatalf("idle equal to threshold is not drift, got %s", got)
	}
	f.clock.Advance(service.DefaultIdleCheck)
	if got := f.operatorStatus(t); got != crewdomain.StatusDrifting {
		t.Fatalf("expected idle drift, got %s", got)
	}
	f.clock.Advance(5 * service.DefaultIdleCheck)
	if got := len(f.journal.drifts()); got != 1 {
		t.Fatalf("repeated idle checks must not add records, got %d", got)
	}

	f.watchdog.RecordActivity()
	if got := f.operatorStatus(t); got != crewdomain.StatusAtOars {
		t.Fatalf("visible activity should clear drift, got %s", got)
	}
}

func TestHiddenActivityDoesNotClearDrift(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	f.watchdog.OnVisibilityChange(false)
	f.clock.Advance(service.DefaultTabAway)
	f.watchdog.RecordActivity()
	if got := f.operatorStatus(t); got != crewdomain.StatusDrifting {
		t.Fatalf("activity while hidden must not clear drift, got %s", got)
	}
}

func TestBothTimersYieldOneDrift(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	f.watchdog.OnVisibilityChange(false)
	f.clock.Advance(30 * time.Minute)
	if got := len(f.journal.drifts()); got != 1 {
		t.Fatalf("tab-away and idle both firing should leave one DRIFT record, got %d", got)
	}
}

func TestDetachCancelsTimers(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	f.watchdog.OnVisibilityChange(false)
	f.watchdog.Detach()
	if f.clock.Pending() != 0 {
		t.Fatalf("expected no pending timers after detach, got %d", f.clock.Pending())
	}
	f.clock.Advance(time.Hour)
	if got := f.operatorStatus(t); got != crewdomain.StatusAtOars {
		t.Fatalf("detached watchdog must not drift, got %s", got)
	}
}
