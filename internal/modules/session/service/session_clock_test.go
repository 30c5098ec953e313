package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	sessionadapter "helmwatch/internal/modules/session/adapter/out"
	"helmwatch/internal/modules/session/domain"
	"helmwatch/internal/modules/session/service"
	"helmwatch/internal/platform/clock"
	apperrors "helmwatch/internal/platform/errors"
	"helmwatch/internal/platform/logging"
	"helmwatch/internal/platform/sqlite"
	"helmwatch/internal/platform/tx"
)

type seqID struct {
	mu sync.Mutex
	n  int
}

func (s *seqID) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "voy-" + strconv.Itoa(s.n)
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

func (n *countingNotifier) count(title string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, t := range n.titles {
		if t == title {
			c++
		}
	}
	return c
}

type captureSink struct {
	mu          sync.Mutex
	settlements []domain.Settlement
	signed      []domain.Session
}

func (s *captureSink) Deliver(_ context.Context, settlement domain.Settlement) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settlements = append(s.settlements, settlement)
	return "logbook/" + settlement.SessionID + ".md", nil
}

func (s *captureSink) Countersign(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signed = append(s.signed, session)
	return nil
}

type reviewCounter struct{ n int }

func (r *reviewCounter) MorningReview(context.Context, domain.Session) { r.n++ }

type gate struct{ allow bool }

func (g gate) ConfirmStop(context.Context, domain.Status) (bool, error) { return g.allow, nil }

type fixture struct {
	clock    *clock.FakeClock
	sink     *captureSink
	review   *reviewCounter
	notifier *countingNotifier
	session  *service.SessionClock
}

func newFixture(t *testing.T, start time.Time, stopGate *gate) fixture {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store, err := sessionadapter.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	f := fixture{
		clock:    clock.NewFake(start),
		sink:     &captureSink{},
		review:   &reviewCounter{},
		notifier: &countingNotifier{},
	}
	hooks := service.Hooks{Summary: f.sink, MorningReview: f.review}
	if stopGate != nil {
		hooks.StopGate = *stopGate
	}
	f.session = service.NewSessionClock(
		f.clock, &seqID{}, store, tx.NewSQLManager(db), hooks,
		nopDiagnostics{}, f.notifier, logging.Discard(),
		service.Options{HourlyRate: 50, ShiftDuration: 10 * time.Hour},
	)
	if err := f.session.Attach(context.Background()); err != nil {
		t.Fatalf("attach: %v", err)
	}
	t.Cleanup(f.session.Detach)
	return f
}

func TestEarningsScenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), nil)
	ctx := context.Background()

	if _, err := f.session.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.Advance(time.Hour)
	settlement, err := f.session.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if settlement.DurationSeconds != 3600 {
		t.Fatalf("expected duration 3600, got %d", settlement.DurationSeconds)
	}
	if settlement.Earnings != 50.0 {
		t.Fatalf("expected earnings 50.0, got %v", settlement.Earnings)
	}
	if len(f.sink.settlements) != 1 || f.sink.settlements[0].SessionID != settlement.SessionID {
		t.Fatalf("settlement should reach the summary sink once, got %+v", f.sink.settlements)
	}
	if f.session.IsOpen() {
		t.Fatalf("session should be closed")
	}
}

func TestSingleOpenSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), nil)
	ctx := context.Background()

	if _, err := f.session.Stop(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("stop without session: expected ErrNoActiveSession, got %v", err)
	}
	first, err := f.session.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.session.Start(ctx); !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("second start: expected ErrActiveSessionExists, got %v", err)
	}
	status, err := f.session.Status(ctx)
	if err != nil || !status.Open || status.SessionID != first.ID {
		t.Fatalf("status should report the first session: %+v %v", status, err)
	}
	if _, err := f.session.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if _, err := f.session.Start(ctx); err != nil {
		t.Fatalf("start after stop: %v", err)
	}
}

func TestOvertimeFiresOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t, time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC), nil)
	ctx := context.Background()
	if _, err := f.session.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	f.clock.Advance(10 * time.Hour)
	if f.session.Overtime() {
		t.Fatalf("exactly the shift length is not overtime")
	}
	f.clock.Advance(time.Second)
	if !f.session.Overtime() {
		t.Fatalf("expected overtime after the shift")
	}
	f.clock.Advance(30 * time.Second)
	if got := f.notifier.count("Overtime"); got != 1 {
		t.Fatalf("overtime advisory must fire once, got %d", got)
	}

	settlement, err := f.session.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !settlement.Overtime || f.session.Overtime() {
		t.Fatalf("stop should report and clear overtime: settlement=%v flag=%v", settlement.Overtime, f.session.Overtime())
	}
}

func TestMorningReviewOnlyForFirstSessionOfDay(t *testing.T) {
	t.Parallel()
	f := newFixture(t, time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local), nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := f.session.Start(ctx); err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		f.clock.Advance(time.Hour)
		if _, err := f.session.Stop(ctx); err != nil {
			t.Fatalf("stop %d: %v", i, err)
		}
	}
	if f.review.n != 1 {
		t.Fatalf("expected one morning review, got %d", f.review.n)
	}

	f.clock.Advance(24 * time.Hour)
	if _, err := f.session.Start(ctx); err != nil {
		t.Fatalf("start next day: %v", err)
	}
	if f.review.n != 2 {
		t.Fatalf("next day should trigger another morning review, got %d", f.review.n)
	}
}

func TestRequestStopConsultsGate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), &gate{allow: false})
	ctx := context.Background()
	if _, err := f.session.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.session.RequestStop(ctx); !errors.Is(err, apperrors.ErrStopDeclined) {
		t.Fatalf("expected ErrStopDeclined, got %v", err)
	}
	if !f.session.IsOpen() {
		t.Fatalf("declined stop must leave the session open")
	}
	if _, err := f.session.Stop(ctx); err != nil {
		t.Fatalf("plain stop ignores the gate: %v", err)
	}
}

func TestCatchAndSign(t *testing.T) {
	t.Parallel()
	f := newFixture(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), nil)
	ctx := context.Background()
	if _, err := f.session.RecordCatch(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("catch without session: %v", err)
	}
	started, err := f.session.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 1; i <= 3; i++ {
		n, err := f.session.RecordCatch(ctx)
		if err != nil || n != i {
			t.Fatalf("catch %d: n=%d err=%v", i, n, err)
		}
	}
	if _, err := f.session.Sign(ctx, started.ID, 80); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("open session cannot be signed, got %v", err)
	}
	f.clock.Advance(30 * time.Minute)
	settlement, err := f.session.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if settlement.ItemsCaught != 3 || settlement.Earnings != 25 {
		t.Fatalf("unexpected settlement %+v", settlement)
	}

	signed, err := f.session.Sign(ctx, started.ID, 80)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if signed.Efficiency != 80 || signed.SignedAt.IsZero() {
		t.Fatalf("unexpected signed session %+v", signed)
	}
	if _, err := f.session.Sign(ctx, started.ID, 90); !errors.Is(err, apperrors.ErrAlreadySigned) {
		t.Fatalf("second signature: expected ErrAlreadySigned, got %v", err)
	}
	if _, err := f.session.Sign(ctx, started.ID, 140); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("out of range efficiency: %v", err)
	}
	if len(f.sink.signed) != 1 {
		t.Fatalf("countersign should run once, got %d", len(f.sink.signed))
	}
	history, err := f.session.History(ctx, 10)
	if err != nil || len(history) != 1 || !history[0].IsSigned() {
		t.Fatalf("history: %+v %v", history, err)
	}
}

func TestAttachRecoversOpenSession(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	db, err := sqlite.Open(filepath.Join(dir, "sessions.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	store, err := sessionadapter.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	clk := clock.NewFake(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	opts := service.Options{HourlyRate: 50, ShiftDuration: time.Hour}

	first := service.NewSessionClock(clk, &seqID{}, store, tx.NewSQLManager(db), service.Hooks{}, nopDiagnostics{}, nil, logging.Discard(), opts)
	if _, err := first.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	notifier := &countingNotifier{}
	second := service.NewSessionClock(clk, &seqID{n: 10}, store, tx.NewSQLManager(db), service.Hooks{}, nopDiagnostics{}, notifier, logging.Discard(), opts)
	if err := second.Attach(context.Background()); err != nil {
		t.Fatalf("attach: %v", err)
	}
	defer second.Detach()
	if !second.IsOpen() {
		t.Fatalf("attach should recover the open session")
	}
	clk.Advance(time.Hour + 2*time.Second)
	if notifier.count("Overtime") != 1 {
		t.Fatalf("recovered session should tick into overtime")
	}
}

func TestStopReportsOvertimeWithoutAttach(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	store, err := sessionadapter.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	clk := clock.NewFake(time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC))
	opts := service.Options{HourlyRate: 50, ShiftDuration: 10 * time.Hour}
	ctx := context.Background()

	starter := service.NewSessionClock(clk, &seqID{}, store, tx.NewSQLManager(db), service.Hooks{}, nopDiagnostics{}, nil, logging.Discard(), opts)
	if _, err := starter.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer starter.Detach()
	clk.Advance(12 * time.Hour)

	stopper := service.NewSessionClock(clk, &seqID{n: 10}, store, tx.NewSQLManager(db), service.Hooks{}, nopDiagnostics{}, nil, logging.Discard(), opts)
	settlement, err := stopper.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if settlement.DurationSeconds != 12*3600 || !settlement.Overtime {
		t.Fatalf("a 12 hour voyage on a 10 hour shift is overtime, got %+v", settlement)
	}
}
