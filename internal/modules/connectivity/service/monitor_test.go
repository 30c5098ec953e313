package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	auditdomain "helmwatch/internal/modules/audit/domain"
	"helmwatch/internal/modules/connectivity/domain"
	"helmwatch/internal/modules/connectivity/service"
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

func (j *fakeJournal) all() []auditdomain.Record {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]auditdomain.Record(nil), j.records...)
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

type scriptedProbe struct {
	mu      sync.Mutex
	latency time.Duration
	err     error
	calls   int
}

func (p *scriptedProbe) Probe(context.Context) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.latency, p.err
}

func (p *scriptedProbe) set(latency time.Duration, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.latency, p.err = latency, err
}

func newMonitor(clk clock.Clock, probe *scriptedProbe, journal *fakeJournal, notifier *countingNotifier) *service.Monitor {
	return service.NewMonitor(clk, probe, journal, nopDiagnostics{}, notifier, logging.Discard(), service.Options{})
}

func TestOutageRecordsExactDurationOnce(t *testing.T) {
	t.Parallel()
	clk := clock.NewFake(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	start := clk.Now()
	journal := &fakeJournal{}
	m := newMonitor(clk, &scriptedProbe{}, journal, &countingNotifier{})

	m.LinkDown()
	clk.Advance(2 * time.Second)
	m.LinkDown()
	clk.Advance(3 * time.Second)
	m.LinkUp()
	m.LinkUp()

	records := journal.all()
	if len(records) != 1 {
		t.Fatalf("expected exactly one outage record, got %d", len(records))
	}
	rec := records[0]
	if rec.Type != auditdomain.TypeOffline {
		t.Fatalf("expected OFFLINE record, got %s", rec.Type)
	}
	if rec.Duration.Milliseconds() != 5000 {
		t.Fatalf("expected duration 5000ms, got %d", rec.Duration.Milliseconds())
	}
	if !rec.Timestamp.Equal(start) {
		t.Fatalf("record timestamp should be outage start %s, got %s", start, rec.Timestamp)
	}
	if m.Snapshot().State != domain.StateGood {
		t.Fatalf("expected GOOD after link up")
	}
}

func TestHeartbeatClassifiesProbeResults(t *testing.T) {
	t.Parallel()
	clk := clock.NewFake(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	probe := &scriptedProbe{latency: 50 * time.Millisecond}
	journal := &fakeJournal{}
	notifier := &countingNotifier{}
	m := newMonitor(clk, probe, journal, notifier)
	m.Attach(context.Background())
	defer m.Detach()

	clk.Advance(service.DefaultHeartbeat)
	if got := m.Snapshot().State; got != domain.StateGood {
		t.Fatalf("expected GOOD, got %s", got)
	}

	probe.set(2*time.Second, nil)
	clk.Advance(service.DefaultHeartbeat)
	if got := m.Snapshot(); got.State != domain.StateLag || got.Latency != 2*time.Second {
		t.Fatalf("expected LAG with 2s latency, got %+v", got)
	}

	probe.set(0, errors.New("no route to host"))
	clk.Advance(service.DefaultHeartbeat)
	if got := m.Snapshot(); got.State != domain.StateOffline || got.OutageStart.IsZero() {
		t.Fatalf("expected OFFLINE with outage start, got %+v", got)
	}

	probe.set(80*time.Millisecond, nil)
	clk.Advance(service.DefaultHeartbeat)
	records := journal.all()
	if len(records) != 1 || records[0].Duration != service.DefaultHeartbeat {
		t.Fatalf("expected one outage of one heartbeat, got %+v", records)
	}
	if probe.calls != 4 {
		t.Fatalf("expected 4 probes, got %d", probe.calls)
	}
}

func TestDetachStopsHeartbeat(t *testing.T) {
	t.Parallel()
	clk := clock.NewFake(time.Unix(0, 0))
	probe := &scriptedProbe{}
	m := newMonitor(clk, probe, &fakeJournal{}, &countingNotifier{})
	m.Attach(context.Background())
	m.Detach()
	clk.Advance(5 * service.DefaultHeartbeat)
	if probe.calls != 0 {
		t.Fatalf("detached monitor must not probe, got %d calls", probe.calls)
	}
	if clk.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", clk.Pending())
	}
}

func TestOutageNeverEndingWritesNothing(t *testing.T) {
	t.Parallel()
	clk := clock.NewFake(time.Unix(0, 0))
	journal := &fakeJournal{}
	notifier := &countingNotifier{}
	m := newMonitor(clk, &scriptedProbe{}, journal, notifier)
	m.LinkDown()
	clk.Advance(time.Hour)
	if len(journal.all()) != 0 {
		t.Fatalf("open outage must not be recorded")
	}
	if len(notifier.titles) != 1 || notifier.titles[0] != "Signal lost" {
		t.Fatalf("expected one signal lost advisory, got %v", notifier.titles)
	}
}
