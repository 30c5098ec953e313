package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	auditdomain "helmwatch/internal/modules/audit/domain"
	"helmwatch/internal/modules/connectivity/domain"
	connectivityout "helmwatch/internal/modules/connectivity/port/out"
	"helmwatch/internal/platform/clock"
	"helmwatch/internal/platform/notify"
)

const (
	DefaultHeartbeat    = 30 * time.Second
	DefaultLagThreshold = time.Second
	defaultProbeTimeout = 5 * time.Second

	diagnosticsSource = "connectivity"
)

type Options struct {
	Heartbeat    time.Duration
	LagThreshold time.Duration
	ProbeTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Heartbeat <= 0 {
		o.Heartbeat = DefaultHeartbeat
	}
	if o.LagThreshold <= 0 {
		o.LagThreshold = DefaultLagThreshold
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = defaultProbeTimeout
	}
	return o
}

// Monitor owns the connection state. The heartbeat re-derives it from the
// probe; LinkDown and LinkUp override it immediately.
type Monitor struct {
	clock       clock.Clock
	probe       connectivityout.Probe
	journal     connectivityout.AuditJournal
	diagnostics connectivityout.Diagnostics
	notifier    notify.Notifier
	logger      *slog.Logger
	opts        Options

	mu          sync.Mutex
	state       domain.State
	latency     time.Duration
	checkedAt   time.Time
	outageStart time.Time
	heartbeat   *clock.Periodic
}

func NewMonitor(
	clk clock.Clock,
	probe connectivityout.Probe,
	journal connectivityout.AuditJournal,
	diagnostics connectivityout.Diagnostics,
	notifier notify.Notifier,
	logger *slog.Logger,
	opts Options,
) *Monitor {
	return &Monitor{
		clock:       clk,
		probe:       probe,
		journal:     journal,
		diagnostics: diagnostics,
		notifier:    notifier,
		logger:      logger,
		opts:        opts.withDefaults(),
		state:       domain.StateGood,
	}
}

// Attach starts the heartbeat. Attaching twice replaces the running one.
func (m *Monitor) Attach(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.heartbeat.Stop()
	m.heartbeat = clock.Every(m.clock, m.opts.Heartbeat, func(time.Time) {
		m.Tick(ctx)
	})
}

func (m *Monitor) Detach() {
	m.mu.Lock()
	hb := m.heartbeat
	m.heartbeat = nil
	m.mu.Unlock()
	hb.Stop()
}

// Tick probes the link once and applies the classified state.
func (m *Monitor) Tick(ctx context.Context) domain.State {
	probeCtx, cancel := context.WithTimeout(ctx, m.opts.ProbeTimeout)
	latency, err := m.probe.Probe(probeCtx)
	cancel()
	if err != nil {
		m.logger.Debug("link probe failed", "error", err)
	}
	next := domain.Classify(latency, err == nil, m.opts.LagThreshold)
	if next == domain.StateOffline {
		latency = 0
	}
	m.apply(next, latency)
	return next
}

func (m *Monitor) LinkDown() {
	m.apply(domain.StateOffline, 0)
}

func (m *Monitor) LinkUp() {
	m.apply(domain.StateGood, 0)
}

func (m *Monitor) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Snapshot{
		State:       m.state,
		Latency:     m.latency,
		CheckedAt:   m.checkedAt,
		OutageStart: m.outageStart,
	}
}

func (m *Monitor) apply(next domain.State, latency time.Duration) {
	now := m.clock.Now()

	m.mu.Lock()
	prev := m.state
	m.state = next
	m.latency = latency
	m.checkedAt = now
	var finished *domain.Outage
	switch {
	case next == domain.StateOffline && prev != domain.StateOffline:
		m.outageStart = now
	case next != domain.StateOffline && prev == domain.StateOffline && !m.outageStart.IsZero():
		finished = &domain.Outage{Start: m.outageStart, End: now}
		m.outageStart = time.Time{}
	}
	m.mu.Unlock()

	if prev == next {
		return
	}
	m.report(prev, next, latency, finished)
}

func (m *Monitor) report(prev, next domain.State, latency time.Duration, finished *domain.Outage) {
	data := map[string]any{"from": string(prev), "to": string(next)}
	if latency > 0 {
		data["latency_ms"] = latency.Milliseconds()
	}
	switch next {
	case domain.StateOffline:
		m.diagnostics.Warn(diagnosticsSource, "link lost", data)
		m.send("Signal lost", "The link to shore is down. Holding course offline.")
	case domain.StateLag:
		m.diagnostics.Warn(diagnosticsSource, "link lagging", data)
	default:
		m.diagnostics.Info(diagnosticsSource, "link good", data)
	}

	if finished == nil {
		return
	}
	duration := finished.Duration()
	m.journal.Record(auditdomain.Record{
		Type:      auditdomain.TypeOffline,
		Timestamp: finished.Start,
		Duration:  duration,
		Details:   fmt.Sprintf("link offline for %s", duration.Round(time.Millisecond)),
	})
	m.send("Signal restored", fmt.Sprintf("Back online after %s.", duration.Round(time.Second)))
}

func (m *Monitor) send(title, body string) {
	if m.notifier != nil {
		m.notifier.Send(title, body)
	}
}
