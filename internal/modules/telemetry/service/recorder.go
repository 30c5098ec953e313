package service

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"helmwatch/internal/modules/telemetry/domain"
	telemetryout "helmwatch/internal/modules/telemetry/port/out"
	"helmwatch/internal/platform/clock"
	"helmwatch/internal/platform/id"
	"helmwatch/internal/platform/notify"
)

const sampleInterval = time.Second

// Recorder owns the diagnostic ring buffer and the fps heartbeat.
//
// persistMu orders every Save against Purge. A save re-checks the
// enabled flag under it, so once disabling returns nothing is written back.
// Lock order is persistMu then mu.
type Recorder struct {
	clock       clock.Clock
	ids         id.Generator
	persistence telemetryout.LogPersistence
	env         telemetryout.EnvironmentProbe
	notifier    notify.Notifier
	logger      *slog.Logger

	persistMu  sync.Mutex
	mu         sync.Mutex
	enabled    bool
	buffer     *domain.LogBuffer
	history    *domain.FPSHistory
	frames     int
	lastFPS    int
	lastSample time.Time
	heartbeat  *clock.Periodic
}

func NewRecorder(
	clk clock.Clock,
	ids id.Generator,
	persistence telemetryout.LogPersistence,
	env telemetryout.EnvironmentProbe,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Recorder {
	return &Recorder{
		clock:       clk,
		ids:         ids,
		persistence: persistence,
		env:         env,
		notifier:    notifier,
		logger:      logger,
		buffer:      domain.NewLogBuffer(domain.MaxLogs),
		history:     domain.NewFPSHistory(domain.FPSHistorySize),
	}
}

// Restore enables recording and reloads the persisted buffer. It is
// called at boot when developer mode is on.
func (r *Recorder) Restore(ctx context.Context) error {
	entries, err := r.persistence.Load(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = true
	r.buffer.Restore(entries)
	return nil
}

func (r *Recorder) RecordingEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// SetRecordingEnabled toggles recording. Disabling drops the in-memory
// buffer and the persisted copy before returning.
func (r *Recorder) SetRecordingEnabled(ctx context.Context, enabled bool) error {
	if enabled {
		r.mu.Lock()
		r.enabled = true
		r.mu.Unlock()
		return nil
	}

	r.persistMu.Lock()
	defer r.persistMu.Unlock()
	r.mu.Lock()
	r.enabled = false
	r.buffer.Clear()
	r.mu.Unlock()
	return r.persistence.Purge(ctx)
}

// Log records a diagnostic entry when recording is enabled. ERROR entries
// are surfaced to the process log and the notifier in every case.
func (r *Recorder) Log(level domain.Level, source, message string, data map[string]any) {
	if level == domain.LevelError {
		r.logger.Error(message, "source", source, "data", data)
		if r.notifier != nil {
			r.notifier.Send("Diagnostic error", source+": "+message)
		}
	}

	r.mu.Lock()
	if !r.enabled {
		r.mu.Unlock()
		return
	}
	r.buffer.Prepend(domain.Entry{
		ID:        r.ids.New(),
		Timestamp: r.clock.Now(),
		Level:     level,
		Source:    source,
		Message:   message,
		Data:      data,
	})
	r.mu.Unlock()

	r.persist()
}

// persist writes the current buffer unless recording was turned off since
// the entry was added.
func (r *Recorder) persist() {
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	r.mu.Lock()
	if !r.enabled {
		r.mu.Unlock()
		return
	}
	snapshot := r.buffer.Recent(0)
	r.mu.Unlock()

	if err := r.persistence.Save(context.Background(), snapshot); err != nil {
		r.logger.Warn("persist diagnostic log failed", "error", err)
	}
}

func (r *Recorder) Info(source, message string, data map[string]any) {
	r.Log(domain.LevelInfo, source, message, data)
}

func (r *Recorder) Warn(source, message string, data map[string]any) {
	r.Log(domain.LevelWarn, source, message, data)
}

func (r *Recorder) Error(source, message string, data map[string]any) {
	r.Log(domain.LevelError, source, message, data)
}

// Entries returns the buffered entries, newest first.
func (r *Recorder) Entries(limit int) []domain.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffer.Recent(limit)
}

// Frame counts one rendered frame.
func (r *Recorder) Frame() {
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
}

// StartHeartbeat samples the frame counter once per second, independent
// of whether recording is enabled. A running heartbeat is replaced.
func (r *Recorder) StartHeartbeat(onSample func(fps int)) {
	r.mu.Lock()
	if r.heartbeat != nil {
		r.heartbeat.Stop()
	}
	r.frames = 0
	r.lastSample = r.clock.Now()
	r.heartbeat = clock.Every(r.clock, sampleInterval, func(now time.Time) {
		fps := r.sample(now)
		if onSample != nil {
			onSample(fps)
		}
	})
	r.mu.Unlock()
}

func (r *Recorder) StopHeartbeat() {
	r.mu.Lock()
	hb := r.heartbeat
	r.heartbeat = nil
	r.mu.Unlock()
	hb.Stop()
}

func (r *Recorder) sample(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	elapsed := now.Sub(r.lastSample).Seconds()
	fps := 0
	if elapsed > 0 {
		fps = int(math.Round(float64(r.frames) / elapsed))
	}
	r.history.Push(fps)
	r.lastFPS = fps
	r.frames = 0
	r.lastSample = now
	return fps
}

// Vitals assembles a forensic snapshot.
func (r *Recorder) Vitals() domain.Vitals {
	r.mu.Lock()
	v := domain.Vitals{
		Timestamp:        r.clock.Now(),
		FPS:              r.lastFPS,
		FPSHistory:       r.history.Samples(),
		RecordingEnabled: r.enabled,
		RecentLogs:       r.buffer.Recent(domain.VitalsLogCount),
	}
	r.mu.Unlock()

	if r.env != nil {
		v.Environment = r.env.Environment()
		if mem, ok := r.env.Memory(); ok {
			v.Memory = &mem
		}
	}
	return v
}
