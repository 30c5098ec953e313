package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"helmwatch/internal/modules/audit/domain"
	auditout "helmwatch/internal/modules/audit/port/out"
	"helmwatch/internal/platform/clock"
	"helmwatch/internal/platform/id"
)

const (
	defaultQueueDepth = 256
	appendTimeout     = 5 * time.Second
)

type request struct {
	record domain.Record
	ack    chan struct{}
}

// Journal appends audit records in the background. Record never blocks
// the caller and never fails it: store errors are logged and dropped,
// the in-memory state of the caller stays authoritative.
type Journal struct {
	store  auditout.Store
	ids    id.Generator
	clock  clock.Clock
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan request
	done   chan struct{}
}

func NewJournal(store auditout.Store, ids id.Generator, clk clock.Clock, logger *slog.Logger, depth int) *Journal {
	if depth <= 0 {
		depth = defaultQueueDepth
	}
	j := &Journal{
		store:  store,
		ids:    ids,
		clock:  clk,
		logger: logger,
		queue:  make(chan request, depth),
		done:   make(chan struct{}),
	}
	go j.run()
	return j
}

// Record fills in the id and timestamp when missing, queues the record
// and returns its id. An empty id means the record was rejected.
func (j *Journal) Record(record domain.Record) string {
	if record.ID == "" {
		record.ID = j.ids.New()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = j.clock.Now()
	}
	if err := record.Validate(); err != nil {
		j.logger.Warn("audit record rejected", "type", record.Type, "error", err)
		return ""
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		j.logger.Warn("audit journal closed, dropping record", "type", record.Type, "id", record.ID)
		return ""
	}
	select {
	case j.queue <- request{record: record}:
	default:
		j.logger.Warn("audit journal full, dropping record", "type", record.Type, "id", record.ID)
		return ""
	}
	return record.ID
}

// Flush waits until every record queued before the call was handed to
// the store.
func (j *Journal) Flush(ctx context.Context) error {
	ack := make(chan struct{})
	j.mu.RLock()
	if j.closed {
		j.mu.RUnlock()
		return nil
	}
	select {
	case j.queue <- request{ack: ack}:
	case <-ctx.Done():
		j.mu.RUnlock()
		return ctx.Err()
	}
	j.mu.RUnlock()

	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains the queue and stops the writer goroutine.
func (j *Journal) Close() {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		<-j.done
		return
	}
	j.closed = true
	close(j.queue)
	j.mu.Unlock()
	<-j.done
}

func (j *Journal) run() {
	defer close(j.done)
	for req := range j.queue {
		if req.ack != nil {
			close(req.ack)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		if _, err := j.store.Append(ctx, req.record); err != nil {
			j.logger.Warn("audit append failed", "type", req.record.Type, "id", req.record.ID, "error", err)
		}
		cancel()
	}
}
