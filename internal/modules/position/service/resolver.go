package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"helmwatch/internal/modules/position/domain"
	positionout "helmwatch/internal/modules/position/port/out"
	"helmwatch/internal/platform/clock"
)

const DefaultTimeout = 5 * time.Second

// Resolver asks the locator once per Resolve and falls back to a fixed
// location on any failure. It never takes longer than its timeout.
type Resolver struct {
	clock         clock.Clock
	locator       positionout.Locator
	diagnostics   positionout.Diagnostics
	fallback      domain.Coordinates
	fallbackLabel string
	timeout       time.Duration

	mu   sync.Mutex
	last domain.Fix
}

func NewResolver(
	clk clock.Clock,
	locator positionout.Locator,
	diagnostics positionout.Diagnostics,
	fallbackLabel string,
	fallback domain.Coordinates,
	timeout time.Duration,
) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		clock:         clk,
		locator:       locator,
		diagnostics:   diagnostics,
		fallback:      fallback,
		fallbackLabel: fallbackLabel,
		timeout:       timeout,
	}
}

func (r *Resolver) Resolve(ctx context.Context) domain.Fix {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		coords domain.Coordinates
		label  string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		coords, label, err := r.locator.Locate(lookupCtx)
		done <- result{coords: coords, label: label, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-lookupCtx.Done():
		res.err = domain.ErrTimeout
	}
	if errors.Is(res.err, context.DeadlineExceeded) {
		res.err = domain.ErrTimeout
	}

	fix := domain.Fix{
		Status:      domain.StatusLive,
		Label:       res.label,
		Coordinates: res.coords,
		ResolvedAt:  r.clock.Now(),
	}
	if res.err != nil {
		fix.Status = domain.StatusFallback
		fix.Label = r.fallbackLabel
		fix.Coordinates = r.fallback
		fix.Message = domain.Reason(res.err)
		r.diagnostics.Warn("position", "using fallback location", map[string]any{"reason": res.err.Error()})
	}

	r.mu.Lock()
	r.last = fix
	r.mu.Unlock()
	return fix
}

// Last returns the most recent fix, zero before the first Resolve.
func (r *Resolver) Last() domain.Fix {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
