package clock

import (
	"sync"
	"time"
)

// Periodic re-arms an AfterFunc after every run until stopped.
type Periodic struct {
	mu      sync.Mutex
	timer   *Timer
	stopped bool
}

// Every calls fn once per interval. The next run is scheduled after fn
// returns, so a slow callback delays the cadence instead of overlapping.
func Every(c Clock, interval time.Duration, fn func(now time.Time)) *Periodic {
	if interval <= 0 {
		panic("clock: non-positive interval for Every")
	}
	p := &Periodic{}
	var run func()
	run = func() {
		p.mu.Lock()
		if p.stopped {
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()

		fn(c.Now())

		p.mu.Lock()
		defer p.mu.Unlock()
		if !p.stopped {
			p.timer = c.AfterFunc(interval, run)
		}
	}
	p.mu.Lock()
	p.timer = c.AfterFunc(interval, run)
	p.mu.Unlock()
	return p
}

// Stop cancels the pending run. Safe to call more than once and on nil.
func (p *Periodic) Stop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.timer.Stop()
}
