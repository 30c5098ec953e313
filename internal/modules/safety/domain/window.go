package domain

import "time"

const (
	DefaultWindow = time.Hour
	DefaultLimit  = 3
)

// Window is a rolling list of check times.
type Window struct {
	span  time.Duration
	times []time.Time
}

func NewWindow(span time.Duration) *Window {
	if span <= 0 {
		span = DefaultWindow
	}
	return &Window{span: span}
}

// Add evicts every entry older than the span relative to now, records now
// and returns how many checks remain in the window.
func (w *Window) Add(now time.Time) int {
	cutoff := now.Add(-w.span)
	kept := w.times[:0]
	for _, t := range w.times {
		if !t.Before(cutoff) {
			kept = append(kept, t)
		}
	}
	w.times = append(kept, now)
	return len(w.times)
}

func (w *Window) Len() int {
	return len(w.times)
}
