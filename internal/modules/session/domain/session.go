package domain

import (
	"fmt"
	"time"
)

const SchemaVersion = 1

// Session is one timed block of work. A zero EndedAt means it is still
// open.
type Session struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	ItemsCaught int
	Earnings    float64
	SignedAt    time.Time
	Efficiency  float64
}

func (s Session) IsOpen() bool {
	return s.EndedAt.IsZero()
}

func (s Session) IsSigned() bool {
	return !s.SignedAt.IsZero()
}

// Elapsed is the time spent so far, or the full length once closed.
func (s Session) Elapsed(now time.Time) time.Duration {
	end := s.EndedAt
	if s.IsOpen() {
		end = now
	}
	if end.Before(s.StartedAt) {
		return 0
	}
	return end.Sub(s.StartedAt)
}

// Settlement is handed to the summary collaborator when a session stops.
type Settlement struct {
	SessionID       string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int64
	Earnings        float64
	ItemsCaught     int
	Overtime        bool
}

// Earnings pays hourlyRate for every hour, pro rata by the second.
func Earnings(durationSeconds int64, hourlyRate float64) float64 {
	return float64(durationSeconds) / 3600 * hourlyRate
}

// Settle closes s at endedAt.
func Settle(s Session, endedAt time.Time, hourlyRate float64) (Session, Settlement) {
	seconds := int64(s.Elapsed(endedAt) / time.Second)
	s.EndedAt = endedAt
	s.Earnings = Earnings(seconds, hourlyRate)
	return s, Settlement{
		SessionID:       s.ID,
		StartedAt:       s.StartedAt,
		EndedAt:         endedAt,
		DurationSeconds: seconds,
		Earnings:        s.Earnings,
		ItemsCaught:     s.ItemsCaught,
	}
}

// ValidateEfficiency accepts a percentage.
func ValidateEfficiency(efficiency float64) error {
	if efficiency < 0 || efficiency > 100 {
		return fmt.Errorf("efficiency must be between 0 and 100, got %g", efficiency)
	}
	return nil
}

type Status struct {
	Open        bool
	SessionID   string
	StartedAt   time.Time
	Elapsed     time.Duration
	Shift       time.Duration
	Overtime    bool
	ItemsCaught int
	Earnings    float64
}

// LocalMidnight is the start of the day t falls in, in t's location.
func LocalMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
