package domain

import (
	"errors"
	"time"
)

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrUnavailable      = errors.New("position unavailable")
	ErrTimeout          = errors.New("location timeout")
)

// Status says where a fix came from.
type Status string

const (
	StatusLive     Status = "LIVE"
	StatusFallback Status = "FALLBACK"
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type Fix struct {
	Status      Status
	Label       string
	Coordinates Coordinates
	Message     string
	ResolvedAt  time.Time
}

// Reason maps a locator error to the fallback message shown to the
// operator. Each failure kind has its own wording.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Location permission denied. Holding the default heading."
	case errors.Is(err, ErrTimeout):
		return "Location lookup timed out. Holding the default heading."
	default:
		return "Position unavailable. Holding the default heading."
	}
}
