package domain

import (
	"fmt"
	"strings"

	apperrors "helmwatch/internal/platform/errors"
)

type Event string

const (
	EventDriftDetected   Event = "drift-detected"
	EventActivityResumed Event = "activity-resumed"
	EventEmergency       Event = "emergency-signal"
	EventRescue          Event = "rescue"
)

func ParseEvent(raw string) (Event, error) {
	e := Event(strings.ToLower(strings.TrimSpace(raw)))
	switch e {
	case EventDriftDetected, EventActivityResumed, EventEmergency, EventRescue:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, raw)
	}
}

// Source names who asked for a transition.
type Source string

const (
	SourceWatchdog   Source = "watchdog"
	SourceSimulation Source = "simulation"
	SourceOperator   Source = "operator"
)

// Permits reports whether the source may drive a member of the given
// kind. Real presence signals only ever reach the operator and simulated
// events only ever reach simulated members; manual actions reach anyone.
func (s Source) Permits(kind Kind) error {
	switch {
	case s == SourceWatchdog && kind != KindOperator:
		return fmt.Errorf("%w: watchdog cannot drive a %s member", apperrors.ErrForbiddenSource, kind)
	case s == SourceSimulation && kind != KindSimulated:
		return fmt.Errorf("%w: simulation cannot drive the %s", apperrors.ErrForbiddenSource, kind)
	case s != SourceWatchdog && s != SourceSimulation && s != SourceOperator:
		return fmt.Errorf("%w: unknown source %q", apperrors.ErrForbiddenSource, s)
	}
	return nil
}

// Effect lists the side effects a transition asks for.
type Effect struct {
	Advise         bool
	Audit          bool
	ResetHeartbeat bool
}

// Next applies one event to a status. ok is false when the event does
// not apply from the current status, which callers treat as a no-op.
func Next(from Status, event Event) (to Status, effect Effect, ok bool) {
	switch event {
	case EventDriftDetected:
		if from == StatusAtOars {
			return StatusDrifting, Effect{Advise: true, Audit: true}, true
		}
	case EventActivityResumed:
		if from == StatusDrifting {
			return StatusAtOars, Effect{Advise: true, Audit: true}, true
		}
	case EventEmergency:
		if from == StatusAtOars || from == StatusDrifting {
			return StatusManOverboard, Effect{Advise: true, Audit: true}, true
		}
	case EventRescue:
		if from == StatusManOverboard {
			return StatusAtOars, Effect{Audit: true, ResetHeartbeat: true}, true
		}
	}
	return from, Effect{}, false
}
