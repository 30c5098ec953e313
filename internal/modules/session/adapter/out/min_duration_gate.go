package out

import (
	"context"
	"time"

	"helmwatch/internal/modules/session/domain"
	sessionout "helmwatch/internal/modules/session/port/out"
)

// MinDurationGate declines stops before the session reaches a target
// length. Callers that really mean it use the ungated stop.
type MinDurationGate struct {
	min time.Duration
}

func NewMinDurationGate(min time.Duration) sessionout.StopGate {
	return MinDurationGate{min: min}
}

func (g MinDurationGate) ConfirmStop(_ context.Context, status domain.Status) (bool, error) {
	return status.Elapsed >= g.min, nil
}
