package domain

import (
	"fmt"
	"strings"
	"time"
)

// State is the process-wide link quality.
type State string

const (
	StateGood    State = "GOOD"
	StateLag     State = "LAG"
	StateOffline State = "OFFLINE"
)

func ParseState(raw string) (State, error) {
	s := State(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StateGood, StateLag, StateOffline:
		return s, nil
	default:
		return "", fmt.Errorf("unknown connection state %q", raw)
	}
}

// Classify maps one probe result to a state. A latency equal to the
// threshold still counts as good.
func Classify(latency time.Duration, online bool, threshold time.Duration) State {
	if !online {
		return StateOffline
	}
	if latency > threshold {
		return StateLag
	}
	return StateGood
}

type Snapshot struct {
	State       State
	Latency     time.Duration
	CheckedAt   time.Time
	OutageStart time.Time
}

// Outage is a finished OFFLINE period.
type Outage struct {
	Start time.Time
	End   time.Time
}

func (o Outage) Duration() time.Duration {
	return o.End.Sub(o.Start)
}
