package service

import (
	"context"
	"sync"
	"time"

	"helmwatch/internal/modules/crew/domain"
	crewout "helmwatch/internal/modules/crew/port/out"
	"helmwatch/internal/platform/clock"
)

const (
	DefaultSimulationInterval = 45 * time.Second
	DefaultSimulationChance   = 0.1
)

var simulatedFlares = []domain.Flare{domain.FlareRed, domain.FlareWhite, domain.FlareGreen}

// Simulator drives the simulated members with random events. It never
// touches the operator: the roster rejects that source anyway.
type Simulator struct {
	roster   *Roster
	rng      crewout.Random
	clock    clock.Clock
	interval time.Duration
	chance   float64

	mu     sync.Mutex
	rngMu  sync.Mutex
	handle *clock.Periodic
}

func NewSimulator(roster *Roster, rng crewout.Random, clk clock.Clock, interval time.Duration, chance float64) *Simulator {
	if interval <= 0 {
		interval = DefaultSimulationInterval
	}
	return &Simulator{roster: roster, rng: rng, clock: clk, interval: interval, chance: chance}
}

func (s *Simulator) Attach(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handle.Stop()
	s.handle = clock.Every(s.clock, s.interval, func(time.Time) {
		s.Tick(ctx)
	})
}

func (s *Simulator) Detach() {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.mu.Unlock()
	h.Stop()
}

// Tick rolls once per simulated member. A drifting member recovers, a
// rowing member drifts, and now and then one fires a flare.
func (s *Simulator) Tick(ctx context.Context) int {
	applied := 0
	for _, id := range s.roster.Simulated() {
		member, err := s.roster.Member(id)
		if err != nil {
			continue
		}
		if s.roll() >= s.chance {
			continue
		}
		var event domain.Event
		switch member.Status {
		case domain.StatusAtOars:
			event = domain.EventDriftDetected
		case domain.StatusDrifting:
			event = domain.EventActivityResumed
		default:
			continue
		}
		changed, err := s.roster.Apply(ctx, id, event, domain.SourceSimulation, "simulated")
		if err != nil {
			continue
		}
		if changed {
			applied++
		}
		if member.ActiveFlare == domain.FlareNone && s.roll() < s.chance/2 {
			if fired, _ := s.roster.FireFlare(ctx, id, s.pickFlare(), domain.SourceSimulation); fired {
				applied++
			}
		}
	}
	return applied
}

func (s *Simulator) roll() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64()
}

func (s *Simulator) pickFlare() domain.Flare {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return simulatedFlares[s.rng.Intn(len(simulatedFlares))]
}
