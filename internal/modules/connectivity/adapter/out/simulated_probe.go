package out

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	connectivityout "helmwatch/internal/modules/connectivity/port/out"
)

var ErrSimulatedOutage = errors.New("simulated outage")

// SimulatedProbe draws latencies at random for demo mode.
type SimulatedProbe struct {
	mu          sync.Mutex
	rng         *rand.Rand
	minLatency  time.Duration
	maxLatency  time.Duration
	outageRatio float64
}

func NewSimulatedProbe(rng *rand.Rand, minLatency, maxLatency time.Duration, outageRatio float64) connectivityout.Probe {
	if maxLatency < minLatency {
		maxLatency = minLatency
	}
	return &SimulatedProbe{rng: rng, minLatency: minLatency, maxLatency: maxLatency, outageRatio: outageRatio}
}

func (p *SimulatedProbe) Probe(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rng.Float64() < p.outageRatio {
		return 0, ErrSimulatedOutage
	}
	span := int64(p.maxLatency - p.minLatency)
	if span <= 0 {
		return p.minLatency, nil
	}
	return p.minLatency + time.Duration(p.rng.Int63n(span+1)), nil
}
