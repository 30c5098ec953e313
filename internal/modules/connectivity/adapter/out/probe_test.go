package out_test

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"testing"
	"time"

	connectivityadapter "helmwatch/internal/modules/connectivity/adapter/out"
)

func TestTCPProbeMeasuresLocalListener(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	probe := connectivityadapter.NewTCPProbe(ln.Addr().String())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	latency, err := probe.Probe(ctx)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if latency <= 0 {
		t.Fatalf("expected positive latency, got %s", latency)
	}
}

func TestTCPProbeFailsOnClosedPort(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	probe := connectivityadapter.NewTCPProbe(addr)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := probe.Probe(ctx); err == nil {
		t.Fatalf("expected dial failure")
	}
}

func TestSimulatedProbeBounds(t *testing.T) {
	t.Parallel()
	probe := connectivityadapter.NewSimulatedProbe(rand.New(rand.NewSource(7)), 20*time.Millisecond, 400*time.Millisecond, 0)
	for i := 0; i < 100; i++ {
		latency, err := probe.Probe(context.Background())
		if err != nil {
			t.Fatalf("unexpected outage: %v", err)
		}
		if latency < 20*time.Millisecond || latency > 400*time.Millisecond {
			t.Fatalf("latency %s out of range", latency)
		}
	}

	down := connectivityadapter.NewSimulatedProbe(rand.New(rand.NewSource(7)), 0, 0, 1)
	if _, err := down.Probe(context.Background()); !errors.Is(err, connectivityadapter.ErrSimulatedOutage) {
		t.Fatalf("expected simulated outage, got %v", err)
	}
}
