package in

import (
	"context"
	"net"
	"sync"
	"time"

	connectivityin "helmwatch/internal/modules/connectivity/port/in"
	"helmwatch/internal/platform/clock"
)

const DefaultLinkPoll = 2 * time.Second

// LinkSensor reports whether the host has a usable network link.
type LinkSensor func() (bool, error)

// InterfaceSensor reports up when any non-loopback interface is up and
// carries an address.
func InterfaceSensor() (bool, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false, err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// LinkWatcher turns host link changes into immediate LinkDown and LinkUp
// signals, outside the heartbeat cadence.
type LinkWatcher struct {
	usecase connectivityin.Usecase
	sensor  LinkSensor
	clock   clock.Clock
	poll    time.Duration

	mu     sync.Mutex
	known  bool
	up     bool
	handle *clock.Periodic
}

func NewLinkWatcher(usecase connectivityin.Usecase, sensor LinkSensor, clk clock.Clock, poll time.Duration) *LinkWatcher {
	if poll <= 0 {
		poll = DefaultLinkPoll
	}
	return &LinkWatcher{usecase: usecase, sensor: sensor, clock: clk, poll: poll}
}

func (w *LinkWatcher) Attach(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handle.Stop()
	w.handle = clock.Every(w.clock, w.poll, func(time.Time) {
		w.Poll(ctx)
	})
}

func (w *LinkWatcher) Detach() {
	w.mu.Lock()
	h := w.handle
	w.handle = nil
	w.mu.Unlock()
	h.Stop()
}

// Poll reads the sensor once. The first reading only establishes the
// baseline; a sensor error is treated as no reading.
func (w *LinkWatcher) Poll(ctx context.Context) {
	up, err := w.sensor()
	if err != nil {
		return
	}
	w.mu.Lock()
	changed := w.known && up != w.up
	w.known = true
	w.up = up
	w.mu.Unlock()
	if !changed {
		return
	}
	if up {
		_ = w.usecase.LinkUp(ctx)
		return
	}
	_ = w.usecase.LinkDown(ctx)
}
