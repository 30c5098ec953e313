package out

import (
	"context"
	"fmt"
	"net"
	"time"

	connectivityout "helmwatch/internal/modules/connectivity/port/out"
)

// TCPProbe measures the time to open a TCP connection to a well-known
// address. It stands in for a ping that would need raw sockets.
type TCPProbe struct {
	address string
	dialer  net.Dialer
}

func NewTCPProbe(address string) connectivityout.Probe {
	return &TCPProbe{address: address}
}

func (p *TCPProbe) Probe(ctx context.Context) (time.Duration, error) {
	started := time.Now()
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return 0, fmt.Errorf("dial %s: %w", p.address, err)
	}
	elapsed := time.Since(started)
	_ = conn.Close()
	return elapsed, nil
}
