package dto

import "time"

type ConnectionOutput struct {
	State       string     `json:"state"`
	LatencyMS   int64      `json:"latency_ms"`
	CheckedAt   time.Time  `json:"checked_at"`
	OutageStart *time.Time `json:"outage_start,omitempty"`
}
