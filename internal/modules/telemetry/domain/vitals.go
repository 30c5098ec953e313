package domain

import "time"

// FPSHistory keeps the last FPSHistorySize samples, oldest first.
type FPSHistory struct {
	samples []int
	limit   int
}

func NewFPSHistory(limit int) *FPSHistory {
	if limit <= 0 {
		limit = FPSHistorySize
	}
	return &FPSHistory{samples: make([]int, 0, limit), limit: limit}
}

func (h *FPSHistory) Push(fps int) {
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples[len(h.samples)-1] = fps
		return
	}
	h.samples = append(h.samples, fps)
}

func (h *FPSHistory) Samples() []int {
	return append([]int(nil), h.samples...)
}

type Environment struct {
	Hostname   string `json:"hostname"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GoVersion  string `json:"go_version"`
	NumCPU     int    `json:"num_cpu"`
	Goroutines int    `json:"goroutines"`
}

type Memory struct {
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	HeapSysBytes   uint64 `json:"heap_sys_bytes"`
	NumGC          uint32 `json:"num_gc"`
}

// Vitals is a read-only point-in-time snapshot. It is never stored.
type Vitals struct {
	Timestamp        time.Time   `json:"timestamp"`
	FPS              int         `json:"fps"`
	FPSHistory       []int       `json:"fps_history"`
	Memory           *Memory     `json:"memory,omitempty"`
	Environment      Environment `json:"environment"`
	RecordingEnabled bool        `json:"recording_enabled"`
	RecentLogs       []Entry     `json:"recent_logs"`
}
