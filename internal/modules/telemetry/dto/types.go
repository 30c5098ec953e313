package dto

import "time"

type LogInput struct {
	Level   string
	Source  string
	Message string
	Data    map[string]any
}

type LogOutput struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Source    string         `json:"source"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
}

type EnvironmentOutput struct {
	Hostname   string `json:"hostname"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GoVersion  string `json:"go_version"`
	NumCPU     int    `json:"num_cpu"`
	Goroutines int    `json:"goroutines"`
}

type MemoryOutput struct {
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	HeapSysBytes   uint64 `json:"heap_sys_bytes"`
	NumGC          uint32 `json:"num_gc"`
}

type VitalsOutput struct {
	Timestamp        time.Time         `json:"timestamp"`
	FPS              int               `json:"fps"`
	FPSHistory       []int             `json:"fps_history"`
	Memory           *MemoryOutput     `json:"memory,omitempty"`
	Environment      EnvironmentOutput `json:"environment"`
	RecordingEnabled bool              `json:"recording_enabled"`
	RecentLogs       []LogOutput       `json:"recent_logs"`
}

type DeveloperModeOutput struct {
	Enabled bool `json:"enabled"`
}
