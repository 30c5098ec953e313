package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxLogs bounds the diagnostic ring buffer.
	MaxLogs = 200
	// FPSHistorySize is the number of one-second fps samples kept.
	FPSHistorySize = 40
	// VitalsLogCount is how many recent entries a vitals snapshot carries.
	VitalsLogCount = 50
)

type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

func ParseLevel(raw string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(raw)))
	switch level {
	case LevelInfo, LevelWarn, LevelError:
		return level, nil
	default:
		return "", fmt.Errorf("unknown log level %q", raw)
	}
}

type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Source    string         `json:"source"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
}

// LogBuffer is a fixed-capacity ring. The newest entry is at the front;
// when full, the oldest entry is overwritten.
type LogBuffer struct {
	entries  []Entry
	head     int
	capacity int
}

func NewLogBuffer(capacity int) *LogBuffer {
	if capacity <= 0 {
		capacity = MaxLogs
	}
	return &LogBuffer{entries: make([]Entry, 0, capacity), capacity: capacity}
}

// Prepend stores e as the newest entry and reports whether an old entry
// was evicted to make room.
func (b *LogBuffer) Prepend(e Entry) bool {
	if len(b.entries) < b.capacity {
		b.entries = append(b.entries, e)
		b.head = len(b.entries) % b.capacity
		return false
	}
	b.entries[b.head] = e
	b.head = (b.head + 1) % b.capacity
	return true
}

func (b *LogBuffer) Len() int {
	return len(b.entries)
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
func (b *LogBuffer) Recent(n int) []Entry {
	size := len(b.entries)
	if n <= 0 || n > size {
		n = size
	}
	out := make([]Entry, 0, n)
	newest := (b.head - 1 + b.capacity) % b.capacity
	if size < b.capacity {
		newest = size - 1
	}
	for i := 0; i < n; i++ {
		idx := (newest - i + size) % size
		out = append(out, b.entries[idx])
	}
	return out
}

func (b *LogBuffer) Clear() {
	b.entries = b.entries[:0]
	b.head = 0
}

// Restore replaces the content with entries given newest first, keeping
// at most the buffer capacity.
func (b *LogBuffer) Restore(newestFirst []Entry) {
	b.Clear()
	if len(newestFirst) > b.capacity {
		newestFirst = newestFirst[:b.capacity]
	}
	for i := len(newestFirst) - 1; i >= 0; i-- {
		b.Prepend(newestFirst[i])
	}
}
