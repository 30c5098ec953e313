package domain_test

import (
	"fmt"
	"testing"

	"helmwatch/internal/modules/telemetry/domain"
)

func TestLogBufferKeepsNewestFirstAndEvictsOldest(t *testing.T) {
	t.Parallel()
	buf := domain.NewLogBuffer(3)
	for i := 1; i <= 5; i++ {
		buf.Prepend(domain.Entry{ID: fmt.Sprintf("e%d", i)})
	}
	if buf.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", buf.Len())
	}
	got := buf.Recent(0)
	want := []string{"e5", "e4", "e3"}
	for i, e := range got {
		if e.ID != want[i] {
			t.Fatalf("position %d: want %s got %s", i, want[i], e.ID)
		}
	}
	if two := buf.Recent(2); len(two) != 2 || two[0].ID != "e5" {
		t.Fatalf("unexpected recent(2): %+v", two)
	}
}

func TestLogBufferRestoreAndClear(t *testing.T) {
	t.Parallel()
	buf := domain.NewLogBuffer(2)
	buf.Restore([]domain.Entry{{ID: "new"}, {ID: "mid"}, {ID: "old"}})
	got := buf.Recent(0)
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "mid" {
		t.Fatalf("restore should keep the newest entries, got %+v", got)
	}
	buf.Clear()
	if buf.Len() != 0 || len(buf.Recent(5)) != 0 {
		t.Fatalf("clear should empty the buffer")
	}
}

func TestFPSHistoryDropsOldest(t *testing.T) {
	t.Parallel()
	h := domain.NewFPSHistory(domain.FPSHistorySize)
	for i := 0; i < domain.FPSHistorySize+5; i++ {
		h.Push(i)
	}
	samples := h.Samples()
	if len(samples) != domain.FPSHistorySize {
		t.Fatalf("expected %d samples, got %d", domain.FPSHistorySize, len(samples))
	}
	if samples[0] != 5 || samples[len(samples)-1] != domain.FPSHistorySize+4 {
		t.Fatalf("unexpected window %d..%d", samples[0], samples[len(samples)-1])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	if lvl, err := domain.ParseLevel("warn"); err != nil || lvl != domain.LevelWarn {
		t.Fatalf("expected WARN, got %s (%v)", lvl, err)
	}
	if _, err := domain.ParseLevel("fatal"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
