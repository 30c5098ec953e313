package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sessionadapter "helmwatch/internal/modules/session/adapter/out"
	sessiondto "helmwatch/internal/modules/session/dto"
	"helmwatch/internal/modules/session/service"
	"helmwatch/internal/modules/session/usecase"
	"helmwatch/internal/platform/clock"
	apperrors "helmwatch/internal/platform/errors"
	"helmwatch/internal/platform/logging"
	"helmwatch/internal/platform/sqlite"
	"helmwatch/internal/platform/tx"
)

type fixedID struct{}

func (fixedID) New() string { return "voy-1" }

type nopDiagnostics struct{}

func (nopDiagnostics) Info(string, string, map[string]any)  {}
func (nopDiagnostics) Warn(string, string, map[string]any)  {}
func (nopDiagnostics) Error(string, string, map[string]any) {}

func TestSessionLifecycleWritesLogbook(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	db, err := sqlite.Open(filepath.Join(dir, "helmwatch.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	store, err := sessionadapter.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	clk := clock.NewFake(time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC))
	sink := sessionadapter.NewLogbookSummarySink(filepath.Join(dir, "logbook"))
	sc := service.NewSessionClock(clk, fixedID{}, store, tx.NewSQLManager(db), service.Hooks{Summary: sink},
		nopDiagnostics{}, nil, logging.Discard(), service.Options{HourlyRate: 40, ShiftDuration: 8 * time.Hour})
	uc := usecase.NewInteractor(sc, sink)
	ctx := context.Background()

	start, err := uc.Start(ctx)
	if err != nil || start.SessionID != "voy-1" {
		t.Fatalf("start: %+v %v", start, err)
	}
	if _, err := uc.RecordCatch(ctx); err != nil {
		t.Fatalf("catch: %v", err)
	}
	clk.Advance(45 * time.Minute)
	status, err := uc.Status(ctx)
	if err != nil || !status.Open || status.ElapsedSeconds != 2700 || status.ItemsCaught != 1 {
		t.Fatalf("status: %+v %v", status, err)
	}
	if status.Earnings != 30 || status.ShiftSeconds != 8*3600 {
		t.Fatalf("status should carry running earnings and shift: %+v", status)
	}
	if _, err := uc.Logbook(ctx, "voy-1"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("open voyage has no logbook entry yet, got %v", err)
	}

	settlement, err := uc.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if settlement.DurationSeconds != 2700 || settlement.Earnings != 30 || settlement.ItemsCaught != 1 {
		t.Fatalf("unexpected settlement %+v", settlement)
	}

	if _, err := uc.Sign(ctx, sessiondto.SignInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("sign without id: %v", err)
	}
	signed, err := uc.Sign(ctx, sessiondto.SignInput{SessionID: "voy-1", Efficiency: 95})
	if err != nil || signed.Efficiency == nil || *signed.Efficiency != 95 || signed.EndedAt == nil {
		t.Fatalf("sign: %+v %v", signed, err)
	}

	history, err := uc.History(ctx, 5)
	if err != nil || len(history) != 1 || history[0].SignedAt == nil {
		t.Fatalf("history: %+v %v", history, err)
	}
	status, err = uc.Status(ctx)
	if err != nil || status.Open {
		t.Fatalf("no session should be open: %+v %v", status, err)
	}

	entry, err := uc.Logbook(ctx, "voy-1")
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	if !strings.Contains(entry.Markdown, "seal_intact: true") || !strings.Contains(entry.Markdown, "efficiency 95%") {
		t.Fatalf("unexpected logbook entry:\n%s", entry.Markdown)
	}
	if _, err := uc.Logbook(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown session should be not found, got %v", err)
	}
}
