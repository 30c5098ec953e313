package usecase_test

import (
	"context"
	"testing"
	"time"

	crewdomain "helmwatch/internal/modules/crew/domain"
	"helmwatch/internal/modules/presence/service"
	"helmwatch/internal/modules/presence/usecase"
	"helmwatch/internal/platform/clock"
	"helmwatch/internal/platform/logging"
)

type stubCrew struct {
	events []crewdomain.Event
	beats  int
}

func (s *stubCrew) OperatorID() string { return "captain" }

func (s *stubCrew) Apply(_ context.Context, _ string, event crewdomain.Event, _ crewdomain.Source, _ string) (bool, error) {
	s.events = append(s.events, event)
	return true, nil
}

func (s *stubCrew) Heartbeat(string) { s.beats++ }

type openSession struct{}

func (openSession) IsOpen() bool { return true }

type nopDiagnostics struct{}

func (nopDiagnostics) Info(string, string, map[string]any)  {}
func (nopDiagnostics) Warn(string, string, map[string]any)  {}
func (nopDiagnostics) Error(string, string, map[string]any) {}

func TestStatusTracksSignals(t *testing.T) {
	t.Parallel()
	clk := clock.NewFake(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	crew := &stubCrew{}
	wd := service.NewWatchdog(clk, crew, openSession{}, nopDiagnostics{}, logging.Discard(), service.Options{})
	uc := usecase.NewInteractor(wd)
	ctx := context.Background()

	if err := uc.VisibilityChanged(ctx, false); err != nil {
		t.Fatalf("blur: %v", err)
	}
	st, err := uc.Status(ctx)
	if err != nil || st.Visible || !st.TabAwayPending {
		t.Fatalf("expected hidden with pending timer, got %+v %v", st, err)
	}

	clk.Advance(time.Minute)
	if err := uc.Activity(ctx); err != nil {
		t.Fatalf("activity: %v", err)
	}
	st, _ = uc.Status(ctx)
	if !st.LastActivity.Equal(clk.Now()) {
		t.Fatalf("activity timestamp not updated: %s", st.LastActivity)
	}
	if crew.beats != 1 {
		t.Fatalf("activity should refresh the operator heartbeat")
	}
	if len(crew.events) != 0 {
		t.Fatalf("hidden activity must not send transitions, got %v", crew.events)
	}
}
