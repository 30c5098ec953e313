package domain_test

import (
	"errors"
	"testing"

	"helmwatch/internal/modules/crew/domain"
	apperrors "helmwatch/internal/platform/errors"
)

func TestNextFollowsTransitionTable(t *testing.T) {
	t.Parallel()
	cases := []struct {
		from   domain.Status
		event  domain.Event
		to     domain.Status
		ok     bool
		advise bool
		reset  bool
	}{
		{domain.StatusAtOars, domain.EventDriftDetected, domain.StatusDrifting, true, true, false},
		{domain.StatusDrifting, domain.EventDriftDetected, domain.StatusDrifting, false, false, false},
		{domain.StatusDrifting, domain.EventActivityResumed, domain.StatusAtOars, true, true, false},
		{domain.StatusAtOars, domain.EventActivityResumed, domain.StatusAtOars, false, false, false},
		{domain.StatusAtOars, domain.EventEmergency, domain.StatusManOverboard, true, true, false},
		{domain.StatusDrifting, domain.EventEmergency, domain.StatusManOverboard, true, true, false},
		{domain.StatusManOverboard, domain.EventEmergency, domain.StatusManOverboard, false, false, false},
		{domain.StatusManOverboard, domain.EventDriftDetected, domain.StatusManOverboard, false, false, false},
		{domain.StatusManOverboard, domain.EventActivityResumed, domain.StatusManOverboard, false, false, false},
		{domain.StatusManOverboard, domain.EventRescue, domain.StatusAtOars, true, false, true},
		{domain.StatusAtOars, domain.EventRescue, domain.StatusAtOars, false, false, false},
	}
	for _, tc := range cases {
		to, effect, ok := domain.Next(tc.from, tc.event)
		if to != tc.to || ok != tc.ok || effect.Advise != tc.advise || effect.ResetHeartbeat != tc.reset {
			t.Fatalf("Next(%s, %s) = (%s, %+v, %v), want (%s, advise=%v reset=%v, %v)",
				tc.from, tc.event, to, effect, ok, tc.to, tc.advise, tc.reset, tc.ok)
		}
	}
}

func TestSourcePermits(t *testing.T) {
	t.Parallel()
	if err := domain.SourceWatchdog.Permits(domain.KindOperator); err != nil {
		t.Fatalf("watchdog should drive operator: %v", err)
	}
	if err := domain.SourceWatchdog.Permits(domain.KindSimulated); !errors.Is(err, apperrors.ErrForbiddenSource) {
		t.Fatalf("watchdog must not drive simulated member, got %v", err)
	}
	if err := domain.SourceSimulation.Permits(domain.KindOperator); !errors.Is(err, apperrors.ErrForbiddenSource) {
		t.Fatalf("simulation must not drive operator, got %v", err)
	}
	if err := domain.SourceOperator.Permits(domain.KindSimulated); err != nil {
		t.Fatalf("manual actions reach everyone: %v", err)
	}
}

func TestParseFlare(t *testing.T) {
	t.Parallel()
	if f, err := domain.ParseFlare("red"); err != nil || f != domain.FlareRed {
		t.Fatalf("parse red: %s %v", f, err)
	}
	if _, err := domain.ParseFlare("purple"); !errors.Is(err, domain.ErrUnknownFlare) {
		t.Fatalf("expected ErrUnknownFlare, got %v", err)
	}
}
