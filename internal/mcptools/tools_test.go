package mcptools_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	auditdto "helmwatch/internal/modules/audit/dto"
	connectivitydto "helmwatch/internal/modules/connectivity/dto"
	crewdto "helmwatch/internal/modules/crew/dto"
	positiondto "helmwatch/internal/modules/position/dto"
	sessiondto "helmwatch/internal/modules/session/dto"
	telemetrydto "helmwatch/internal/modules/telemetry/dto"
	"helmwatch/internal/mcptools"
	apperrors "helmwatch/internal/platform/errors"
	"helmwatch/internal/server"
)

type fakeShip struct{}

func (fakeShip) Status(context.Context) (sessiondto.StatusOutput, error) {
	return sessiondto.StatusOutput{Open: true, SessionID: "voy-7"}, nil
}
func (fakeShip) History(_ context.Context, limit int) ([]sessiondto.SessionOutput, error) {
	out := make([]sessiondto.SessionOutput, limit)
	for i := range out {
		out[i].ID = fmt.Sprintf("voy-%d", i)
	}
	return out, nil
}
func (fakeShip) Logbook(_ context.Context, id string) (sessiondto.LogbookOutput, error) {
	if id != "voy-1" {
		return sessiondto.LogbookOutput{}, apperrors.ErrNotFound
	}
	return sessiondto.LogbookOutput{SessionID: id, Markdown: "# Voyage voy-1"}, nil
}
func (fakeShip) List(context.Context) ([]crewdto.MemberOutput, error) {
	return []crewdto.MemberOutput{{ID: "bosun", Status: "MAN_OVERBOARD"}}, nil
}
func (fakeShip) Get(_ context.Context, id string) (crewdto.MemberOutput, error) {
	return crewdto.MemberOutput{ID: id}, nil
}
func (fakeShip) Vitals(context.Context) (telemetrydto.VitalsOutput, error) {
	return telemetrydto.VitalsOutput{FPS: 29}, nil
}
func (fakeShip) Last(context.Context) (positiondto.FixOutput, error) {
	return positiondto.FixOutput{Label: "Greenwich"}, nil
}

type fakeConnection struct{}

func (fakeConnection) Status(context.Context) (connectivitydto.ConnectionOutput, error) {
	return connectivitydto.ConnectionOutput{State: "OFFLINE"}, nil
}

type fakeAudit struct{}

func (fakeAudit) List(context.Context, string, string, int) ([]auditdto.RecordOutput, error) {
	return nil, nil
}
func (fakeAudit) Count(_ context.Context, recordType, crewID string) (int, error) {
	if recordType == "DRIFT" && crewID == "captain" {
		return 2, nil
	}
	return 0, nil
}

func call(t *testing.T, name string, args map[string]any) string {
	t.Helper()
	s := mcptools.New(server.Readers{
		Session:    fakeShip{},
		Crew:       fakeShip{},
		Connection: fakeConnection{},
		Vitals:     fakeShip{},
		Audit:      fakeAudit{},
		Position:   fakeShip{},
	}, "test")
	req, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  map[string]any{"name": name, "arguments": args},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp := s.HandleMessage(context.Background(), req)
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return string(out)
}

func TestStatusTools(t *testing.T) {
	t.Parallel()
	cases := []struct {
		tool string
		args map[string]any
		want string
	}{
		{"crew_list", nil, "MAN_OVERBOARD"},
		{"crew_get", map[string]any{"id": "mate"}, "mate"},
		{"session_status", nil, "voy-7"},
		{"session_history", map[string]any{"limit": 2}, "voy-1"},
		{"logbook", map[string]any{"session_id": "voy-1"}, "# Voyage voy-1"},
		{"connection_status", nil, "OFFLINE"},
		{"vitals", nil, "29"},
		{"audit_count", map[string]any{"type": "DRIFT", "crew_id": "captain"}, `\"count\": 2`},
		{"position", nil, "Greenwich"},
	}
	for _, tc := range cases {
		got := call(t, tc.tool, tc.args)
		if !strings.Contains(got, tc.want) || strings.Contains(got, `"isError":true`) {
			t.Fatalf("%s: expected %q in %s", tc.tool, tc.want, got)
		}
	}
}

func TestToolErrorsAreReported(t *testing.T) {
	t.Parallel()
	if got := call(t, "logbook", map[string]any{"session_id": "ghost"}); !strings.Contains(got, `"isError":true`) {
		t.Fatalf("missing logbook should be a tool error: %s", got)
	}
	if got := call(t, "crew_get", map[string]any{}); !strings.Contains(got, `"isError":true`) {
		t.Fatalf("missing id should be a tool error: %s", got)
	}
	if got := call(t, "session_history", map[string]any{"limit": -1}); !strings.Contains(got, `"isError":true`) {
		t.Fatalf("negative limit should be a tool error: %s", got)
	}
}
