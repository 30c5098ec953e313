package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	auditdto "helmwatch/internal/modules/audit/dto"
	connectivitydto "helmwatch/internal/modules/connectivity/dto"
	crewdto "helmwatch/internal/modules/crew/dto"
	positiondto "helmwatch/internal/modules/position/dto"
	sessiondto "helmwatch/internal/modules/session/dto"
	telemetrydto "helmwatch/internal/modules/telemetry/dto"
	apperrors "helmwatch/internal/platform/errors"
	"helmwatch/internal/platform/logging"
	"helmwatch/internal/server"
)

type fakeShip struct {
	lastLimit atomic.Int64
}

func (f *fakeShip) Status(context.Context) (sessiondto.StatusOutput, error) {
	return sessiondto.StatusOutput{Open: true, SessionID: "voy-1", Earnings: 12.5}, nil
}
func (f *fakeShip) History(_ context.Context, limit int) ([]sessiondto.SessionOutput, error) {
	f.lastLimit.Store(int64(limit))
	return []sessiondto.SessionOutput{{ID: "voy-0"}}, nil
}
func (f *fakeShip) Logbook(_ context.Context, id string) (sessiondto.LogbookOutput, error) {
	if id != "voy-0" {
		return sessiondto.LogbookOutput{}, fmt.Errorf("%w: no logbook entry for session %s", apperrors.ErrNotFound, id)
	}
	return sessiondto.LogbookOutput{
		SessionID: id,
		Markdown:  "---\nsession_id: voy-0\n---\n# Voyage voy-0\n\n| | |\n|---|---|\n| Catch | 3 |\n",
	}, nil
}
func (f *fakeShip) List(context.Context) ([]crewdto.MemberOutput, error) {
	return []crewdto.MemberOutput{{ID: "captain", Status: "AT_OARS"}}, nil
}
func (f *fakeShip) Get(_ context.Context, id string) (crewdto.MemberOutput, error) {
	if id != "captain" {
		return crewdto.MemberOutput{}, apperrors.ErrNotFound
	}
	return crewdto.MemberOutput{ID: "captain", Status: "AT_OARS"}, nil
}
func (f *fakeShip) Vitals(context.Context) (telemetrydto.VitalsOutput, error) {
	return telemetrydto.VitalsOutput{FPS: 30}, nil
}
func (f *fakeShip) Last(context.Context) (positiondto.FixOutput, error) {
	return positiondto.FixOutput{Status: "FALLBACK", Label: "Greenwich"}, nil
}

type fakeConnection struct{}

func (fakeConnection) Status(context.Context) (connectivitydto.ConnectionOutput, error) {
	return connectivitydto.ConnectionOutput{State: "LAG", LatencyMS: 1500, CheckedAt: time.Unix(0, 0)}, nil
}

type fakeAudit struct{}

func (fakeAudit) List(_ context.Context, recordType, _ string, _ int) ([]auditdto.RecordOutput, error) {
	return []auditdto.RecordOutput{{ID: "a1", Type: recordType}}, nil
}
func (fakeAudit) Count(_ context.Context, recordType, _ string) (int, error) {
	if recordType == "SAFETY_CHECK" {
		return 4, nil
	}
	return 0, nil
}

func newServer(t *testing.T) (*httptest.Server, *fakeShip) {
	t.Helper()
	ship := &fakeShip{}
	srv := httptest.NewServer(server.NewRouter(server.Readers{
		Session:    ship,
		Crew:       ship,
		Connection: fakeConnection{},
		Vitals:     ship,
		Audit:      fakeAudit{},
		Position:   ship,
	}, logging.Discard()))
	t.Cleanup(srv.Close)
	return srv, ship
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return resp.StatusCode, string(body)
}

func TestStatusRoutes(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t)

	cases := []struct {
		path   string
		status int
		want   string
	}{
		{"/health", http.StatusOK, `"connection":"LAG"`},
		{"/vitals", http.StatusOK, `"fps":30`},
		{"/connection", http.StatusOK, `"latency_ms":1500`},
		{"/position", http.StatusOK, `"status":"FALLBACK"`},
		{"/crew", http.StatusOK, `"id":"captain"`},
		{"/crew/captain", http.StatusOK, `"status":"AT_OARS"`},
		{"/crew/ghost", http.StatusNotFound, `"error"`},
		{"/session", http.StatusOK, `"earnings":12.5`},
		{"/session/history", http.StatusOK, `"id":"voy-0"`},
		{"/session/history?limit=zero", http.StatusBadRequest, "positive integer"},
		{"/audit?type=DRIFT", http.StatusOK, `"type":"DRIFT"`},
		{"/audit/count?type=SAFETY_CHECK", http.StatusOK, `"count":4`},
	}
	for _, tc := range cases {
		status, body := get(t, srv, tc.path)
		if status != tc.status || !strings.Contains(body, tc.want) {
			t.Fatalf("GET %s: status %d body %s", tc.path, status, body)
		}
	}
}

func TestHistoryLimitIsCapped(t *testing.T) {
	t.Parallel()
	srv, ship := newServer(t)
	if status, _ := get(t, srv, "/session/history?limit=5000"); status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	if got := ship.lastLimit.Load(); got != 200 {
		t.Fatalf("expected limit capped at 200, got %d", got)
	}
}

func TestLogbookRendersHTML(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t)

	status, body := get(t, srv, "/logbook/voy-0")
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, body)
	}
	if !strings.Contains(body, "<h1>Voyage voy-0</h1>") || !strings.Contains(body, "<table>") {
		t.Fatalf("expected rendered heading and table:\n%s", body)
	}
	if strings.Contains(body, "session_id:") {
		t.Fatalf("frontmatter should not leak into the page:\n%s", body)
	}

	status, body = get(t, srv, "/logbook/voy-0?format=markdown")
	if status != http.StatusOK || !strings.HasPrefix(body, "---\n") {
		t.Fatalf("raw markdown expected, got %d:\n%s", status, body)
	}

	status, body = get(t, srv, "/logbook/missing")
	var payload map[string]string
	if err := json.Unmarshal([]byte(body), &payload); err != nil || status != http.StatusNotFound {
		t.Fatalf("expected 404 json, got %d %s", status, body)
	}
}
