package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data", dataDir}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVoyageFromTheCommandLine(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := run(t, dir, "session", "start")
	if err != nil || !strings.Contains(out, "voyage started") {
		t.Fatalf("start: %v\n%s", err, out)
	}
	if _, err := run(t, dir, "session", "start"); err == nil {
		t.Fatal("second start should fail while a voyage is open")
	}
	if out, err = run(t, dir, "session", "catch"); err != nil || !strings.Contains(out, "1 aboard") {
		t.Fatalf("catch: %v\n%s", err, out)
	}
	if out, err = run(t, dir, "session", "status"); err != nil || !strings.Contains(out, "catch=1") {
		t.Fatalf("status: %v\n%s", err, out)
	}
	if _, err := run(t, dir, "session", "stop"); err == nil {
		t.Fatal("a fresh voyage should be too short to stop without --force")
	}
	if out, err = run(t, dir, "session", "stop", "--force"); err != nil || !strings.Contains(out, "voyage settled") {
		t.Fatalf("force stop: %v\n%s", err, out)
	}
	if out, err = run(t, dir, "session", "history"); err != nil || !strings.Contains(out, "unsigned") {
		t.Fatalf("history: %v\n%s", err, out)
	}
	if out, err = run(t, dir, "audit", "count"); err != nil || strings.TrimSpace(out) == "" {
		t.Fatalf("audit count: %v\n%s", err, out)
	}
}

func TestCrewOrdersFromTheCommandLine(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := run(t, dir, "crew", "list")
	if err != nil || !strings.Contains(out, "captain") {
		t.Fatalf("list: %v\n%s", err, out)
	}
	if out, err = run(t, dir, "crew", "flare", "mate", "red"); err != nil || !strings.Contains(out, "mate changed") {
		t.Fatalf("flare: %v\n%s", err, out)
	}
	if _, err := run(t, dir, "crew", "flare", "mate"); err == nil {
		t.Fatal("flare without a colour should be rejected")
	}
	if out, err = run(t, dir, "crew", "check", "mate"); err != nil || !strings.Contains(out, "1 in window") {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if _, err := run(t, dir, "devmode", "sideways"); err == nil {
		t.Fatal("devmode should accept only on or off")
	}
}
