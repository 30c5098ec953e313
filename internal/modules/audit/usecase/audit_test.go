package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	auditadapter "helmwatch/internal/modules/audit/adapter/out"
	"helmwatch/internal/modules/audit/domain"
	"helmwatch/internal/modules/audit/dto"
	"helmwatch/internal/modules/audit/usecase"
	"helmwatch/internal/platform/sqlite"
)

func TestListFiltersByTypeAndCrew(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	store, err := auditadapter.NewSQLiteAuditStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i, rec := range []domain.Record{
		{ID: "a", Type: domain.TypeDrift, CrewID: "captain", Timestamp: base},
		{ID: "b", Type: domain.TypeSafetyCheck, CrewID: "bosun", Timestamp: base.Add(time.Minute)},
		{ID: "c", Type: domain.TypeSafetyCheck, CrewID: "captain", Timestamp: base.Add(2 * time.Minute)},
	} {
		if _, err := store.Append(ctx, rec); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	uc := usecase.NewInteractor(store)

	checks, err := uc.List(ctx, dto.ListInput{Type: "safety_check"})
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(checks) != 2 {
		t.Fatalf("expected 2 safety checks, got %d", len(checks))
	}
	captain, err := uc.List(ctx, dto.ListInput{CrewID: "captain", Limit: 1})
	if err != nil {
		t.Fatalf("list by crew: %v", err)
	}
	if len(captain) != 1 || captain[0].ID != "c" {
		t.Fatalf("expected latest captain record, got %+v", captain)
	}
	n, err := uc.Count(ctx, dto.CountInput{Type: "DRIFT"})
	if err != nil || n != 1 {
		t.Fatalf("expected one drift record, got %d (%v)", n, err)
	}
	if _, err := uc.List(ctx, dto.ListInput{Type: "kraken"}); err == nil {
		t.Fatalf("unknown type should fail")
	}
}
