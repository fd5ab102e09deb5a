package repository

import (
	"context"
	"testing"

	"life-progression-system/models"
	"life-progression-system/testutil"

	"github.com/google/uuid"
)

func TestFactionStatUpsertAndGet(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewFactionStatRepository(db)
	ctx := context.Background()

	if got, err := repo.Get(ctx, "user-1", "career"); err != nil || got != nil {
		t.Fatalf("Get on empty table = %v, %v; want nil, nil", got, err)
	}

	stat := &models.FactionStat{
		ID:             uuid.NewString(),
		ExternalUserID: "user-1",
		FactionID:      "career",
		TotalXP:        120,
		WeeklyXP:       120,
		MonthlyXP:      120,
		Level:          2,
	}
	if err := repo.Upsert(ctx, stat); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	stat.TotalXP = 200
	if err := repo.Upsert(ctx, stat); err != nil {
		t.Fatalf("second Upsert error: %v", err)
	}

	got, err := repo.Get(ctx, "user-1", "career")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.TotalXP != 200 {
		t.Fatalf("TotalXP = %d, want 200 (updated, not duplicated)", got.TotalXP)
	}

	stats, _ := repo.ListByOwner(ctx, "user-1")
	if len(stats) != 1 {
		t.Fatalf("ListByOwner returned %d rows, want 1", len(stats))
	}
}

func TestFactionStatResets(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewFactionStatRepository(db)
	ctx := context.Background()

	for _, factionID := range []string{"body", "mind"} {
		err := repo.Upsert(ctx, &models.FactionStat{
			ID:             uuid.NewString(),
			ExternalUserID: "user-1",
			FactionID:      factionID,
			TotalXP:        500,
			WeeklyXP:       40,
			MonthlyXP:      90,
			Level:          2,
		})
		if err != nil {
			t.Fatalf("seed %s: %v", factionID, err)
		}
	}

	if n, err := repo.ResetWeekly(ctx); err != nil || n != 2 {
		t.Fatalf("ResetWeekly = %d, %v; want 2, nil", n, err)
	}
	if n, err := repo.ResetMonthly(ctx); err != nil || n != 2 {
		t.Fatalf("ResetMonthly = %d, %v; want 2, nil", n, err)
	}

	got, _ := repo.Get(ctx, "user-1", "body")
	if got.WeeklyXP != 0 || got.MonthlyXP != 0 {
		t.Fatalf("counters after reset = weekly %d monthly %d, want 0/0", got.WeeklyXP, got.MonthlyXP)
	}
	if got.TotalXP != 500 || got.Level != 2 {
		t.Fatalf("resets must not touch totals: %+v", got)
	}
}
