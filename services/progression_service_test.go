package services

import (
	"context"
	"testing"

	"life-progression-system/models"
	"life-progression-system/repository"
	"life-progression-system/testutil"

	"github.com/google/uuid"
)

func newProgressionService(t *testing.T) (*ProgressionService, *repository.ActivityLogRepository) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	activity := repository.NewActivityLogRepository(db)
	svc := NewProgressionService(
		repository.NewProfileRepository(db),
		repository.NewFactionStatRepository(db),
		repository.NewSkillStatRepository(db),
		activity,
	)
	return svc, activity
}

func TestEnsureProfileIsIdempotent(t *testing.T) {
	svc, _ := newProgressionService(t)
	ctx := context.Background()

	first, err := svc.EnsureProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("EnsureProfile error: %v", err)
	}
	if first.Level != 1 || first.TotalXP != 0 {
		t.Fatalf("fresh profile = %+v", first)
	}

	second, err := svc.EnsureProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("second EnsureProfile error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("EnsureProfile created a second row: %s vs %s", first.ID, second.ID)
	}
}

func TestGrantXPRecomputesLevelAndLogs(t *testing.T) {
	svc, activity := newProgressionService(t)
	ctx := context.Background()

	// 500 total: past cumulative(2)=382, short of cumulative(3)=901 → level 2
	prof, err := svc.GrantXP(ctx, "user-1", 500, "backfill")
	if err != nil {
		t.Fatalf("GrantXP error: %v", err)
	}
	if prof.TotalXP != 500 || prof.Level != 2 {
		t.Fatalf("profile = total %d level %d, want 500 / 2", prof.TotalXP, prof.Level)
	}
	if prof.LastLevelUpAt == nil {
		t.Fatal("LastLevelUpAt not set on level-up")
	}

	entries, _ := activity.ListRecent(ctx, "user-1", 10)
	if len(entries) != 1 || entries[0].ActivityType != models.ActivityXPGranted || entries[0].XPAmount != 500 {
		t.Fatalf("activity feed = %+v, want one xp_granted entry", entries)
	}
}

func TestGetUserProgressShowsAllFactions(t *testing.T) {
	svc, _ := newProgressionService(t)
	ctx := context.Background()

	// One faction has earned XP; the other six must still appear at level 1.
	err := svc.Factions.Upsert(ctx, &models.FactionStat{
		ID:             uuid.NewString(),
		ExternalUserID: "user-1",
		FactionID:      "career",
		TotalXP:        382, // exactly cumulative(2)
		WeeklyXP:       50,
		MonthlyXP:      382,
		Level:          2,
	})
	if err != nil {
		t.Fatalf("seed faction stat: %v", err)
	}

	summary, err := svc.GetUserProgress(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUserProgress error: %v", err)
	}
	if len(summary.Factions) != len(models.Factions) {
		t.Fatalf("faction count = %d, want %d", len(summary.Factions), len(models.Factions))
	}

	var career, hobby *FactionProgress
	for i := range summary.Factions {
		switch summary.Factions[i].Faction.ID {
		case "career":
			career = &summary.Factions[i]
		case "hobby":
			hobby = &summary.Factions[i]
		}
	}
	if career == nil || career.Level != 2 || career.TotalXP != 382 {
		t.Fatalf("career = %+v, want level 2 with 382 XP", career)
	}
	if career.ProgressPercent != 0 {
		t.Fatalf("career progress = %d, want 0 right after leveling", career.ProgressPercent)
	}
	if hobby == nil || hobby.Level != 1 || hobby.TotalXP != 0 {
		t.Fatalf("hobby = %+v, want untouched level 1", hobby)
	}

	if summary.Tier.Name != "Beginner" {
		t.Fatalf("profile tier = %q, want Beginner", summary.Tier.Name)
	}
}
