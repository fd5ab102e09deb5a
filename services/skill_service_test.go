package services

import (
	"context"
	"errors"
	"testing"

	"life-progression-system/repository"
	"life-progression-system/testutil"
)

func newSkillService(t *testing.T) *SkillService {
	t.Helper()
	db := testutil.OpenTestDB(t)
	return NewSkillService(repository.NewSkillRepository(db), repository.NewSkillStatRepository(db))
}

func TestCreateSkillSlugsAndTitles(t *testing.T) {
	svc := newSkillService(t)
	ctx := context.Background()

	skill, err := svc.CreateSkill(ctx, "public speaking", "social")
	if err != nil {
		t.Fatalf("CreateSkill error: %v", err)
	}
	if skill.Key != "public-speaking" {
		t.Fatalf("key = %q, want public-speaking", skill.Key)
	}
	if skill.Name != "Public Speaking" {
		t.Fatalf("name = %q, want Public Speaking", skill.Name)
	}

	// Same name again returns the existing entry instead of erroring.
	again, err := svc.CreateSkill(ctx, "Public Speaking", "social")
	if err != nil {
		t.Fatalf("second CreateSkill error: %v", err)
	}
	if again.Key != skill.Key {
		t.Fatalf("duplicate create produced different key %q", again.Key)
	}

	if _, err := svc.CreateSkill(ctx, "Alchemy", "sorcery"); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown faction: err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateSkill(ctx, "   ", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: err = %v, want ErrValidation", err)
	}
}

func TestTrackSkillStartsAtLevelOne(t *testing.T) {
	svc := newSkillService(t)
	ctx := context.Background()

	if _, err := svc.CreateSkill(ctx, "Running", "body"); err != nil {
		t.Fatalf("CreateSkill error: %v", err)
	}

	stat, err := svc.TrackSkill(ctx, "user-1", "running")
	if err != nil {
		t.Fatalf("TrackSkill error: %v", err)
	}
	if stat.Level != 1 || stat.CurrentXP != 0 {
		t.Fatalf("fresh stat = %+v, want level 1 / 0 XP", stat)
	}

	// Idempotent: tracking twice keeps the same row.
	again, err := svc.TrackSkill(ctx, "user-1", "running")
	if err != nil {
		t.Fatalf("second TrackSkill error: %v", err)
	}
	if again.ID != stat.ID {
		t.Fatalf("TrackSkill created a second row")
	}

	if _, err := svc.TrackSkill(ctx, "user-1", "nonexistent"); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown skill: err = %v, want ErrValidation", err)
	}
}
