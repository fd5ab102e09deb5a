package repository

import (
	"context"
	"testing"
	"time"

	"life-progression-system/models"
	"life-progression-system/testutil"

	"github.com/google/uuid"
)

func TestQuestUpdateWhileActiveGuardsStatus(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewQuestRepository(db)
	ctx := context.Background()

	quest := &models.Quest{
		ID:              uuid.NewString(),
		ExternalUserID:  "user-1",
		Title:           "Guarded",
		Status:          models.QuestStatusActive,
		RequiredActions: 2,
	}
	if err := repo.Create(ctx, quest); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	rows, err := repo.UpdateWhileActive(ctx, quest.ID, map[string]interface{}{
		"status":   models.QuestStatusCompleted,
		"progress": 100,
	})
	if err != nil || rows != 1 {
		t.Fatalf("first conditional update = %d, %v; want 1, nil", rows, err)
	}

	// Second writer loses: the quest already left 'active'.
	rows, err = repo.UpdateWhileActive(ctx, quest.ID, map[string]interface{}{
		"completed_actions": 2,
	})
	if err != nil || rows != 0 {
		t.Fatalf("second conditional update = %d, %v; want 0, nil", rows, err)
	}
}

func TestQuestFailExpired(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewQuestRepository(db)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	overdue := &models.Quest{
		ID: uuid.NewString(), ExternalUserID: "user-1", Title: "Overdue",
		Status: models.QuestStatusActive, RequiredActions: 1, ExpiresAt: &past,
	}
	current := &models.Quest{
		ID: uuid.NewString(), ExternalUserID: "user-1", Title: "Still on",
		Status: models.QuestStatusActive, RequiredActions: 1, ExpiresAt: &future,
	}
	open := &models.Quest{
		ID: uuid.NewString(), ExternalUserID: "user-1", Title: "No deadline",
		Status: models.QuestStatusActive, RequiredActions: 1,
	}
	for _, q := range []*models.Quest{overdue, current, open} {
		if err := repo.Create(ctx, q); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	n, err := repo.FailExpired(ctx, time.Now())
	if err != nil || n != 1 {
		t.Fatalf("FailExpired = %d, %v; want 1, nil", n, err)
	}

	got, _ := repo.Get(ctx, overdue.ID)
	if got.Status != models.QuestStatusFailed {
		t.Fatalf("overdue quest status = %s, want failed", got.Status)
	}
	got, _ = repo.Get(ctx, current.ID)
	if got.Status != models.QuestStatusActive {
		t.Fatalf("current quest status = %s, want active", got.Status)
	}
}

func TestQuestTargetSetsRoundTripThroughJSON(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewQuestRepository(db)
	ctx := context.Background()

	quest := &models.Quest{
		ID:               uuid.NewString(),
		ExternalUserID:   "user-1",
		Title:            "Targets",
		Status:           models.QuestStatusActive,
		RequiredActions:  1,
		TargetFactionIDs: []string{"career", "finance"},
		TargetSkillKeys:  []string{"budgeting"},
	}
	if err := repo.Create(ctx, quest); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.Get(ctx, quest.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(got.TargetFactionIDs) != 2 || got.TargetFactionIDs[0] != "career" {
		t.Fatalf("TargetFactionIDs = %v", got.TargetFactionIDs)
	}
	if len(got.TargetSkillKeys) != 1 || got.TargetSkillKeys[0] != "budgeting" {
		t.Fatalf("TargetSkillKeys = %v", got.TargetSkillKeys)
	}
}
