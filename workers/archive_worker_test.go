package workers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"life-progression-system/models"
	"life-progression-system/repository"
	"life-progression-system/testutil"

	"gorm.io/gorm"
)

func seedActivity(t *testing.T, db *gorm.DB, owner string, age time.Duration) {
	t.Helper()
	entry := &models.ActivityLogEntry{
		ExternalUserID: owner,
		ActivityType:   models.ActivityQuestCompleted,
		XPAmount:       10,
		OccurredAt:     time.Now().Add(-age),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("seed activity: %v", err)
	}
}

func TestArchiverExportsAndPrunesOldEntries(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := repository.NewActivityLogRepository(db)

	seedActivity(t, db, "user-1", 100*24*time.Hour)
	seedActivity(t, db, "user-1", 95*24*time.Hour)
	seedActivity(t, db, "user-1", time.Hour) // recent, must survive

	var uploadedKey string
	var uploadedBody []byte
	archiver := NewActivityArchiver(repo, 90*24*time.Hour)
	archiver.Upload = func(ctx context.Context, key string, body []byte, contentType string) (string, error) {
		uploadedKey = key
		uploadedBody = body
		return key, nil
	}

	n, err := archiver.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce error: %v", err)
	}
	if n != 2 {
		t.Fatalf("archived %d entries, want 2", n)
	}
	if uploadedKey == "" {
		t.Fatal("nothing uploaded")
	}

	var exported []models.ActivityLogEntry
	if err := json.Unmarshal(uploadedBody, &exported); err != nil {
		t.Fatalf("uploaded body is not valid JSON: %v", err)
	}
	if len(exported) != 2 {
		t.Fatalf("exported %d entries, want 2", len(exported))
	}

	remaining, _ := repo.ListRecent(context.Background(), "user-1", 10)
	if len(remaining) != 1 {
		t.Fatalf("remaining entries = %d, want 1 (recent one kept)", len(remaining))
	}
}

func TestArchiverKeepsEntriesWhenUploadFails(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := repository.NewActivityLogRepository(db)

	seedActivity(t, db, "user-1", 100*24*time.Hour)

	archiver := NewActivityArchiver(repo, 90*24*time.Hour)
	archiver.Upload = func(ctx context.Context, key string, body []byte, contentType string) (string, error) {
		return "", errors.New("bucket unavailable")
	}

	if _, err := archiver.RunOnce(context.Background()); err == nil {
		t.Fatal("RunOnce should surface the upload error")
	}

	remaining, _ := repo.ListRecent(context.Background(), "user-1", 10)
	if len(remaining) != 1 {
		t.Fatalf("entries pruned despite failed upload: %d left, want 1", len(remaining))
	}
}

func TestArchiverNoopWhenNothingExpired(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := repository.NewActivityLogRepository(db)

	seedActivity(t, db, "user-1", time.Hour)

	archiver := NewActivityArchiver(repo, 90*24*time.Hour)
	archiver.Upload = func(ctx context.Context, key string, body []byte, contentType string) (string, error) {
		t.Fatal("upload must not run when nothing is expired")
		return "", nil
	}

	n, err := archiver.RunOnce(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("RunOnce = %d, %v; want 0, nil", n, err)
	}
}
