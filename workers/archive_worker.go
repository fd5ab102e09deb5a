package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"life-progression-system/repository"
	"life-progression-system/utils"
)

// ArchiveUploader pushes one serialized archive batch to object storage.
// utils.UploadArchive in production; swapped out in tests.
type ArchiveUploader func(ctx context.Context, key string, body []byte, contentType string) (string, error)

// ActivityArchiver moves activity-log entries older than the retention window out of
// the hot table and into object storage as JSON batches.
type ActivityArchiver struct {
	Activity  *repository.ActivityLogRepository
	Upload    ArchiveUploader
	Retention time.Duration // entries older than this get archived
	BatchSize int
}

func NewActivityArchiver(activity *repository.ActivityLogRepository, retention time.Duration) *ActivityArchiver {
	return &ActivityArchiver{
		Activity:  activity,
		Upload:    utils.UploadArchive,
		Retention: retention,
		BatchSize: 1000,
	}
}

// RunOnce exports one batch of expired entries and prunes them on success.
// Returns the number of archived entries.
func (a *ActivityArchiver) RunOnce(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-a.Retention)

	entries, err := a.Activity.ListOlderThan(ctx, cutoff, a.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	body, err := json.Marshal(entries)
	if err != nil {
		return 0, fmt.Errorf("failed to encode archive batch: %w", err)
	}

	key := fmt.Sprintf("activity/%s-%d.json", time.Now().UTC().Format("2006-01-02"), entries[0].ID)
	if _, err := a.Upload(ctx, key, body, "application/json"); err != nil {
		// Do NOT prune on upload failure — retry the same window next tick
		return 0, err
	}

	oldest := entries[len(entries)-1].OccurredAt.Add(time.Nanosecond)
	if oldest.After(cutoff) {
		oldest = cutoff
	}
	pruned, err := a.Activity.PruneOlderThan(ctx, oldest)
	if err != nil {
		return len(entries), fmt.Errorf("archived but failed to prune: %w", err)
	}

	log.Printf("📦 Archived %d activity entries to %s (pruned %d)", len(entries), key, pruned)
	return len(entries), nil
}

// Run polls on the given interval until the context is cancelled.
func Run(ctx context.Context, archiver *ActivityArchiver, pollInterval time.Duration) {
	log.Println("Starting activity-log archiver...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Activity-log archiver stopped.")
			return
		case <-ticker.C:
			if _, err := archiver.RunOnce(ctx); err != nil {
				log.Printf("❌ Archive run failed: %v", err)
			}
		}
	}
}
