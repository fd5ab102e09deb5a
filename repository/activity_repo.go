package repository

import (
	"context"
	"fmt"
	"time"

	"life-progression-system/models"

	"gorm.io/gorm"
)

// ActivityLogRepository appends and reads the XP event feed. Entries are never
// updated; the only delete path is PruneOlderThan, used by the archive worker
// after a successful export.
type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Append(ctx context.Context, entry *models.ActivityLogEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append activity log: %w", err)
	}
	return nil
}

func (r *ActivityLogRepository) ListRecent(ctx context.Context, owner string, limit int) ([]models.ActivityLogEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []models.ActivityLogEntry
	err := r.db.WithContext(ctx).
		Where("external_user_id = ?", owner).
		Order("occurred_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list activity log: %w", err)
	}
	return entries, nil
}

// ListOlderThan returns entries past the retention cutoff, oldest first.
func (r *ActivityLogRepository) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]models.ActivityLogEntry, error) {
	var entries []models.ActivityLogEntry
	err := r.db.WithContext(ctx).
		Where("occurred_at < ?", cutoff).
		Order("occurred_at ASC, id ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list archivable activity log: %w", err)
	}
	return entries, nil
}

// PruneOlderThan hard-deletes exported entries.
func (r *ActivityLogRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("occurred_at < ?", cutoff).
		Delete(&models.ActivityLogEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune activity log: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ExperienceRepository appends the per-skill XP gain log.
type ExperienceRepository struct {
	db *gorm.DB
}

func NewExperienceRepository(db *gorm.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

func (r *ExperienceRepository) Append(ctx context.Context, rec *models.ExperienceRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("append experience record: %w", err)
	}
	return nil
}

func (r *ExperienceRepository) ListBySkill(ctx context.Context, owner, skillKey string, limit int) ([]models.ExperienceRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var recs []models.ExperienceRecord
	err := r.db.WithContext(ctx).
		Where("external_user_id = ? AND skill_key = ?", owner, skillKey).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list experience records: %w", err)
	}
	return recs, nil
}
