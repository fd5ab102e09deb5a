package repository

import (
	"context"
	"fmt"
	"time"

	"life-progression-system/models"

	"gorm.io/gorm"
)

// QuestRepository persists quests and their append-only action audit trail.
type QuestRepository struct {
	db *gorm.DB
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{db: db}
}

// Get returns the quest or nil when no row exists.
func (r *QuestRepository) Get(ctx context.Context, id string) (*models.Quest, error) {
	var quest models.Quest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&quest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load quest: %w", err)
	}
	return &quest, nil
}

func (r *QuestRepository) Create(ctx context.Context, quest *models.Quest) error {
	if err := r.db.WithContext(ctx).Create(quest).Error; err != nil {
		return fmt.Errorf("create quest: %w", err)
	}
	return nil
}

func (r *QuestRepository) ListByOwner(ctx context.Context, owner string) ([]models.Quest, error) {
	var quests []models.Quest
	err := r.db.WithContext(ctx).
		Where("external_user_id = ?", owner).
		Order("created_at DESC").
		Find(&quests).Error
	if err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}
	return quests, nil
}

// UpdateWhileActive applies fields to the quest only while its status is still
// 'active' and reports how many rows matched. A zero count means another caller
// already moved the quest out of 'active' — the conditional write is what closes
// the concurrent-completion race.
func (r *QuestRepository) UpdateWhileActive(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Quest{}).
		Where("id = ? AND status = ?", id, models.QuestStatusActive).
		Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("update quest: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// FailExpired flips every active quest past its deadline to failed (no XP fan-out).
func (r *QuestRepository) FailExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Quest{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", models.QuestStatusActive, now).
		Update("status", models.QuestStatusFailed)
	if res.Error != nil {
		return 0, fmt.Errorf("fail expired quests: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *QuestRepository) AppendAction(ctx context.Context, entry *models.QuestActionEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append quest action: %w", err)
	}
	return nil
}

// ListActions returns a quest's audit trail oldest first.
func (r *QuestRepository) ListActions(ctx context.Context, questID string) ([]models.QuestActionEntry, error) {
	var entries []models.QuestActionEntry
	err := r.db.WithContext(ctx).
		Where("quest_id = ?", questID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list quest actions: %w", err)
	}
	return entries, nil
}
