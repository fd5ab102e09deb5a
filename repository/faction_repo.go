package repository

import (
	"context"
	"fmt"

	"life-progression-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FactionStatRepository persists per-user faction XP rows.
type FactionStatRepository struct {
	db *gorm.DB
}

func NewFactionStatRepository(db *gorm.DB) *FactionStatRepository {
	return &FactionStatRepository{db: db}
}

// Get returns the stat row or nil when the user has never earned XP in the faction.
func (r *FactionStatRepository) Get(ctx context.Context, owner, factionID string) (*models.FactionStat, error) {
	var stat models.FactionStat
	err := r.db.WithContext(ctx).
		Where("external_user_id = ? AND faction_id = ?", owner, factionID).
		First(&stat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load faction stat: %w", err)
	}
	return &stat, nil
}

// Upsert inserts or replaces the row keyed by (owner, faction).
func (r *FactionStatRepository) Upsert(ctx context.Context, stat *models.FactionStat) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_user_id"}, {Name: "faction_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_xp", "weekly_xp", "monthly_xp", "level", "updated_at",
		}),
	}).Create(stat).Error
	if err != nil {
		return fmt.Errorf("upsert faction stat: %w", err)
	}
	return nil
}

func (r *FactionStatRepository) ListByOwner(ctx context.Context, owner string) ([]models.FactionStat, error) {
	var stats []models.FactionStat
	err := r.db.WithContext(ctx).
		Where("external_user_id = ?", owner).
		Order("total_xp DESC").
		Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("list faction stats: %w", err)
	}
	return stats, nil
}

// ResetWeekly zeroes every weekly counter (scheduler, Monday 00:00).
func (r *FactionStatRepository) ResetWeekly(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FactionStat{}).
		Where("weekly_xp > 0").
		Update("weekly_xp", 0)
	if res.Error != nil {
		return 0, fmt.Errorf("reset weekly xp: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ResetMonthly zeroes every monthly counter (scheduler, 1st of the month).
func (r *FactionStatRepository) ResetMonthly(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FactionStat{}).
		Where("monthly_xp > 0").
		Update("monthly_xp", 0)
	if res.Error != nil {
		return 0, fmt.Errorf("reset monthly xp: %w", res.Error)
	}
	return res.RowsAffected, nil
}
