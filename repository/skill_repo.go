package repository

import (
	"context"
	"fmt"

	"life-progression-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SkillRepository persists the shared skill catalog.
type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) Get(ctx context.Context, key string) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&skill).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load skill: %w", err)
	}
	return &skill, nil
}

func (r *SkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return fmt.Errorf("create skill: %w", err)
	}
	return nil
}

func (r *SkillRepository) List(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).Order("name ASC").Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// SkillStatRepository persists per-user skill progress (remainder-XP convention).
type SkillStatRepository struct {
	db *gorm.DB
}

func NewSkillStatRepository(db *gorm.DB) *SkillStatRepository {
	return &SkillStatRepository{db: db}
}

// Get returns the stat row or nil when the user does not track the skill.
func (r *SkillStatRepository) Get(ctx context.Context, owner, skillKey string) (*models.SkillStat, error) {
	var stat models.SkillStat
	err := r.db.WithContext(ctx).
		Where("external_user_id = ? AND skill_key = ?", owner, skillKey).
		First(&stat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load skill stat: %w", err)
	}
	return &stat, nil
}

// Upsert inserts or replaces the row keyed by (owner, skill).
func (r *SkillStatRepository) Upsert(ctx context.Context, stat *models.SkillStat) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_user_id"}, {Name: "skill_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_xp", "level", "updated_at",
		}),
	}).Create(stat).Error
	if err != nil {
		return fmt.Errorf("upsert skill stat: %w", err)
	}
	return nil
}

func (r *SkillStatRepository) ListByOwner(ctx context.Context, owner string) ([]models.SkillStat, error) {
	var stats []models.SkillStat
	err := r.db.WithContext(ctx).
		Where("external_user_id = ?", owner).
		Order("level DESC, current_xp DESC").
		Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("list skill stats: %w", err)
	}
	return stats, nil
}
