package repository

import (
	"context"
	"fmt"

	"life-progression-system/models"

	"gorm.io/gorm"
)

// ProfileRepository persists account-wide progression rows.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns the profile or nil when the user has no row yet.
func (r *ProfileRepository) Get(ctx context.Context, owner string) (*models.UserProfile, error) {
	var prof models.UserProfile
	err := r.db.WithContext(ctx).Where("external_user_id = ?", owner).First(&prof).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &prof, nil
}

func (r *ProfileRepository) Create(ctx context.Context, prof *models.UserProfile) error {
	if err := r.db.WithContext(ctx).Create(prof).Error; err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Save(ctx context.Context, prof *models.UserProfile) error {
	if err := r.db.WithContext(ctx).Save(prof).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
