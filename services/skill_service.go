// services/skill_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"life-progression-system/models"
	"life-progression-system/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SkillService manages the shared skill catalog and per-user skill tracking.
type SkillService struct {
	Skills *repository.SkillRepository
	Stats  *repository.SkillStatRepository

	titleCaser cases.Caser
}

func NewSkillService(skills *repository.SkillRepository, stats *repository.SkillStatRepository) *SkillService {
	return &SkillService{
		Skills:     skills,
		Stats:      stats,
		titleCaser: cases.Title(language.English),
	}
}

// CreateSkill adds a catalog entry. The key is a slug derived from the name
// ("Public Speaking" → "public-speaking"); creating the same skill twice returns
// the existing entry.
func (s *SkillService) CreateSkill(ctx context.Context, name, factionID string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: skill name is required", ErrValidation)
	}
	if factionID != "" && !models.IsValidFaction(factionID) {
		return nil, fmt.Errorf("%w: unknown faction %q", ErrValidation, factionID)
	}

	key := slug.Make(name)
	if key == "" {
		return nil, fmt.Errorf("%w: skill name produces an empty key", ErrValidation)
	}

	existing, err := s.Skills.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	skill := &models.Skill{
		Key:       key,
		Name:      s.titleCaser.String(name),
		FactionID: factionID,
	}
	if err := s.Skills.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.Skills.List(ctx)
}

// TrackSkill starts per-user progress for a catalog skill at level 1 / 0 XP.
// Quests only award skill XP to tracked skills.
func (s *SkillService) TrackSkill(ctx context.Context, owner, skillKey string) (*models.SkillStat, error) {
	skill, err := s.Skills.Get(ctx, skillKey)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, fmt.Errorf("%w: unknown skill %q", ErrValidation, skillKey)
	}

	stat, err := s.Stats.Get(ctx, owner, skillKey)
	if err != nil {
		return nil, err
	}
	if stat != nil {
		return stat, nil
	}

	stat = &models.SkillStat{
		ID:             uuid.NewString(),
		ExternalUserID: owner,
		SkillKey:       skillKey,
		CurrentXP:      0,
		Level:          1,
	}
	if err := s.Stats.Upsert(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

func (s *SkillService) ListTracked(ctx context.Context, owner string) ([]models.SkillStat, error) {
	return s.Stats.ListByOwner(ctx, owner)
}
