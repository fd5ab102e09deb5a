// services/progression_service.go
package services

import (
	"context"
	"log"
	"time"

	"life-progression-system/models"
	"life-progression-system/progression"
	"life-progression-system/repository"

	"github.com/google/uuid"
)

// ProgressionService serves the read side of progression (dashboard summaries) and
// the admin XP grant path. All arithmetic goes through the progression package.
type ProgressionService struct {
	Profiles ProfileStore
	Factions *repository.FactionStatRepository
	Skills   *repository.SkillStatRepository
	Activity ActivityWriter
}

func NewProgressionService(
	profiles ProfileStore,
	factions *repository.FactionStatRepository,
	skills *repository.SkillStatRepository,
	activity ActivityWriter,
) *ProgressionService {
	return &ProgressionService{
		Profiles: profiles,
		Factions: factions,
		Skills:   skills,
		Activity: activity,
	}
}

// EnsureProfile ensures a UserProfile row exists (idempotent)
func (s *ProgressionService) EnsureProfile(ctx context.Context, owner string) (*models.UserProfile, error) {
	prof, err := s.Profiles.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if prof != nil {
		return prof, nil
	}
	prof = &models.UserProfile{
		ID:             uuid.NewString(),
		ExternalUserID: owner,
		TotalXP:        0,
		Level:          1,
	}
	if err := s.Profiles.Create(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// GrantXP adds XP to the profile total outside the quest flow (admin endpoint),
// recomputes the cached level and logs the grant to the activity feed.
func (s *ProgressionService) GrantXP(ctx context.Context, owner string, xp int64, reason string) (*models.UserProfile, error) {
	prof, err := s.EnsureProfile(ctx, owner)
	if err != nil {
		return nil, err
	}

	prof.TotalXP += xp
	newLevel := progression.LevelFromCumulativeXP(prof.TotalXP)
	leveledUp := newLevel > prof.Level
	if leveledUp {
		now := time.Now()
		prof.Level = newLevel
		prof.LastLevelUpAt = &now
	}
	if err := s.Profiles.Save(ctx, prof); err != nil {
		return nil, err
	}

	if err := s.Activity.Append(ctx, &models.ActivityLogEntry{
		ExternalUserID: owner,
		ActivityType:   models.ActivityXPGranted,
		XPAmount:       xp,
		Description:    reason,
	}); err != nil {
		log.Printf("⚠️ xp grant for %s: activity log append failed: %v", owner, err)
	}

	log.Printf("🎮 XP granted: %s → XP=%d, Lvl=%d (reason: %s)", owner, prof.TotalXP, prof.Level, reason)
	return prof, nil
}

// FactionProgress is one faction row of the dashboard summary.
type FactionProgress struct {
	Faction         models.Faction   `json:"faction"`
	TotalXP         int64            `json:"total_xp"`
	TotalXPCompact  string           `json:"total_xp_compact"`
	WeeklyXP        int64            `json:"weekly_xp"`
	MonthlyXP       int64            `json:"monthly_xp"`
	Level           int              `json:"level"`
	Tier            progression.Tier `json:"tier"`
	ProgressPercent int              `json:"progress_percent"`
	XPToNextLevel   int64            `json:"xp_to_next_level"`
}

// UserProgress is the full dashboard summary for one user.
type UserProgress struct {
	Profile         *models.UserProfile `json:"profile"`
	Tier            progression.Tier    `json:"tier"`
	TotalXPCompact  string              `json:"total_xp_compact"`
	ProgressPercent int                 `json:"progress_percent"`
	XPToNextLevel   int64               `json:"xp_to_next_level"`
	Factions        []FactionProgress   `json:"factions"`
	Skills          []models.SkillStat  `json:"skills"`
}

// GetUserProgress assembles the profile, per-faction and per-skill view. Factions
// without a stat row yet are reported at level 1 with zero XP so the dashboard
// always shows all seven.
func (s *ProgressionService) GetUserProgress(ctx context.Context, owner string) (*UserProgress, error) {
	prof, err := s.EnsureProfile(ctx, owner)
	if err != nil {
		return nil, err
	}

	stats, err := s.Factions.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	byFaction := make(map[string]models.FactionStat, len(stats))
	for _, st := range stats {
		byFaction[st.FactionID] = st
	}

	factions := make([]FactionProgress, 0, len(models.Factions))
	for _, f := range models.Factions {
		st := byFaction[f.ID]
		level := st.Level
		if level < 1 {
			level = 1
		}
		intoLevel := st.TotalXP - progression.CumulativeXPForLevel(level)
		factions = append(factions, FactionProgress{
			Faction:         f,
			TotalXP:         st.TotalXP,
			TotalXPCompact:  progression.FormatXPCompact(st.TotalXP),
			WeeklyXP:        st.WeeklyXP,
			MonthlyXP:       st.MonthlyXP,
			Level:           level,
			Tier:            progression.LevelTier(level),
			ProgressPercent: progression.ProgressToNextLevelPercent(level, float64(intoLevel)),
			XPToNextLevel:   progression.XPToNextLevelDisplay(level + 1),
		})
	}

	skills, err := s.Skills.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	intoLevel := prof.TotalXP - progression.CumulativeXPForLevel(prof.Level)
	return &UserProgress{
		Profile:         prof,
		Tier:            progression.LevelTier(prof.Level),
		TotalXPCompact:  progression.FormatXPCompact(prof.TotalXP),
		ProgressPercent: progression.ProgressToNextLevelPercent(prof.Level, float64(intoLevel)),
		XPToNextLevel:   progression.XPToNextLevelDisplay(prof.Level + 1),
		Factions:        factions,
		Skills:          skills,
	}, nil
}
