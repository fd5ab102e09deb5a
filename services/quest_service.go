// services/quest_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"life-progression-system/models"
	"life-progression-system/progression"

	"github.com/google/uuid"
)

// Workflow rejection errors — no mutation happened when one of these comes back.
var (
	ErrQuestNotFound = errors.New("quest not found")
	ErrForbidden     = errors.New("quest not owned by caller")
	ErrInvalidState  = errors.New("quest is not active")
	ErrValidation    = errors.New("invalid request")
)

// Per-entity stores consumed by the workflow. The gorm implementations live in
// repository/; tests can swap in anything that satisfies these.
type QuestStore interface {
	Get(ctx context.Context, id string) (*models.Quest, error)
	Create(ctx context.Context, quest *models.Quest) error
	ListByOwner(ctx context.Context, owner string) ([]models.Quest, error)
	UpdateWhileActive(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	AppendAction(ctx context.Context, entry *models.QuestActionEntry) error
	ListActions(ctx context.Context, questID string) ([]models.QuestActionEntry, error)
}

type FactionStatStore interface {
	Get(ctx context.Context, owner, factionID string) (*models.FactionStat, error)
	Upsert(ctx context.Context, stat *models.FactionStat) error
}

type SkillStatStore interface {
	Get(ctx context.Context, owner, skillKey string) (*models.SkillStat, error)
	Upsert(ctx context.Context, stat *models.SkillStat) error
}

type ProfileStore interface {
	Get(ctx context.Context, owner string) (*models.UserProfile, error)
	Create(ctx context.Context, prof *models.UserProfile) error
	Save(ctx context.Context, prof *models.UserProfile) error
}

type ActivityWriter interface {
	Append(ctx context.Context, entry *models.ActivityLogEntry) error
}

type ExperienceWriter interface {
	Append(ctx context.Context, rec *models.ExperienceRecord) error
}

// QuestService drives the quest lifecycle and the XP fan-out on completion.
type QuestService struct {
	Quests     QuestStore
	Factions   FactionStatStore
	Skills     SkillStatStore
	Profiles   ProfileStore
	Activity   ActivityWriter
	Experience ExperienceWriter
}

func NewQuestService(
	quests QuestStore,
	factions FactionStatStore,
	skills SkillStatStore,
	profiles ProfileStore,
	activity ActivityWriter,
	experience ExperienceWriter,
) *QuestService {
	return &QuestService{
		Quests:     quests,
		Factions:   factions,
		Skills:     skills,
		Profiles:   profiles,
		Activity:   activity,
		Experience: experience,
	}
}

// QuestActionResult is what the boundary reports back to the caller.
type QuestActionResult struct {
	Quest     *models.Quest `json:"quest"`
	Completed bool          `json:"completed"`
	XPAwarded int64         `json:"xp_awarded,omitempty"` // nominal reward, only set on completion
}

// CreateQuest registers a new quest in 'active' status.
func (s *QuestService) CreateQuest(ctx context.Context, quest *models.Quest) error {
	if quest.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if quest.RequiredActions < 1 {
		quest.RequiredActions = 1
	}
	if quest.XPReward < 0 {
		return fmt.Errorf("%w: xp_reward must not be negative", ErrValidation)
	}
	for _, factionID := range quest.TargetFactionIDs {
		if !models.IsValidFaction(factionID) {
			return fmt.Errorf("%w: unknown faction %q", ErrValidation, factionID)
		}
	}
	quest.ID = uuid.NewString()
	quest.Status = models.QuestStatusActive
	quest.CompletedActions = 0
	quest.Progress = 0
	return s.Quests.Create(ctx, quest)
}

func (s *QuestService) ListQuests(ctx context.Context, owner string) ([]models.Quest, error) {
	return s.Quests.ListByOwner(ctx, owner)
}

// ApplyQuestAction applies increment/decrement/complete to a quest. When the action
// pushes the quest over its required count the XP fan-out runs exactly once:
//
//	audit entry → profile XP → per-faction XP → per-skill XP → activity entry
//
// The status transition itself is a conditional write guarded by status='active', so
// two racing callers cannot both trigger the fan-out. Individual fan-out failures are
// logged and swallowed — the quest stays completed and the caller still gets a
// success; only a failed status write aborts the whole call.
func (s *QuestService) ApplyQuestAction(ctx context.Context, questID, owner string, action models.QuestAction, description string) (*QuestActionResult, error) {
	quest, err := s.Quests.Get(ctx, questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, ErrQuestNotFound
	}
	if quest.ExternalUserID != owner {
		return nil, ErrForbidden
	}
	if quest.Status != models.QuestStatusActive {
		return nil, fmt.Errorf("%w (status: %s)", ErrInvalidState, quest.Status)
	}
	now := time.Now()
	if quest.ExpiresAt != nil && now.After(*quest.ExpiresAt) {
		return nil, fmt.Errorf("%w (expired at %s)", ErrInvalidState, quest.ExpiresAt.Format(time.RFC3339))
	}

	completed := quest.CompletedActions
	switch action {
	case models.QuestActionIncrement:
		if completed < quest.RequiredActions {
			completed++
		}
	case models.QuestActionDecrement:
		if completed > 0 {
			completed--
		}
	case models.QuestActionComplete:
		completed = quest.RequiredActions
	default:
		return nil, fmt.Errorf("%w: action must be increment, decrement or complete", ErrValidation)
	}

	progress := int(math.Round(float64(completed) * 100 / float64(quest.RequiredActions)))

	if completed < quest.RequiredActions {
		rows, err := s.Quests.UpdateWhileActive(ctx, quest.ID, map[string]interface{}{
			"completed_actions": completed,
			"progress":          progress,
		})
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			// Someone else completed or failed the quest between our read and write.
			return nil, fmt.Errorf("%w (quest left active state)", ErrInvalidState)
		}
		quest.CompletedActions = completed
		quest.Progress = progress

		if err := s.Quests.AppendAction(ctx, &models.QuestActionEntry{
			QuestID:        quest.ID,
			ExternalUserID: owner,
			Action:         action,
			Description:    description,
		}); err != nil {
			log.Printf("⚠️ quest %s: audit append failed: %v", quest.ID, err)
		}

		return &QuestActionResult{Quest: quest, Completed: false}, nil
	}

	// Completing transition. The conditional write both persists the terminal state
	// and claims the fan-out: zero rows means a concurrent caller got there first,
	// and no XP is awarded twice.
	rows, err := s.Quests.UpdateWhileActive(ctx, quest.ID, map[string]interface{}{
		"status":            models.QuestStatusCompleted,
		"completed_actions": quest.RequiredActions,
		"progress":          100,
		"completed_at":      now,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w (quest left active state)", ErrInvalidState)
	}
	quest.Status = models.QuestStatusCompleted
	quest.CompletedActions = quest.RequiredActions
	quest.Progress = 100
	quest.CompletedAt = &now

	s.fanOutCompletion(ctx, quest, action, description)

	return &QuestActionResult{Quest: quest, Completed: true, XPAwarded: quest.XPReward}, nil
}

// fanOutCompletion awards the quest reward to the profile, every target faction and
// every target skill, and logs the event. Each step is best-effort: a failure is
// logged and the remaining steps still run (degraded completion).
func (s *QuestService) fanOutCompletion(ctx context.Context, quest *models.Quest, action models.QuestAction, description string) {
	// 1. Audit record for the action that caused completion.
	if err := s.Quests.AppendAction(ctx, &models.QuestActionEntry{
		QuestID:        quest.ID,
		ExternalUserID: quest.ExternalUserID,
		Action:         action,
		Description:    description,
	}); err != nil {
		log.Printf("⚠️ quest %s: audit append failed: %v", quest.ID, err)
	}

	// 2. Profile total XP (read-modify-write, level is a cached projection).
	if err := s.awardProfileXP(ctx, quest.ExternalUserID, quest.XPReward); err != nil {
		log.Printf("⚠️ quest %s: profile XP award failed: %v", quest.ID, err)
	}

	// 3. Factions: reward split evenly so total issuance stays bounded by XPReward.
	if n := len(quest.TargetFactionIDs); n > 0 {
		xpPerFaction := splitXP(quest.XPReward, n)
		for _, factionID := range quest.TargetFactionIDs {
			if err := s.awardFactionXP(ctx, quest.ExternalUserID, factionID, xpPerFaction); err != nil {
				log.Printf("⚠️ quest %s: faction %s XP award failed: %v", quest.ID, factionID, err)
			}
		}
	}

	// 4. Skills: same split, remainder-XP bookkeeping, skipped when untracked.
	if n := len(quest.TargetSkillKeys); n > 0 {
		xpPerSkill := splitXP(quest.XPReward, n)
		for _, skillKey := range quest.TargetSkillKeys {
			if err := s.awardSkillXP(ctx, quest.ExternalUserID, quest.ID, skillKey, xpPerSkill); err != nil {
				log.Printf("⚠️ quest %s: skill %s XP award failed: %v", quest.ID, skillKey, err)
			}
		}
	}

	// 5. One feed entry summarizing the completion.
	if err := s.Activity.Append(ctx, &models.ActivityLogEntry{
		ExternalUserID:    quest.ExternalUserID,
		ActivityType:      models.ActivityQuestCompleted,
		RelatedEntityType: "quest",
		RelatedEntityID:   quest.ID,
		XPAmount:          quest.XPReward,
		Description:       quest.Title,
	}); err != nil {
		log.Printf("⚠️ quest %s: activity log append failed: %v", quest.ID, err)
	}

	log.Printf("🏆 Quest completed: %s → %s (+%d XP, %d factions, %d skills)",
		quest.ExternalUserID, quest.Title, quest.XPReward,
		len(quest.TargetFactionIDs), len(quest.TargetSkillKeys))
}

// splitXP divides a reward evenly across n targets, rounding to the nearest point.
func splitXP(reward int64, n int) int64 {
	return int64(math.Round(float64(reward) / float64(n)))
}

func (s *QuestService) awardProfileXP(ctx context.Context, owner string, xp int64) error {
	prof, err := s.Profiles.Get(ctx, owner)
	if err != nil {
		return err
	}
	if prof == nil {
		prof = &models.UserProfile{
			ID:             uuid.NewString(),
			ExternalUserID: owner,
			TotalXP:        0,
			Level:          1,
		}
		if err := s.Profiles.Create(ctx, prof); err != nil {
			return err
		}
	}

	prof.TotalXP += xp
	prof.QuestsCompleted++
	newLevel := progression.LevelFromCumulativeXP(prof.TotalXP)
	if newLevel > prof.Level {
		now := time.Now()
		prof.Level = newLevel
		prof.LastLevelUpAt = &now
	}
	return s.Profiles.Save(ctx, prof)
}

func (s *QuestService) awardFactionXP(ctx context.Context, owner, factionID string, xp int64) error {
	stat, err := s.Factions.Get(ctx, owner, factionID)
	if err != nil {
		return err
	}
	if stat == nil {
		// First XP in this faction — start from the initial row.
		stat = &models.FactionStat{
			ID:             uuid.NewString(),
			ExternalUserID: owner,
			FactionID:      factionID,
			Level:          1,
		}
	}
	stat.TotalXP += xp
	stat.WeeklyXP += xp
	stat.MonthlyXP += xp
	stat.Level = progression.LevelFromCumulativeXP(stat.TotalXP)
	return s.Factions.Upsert(ctx, stat)
}

func (s *QuestService) awardSkillXP(ctx context.Context, owner, questID, skillKey string, xp int64) error {
	if err := s.Experience.Append(ctx, &models.ExperienceRecord{
		ExternalUserID: owner,
		SkillKey:       skillKey,
		XPAmount:       xp,
		Source:         "quest_" + questID,
	}); err != nil {
		log.Printf("⚠️ skill %s: experience record append failed: %v", skillKey, err)
	}

	stat, err := s.Skills.Get(ctx, owner, skillKey)
	if err != nil {
		return err
	}
	if stat == nil {
		// Untracked skill — the reward names it but the user never added it.
		return nil
	}
	res := progression.AddXP(stat.Level, stat.CurrentXP, xp)
	stat.Level = res.NewLevel
	stat.CurrentXP = res.NewXP
	return s.Skills.Upsert(ctx, stat)
}

// GetQuestActionHistory returns the quest's audit trail, oldest first. Pure read.
func (s *QuestService) GetQuestActionHistory(ctx context.Context, questID, owner string) ([]models.QuestActionEntry, error) {
	quest, err := s.Quests.Get(ctx, questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, ErrQuestNotFound
	}
	if quest.ExternalUserID != owner {
		return nil, ErrForbidden
	}
	return s.Quests.ListActions(ctx, questID)
}
