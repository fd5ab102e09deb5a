package models

import "time"

type QuestStatus string

const (
	QuestStatusActive    QuestStatus = "active"
	QuestStatusCompleted QuestStatus = "completed"
	QuestStatusFailed    QuestStatus = "failed"
	QuestStatusArchived  QuestStatus = "archived"
)

type QuestAction string

const (
	QuestActionIncrement QuestAction = "increment"
	QuestActionDecrement QuestAction = "decrement"
	QuestActionComplete  QuestAction = "complete"
)

// Quest: a goal-like task yielding an XP reward on completion.
// Invariant: 0 <= CompletedActions <= RequiredActions; status flips to completed
// exactly when CompletedActions reaches RequiredActions.
type Quest struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"index;not null" json:"external_user_id"`

	Title       string      `gorm:"not null" json:"title"`
	Description string      `json:"description,omitempty"`
	Status      QuestStatus `gorm:"type:varchar(16);default:'active';index" json:"status"`

	RequiredActions  int `gorm:"default:1" json:"required_actions"`
	CompletedActions int `gorm:"default:0" json:"completed_actions"`
	Progress         int `gorm:"default:0" json:"progress"` // round(100 * completed/required)

	XPReward int64 `gorm:"default:0" json:"xp_reward"`

	// Completion fan-out targets; the reward is split evenly across each set so total
	// issuance stays bounded by XPReward no matter how many targets a quest names.
	TargetFactionIDs []string `gorm:"serializer:json" json:"target_faction_ids"`
	TargetSkillKeys  []string `gorm:"serializer:json" json:"target_skill_keys"`

	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Timestamps
}

// QuestActionEntry: append-only audit record of each action applied to a quest
type QuestActionEntry struct {
	ID             uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestID        string      `gorm:"index;not null" json:"quest_id"`
	ExternalUserID string      `gorm:"index;not null" json:"external_user_id"`
	Action         QuestAction `gorm:"type:varchar(16);not null" json:"action"`
	Description    string      `json:"description,omitempty"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
}
