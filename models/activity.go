package models

import "time"

type ActivityType string

const (
	ActivityQuestCompleted ActivityType = "quest_completed"
	ActivityXPGranted      ActivityType = "xp_granted"
	ActivityLevelUp        ActivityType = "level_up"
)

// ActivityLogEntry: append-only feed of XP-relevant events. Never mutated or deleted
// by request paths; old entries are exported and pruned by the archive worker only.
type ActivityLogEntry struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalUserID string       `gorm:"index;not null" json:"external_user_id"`
	ActivityType   ActivityType `gorm:"type:varchar(32);not null" json:"activity_type"`

	RelatedEntityType string `json:"related_entity_type,omitempty"` // "quest", "skill", ...
	RelatedEntityID   string `gorm:"index" json:"related_entity_id,omitempty"`

	XPAmount    int64     `json:"xp_amount" gorm:"default:0"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `gorm:"autoCreateTime;index" json:"occurred_at"`
}

// ExperienceRecord: append-only log of per-skill XP gains (one row per skill per award)
type ExperienceRecord struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalUserID string    `gorm:"index;not null" json:"external_user_id"`
	SkillKey       string    `gorm:"index;not null" json:"skill_key"`
	XPAmount       int64     `gorm:"not null" json:"xp_amount"`
	Source         string    `json:"source,omitempty"` // e.g., "quest_<id>"
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
