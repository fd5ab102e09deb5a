package models

// Skill: catalog entry (slug-keyed), shared across users
type Skill struct {
	Key       string `gorm:"primaryKey;size:100" json:"key"` // slug, e.g., "public-speaking"
	Name      string `gorm:"not null" json:"name"`           // "Public Speaking"
	FactionID string `gorm:"index" json:"faction_id"`        // home faction, e.g., "social"

	Timestamps
}

// SkillStat holds one user's progress in one skill.
// CurrentXP is remainder XP — counted from the start of the current level and
// carried over on level-up (not a cumulative total).
type SkillStat struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex:idx_skill_owner;not null" json:"external_user_id"`
	SkillKey       string `gorm:"uniqueIndex:idx_skill_owner;not null" json:"skill_key"`

	CurrentXP int64 `json:"current_xp" gorm:"default:0"`
	Level     int   `json:"level" gorm:"default:1"`

	Timestamps
}
