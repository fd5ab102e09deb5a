package models

// Faction is a thematic life-domain bucket accumulating its own XP/level.
// The set is fixed — users cannot create factions.
type Faction struct {
	ID    string `json:"id"`    // e.g., "career"
	Name  string `json:"name"`  // "Career"
	Emoji string `json:"emoji"` // dashboard icon
}

// Factions: the seven life domains, in display order.
var Factions = []Faction{
	{ID: "career", Name: "Career", Emoji: "💼"},
	{ID: "body", Name: "Body", Emoji: "💪"},
	{ID: "mind", Name: "Mind", Emoji: "🧠"},
	{ID: "finance", Name: "Finance", Emoji: "💰"},
	{ID: "social", Name: "Social", Emoji: "🤝"},
	{ID: "knowledge", Name: "Knowledge", Emoji: "📚"},
	{ID: "hobby", Name: "Hobby", Emoji: "🎨"},
}

// IsValidFaction reports whether id names one of the seven factions.
func IsValidFaction(id string) bool {
	for _, f := range Factions {
		if f.ID == id {
			return true
		}
	}
	return false
}

// FactionStat holds one user's accumulated XP in one faction.
// Level is always derivable from TotalXP (cumulative convention) — cached, not owned.
type FactionStat struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex:idx_faction_owner;not null" json:"external_user_id"`
	FactionID      string `gorm:"uniqueIndex:idx_faction_owner;not null" json:"faction_id"`

	TotalXP   int64 `json:"total_xp" gorm:"default:0"`
	WeeklyXP  int64 `json:"weekly_xp" gorm:"default:0"`  // reset by scheduler every Monday
	MonthlyXP int64 `json:"monthly_xp" gorm:"default:0"` // reset by scheduler on the 1st
	Level     int   `json:"level" gorm:"default:1"`

	Timestamps
}
