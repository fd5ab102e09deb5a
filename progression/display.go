// progression/display.go
package progression

import (
	"fmt"
	"strconv"
)

// Tier is a presentational bracket for a level (no gameplay meaning).
type Tier struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TierThresholds: minimum level per tier, highest first.
var TierThresholds = []struct {
	MinLevel int
	Tier     Tier
}{
	{100, Tier{Name: "Legendary", Color: "gold"}},
	{75, Tier{Name: "Master", Color: "purple"}},
	{50, Tier{Name: "Expert", Color: "red"}},
	{25, Tier{Name: "Advanced", Color: "blue"}},
	{1, Tier{Name: "Beginner", Color: "gray"}},
}

// LevelTier maps a level to its display tier. Levels below 1 clamp to Beginner.
func LevelTier(level int) Tier {
	for _, t := range TierThresholds {
		if level >= t.MinLevel {
			return t.Tier
		}
	}
	return TierThresholds[len(TierThresholds)-1].Tier
}

// FormatXPCompact renders an XP amount with K/M suffixes (one decimal place)
// for dashboard widgets.
func FormatXPCompact(xp int64) string {
	switch {
	case xp >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(xp)/1_000_000)
	case xp >= 1_000:
		return fmt.Sprintf("%.1fK", float64(xp)/1_000)
	default:
		return strconv.FormatInt(xp, 10)
	}
}
