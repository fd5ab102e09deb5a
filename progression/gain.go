// progression/gain.go
package progression

// GainResult describes the outcome of adding XP to a remainder-tracked record
// (current XP counts from the start of the current level, not from zero).
type GainResult struct {
	NewLevel     int   `json:"new_level"`
	NewXP        int64 `json:"new_xp"`
	LeveledUp    bool  `json:"leveled_up"`
	LevelsGained int   `json:"levels_gained"`
}

// AddXP folds xpGained into a level + remainder pair, carrying over as many level-ups
// as the accumulated remainder pays for. Handles arbitrarily large gains in
// O(levels gained) iterations; negative inputs are clamped to keep the engine total.
func AddXP(currentLevel int, currentXP, xpGained int64) GainResult {
	if currentLevel < 1 {
		currentLevel = 1
	}
	if currentXP < 0 {
		currentXP = 0
	}
	if xpGained < 0 {
		xpGained = 0
	}

	level := currentLevel
	xp := currentXP + xpGained
	for {
		required := XPRequiredForLevel(level + 1)
		if required <= 0 || xp < required {
			break
		}
		xp -= required
		level++
	}

	gained := level - currentLevel
	return GainResult{
		NewLevel:     level,
		NewXP:        xp,
		LeveledUp:    gained > 0,
		LevelsGained: gained,
	}
}
