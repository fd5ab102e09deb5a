// progression/curve.go
package progression

import "math"

// BaseXPPerLevel anchors the requirement curve: level 1 requires exactly 100 XP.
const BaseXPPerLevel = 100

// XPRequiredForLevel returns the XP cost of a single level on the requirement curve.
// L_n = floor(BaseXPPerLevel * n^1.5). Non-positive levels cost 0.
func XPRequiredForLevel(level int) int64 {
	if level <= 0 {
		return 0
	}
	return int64(float64(BaseXPPerLevel) * math.Pow(float64(level), 1.5))
}

// XPToNextLevelDisplay is the ceil-rounded variant of XPRequiredForLevel used for the
// "XP needed" number shown to users (e.g. 283 for level 2 instead of 282). Display
// only — every decision the engine makes uses the floor curve above.
func XPToNextLevelDisplay(level int) int64 {
	if level <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(BaseXPPerLevel) * math.Pow(float64(level), 1.5)))
}

// CumulativeXPForLevel returns the total XP spent to clear levels 1..level.
func CumulativeXPForLevel(level int) int64 {
	if level <= 0 {
		return 0
	}
	var total int64
	for n := 1; n <= level; n++ {
		total += XPRequiredForLevel(n)
	}
	return total
}

// LevelFromCumulativeXP maps a cumulative XP total to a level: the largest L >= 1 with
// CumulativeXPForLevel(L) <= totalXP. Totals below the first threshold clamp to 1.
func LevelFromCumulativeXP(totalXP int64) int {
	if totalXP <= 0 {
		return 1
	}
	level := 1
	cum := XPRequiredForLevel(1)
	if totalXP < cum {
		return 1
	}
	for {
		next := cum + XPRequiredForLevel(level+1)
		if next > totalXP {
			return level
		}
		cum = next
		level++
	}
}

// ProgressToNextLevelPercent reports how far xpIntoLevel reaches toward the next
// level's requirement, as an integer percentage clamped to [0,100]. Safe on garbage
// input (negative XP, NaN, bad levels) — clamps instead of erroring.
func ProgressToNextLevelPercent(level int, xpIntoLevel float64) int {
	if level < 1 {
		level = 1
	}
	if math.IsNaN(xpIntoLevel) || xpIntoLevel <= 0 {
		return 0
	}
	required := XPRequiredForLevel(level + 1)
	if required <= 0 {
		return 0
	}
	pct := xpIntoLevel / float64(required) * 100
	if pct >= 100 {
		return 100
	}
	return int(math.Round(pct))
}
