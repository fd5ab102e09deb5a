package progression

import "testing"

func TestLevelTierBrackets(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{-2, "Beginner"},
		{1, "Beginner"},
		{24, "Beginner"},
		{25, "Advanced"},
		{49, "Advanced"},
		{50, "Expert"},
		{74, "Expert"},
		{75, "Master"},
		{99, "Master"},
		{100, "Legendary"},
		{250, "Legendary"},
	}
	for _, c := range cases {
		if got := LevelTier(c.level); got.Name != c.want {
			t.Errorf("LevelTier(%d) = %q, want %q", c.level, got.Name, c.want)
		}
	}
}

func TestFormatXPCompact(t *testing.T) {
	cases := []struct {
		xp   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999999, "1000.0K"},
		{1_000_000, "1.0M"},
		{2_350_000, "2.4M"},
	}
	for _, c := range cases {
		if got := FormatXPCompact(c.xp); got != c.want {
			t.Errorf("FormatXPCompact(%d) = %q, want %q", c.xp, got, c.want)
		}
	}
}
