package progression

import "testing"

func TestAddXPExactCarry(t *testing.T) {
	res := AddXP(1, 0, XPRequiredForLevel(2))
	if res.NewLevel != 2 || res.NewXP != 0 || !res.LeveledUp || res.LevelsGained != 1 {
		t.Fatalf("exact carry: got %+v", res)
	}
}

func TestAddXPRemainderCarriesOver(t *testing.T) {
	res := AddXP(1, 0, XPRequiredForLevel(2)+10)
	if res.NewLevel != 2 || res.NewXP != 10 {
		t.Fatalf("carry remainder: got %+v", res)
	}
}

func TestAddXPMultiLevelJump(t *testing.T) {
	res := AddXP(1, 0, 10000)
	if res.LevelsGained <= 1 {
		t.Fatalf("expected multi-level jump, got %+v", res)
	}
	if !res.LeveledUp {
		t.Fatalf("LeveledUp should be true, got %+v", res)
	}
	if res.NewXP < 0 || res.NewXP >= XPRequiredForLevel(res.NewLevel+1) {
		t.Fatalf("remainder out of range after jump: %+v", res)
	}
}

func TestAddXPNoLevelUp(t *testing.T) {
	res := AddXP(5, 100, 50)
	if res.NewLevel != 5 || res.NewXP != 150 || res.LeveledUp || res.LevelsGained != 0 {
		t.Fatalf("no-op gain: got %+v", res)
	}
}

func TestAddXPClampsBadInput(t *testing.T) {
	res := AddXP(-3, -50, -10)
	if res.NewLevel != 1 || res.NewXP != 0 || res.LeveledUp {
		t.Fatalf("clamped input: got %+v", res)
	}
}

func TestAddXPExistingRemainderCounts(t *testing.T) {
	// 200 banked + 82 gained = 282, exactly one level.
	res := AddXP(1, 200, 82)
	if res.NewLevel != 2 || res.NewXP != 0 || res.LevelsGained != 1 {
		t.Fatalf("banked remainder: got %+v", res)
	}
}
