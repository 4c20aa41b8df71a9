package engine

import (
	"testing"
	"time"
)

func TestAwardXPNoOp(t *testing.T) {
	c := NewCompanion("main_user", "Frost", time.Now())
	c.Experience = 42

	for _, amount := range []int{0, -5} {
		got := AwardXP(c, amount)
		if got.Experience != 42 || got.Level != 1 {
			t.Fatalf("AwardXP(%d) mutated companion: level=%d xp=%d", amount, got.Level, got.Experience)
		}
	}
}

func TestAwardXPMultiLevelJump(t *testing.T) {
	c := NewCompanion("main_user", "Frost", time.Now())

	// 350 XP from level 1: 100 to level 2, 200 to level 3, 50 left over.
	got := AwardXP(c, 350)
	if got.Level != 3 {
		t.Fatalf("level=%d, want 3", got.Level)
	}
	if got.Experience != 50 {
		t.Fatalf("experience=%d, want 50", got.Experience)
	}
}

func TestAwardXPRestInvariant(t *testing.T) {
	cases := []struct {
		level, xp, amount int
	}{
		{1, 0, 1},
		{1, 99, 1},
		{1, 0, 10000},
		{4, 90, 15},
		{7, 650, 3},
		{20, 0, 99999},
	}
	for _, tc := range cases {
		c := NewCompanion("main_user", "Frost", time.Now())
		c.Level = tc.level
		c.Experience = tc.xp
		got := AwardXP(c, tc.amount)
		if got.Experience < 0 {
			t.Fatalf("level=%d xp=%d +%d: negative experience %d", tc.level, tc.xp, tc.amount, got.Experience)
		}
		if got.Experience >= XPToNextLevel(got.Level) {
			t.Fatalf("level=%d xp=%d +%d: experience %d >= %d at rest", tc.level, tc.xp, tc.amount, got.Experience, XPToNextLevel(got.Level))
		}
	}
}

func TestAwardXPEvolutionScenario(t *testing.T) {
	// A level 4 companion needs 400 XP to level. At 390 a 15 XP task tips it
	// over: level 5 with 5 XP left, crossing the cub -> juvenile threshold.
	c := NewCompanion("main_user", "Frost", time.Now())
	c.Level = 4
	c.Experience = 390

	got := AwardXP(c, 15)
	if got.Level != 5 || got.Experience != 5 {
		t.Fatalf("level=%d xp=%d, want level=5 xp=5", got.Level, got.Experience)
	}
	if got.Stage != string(StageJuvenile) {
		t.Fatalf("stage=%q, want juvenile", got.Stage)
	}
}

func TestAwardXPAccruesPointsAndHappiness(t *testing.T) {
	c := NewCompanion("main_user", "Frost", time.Now())
	c.Happiness = 98

	got := AwardXP(c, 30)
	if got.TotalPoints != 30 {
		t.Fatalf("totalPoints=%d, want 30", got.TotalPoints)
	}
	if got.Happiness != 100 {
		t.Fatalf("happiness=%v, want clamped to 100", got.Happiness)
	}
}

func TestStageForLevelTable(t *testing.T) {
	cases := []struct {
		level int
		want  Stage
	}{
		{1, StageCub},
		{4, StageCub},
		{5, StageJuvenile},
		{9, StageJuvenile},
		{10, StageAdolescent},
		{19, StageAdolescent},
		{20, StageAdult},
		{99, StageAdult},
	}
	for _, tc := range cases {
		if got := StageForLevel(tc.level); got != tc.want {
			t.Fatalf("StageForLevel(%d)=%q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestAdvanceStageMonotonic(t *testing.T) {
	// Replaying a lower level must not regress the stage.
	if got := AdvanceStage(StageAdolescent, 3); got != StageAdolescent {
		t.Fatalf("stage regressed to %q", got)
	}
	if got := AdvanceStage(StageCub, 10); got != StageAdolescent {
		t.Fatalf("stage=%q, want adolescent", got)
	}
	// An invalid stored stage falls forward to the level's stage.
	if got := AdvanceStage(Stage("unknown"), 5); got != StageJuvenile {
		t.Fatalf("stage=%q, want juvenile", got)
	}
}

func TestIsNewDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	if IsNewDay(now.Add(-2*time.Hour), now) {
		t.Fatalf("same morning counted as new day")
	}
	if !IsNewDay(now.AddDate(0, 0, -1), now) {
		t.Fatalf("yesterday not counted as new day")
	}
	if !IsNewDay(time.Time{}, now) {
		t.Fatalf("zero last timestamp should count as new day")
	}
	if IsNewDay(now.AddDate(0, 0, 1), now) {
		t.Fatalf("future timestamp counted as new day")
	}
}

func TestNextProgressionTitle(t *testing.T) {
	if got := NextProgressionTitle("Do 10 pushups", 20); got != "Do 20 pushups" {
		t.Fatalf("got %q", got)
	}
	if got := NextProgressionTitle("Plank", 2); got != "Plank (2)" {
		t.Fatalf("got %q", got)
	}
}
