package engine

import (
	"time"

	"frostpaw/internal/storage"
)

const (
	// XPPerLevel is the leveling coefficient: xpToNext = XPPerLevel * level.
	XPPerLevel = 100

	// LevelUpHappiness is the happiness nudge applied on any XP award.
	LevelUpHappiness = 5.0
)

// Evolution thresholds. Canonical table: the 20/40/60 variant that briefly
// shipped in the decay loop is dropped.
const (
	LevelJuvenile   = 5
	LevelAdolescent = 10
	LevelAdult      = 20
)

// XPToNextLevel returns the XP required to advance past the given level.
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return XPPerLevel * level
}

// StageForLevel returns the stage the given level maps to.
func StageForLevel(level int) Stage {
	switch {
	case level >= LevelAdult:
		return StageAdult
	case level >= LevelAdolescent:
		return StageAdolescent
	case level >= LevelJuvenile:
		return StageJuvenile
	default:
		return StageCub
	}
}

// AdvanceStage moves a stage strictly forward. A stage never regresses even
// when level inputs are replayed out of order.
func AdvanceStage(current Stage, level int) Stage {
	next := StageForLevel(level)
	if next.rank() > current.rank() {
		return next
	}
	if !current.IsValid() {
		return next
	}
	return current
}

// NewCompanion returns the fixed-default companion created on adoption.
func NewCompanion(key, name string, now time.Time) storage.Companion {
	return storage.Companion{
		Key:          key,
		Name:         name,
		Level:        1,
		Experience:   0,
		Stage:        string(StageCub),
		Happiness:    70,
		Hunger:       30,
		Energy:       80,
		Health:       90,
		Cleanliness:  75,
		TotalPoints:  0,
		StreakDays:   0,
		LastFed:      now,
		LastCaredFor: now,
		CreatedAt:    now,
	}
}

// AwardXP applies an XP award to a companion and returns the updated record.
// The loop matters: a large award must be able to cross several levels while
// keeping experience < XPToNextLevel(level) at rest. Non-positive amounts are
// a no-op.
func AwardXP(c storage.Companion, amount int) storage.Companion {
	if amount <= 0 {
		return c
	}
	if c.Level < 1 {
		c.Level = 1
	}

	c.Experience += amount
	for c.Experience >= XPToNextLevel(c.Level) {
		c.Experience -= XPToNextLevel(c.Level)
		c.Level++
	}

	c.Stage = string(AdvanceStage(Stage(c.Stage), c.Level))
	c.TotalPoints += amount
	c.Happiness = clampVital(c.Happiness + LevelUpHappiness)
	return c
}
