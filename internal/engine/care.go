package engine

import (
	"context"

	"frostpaw/internal/storage"
)

// Care deltas, from the den interactions: feeding, playing, resting.
const (
	feedHungerDrop    = 25
	feedHappinessGain = 10

	playHappinessGain = 20
	playEnergyCost    = 15
	playHungerGain    = 10

	restEnergyGain = 30
	restHungerGain = 5

	// CheckInXPPerBond converts daily check-in bond points into XP.
	CheckInXPPerBond = 2
)

// Feed lowers hunger and cheers the companion up.
func (s *Service) Feed(ctx context.Context) (*storage.Companion, error) {
	c, err := s.Companion(ctx)
	if err != nil {
		return nil, err
	}
	next := *c
	next.Hunger = clampVital(next.Hunger - feedHungerDrop)
	next.Happiness = clampVital(next.Happiness + feedHappinessGain)
	next.LastFed = s.now()
	if err := s.companions.Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Play raises happiness at the cost of energy, and works up an appetite.
func (s *Service) Play(ctx context.Context) (*storage.Companion, error) {
	c, err := s.Companion(ctx)
	if err != nil {
		return nil, err
	}
	next := *c
	next.Happiness = clampVital(next.Happiness + playHappinessGain)
	next.Energy = clampVital(next.Energy - playEnergyCost)
	next.Hunger = clampVital(next.Hunger + playHungerGain)
	if err := s.companions.Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Rest restores energy.
func (s *Service) Rest(ctx context.Context) (*storage.Companion, error) {
	c, err := s.Companion(ctx)
	if err != nil {
		return nil, err
	}
	next := *c
	next.Energy = clampVital(next.Energy + restEnergyGain)
	next.Hunger = clampVital(next.Hunger + restHungerGain)
	if err := s.companions.Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

type CheckInResult struct {
	Companion      *storage.Companion
	AlreadyToday   bool
	StreakExtended bool
	XPAwarded      int
	LevelUp        bool
}

// CheckIn is the once-a-day care event and the only source of streak growth.
// Checking in again on the same calendar day is a no-op.
func (s *Service) CheckIn(ctx context.Context, bondPoints int) (*CheckInResult, error) {
	c, err := s.Companion(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !IsNewDay(c.LastCaredFor, now) {
		return &CheckInResult{Companion: c, AlreadyToday: true}, nil
	}
	if bondPoints < 0 {
		bondPoints = 0
	}

	levelBefore := c.Level
	next := *c
	next.StreakDays++
	next.LastCaredFor = now
	xp := bondPoints * CheckInXPPerBond
	next = AwardXP(next, xp)
	if err := s.companions.Update(ctx, &next); err != nil {
		return nil, err
	}

	return &CheckInResult{
		Companion:      &next,
		StreakExtended: true,
		XPAwarded:      xp,
		LevelUp:        next.Level > levelBefore,
	}, nil
}
