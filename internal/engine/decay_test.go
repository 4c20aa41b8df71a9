package engine

import (
	"context"
	"testing"
	"time"
)

func TestTickDecayDeltasAndClamping(t *testing.T) {
	c := NewCompanion("main_user", "Frost", time.Now())

	got := TickDecay(c)
	if got.Hunger != 31 {
		t.Fatalf("hunger=%v, want 31", got.Hunger)
	}
	if got.Energy != 79.5 {
		t.Fatalf("energy=%v, want 79.5", got.Energy)
	}
	if got.Happiness != 69.5 {
		t.Fatalf("happiness=%v, want 69.5", got.Happiness)
	}
	if got.Health != 89.7 {
		t.Fatalf("health=%v, want 89.7", got.Health)
	}
	if got.Level != c.Level || got.Experience != c.Experience {
		t.Fatalf("decay touched progression: level=%d xp=%d", got.Level, got.Experience)
	}

	// Vitals pin at the edges instead of running past them.
	c.Hunger = 99.8
	c.Energy = 0.2
	c.Happiness = 0.1
	c.Health = 0
	got = TickDecay(c)
	if got.Hunger != 100 || got.Energy != 0 || got.Happiness != 0 || got.Health != 0 {
		t.Fatalf("clamping failed: hunger=%v energy=%v happiness=%v health=%v",
			got.Hunger, got.Energy, got.Happiness, got.Health)
	}
}

func TestApplyDecayTickPersists(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	adopt(t, svc)

	next, err := svc.ApplyDecayTick(ctx)
	if err != nil {
		t.Fatalf("ApplyDecayTick: %v", err)
	}
	if next.Hunger != 31 {
		t.Fatalf("hunger=%v, want 31", next.Hunger)
	}

	stored, err := svc.Companion(ctx)
	if err != nil {
		t.Fatalf("Companion: %v", err)
	}
	if stored.Hunger != 31 || stored.Energy != 79.5 {
		t.Fatalf("tick not persisted: hunger=%v energy=%v", stored.Hunger, stored.Energy)
	}
}

func TestDecaySchedulerLifecycle(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	sched := NewDecayScheduler(svc, time.Hour)
	if sched.Running() {
		t.Fatalf("fresh scheduler reports running")
	}

	ctx := context.Background()
	sched.Start(ctx)
	if !sched.Running() {
		t.Fatalf("scheduler not running after Start")
	}
	// A second Start must not spawn a second timer.
	sched.Start(ctx)

	sched.Stop()
	if sched.Running() {
		t.Fatalf("scheduler still running after Stop")
	}
	// Stop is idempotent.
	sched.Stop()

	// The scheduler can be reused for a new session.
	sched.Start(ctx)
	if !sched.Running() {
		t.Fatalf("scheduler not running after restart")
	}
	sched.Stop()
}

func TestCareActions(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	setNow(svc, at)
	adopt(t, svc)

	c, err := svc.Feed(ctx)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if c.Hunger != 5 {
		t.Fatalf("hunger after feed=%v, want 5", c.Hunger)
	}
	if c.Happiness != 80 {
		t.Fatalf("happiness after feed=%v, want 80", c.Happiness)
	}
	if !c.LastFed.Equal(at) {
		t.Fatalf("lastFed=%v, want %v", c.LastFed, at)
	}

	c, err = svc.Play(ctx)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if c.Happiness != 100 {
		t.Fatalf("happiness after play=%v, want clamped 100", c.Happiness)
	}
	if c.Energy != 65 || c.Hunger != 15 {
		t.Fatalf("after play: energy=%v hunger=%v", c.Energy, c.Hunger)
	}

	c, err = svc.Rest(ctx)
	if err != nil {
		t.Fatalf("Rest: %v", err)
	}
	if c.Energy != 95 || c.Hunger != 20 {
		t.Fatalf("after rest: energy=%v hunger=%v", c.Energy, c.Hunger)
	}
}
