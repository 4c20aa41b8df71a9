package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"frostpaw/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func setNow(svc *Service, at time.Time) {
	svc.now = func() time.Time { return at }
}

func adopt(t *testing.T, svc *Service) *storage.Companion {
	t.Helper()
	c, err := svc.InitCompanion(context.Background(), "Frost")
	if err != nil {
		t.Fatalf("InitCompanion: %v", err)
	}
	return c
}

func TestInitCompanionDefaultsAndSeeds(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setNow(svc, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	if _, err := svc.Companion(ctx); err != ErrNoCompanion {
		t.Fatalf("Companion before adoption: err=%v, want ErrNoCompanion", err)
	}

	c := adopt(t, svc)
	if c.Level != 1 || c.Experience != 0 || c.Stage != string(StageCub) {
		t.Fatalf("defaults: level=%d xp=%d stage=%q", c.Level, c.Experience, c.Stage)
	}
	if c.Happiness != 70 || c.Hunger != 30 || c.Energy != 80 || c.Health != 90 || c.Cleanliness != 75 {
		t.Fatalf("vital defaults: %+v", c)
	}

	quests, err := svc.QuestRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if len(quests) != 9 {
		t.Fatalf("seeded %d quests, want 9", len(quests))
	}
	tasks, err := svc.TaskRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 8 {
		t.Fatalf("seeded %d tasks, want 8", len(tasks))
	}

	// Adopting again must not reset anything or reseed.
	again, err := svc.InitCompanion(ctx, "Someone Else")
	if err != nil {
		t.Fatalf("second InitCompanion: %v", err)
	}
	if again.Name != "Frost" {
		t.Fatalf("second adoption renamed companion to %q", again.Name)
	}
	tasks, _ = svc.TaskRepo().ListAll(ctx)
	if len(tasks) != 8 {
		t.Fatalf("reseed grew task table to %d", len(tasks))
	}
}

func TestCompleteTaskAwardsRewardAndSpawnsProgression(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setNow(svc, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	adopt(t, svc)

	task, err := svc.CreateTask(ctx, CreateTaskInput{
		Title:            "Do 10 pushups",
		Category:         CategoryAnytime,
		IsRecurring:      true,
		Reward:           15,
		ProgressionValue: 10,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	res, err := svc.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.AlreadyDone {
		t.Fatalf("fresh task reported AlreadyDone")
	}
	if res.XPAwarded != 15 {
		t.Fatalf("XPAwarded=%d, want 15", res.XPAwarded)
	}

	sp := res.SpawnedTask
	if sp == nil {
		t.Fatalf("no progression task spawned")
	}
	if sp.Title != "Do 20 pushups" {
		t.Fatalf("spawned title=%q", sp.Title)
	}
	if sp.ProgressionValue != 20 {
		t.Fatalf("spawned progressionValue=%d, want 20", sp.ProgressionValue)
	}
	if sp.Reward != 20 {
		t.Fatalf("spawned reward=%d, want 20", sp.Reward)
	}
	if sp.ProgressionChainID == nil || *sp.ProgressionChainID != task.ID {
		t.Fatalf("spawned chainID=%v, want %d", sp.ProgressionChainID, task.ID)
	}
	if sp.ParentTaskID == nil || *sp.ParentTaskID != task.ID {
		t.Fatalf("spawned parentID=%v, want %d", sp.ParentTaskID, task.ID)
	}

	// Same day again: no-op, nothing re-awarded, nothing re-spawned.
	res2, err := svc.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask again: %v", err)
	}
	if !res2.AlreadyDone || res2.XPAwarded != 0 || res2.SpawnedTask != nil {
		t.Fatalf("repeat completion not a no-op: %+v", res2)
	}
}

func TestRecurringTaskResetsAcrossDaysAndKeepsStreak(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	day1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	setNow(svc, day1)
	adopt(t, svc)

	task, err := svc.CreateTask(ctx, CreateTaskInput{Title: "Drink water", Category: CategoryMorning, IsRecurring: true, Reward: 10})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	res, err := svc.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("day 1 complete: %v", err)
	}
	if res.Task.DailyStreak != 1 {
		t.Fatalf("day 1 streak=%d, want 1", res.Task.DailyStreak)
	}

	got, _ := svc.TaskRepo().Get(ctx, task.ID)
	if got.Completed {
		t.Fatalf("recurring task flipped the one-off completed flag")
	}
	if IsAvailable(*got, day1) {
		t.Fatalf("task still available after today's completion")
	}

	// Next day: available again, consecutive completion extends the streak.
	day2 := day1.AddDate(0, 0, 1)
	setNow(svc, day2)
	got, _ = svc.TaskRepo().Get(ctx, task.ID)
	if !IsAvailable(*got, day2) {
		t.Fatalf("recurring task not available the next day")
	}
	res, err = svc.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("day 2 complete: %v", err)
	}
	if res.Task.DailyStreak != 2 {
		t.Fatalf("day 2 streak=%d, want 2", res.Task.DailyStreak)
	}

	// Skipping a day restarts the streak.
	day4 := day1.AddDate(0, 0, 3)
	setNow(svc, day4)
	res, err = svc.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("day 4 complete: %v", err)
	}
	if res.Task.DailyStreak != 1 {
		t.Fatalf("streak after gap=%d, want 1", res.Task.DailyStreak)
	}
}

func TestStarterProgressionSeedsDoNotDuplicateChainLinks(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	day1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	setNow(svc, day1)
	adopt(t, svc)

	tasks, err := svc.TaskRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	var root *storage.Task
	for i := range tasks {
		if tasks[i].Title == "Do 5 pushups" {
			root = &tasks[i]
		}
	}
	if root == nil {
		t.Fatalf("no seeded pushups task")
	}
	// Progression seeds are one-off; the spawned link carries the chain.
	if root.IsRecurring {
		t.Fatalf("seeded progression task is recurring")
	}

	res, err := svc.CompleteTask(ctx, root.ID)
	if err != nil {
		t.Fatalf("complete root: %v", err)
	}
	if res.SpawnedTask == nil || res.SpawnedTask.IsRecurring {
		t.Fatalf("spawned link missing or recurring: %+v", res.SpawnedTask)
	}

	// The next day the finished root must not re-complete and re-spawn a
	// parallel copy of its successor.
	setNow(svc, day1.AddDate(0, 0, 1))
	res, err = svc.CompleteTask(ctx, root.ID)
	if err != nil {
		t.Fatalf("complete root again: %v", err)
	}
	if !res.AlreadyDone {
		t.Fatalf("finished one-off progression task completed again")
	}

	tasks, err = svc.TaskRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	links := 0
	for _, task := range tasks {
		if task.Title == "Do 10 pushups" {
			links++
		}
	}
	if links != 1 {
		t.Fatalf("%d rows titled \"Do 10 pushups\", want 1", links)
	}
}

func TestQuestCompletionPaysExactlyOnce(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setNow(svc, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	adopt(t, svc)

	for i := 0; i < 3; i++ {
		if _, err := svc.LogActivity(ctx, ActivityMeal, "", nil); err != nil {
			t.Fatalf("log meal %d: %v", i, err)
		}
	}

	quests, err := svc.QuestRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	var meal *storage.Quest
	for i := range quests {
		if quests[i].Code == "daily-meal" {
			meal = &quests[i]
		}
	}
	if meal == nil || !meal.Completed {
		t.Fatalf("daily-meal not completed after 3 meal logs: %+v", meal)
	}
	if meal.CurrentProgress != meal.TargetCount {
		t.Fatalf("progress=%d, want %d", meal.CurrentProgress, meal.TargetCount)
	}

	c, err := svc.Companion(ctx)
	if err != nil {
		t.Fatalf("companion: %v", err)
	}
	// 30 reward points plus 50 XP, and AwardXP accrues its amount too.
	if c.TotalPoints != 80 {
		t.Fatalf("totalPoints=%d, want 80", c.TotalPoints)
	}
	if c.Experience != 50 || c.Level != 1 {
		t.Fatalf("level=%d xp=%d, want level=1 xp=50", c.Level, c.Experience)
	}

	// Re-running the refresh over the same logs must not pay again.
	refresh, err := svc.RefreshQuestProgress(ctx)
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if refresh.PointsAwarded != 0 || refresh.XPAwarded != 0 || len(refresh.CompletedQuestIDs) != 0 {
		t.Fatalf("second refresh paid again: %+v", refresh)
	}
	c, _ = svc.Companion(ctx)
	if c.TotalPoints != 80 || c.Experience != 50 {
		t.Fatalf("companion changed on idempotent refresh: points=%d xp=%d", c.TotalPoints, c.Experience)
	}
}

func TestTaskChainQuestCountsMorningCompletions(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setNow(svc, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	adopt(t, svc)

	// The starter set ships 4 morning tasks; add a fifth to hit the target.
	if _, err := svc.CreateTask(ctx, CreateTaskInput{Title: "Make the bed", Category: CategoryMorning, IsRecurring: true, Reward: 10}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	tasks, err := svc.TaskRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	done := 0
	var lastRes *CompleteTaskResult
	for _, task := range tasks {
		if task.Category != string(CategoryMorning) {
			continue
		}
		lastRes, err = svc.CompleteTask(ctx, task.ID)
		if err != nil {
			t.Fatalf("complete %q: %v", task.Title, err)
		}
		done++
	}
	if done != 5 {
		t.Fatalf("completed %d morning tasks, want 5", done)
	}

	quests, err := svc.QuestRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	var morning *storage.Quest
	for i := range quests {
		if quests[i].Code == "task-morning" {
			morning = &quests[i]
		}
	}
	if morning == nil || !morning.Completed {
		t.Fatalf("task-morning not completed after 5 morning tasks: %+v", morning)
	}
	if lastRes.QuestPoints < morning.RewardPoints {
		t.Fatalf("final completion reported questPoints=%d, want >= %d", lastRes.QuestPoints, morning.RewardPoints)
	}
}

func TestCheckInOncePerDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	day1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	setNow(svc, day1)
	adopt(t, svc)

	// Adoption stamps lastCaredFor, so a same-day check-in is a no-op.
	res, err := svc.CheckIn(ctx, 10)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if !res.AlreadyToday || res.XPAwarded != 0 {
		t.Fatalf("same-day check-in awarded: %+v", res)
	}

	day2 := day1.AddDate(0, 0, 1)
	setNow(svc, day2)
	res, err = svc.CheckIn(ctx, 10)
	if err != nil {
		t.Fatalf("CheckIn day 2: %v", err)
	}
	if res.AlreadyToday || !res.StreakExtended {
		t.Fatalf("next-day check-in rejected: %+v", res)
	}
	if res.XPAwarded != 20 {
		t.Fatalf("XPAwarded=%d, want 20 (10 bond * 2)", res.XPAwarded)
	}
	if res.Companion.StreakDays != 1 {
		t.Fatalf("streakDays=%d, want 1", res.Companion.StreakDays)
	}

	// Second check-in the same day changes nothing.
	res, err = svc.CheckIn(ctx, 10)
	if err != nil {
		t.Fatalf("CheckIn repeat: %v", err)
	}
	if !res.AlreadyToday || res.Companion.StreakDays != 1 {
		t.Fatalf("repeat check-in mutated state: %+v", res)
	}
}

func TestLogActivityRejections(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	adopt(t, svc)

	if _, err := svc.LogActivity(ctx, ActivityTask, "", nil); err == nil {
		t.Fatalf("task kind accepted by LogActivity")
	}
	if _, err := svc.LogActivity(ctx, ActivityKind("nonsense"), "", nil); err == nil {
		t.Fatalf("invalid kind accepted")
	}
	neg := -1.0
	if _, err := svc.LogActivity(ctx, ActivityWeight, "", &neg); err == nil {
		t.Fatalf("negative value accepted")
	}
}
