package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"frostpaw/internal/storage"
)

// ProgressionRewardBonus is added to the spawned task's reward each time a
// progression chain advances.
const ProgressionRewardBonus = 5

type CreateTaskInput struct {
	Title            string
	Description      string
	Category         TaskCategory
	IsRecurring      bool
	Reward           int
	ProgressionValue int
}

type CompleteTaskResult struct {
	Task        *storage.Task
	AlreadyDone bool

	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Evolved     bool

	SpawnedTask *storage.Task

	CompletedQuestIDs []int64
	QuestPoints       int
	QuestXP           int
}

// IsCompletedOn reports whether a task counts as completed on the given
// calendar day. For recurring tasks this is the only completion signal; the
// boolean flag is reserved for one-off tasks.
func IsCompletedOn(t storage.Task, day time.Time) bool {
	if t.CompletedDate == nil {
		return false
	}
	return SameDay(*t.CompletedDate, day)
}

// IsAvailable reports whether a task can be completed right now: recurring
// tasks reset once their last completion falls before today, one-off tasks
// are gone for good once done.
func IsAvailable(t storage.Task, now time.Time) bool {
	if !t.IsRecurring && t.Completed {
		return false
	}
	return !IsCompletedOn(t, now)
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*storage.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	cat := in.Category
	if !cat.IsValid() {
		cat = DefaultCategory
	}
	if in.Reward <= 0 {
		in.Reward = 10
	}
	if in.ProgressionValue < 0 {
		in.ProgressionValue = 0
	}

	var desc *string
	if d := strings.TrimSpace(in.Description); d != "" {
		desc = &d
	}
	id, err := s.tasks.Insert(ctx, storage.TaskInsert{
		Title:            title,
		Description:      desc,
		Category:         string(cat),
		IsRecurring:      in.IsRecurring,
		Reward:           in.Reward,
		ProgressionValue: in.ProgressionValue,
	})
	if err != nil {
		return nil, err
	}
	return s.tasks.Get(ctx, id)
}

// AvailableTasks lists tasks that can still be completed today.
func (s *Service) AvailableTasks(ctx context.Context) ([]storage.Task, error) {
	all, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	var out []storage.Task
	for _, t := range all {
		if IsAvailable(t, now) {
			out = append(out, t)
		}
	}
	return out, nil
}

// CompleteTask completes a task, awards its reward through the XP engine,
// spawns the next link of a progression chain if the task carries one, and
// re-evaluates task-linked quests. Completing a task that is already done
// today is a no-op.
func (s *Service) CompleteTask(ctx context.Context, id int64) (*CompleteTaskResult, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %d not found", id)
	}

	now := s.now()
	if !IsAvailable(*task, now) {
		return &CompleteTaskResult{Task: task, AlreadyDone: true}, nil
	}

	streak := task.DailyStreak
	if task.IsRecurring {
		// Consecutive-day count: yesterday extends the streak, a gap restarts it.
		if task.CompletedDate != nil && SameDay(*task.CompletedDate, now.AddDate(0, 0, -1)) {
			streak++
		} else {
			streak = 1
		}
	}
	completedFlag := !task.IsRecurring

	if err := s.tasks.UpdateCompletion(ctx, task.ID, now, completedFlag, streak); err != nil {
		return nil, err
	}
	task.Completed = completedFlag
	task.CompletedDate = &now
	task.DailyStreak = streak

	var spawned *storage.Task
	if task.ProgressionValue > 0 {
		spawned, err = s.spawnProgression(ctx, task)
		if err != nil {
			return nil, err
		}
	}

	companion, err := s.getOrCreateCompanion(ctx)
	if err != nil {
		return nil, err
	}
	levelBefore := companion.Level
	stageBefore := companion.Stage
	next := AwardXP(*companion, task.Reward)
	if err := s.companions.Update(ctx, &next); err != nil {
		return nil, err
	}

	refresh, err := s.RefreshQuestProgress(ctx)
	if err != nil {
		return nil, err
	}

	return &CompleteTaskResult{
		Task:              task,
		XPAwarded:         task.Reward,
		LevelBefore:       levelBefore,
		LevelAfter:        refresh.Companion.Level,
		LevelUp:           refresh.Companion.Level > levelBefore,
		Evolved:           refresh.Companion.Stage != stageBefore,
		SpawnedTask:       spawned,
		CompletedQuestIDs: refresh.CompletedQuestIDs,
		QuestPoints:       refresh.PointsAwarded,
		QuestXP:           refresh.XPAwarded,
	}, nil
}

var firstNumber = regexp.MustCompile(`\d+`)

// NextProgressionTitle rewrites the first number in a task title with the
// doubled rep count ("Do 10 pushups" -> "Do 20 pushups").
func NextProgressionTitle(title string, nextValue int) string {
	loc := firstNumber.FindStringIndex(title)
	if loc == nil {
		return fmt.Sprintf("%s (%d)", title, nextValue)
	}
	return title[:loc[0]] + strconv.Itoa(nextValue) + title[loc[1]:]
}

// spawnProgression creates the next link of a progression chain: doubled rep
// count, bumped reward, chained back to the root task. This is the only place
// task rows are created implicitly.
func (s *Service) spawnProgression(ctx context.Context, completed *storage.Task) (*storage.Task, error) {
	chainID := completed.ID
	if completed.ProgressionChainID != nil {
		chainID = *completed.ProgressionChainID
	}
	nextValue := completed.ProgressionValue * 2
	parentID := completed.ID

	id, err := s.tasks.Insert(ctx, storage.TaskInsert{
		Title:              NextProgressionTitle(completed.Title, nextValue),
		Description:        completed.Description,
		Category:           completed.Category,
		IsRecurring:        completed.IsRecurring,
		Reward:             completed.Reward + ProgressionRewardBonus,
		ProgressionValue:   nextValue,
		ProgressionChainID: &chainID,
		ParentTaskID:       &parentID,
	})
	if err != nil {
		return nil, err
	}
	return s.tasks.Get(ctx, id)
}
