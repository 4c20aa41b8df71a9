package engine

import (
	"context"
	"database/sql"
	"time"

	"frostpaw/internal/storage"
)

// QuestDef is a catalog entry. Instances are minted per period; old rows are
// never reset, a new period gets a fresh row with the same code.
type QuestDef struct {
	Code           string
	Title          string
	Description    string
	Type           QuestType
	LinkedActivity ActivityKind
	TaskCategory   TaskCategory // only for task-chain quests
	TargetCount    int
	RewardPoints   int
	RewardXP       int
	TTL            time.Duration
}

const (
	questTTLDaily     = 24 * time.Hour
	questTTLWeekly    = 7 * 24 * time.Hour
	questTTLChallenge = 30 * 24 * time.Hour
)

func catalogDefs() []QuestDef {
	return []QuestDef{
		{
			Code: "daily-meal", Title: "Nutritious Feast", Description: "Log 3 meals today",
			Type: QuestDaily, LinkedActivity: ActivityMeal,
			TargetCount: 3, RewardPoints: 30, RewardXP: 50, TTL: questTTLDaily,
		},
		{
			Code: "daily-activity", Title: "Let's Move!", Description: "Log an activity session",
			Type: QuestDaily, LinkedActivity: ActivityActivity,
			TargetCount: 1, RewardPoints: 25, RewardXP: 40, TTL: questTTLDaily,
		},
		{
			Code: "daily-journal", Title: "Share Your Thoughts", Description: "Write a journal entry",
			Type: QuestDaily, LinkedActivity: ActivityJournal,
			TargetCount: 1, RewardPoints: 20, RewardXP: 35, TTL: questTTLDaily,
		},
		{
			Code: "daily-weight", Title: "Check In", Description: "Log your weight",
			Type: QuestDaily, LinkedActivity: ActivityWeight,
			TargetCount: 1, RewardPoints: 15, RewardXP: 25, TTL: questTTLDaily,
		},
		{
			Code: "weekly-goal", Title: "Milestone March", Description: "Make progress on a goal",
			Type: QuestWeekly, LinkedActivity: ActivityGoal,
			TargetCount: 1, RewardPoints: 50, RewardXP: 100, TTL: questTTLWeekly,
		},
		{
			Code: "challenge-streak", Title: "Week Warrior", Description: "Journal on 7 different days",
			Type: QuestChallenge, LinkedActivity: ActivityJournal,
			TargetCount: 7, RewardPoints: 100, RewardXP: 250, TTL: questTTLChallenge,
		},
		{
			Code: "task-morning", Title: "Morning Champion", Description: "Complete 5 morning routine tasks",
			Type: QuestTaskChain, LinkedActivity: ActivityTask, TaskCategory: CategoryMorning,
			TargetCount: 5, RewardPoints: 50, RewardXP: 75, TTL: questTTLDaily,
		},
		{
			Code: "task-anytime", Title: "Task Master", Description: "Complete 10 anytime tasks in a day",
			Type: QuestTaskChain, LinkedActivity: ActivityTask, TaskCategory: CategoryAnytime,
			TargetCount: 10, RewardPoints: 75, RewardXP: 120, TTL: questTTLDaily,
		},
		{
			Code: "task-progression", Title: "Progressive Warrior", Description: "Advance a progression chain (10 → 20 → 40 reps)",
			Type: QuestTaskChain, LinkedActivity: ActivityTask,
			TargetCount: 3, RewardPoints: 100, RewardXP: 150, TTL: questTTLWeekly,
		},
	}
}

// EnsureQuestCatalog mints a fresh instance of every catalog quest that has
// no live (unexpired) instance. Expired rows are left untouched.
func (s *Service) EnsureQuestCatalog(ctx context.Context) ([]storage.Quest, error) {
	now := s.now()
	for _, def := range catalogDefs() {
		live, err := s.quests.HasLiveInstance(ctx, def.Code, now)
		if err != nil {
			return nil, err
		}
		if live {
			continue
		}

		var desc *string
		if def.Description != "" {
			d := def.Description
			desc = &d
		}
		var cat *string
		if def.TaskCategory != "" {
			c := string(def.TaskCategory)
			cat = &c
		}
		if _, err := s.quests.Insert(ctx, storage.QuestInsert{
			Code:           def.Code,
			Title:          def.Title,
			Description:    desc,
			Type:           string(def.Type),
			LinkedActivity: string(def.LinkedActivity),
			TaskCategory:   cat,
			TargetCount:    def.TargetCount,
			RewardPoints:   def.RewardPoints,
			RewardXP:       def.RewardXP,
			CreatedAt:      now,
			ExpiresAt:      now.Add(def.TTL),
		}); err != nil {
			return nil, err
		}
	}
	return s.quests.ListAll(ctx)
}

// questPeriodStart returns the start of the window a quest counts entries in.
// Daily quests (and per-day task-chain quests) look at the current calendar
// day; longer quests look back to when the instance was minted.
func questPeriodStart(q storage.Quest, now time.Time) time.Time {
	switch QuestType(q.Type) {
	case QuestDaily:
		return StartOfDay(now)
	case QuestTaskChain:
		if q.TaskCategory != nil {
			return StartOfDay(now)
		}
		return q.CreatedAt
	default:
		return q.CreatedAt
	}
}

// QuestProgress recomputes a quest's progress from the authoritative logs and
// task records. It is a pure function: repeated application over the same
// inputs yields the same count, which is what makes refresh idempotent.
func QuestProgress(q storage.Quest, logs []storage.ActivityLog, tasks []storage.Task, now time.Time) int {
	start := questPeriodStart(q, now)
	var n int

	switch ActivityKind(q.LinkedActivity) {
	case ActivityMeal, ActivityActivity, ActivityWeight, ActivityGoal:
		n = countLogs(logs, q.LinkedActivity, start, now)
	case ActivityJournal:
		if QuestType(q.Type) == QuestChallenge {
			n = countDistinctDays(logs, q.LinkedActivity, start, now)
		} else {
			n = countLogs(logs, q.LinkedActivity, start, now)
		}
	case ActivityTask:
		n = countTaskCompletions(tasks, q.TaskCategory, start, now)
	default:
		n = 0
	}

	if n > q.TargetCount {
		n = q.TargetCount
	}
	if n < 0 {
		n = 0
	}
	return n
}

func countLogs(logs []storage.ActivityLog, kind string, start, end time.Time) int {
	n := 0
	for _, l := range logs {
		if l.Kind != kind {
			continue
		}
		if l.LoggedAt.Before(start) || l.LoggedAt.After(end) {
			continue
		}
		n++
	}
	return n
}

func countDistinctDays(logs []storage.ActivityLog, kind string, start, end time.Time) int {
	days := map[string]struct{}{}
	for _, l := range logs {
		if l.Kind != kind {
			continue
		}
		if l.LoggedAt.Before(start) || l.LoggedAt.After(end) {
			continue
		}
		days[l.LoggedAt.Format("2006-01-02")] = struct{}{}
	}
	return len(days)
}

// countTaskCompletions counts today's/this-period's task completions. With a
// category it counts completions within that category; without one it counts
// progression advances. A completed root counts too, so the predicate is a
// positive progression value rather than a chain link id.
func countTaskCompletions(tasks []storage.Task, category *string, start, end time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.CompletedDate == nil {
			continue
		}
		at := *t.CompletedDate
		if at.Before(start) || at.After(end) {
			continue
		}
		if category != nil {
			if t.Category == *category {
				n++
			}
			continue
		}
		if t.ProgressionValue > 0 {
			n++
		}
	}
	return n
}

type QuestRefreshResult struct {
	Quests            []storage.Quest
	CompletedQuestIDs []int64
	PointsAwarded     int
	XPAwarded         int
	Companion         *storage.Companion
}

// RefreshQuestProgress recomputes every active quest's progress from the
// logs, completes any quest that reached its target and pays its reward
// exactly once. Already-completed quests are immutable; expired quests are
// skipped. The whole pass commits in one transaction so a reward can never be
// paid without the completion flip that justifies it.
func (s *Service) RefreshQuestProgress(ctx context.Context) (*QuestRefreshResult, error) {
	if _, err := s.EnsureQuestCatalog(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	quests, err := s.quests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	companion, err := s.getOrCreateCompanion(ctx)
	if err != nil {
		return nil, err
	}

	res := &QuestRefreshResult{}
	next := *companion

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		questRepo := storage.NewQuestRepo(tx)
		companionRepo := storage.NewCompanionRepo(tx)

		changed := false
		for i := range quests {
			q := &quests[i]
			if q.Completed {
				continue
			}
			if now.After(q.ExpiresAt) {
				continue
			}

			progress := QuestProgress(*q, logs, tasks, now)
			if progress >= q.TargetCount {
				if err := questRepo.MarkCompleted(ctx, q.ID, now, progress); err != nil {
					return err
				}
				q.Completed = true
				q.CompletedDate = &now
				q.CurrentProgress = progress

				next.TotalPoints += q.RewardPoints
				next = AwardXP(next, q.RewardXP)
				res.CompletedQuestIDs = append(res.CompletedQuestIDs, q.ID)
				res.PointsAwarded += q.RewardPoints
				res.XPAwarded += q.RewardXP
				changed = true
				continue
			}
			if progress != q.CurrentProgress {
				if err := questRepo.UpdateProgress(ctx, q.ID, progress); err != nil {
					return err
				}
				q.CurrentProgress = progress
			}
		}

		if changed {
			return companionRepo.Update(ctx, &next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Quests = quests
	res.Companion = &next
	return res, nil
}

// ActiveQuests filters a quest list down to the unexpired, incomplete ones.
func ActiveQuests(quests []storage.Quest, now time.Time) []storage.Quest {
	var out []storage.Quest
	for _, q := range quests {
		if q.Completed || now.After(q.ExpiresAt) {
			continue
		}
		out = append(out, q)
	}
	return out
}
