package engine

import (
	"fmt"
	"strings"
)

// Stage is a companion growth phase. Stages only ever advance.
type Stage string

const (
	StageCub        Stage = "cub"
	StageJuvenile   Stage = "juvenile"
	StageAdolescent Stage = "adolescent"
	StageAdult      Stage = "adult"
)

func (s Stage) IsValid() bool {
	switch s {
	case StageCub, StageJuvenile, StageAdolescent, StageAdult:
		return true
	default:
		return false
	}
}

// rank orders stages for monotonicity checks.
func (s Stage) rank() int {
	switch s {
	case StageJuvenile:
		return 1
	case StageAdolescent:
		return 2
	case StageAdult:
		return 3
	default:
		return 0
	}
}

type QuestType string

const (
	QuestDaily     QuestType = "daily"
	QuestWeekly    QuestType = "weekly"
	QuestChallenge QuestType = "challenge"
	QuestTaskChain QuestType = "task-chain"
)

func (q QuestType) IsValid() bool {
	switch q {
	case QuestDaily, QuestWeekly, QuestChallenge, QuestTaskChain:
		return true
	default:
		return false
	}
}

// ActivityKind is the closed set of loggable activities a quest can track.
type ActivityKind string

const (
	ActivityMeal     ActivityKind = "meal"
	ActivityActivity ActivityKind = "activity"
	ActivityJournal  ActivityKind = "journal"
	ActivityWeight   ActivityKind = "weight"
	ActivityGoal     ActivityKind = "goal"
	ActivityTask     ActivityKind = "task"
)

func (a ActivityKind) IsValid() bool {
	switch a {
	case ActivityMeal, ActivityActivity, ActivityJournal, ActivityWeight, ActivityGoal, ActivityTask:
		return true
	default:
		return false
	}
}

// ParseActivityKind parses user input to an ActivityKind.
func ParseActivityKind(input string) (ActivityKind, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "meal", "food":
		return ActivityMeal, nil
	case "activity", "exercise", "workout":
		return ActivityActivity, nil
	case "journal", "entry":
		return ActivityJournal, nil
	case "weight":
		return ActivityWeight, nil
	case "goal":
		return ActivityGoal, nil
	case "task":
		return ActivityTask, nil
	default:
		return "", fmt.Errorf("invalid activity kind: %q", input)
	}
}

type TaskCategory string

const (
	CategoryMorning TaskCategory = "morning"
	CategoryAnytime TaskCategory = "anytime"
	CategorySpecial TaskCategory = "special"
)

func (c TaskCategory) IsValid() bool {
	switch c {
	case CategoryMorning, CategoryAnytime, CategorySpecial:
		return true
	default:
		return false
	}
}

// DefaultCategory is used when user input is missing/invalid.
const DefaultCategory TaskCategory = CategoryAnytime

func ParseTaskCategory(input string) TaskCategory {
	s := strings.TrimSpace(strings.ToLower(input))
	c := TaskCategory(s)
	if !c.IsValid() {
		return DefaultCategory
	}
	return c
}
