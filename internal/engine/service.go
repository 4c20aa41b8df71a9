package engine

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"frostpaw/internal/storage"
)

// DefaultCompanionName is used when the adoption flow provides no name.
const DefaultCompanionName = "Frost"

type Service struct {
	db         *sql.DB
	companions *storage.CompanionRepo
	tasks      *storage.TaskRepo
	quests     *storage.QuestRepo
	logs       *storage.LogRepo

	// now is swappable for tests.
	now func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:         db,
		companions: storage.NewCompanionRepo(db),
		tasks:      storage.NewTaskRepo(db),
		quests:     storage.NewQuestRepo(db),
		logs:       storage.NewLogRepo(db),
		now:        time.Now,
	}
}

func (s *Service) CompanionRepo() *storage.CompanionRepo { return s.companions }
func (s *Service) TaskRepo() *storage.TaskRepo           { return s.tasks }
func (s *Service) QuestRepo() *storage.QuestRepo         { return s.quests }
func (s *Service) LogRepo() *storage.LogRepo             { return s.logs }

// Companion returns the current companion, or ErrNoCompanion.
func (s *Service) Companion(ctx context.Context) (*storage.Companion, error) {
	c, err := s.companions.Get(ctx, storage.MainUserKey)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNoCompanion
	}
	return c, nil
}

// InitCompanion creates the companion with fixed defaults on first adoption,
// seeds the quest catalog and the starter task set. Adopting again is a
// no-op that returns the existing companion.
func (s *Service) InitCompanion(ctx context.Context, name string) (*storage.Companion, error) {
	existing, err := s.companions.Get(ctx, storage.MainUserKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultCompanionName
	}

	c := NewCompanion(storage.MainUserKey, name, s.now())
	if err := s.companions.Insert(ctx, &c); err != nil {
		return nil, err
	}
	if _, err := s.EnsureQuestCatalog(ctx); err != nil {
		return nil, err
	}
	if err := s.SeedStarterTasks(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}

// getOrCreateCompanion synthesizes a default companion when none exists, so
// reward paths never fail on a missing record.
func (s *Service) getOrCreateCompanion(ctx context.Context) (*storage.Companion, error) {
	c, err := s.companions.Get(ctx, storage.MainUserKey)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	created := NewCompanion(storage.MainUserKey, DefaultCompanionName, s.now())
	if err := s.companions.Insert(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ApplyDecayTick loads the companion, applies one decay tick and saves it.
func (s *Service) ApplyDecayTick(ctx context.Context) (*storage.Companion, error) {
	c, err := s.Companion(ctx)
	if err != nil {
		return nil, err
	}
	next := TickDecay(*c)
	if err := s.companions.Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

type LogResult struct {
	Entry   *storage.ActivityLog
	Refresh *QuestRefreshResult
}

// LogActivity appends an entry to the authoritative activity log and
// re-evaluates quest progress. Task completions go through CompleteTask, not
// here.
func (s *Service) LogActivity(ctx context.Context, kind ActivityKind, note string, value *float64) (*LogResult, error) {
	if !kind.IsValid() || kind == ActivityTask {
		return nil, fmt.Errorf("cannot log activity kind %q", kind)
	}
	if value != nil && (math.IsNaN(*value) || *value < 0) {
		// Reject NaN and negative values at the boundary so they never reach
		// the clamped state.
		return nil, fmt.Errorf("invalid value for %s log", kind)
	}

	now := s.now()
	var notePtr *string
	if n := strings.TrimSpace(note); n != "" {
		notePtr = &n
	}
	id, err := s.logs.Insert(ctx, string(kind), notePtr, value, now)
	if err != nil {
		return nil, err
	}

	refresh, err := s.RefreshQuestProgress(ctx)
	if err != nil {
		return nil, err
	}
	entry := &storage.ActivityLog{ID: id, Kind: string(kind), Note: notePtr, Value: value, LoggedAt: now}
	return &LogResult{Entry: entry, Refresh: refresh}, nil
}
