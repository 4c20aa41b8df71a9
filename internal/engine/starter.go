package engine

import (
	"context"

	"frostpaw/internal/storage"
)

// starterTasks is the seed set created alongside a new companion. Tasks with
// a progression value start their own doubling chain and are one-off: the
// spawned next link is the repeat, so marking them recurring would grow
// duplicate links day over day.
func starterTasks() []CreateTaskInput {
	return []CreateTaskInput{
		{Title: "Get out of bed", Description: "Start your day by getting out of bed", Category: CategoryMorning, IsRecurring: true, Reward: 10},
		{Title: "Brush teeth", Description: "Fresh start for your teeth and mind", Category: CategoryMorning, IsRecurring: true, Reward: 10},
		{Title: "Wash my face", Description: "Wake up your skin and feel refreshed", Category: CategoryMorning, IsRecurring: true, Reward: 10},
		{Title: "Drink water", Description: "Hydrate, your body needs it", Category: CategoryMorning, IsRecurring: true, Reward: 10},
		{Title: "Do 5 pushups", Description: "Small start, the count doubles as you go", Category: CategoryAnytime, Reward: 15, ProgressionValue: 5},
		{Title: "Take a 10 minute walk", Description: "Fresh air and movement", Category: CategoryAnytime, Reward: 15, ProgressionValue: 10},
		{Title: "Tidy one surface", Description: "One counter, one desk, one shelf", Category: CategoryAnytime, IsRecurring: true, Reward: 10},
		{Title: "Step outside for a moment", Description: "Daylight counts even from the doorstep", Category: CategoryAnytime, IsRecurring: true, Reward: 10},
	}
}

// SeedStarterTasks inserts the starter set once, on an empty task table.
func (s *Service) SeedStarterTasks(ctx context.Context) error {
	n, err := s.tasks.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, in := range starterTasks() {
		var desc *string
		if in.Description != "" {
			d := in.Description
			desc = &d
		}
		if _, err := s.tasks.Insert(ctx, storage.TaskInsert{
			Title:            in.Title,
			Description:      desc,
			Category:         string(in.Category),
			IsRecurring:      in.IsRecurring,
			Reward:           in.Reward,
			ProgressionValue: in.ProgressionValue,
		}); err != nil {
			return err
		}
	}
	return nil
}
