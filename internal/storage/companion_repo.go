package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainUserKey = "main_user"

type CompanionRepo struct {
	db DBTX
}

func NewCompanionRepo(db DBTX) *CompanionRepo {
	return &CompanionRepo{db: db}
}

func (r *CompanionRepo) Get(ctx context.Context, key string) (*Companion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, name, level, experience, stage,
			happiness, hunger, energy, health, cleanliness,
			total_points, streak_days, last_fed, last_cared_for, created_at
		FROM companion
		WHERE key = ?
	`, key)

	var c Companion
	if err := row.Scan(
		&c.Key, &c.Name, &c.Level, &c.Experience, &c.Stage,
		&c.Happiness, &c.Hunger, &c.Energy, &c.Health, &c.Cleanliness,
		&c.TotalPoints, &c.StreakDays, &c.LastFed, &c.LastCaredFor, &c.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("companion get: %w", err)
	}
	return &c, nil
}

func (r *CompanionRepo) Insert(ctx context.Context, c *Companion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO companion (
			key, name, level, experience, stage,
			happiness, hunger, energy, health, cleanliness,
			total_points, streak_days, last_fed, last_cared_for, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.Key, c.Name, c.Level, c.Experience, c.Stage,
		c.Happiness, c.Hunger, c.Energy, c.Health, c.Cleanliness,
		c.TotalPoints, c.StreakDays, c.LastFed, c.LastCaredFor, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("companion insert: %w", err)
	}
	return nil
}

func (r *CompanionRepo) Update(ctx context.Context, c *Companion) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE companion
		SET name = ?, level = ?, experience = ?, stage = ?,
			happiness = ?, hunger = ?, energy = ?, health = ?, cleanliness = ?,
			total_points = ?, streak_days = ?, last_fed = ?, last_cared_for = ?
		WHERE key = ?
	`, c.Name, c.Level, c.Experience, c.Stage,
		c.Happiness, c.Hunger, c.Energy, c.Health, c.Cleanliness,
		c.TotalPoints, c.StreakDays, c.LastFed, c.LastCaredFor, c.Key)
	if err != nil {
		return fmt.Errorf("companion update: %w", err)
	}
	return nil
}
