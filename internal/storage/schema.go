package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS companion (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			level INTEGER DEFAULT 1,
			experience INTEGER DEFAULT 0,
			stage TEXT DEFAULT 'cub',

			happiness REAL DEFAULT 70,
			hunger REAL DEFAULT 30,
			energy REAL DEFAULT 80,
			health REAL DEFAULT 90,
			cleanliness REAL DEFAULT 75,

			total_points INTEGER DEFAULT 0,
			streak_days INTEGER DEFAULT 0,

			last_fed DATETIME,
			last_cared_for DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL,

			is_recurring INTEGER DEFAULT 0,
			completed INTEGER DEFAULT 0,
			completed_date DATETIME,
			daily_streak INTEGER DEFAULT 0,

			reward INTEGER NOT NULL DEFAULT 10,
			progression_value INTEGER DEFAULT 0,
			progression_chain_id INTEGER NULL,
			parent_task_id INTEGER NULL,

			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,

			FOREIGN KEY(progression_chain_id) REFERENCES tasks(id),
			FOREIGN KEY(parent_task_id) REFERENCES tasks(id)
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			linked_activity TEXT NOT NULL,
			task_category TEXT,

			target_count INTEGER NOT NULL,
			current_progress INTEGER DEFAULT 0,
			reward_points INTEGER NOT NULL,
			reward_xp INTEGER NOT NULL,

			completed INTEGER DEFAULT 0,
			completed_date DATETIME,

			created_at DATETIME NOT NULL,
			expires_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS activity_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			note TEXT,
			value REAL,
			logged_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_completed_date ON tasks(completed_date);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_code ON quests(code);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_expires_at ON quests(expires_at);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_logs_kind_logged_at ON activity_logs(kind, logged_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
