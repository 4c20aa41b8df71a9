package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

type TaskInsert struct {
	Title              string
	Description        *string
	Category           string
	IsRecurring        bool
	Reward             int
	ProgressionValue   int
	ProgressionChainID *int64
	ParentTaskID       *int64
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			title, description, category, is_recurring,
			reward, progression_value, progression_chain_id, parent_task_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Title, in.Description, in.Category, boolToInt(in.IsRecurring),
		in.Reward, in.ProgressionValue, in.ProgressionChainID, in.ParentTaskID)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, category, is_recurring, completed,
			completed_date, daily_streak, reward, progression_value,
			progression_chain_id, parent_task_id, created_at
		FROM tasks
		WHERE id = ?
	`, id)

	return scanTaskRow(row)
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, category, is_recurring, completed,
			completed_date, daily_streak, reward, progression_value,
			progression_chain_id, parent_task_id, created_at
		FROM tasks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) Count(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("task count: %w", err)
	}
	return n, nil
}

// UpdateCompletion records a completion. The completed flag is only
// meaningful for non-recurring tasks; recurring tasks reset at the day
// boundary via completed_date.
func (r *TaskRepo) UpdateCompletion(ctx context.Context, id int64, completedAt time.Time, completed bool, dailyStreak int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET completed = ?, completed_date = ?, daily_streak = ?
		WHERE id = ?
	`, boolToInt(completed), completedAt, dailyStreak, id)
	if err != nil {
		return fmt.Errorf("task update completion: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*Task, error) {
	var (
		id            int64
		title         string
		description   sql.NullString
		category      string
		isRecurring   int
		completed     int
		completedDate sql.NullTime
		dailyStreak   int
		reward        int
		progValue     int
		chainID       sql.NullInt64
		parentID      sql.NullInt64
		createdAt     time.Time
	)

	if err := row.Scan(
		&id, &title, &description, &category, &isRecurring, &completed,
		&completedDate, &dailyStreak, &reward, &progValue, &chainID, &parentID, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	var desc *string
	if description.Valid {
		v := description.String
		desc = &v
	}
	var comp *time.Time
	if completedDate.Valid {
		v := completedDate.Time
		comp = &v
	}
	var chain *int64
	if chainID.Valid {
		v := chainID.Int64
		chain = &v
	}
	var parent *int64
	if parentID.Valid {
		v := parentID.Int64
		parent = &v
	}

	return &Task{
		ID:                 id,
		Title:              title,
		Description:        desc,
		Category:           category,
		IsRecurring:        isRecurring != 0,
		Completed:          completed != 0,
		CompletedDate:      comp,
		DailyStreak:        dailyStreak,
		Reward:             reward,
		ProgressionValue:   progValue,
		ProgressionChainID: chain,
		ParentTaskID:       parent,
		CreatedAt:          createdAt,
	}, nil
}
