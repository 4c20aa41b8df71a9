package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type QuestRepo struct {
	db DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{db: db}
}

type QuestInsert struct {
	Code           string
	Title          string
	Description    *string
	Type           string
	LinkedActivity string
	TaskCategory   *string
	TargetCount    int
	RewardPoints   int
	RewardXP       int
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

func (r *QuestRepo) Insert(ctx context.Context, in QuestInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (
			code, title, description, type, linked_activity, task_category,
			target_count, reward_points, reward_xp, created_at, expires_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Code, in.Title, in.Description, in.Type, in.LinkedActivity, in.TaskCategory,
		in.TargetCount, in.RewardPoints, in.RewardXP, in.CreatedAt, in.ExpiresAt)
	if err != nil {
		return 0, fmt.Errorf("quest insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("quest last insert id: %w", err)
	}
	return id, nil
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, title, description, type, linked_activity, task_category,
			target_count, current_progress, reward_points, reward_xp,
			completed, completed_date, created_at, expires_at
		FROM quests
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuestRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest list rows: %w", err)
	}
	return out, nil
}

// HasLiveInstance reports whether any instance of the given catalog code is
// still unexpired. Completed instances count: a quest finished early must not
// respawn until its period rolls over.
func (r *QuestRepo) HasLiveInstance(ctx context.Context, code string, now time.Time) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM quests WHERE code = ? AND expires_at > ? LIMIT 1
	`, code, now)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("quest live instance: %w", err)
	}
	return true, nil
}

func (r *QuestRepo) UpdateProgress(ctx context.Context, id int64, progress int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE quests SET current_progress = ? WHERE id = ?`, progress, id)
	if err != nil {
		return fmt.Errorf("quest update progress: %w", err)
	}
	return nil
}

// MarkCompleted flips a quest to completed. The flip is one-way; callers must
// never invoke this on an already-completed quest.
func (r *QuestRepo) MarkCompleted(ctx context.Context, id int64, completedAt time.Time, progress int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests
		SET completed = 1, completed_date = ?, current_progress = ?
		WHERE id = ? AND completed = 0
	`, completedAt, progress, id)
	if err != nil {
		return fmt.Errorf("quest mark completed: %w", err)
	}
	return nil
}

func scanQuestRow(rows *sql.Rows) (*Quest, error) {
	var (
		q             Quest
		description   sql.NullString
		taskCategory  sql.NullString
		completed     int
		completedDate sql.NullTime
	)

	if err := rows.Scan(
		&q.ID, &q.Code, &q.Title, &description, &q.Type, &q.LinkedActivity, &taskCategory,
		&q.TargetCount, &q.CurrentProgress, &q.RewardPoints, &q.RewardXP,
		&completed, &completedDate, &q.CreatedAt, &q.ExpiresAt,
	); err != nil {
		return nil, fmt.Errorf("quest scan: %w", err)
	}

	if description.Valid {
		v := description.String
		q.Description = &v
	}
	if taskCategory.Valid {
		v := taskCategory.String
		q.TaskCategory = &v
	}
	q.Completed = completed != 0
	if completedDate.Valid {
		v := completedDate.Time
		q.CompletedDate = &v
	}
	return &q, nil
}
