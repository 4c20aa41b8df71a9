package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type LogRepo struct {
	db DBTX
}

func NewLogRepo(db DBTX) *LogRepo {
	return &LogRepo{db: db}
}

func (r *LogRepo) Insert(ctx context.Context, kind string, note *string, value *float64, loggedAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_logs (kind, note, value, logged_at)
		VALUES (?, ?, ?, ?)
	`, kind, note, value, loggedAt)
	if err != nil {
		return 0, fmt.Errorf("log insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("log last insert id: %w", err)
	}
	return id, nil
}

func (r *LogRepo) ListAll(ctx context.Context) ([]ActivityLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, note, value, logged_at
		FROM activity_logs
		ORDER BY logged_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("log list: %w", err)
	}
	defer rows.Close()

	var out []ActivityLog
	for rows.Next() {
		var (
			l     ActivityLog
			note  sql.NullString
			value sql.NullFloat64
		)
		if err := rows.Scan(&l.ID, &l.Kind, &note, &value, &l.LoggedAt); err != nil {
			return nil, fmt.Errorf("log scan: %w", err)
		}
		if note.Valid {
			v := note.String
			l.Note = &v
		}
		if value.Valid {
			v := value.Float64
			l.Value = &v
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("log rows: %w", err)
	}
	return out, nil
}
