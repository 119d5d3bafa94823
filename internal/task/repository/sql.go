package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/jmoiron/sqlx"
)

const taskColumns = `id, user_id, text, is_done, created_at, task_category_id`

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Create(ctx context.Context, t *model.Task) error {
	query := r.DB.Rebind(`
        INSERT INTO tasks (user_id, text, is_done, created_at, task_category_id)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id
    `)
	return r.DB.GetContext(ctx, &t.ID, query, t.UserID, t.Text, t.IsDone, t.CreatedAt, t.Process)
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	var t model.Task
	err := r.DB.GetContext(ctx, &t, r.DB.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *SQLRepository) FindOpenByProcess(ctx context.Context, process model.Process) ([]model.Task, error) {
	tasks := []model.Task{}
	query := r.DB.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE task_category_id = ? AND is_done = ? ORDER BY id ASC`)
	err := r.DB.SelectContext(ctx, &tasks, query, process, false)
	return tasks, err
}

func (r *SQLRepository) UpdateText(ctx context.Context, id int64, text string) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE tasks SET text = ? WHERE id = ?`), text, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (r *SQLRepository) SetDone(ctx context.Context, id int64, done bool) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE tasks SET is_done = ? WHERE id = ?`), done, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}
	return nil
}
