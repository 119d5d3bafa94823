package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Add(ctx context.Context, chatID int64) error {
	query := r.DB.Rebind(`INSERT INTO subscribers (chat_id) VALUES (?) ON CONFLICT (chat_id) DO NOTHING`)
	_, err := r.DB.ExecContext(ctx, query, chatID)
	return err
}

func (r *SQLRepository) Remove(ctx context.Context, chatID int64) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM subscribers WHERE chat_id = ?`), chatID)
	return err
}

func (r *SQLRepository) Exists(ctx context.Context, chatID int64) (bool, error) {
	var count int
	query := r.DB.Rebind(`SELECT count(*) FROM subscribers WHERE chat_id = ?`)
	if err := r.DB.GetContext(ctx, &count, query, chatID); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	err := r.DB.SelectContext(ctx, &ids, `SELECT chat_id FROM subscribers ORDER BY chat_id ASC`)
	return ids, err
}
