package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stockbot/internal/database"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Create(ctx context.Context, name string) (*model.Category, error) {
	c := &model.Category{Name: strings.TrimSpace(name)}
	query := r.DB.Rebind(`INSERT INTO categories (name) VALUES (?) RETURNING id`)
	if err := r.DB.GetContext(ctx, &c.ID, query, c.Name); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("category %q: %w", c.Name, model.ErrDuplicateName)
		}
		return nil, err
	}
	return c, nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	query := r.DB.Rebind(`SELECT id, name FROM categories WHERE id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	err := r.DB.SelectContext(ctx, &categories, `SELECT id, name FROM categories ORDER BY id ASC`)
	return categories, err
}

func (r *SQLRepository) Update(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE categories SET name = ? WHERE id = ?`), name, id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", name, model.ErrDuplicateName)
		}
		return err
	}
	return requireRow(res, id)
}

// Delete removes the category; its products go with it through ON DELETE CASCADE.
func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM categories WHERE id = ?`), id)
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
		return fmt.Errorf("category %d: %w", id, model.ErrNotFound)
	}
	return nil
}
