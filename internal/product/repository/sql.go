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

const productColumns = `id, category_id, name, qty, limit_qty, below_limit`

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Create(ctx context.Context, p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.BelowLimit = p.IsBelowLimit()

	query := r.DB.Rebind(`
        INSERT INTO products (category_id, name, qty, limit_qty, below_limit)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id
    `)
	err := r.DB.GetContext(ctx, &p.ID, query, p.CategoryID, p.Name, p.Quantity, p.Limit, p.BelowLimit)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return fmt.Errorf("product %q: %w", p.Name, model.ErrDuplicateName)
		case database.IsForeignKeyViolation(err):
			return fmt.Errorf("category %d: %w", p.CategoryID, model.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	query := r.DB.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *SQLRepository) FindByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	products := []model.Product{}
	query := r.DB.Rebind(`SELECT ` + productColumns + ` FROM products WHERE category_id = ? ORDER BY id ASC`)
	err := r.DB.SelectContext(ctx, &products, query, categoryID)
	return products, err
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (r *SQLRepository) UpdateName(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE products SET name = ? WHERE id = ?`), name, id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("product %q: %w", name, model.ErrDuplicateName)
		}
		return err
	}
	return requireRow(res, id)
}

func (r *SQLRepository) UpdateQuantity(ctx context.Context, id int64, qty float64) error {
	return r.updateField(ctx, id, "qty", qty)
}

func (r *SQLRepository) UpdateLimit(ctx context.Context, id int64, limit *float64) error {
	return r.updateField(ctx, id, "limit_qty", limit)
}

func (r *SQLRepository) SetBelowLimit(ctx context.Context, id int64, below bool) error {
	return r.updateField(ctx, id, "below_limit", below)
}

// updateField runs a single-column UPDATE. column is never user input.
func (r *SQLRepository) updateField(ctx context.Context, id int64, column string, value any) error {
	query := r.DB.Rebind(fmt.Sprintf(`UPDATE products SET %s = ? WHERE id = ?`, column))
	res, err := r.DB.ExecContext(ctx, query, value, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// ListReorderItems sorts names by byte order on every driver; Postgres is
// told to use the "C" collation so it agrees with SQLite's BINARY default.
func (r *SQLRepository) ListReorderItems(ctx context.Context) ([]model.ReorderItem, error) {
	order := `c.name ASC, p.name ASC`
	if r.DB.DriverName() == database.DriverPostgres {
		order = `c.name COLLATE "C" ASC, p.name COLLATE "C" ASC`
	}

	items := []model.ReorderItem{}
	query := `
        SELECT c.id AS category_id, c.name AS category_name,
               p.id AS product_id, p.name AS product_name,
               p.qty, p.limit_qty
        FROM products p
        JOIN categories c ON c.id = p.category_id
        WHERE p.limit_qty IS NOT NULL
          AND p.qty <= p.limit_qty
        ORDER BY ` + order
	err := r.DB.SelectContext(ctx, &items, query)
	return items, err
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("product %d: %w", id, model.ErrNotFound)
	}
	return nil
}
