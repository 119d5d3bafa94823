package product

import (
	"context"

	"github.com/fekuna/omnipos-stockbot/internal/model"
)

type Repository interface {
	// Create inserts p and sets p.ID. BelowLimit is derived from the
	// quantity and limit at insert time.
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	Delete(ctx context.Context, id int64) error

	// Single-field mutations. None of them touch below_limit.
	UpdateName(ctx context.Context, id int64, name string) error
	UpdateQuantity(ctx context.Context, id int64, qty float64) error
	UpdateLimit(ctx context.Context, id int64, limit *float64) error
	SetBelowLimit(ctx context.Context, id int64, below bool) error

	// ListReorderItems returns products with a limit set and qty <= limit,
	// ordered by category name then product name.
	ListReorderItems(ctx context.Context) ([]model.ReorderItem, error)
}
