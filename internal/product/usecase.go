package product

import (
	"context"

	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/product/dto"
)

// UseCase covers product records. Quantity and limit edits go through
// inventory.UseCase so that every change is followed by a threshold check.
type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, categoryID int64) ([]model.Product, error)
	RenameProduct(ctx context.Context, input *dto.RenameProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) (*model.Product, error)
}
