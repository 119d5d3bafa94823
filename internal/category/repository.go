package category

import (
	"context"

	"github.com/fekuna/omnipos-stockbot/internal/model"
)

type Repository interface {
	Create(ctx context.Context, name string) (*model.Category, error)
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}
