package category

import (
	"context"

	"github.com/fekuna/omnipos-stockbot/internal/category/dto"
	"github.com/fekuna/omnipos-stockbot/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	RenameCategory(ctx context.Context, input *dto.RenameCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
