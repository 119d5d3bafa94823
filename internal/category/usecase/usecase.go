package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stockbot/internal/category"
	"github.com/fekuna/omnipos-stockbot/internal/category/dto"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.ErrEmptyText
	}

	cat, err := uc.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("category created", zap.Int64("category_id", cat.ID), zap.String("name", cat.Name))
	return cat, nil
}

// GetCategory returns model.ErrNotFound when the category is gone.
func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("category %d: %w", id, model.ErrNotFound)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *categoryUseCase) RenameCategory(ctx context.Context, input *dto.RenameCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.ErrEmptyText
	}

	if err := uc.repo.Update(ctx, input.ID, name); err != nil {
		return nil, err
	}
	return &model.Category{ID: input.ID, Name: name}, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("category deleted", zap.Int64("category_id", id))
	return nil
}
