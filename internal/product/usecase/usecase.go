package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/product"
	"github.com/fekuna/omnipos-stockbot/internal/product/dto"
	"github.com/fekuna/omnipos-stockbot/internal/quantity"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo   product.Repository
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.ErrEmptyText
	}
	if input.Quantity < 0 {
		return nil, quantity.ErrInvalidFormat
	}

	limit := input.Limit
	if limit != nil && *limit <= 0 {
		limit = nil
	}

	p := &model.Product{
		CategoryID: input.CategoryID,
		Name:       name,
		Quantity:   input.Quantity,
		Limit:      limit,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("product created",
		zap.Int64("product_id", p.ID),
		zap.Int64("category_id", p.CategoryID),
		zap.String("name", p.Name),
		zap.Bool("below_limit", p.BelowLimit),
	)
	return p, nil
}

// GetProduct returns model.ErrNotFound when the product is gone.
func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, model.ErrNotFound)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return uc.repo.FindByCategory(ctx, categoryID)
}

func (uc *productUseCase) RenameProduct(ctx context.Context, input *dto.RenameProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.ErrEmptyText
	}

	if err := uc.repo.UpdateName(ctx, input.ID, name); err != nil {
		return nil, err
	}
	return uc.GetProduct(ctx, input.ID)
}

// DeleteProduct returns the removed record so callers can navigate back to
// its category.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	uc.logger.Info("product deleted", zap.Int64("product_id", id), zap.Int64("category_id", p.CategoryID))
	return p, nil
}
