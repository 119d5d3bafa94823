package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-stockbot/internal/database/dbtest"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/product/dto"
	"github.com/fekuna/omnipos-stockbot/internal/product/repository"
	"github.com/fekuna/omnipos-stockbot/internal/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*productUseCase, int64) {
	t.Helper()
	db := dbtest.New(t)
	var catID int64
	require.NoError(t, db.Get(&catID, `INSERT INTO categories (name) VALUES ('Dairy') RETURNING id`))
	uc := NewProductUseCase(repository.NewSQLRepository(db), logger.NewNop()).(*productUseCase)
	return uc, catID
}

func TestCreateProduct_Validation(t *testing.T) {
	ctx := context.Background()
	uc, cat := setup(t)

	_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{CategoryID: cat, Name: "  "})
	assert.ErrorIs(t, err, model.ErrEmptyText)

	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{CategoryID: cat, Name: "Milk", Quantity: -1})
	assert.ErrorIs(t, err, quantity.ErrInvalidFormat)
}

func TestCreateProduct_NonPositiveLimitIsUnset(t *testing.T) {
	ctx := context.Background()
	uc, cat := setup(t)
	zero := 0.0

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{CategoryID: cat, Name: "Milk", Quantity: 0, Limit: &zero})
	require.NoError(t, err)
	assert.Nil(t, p.Limit)
	assert.False(t, p.BelowLimit)
}

func TestRenameAndDeleteProduct(t *testing.T) {
	ctx := context.Background()
	uc, cat := setup(t)

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{CategoryID: cat, Name: "Milk", Quantity: 3})
	require.NoError(t, err)

	renamed, err := uc.RenameProduct(ctx, &dto.RenameProductInput{ID: p.ID, Name: "Whole milk"})
	require.NoError(t, err)
	assert.Equal(t, "Whole milk", renamed.Name)
	assert.Equal(t, 3.0, renamed.Quantity)

	deleted, err := uc.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, cat, deleted.CategoryID)

	_, err = uc.DeleteProduct(ctx, p.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
