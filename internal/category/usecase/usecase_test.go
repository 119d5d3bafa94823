package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-stockbot/internal/category/dto"
	"github.com/fekuna/omnipos-stockbot/internal/category/repository"
	"github.com/fekuna/omnipos-stockbot/internal/database/dbtest"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) *categoryUseCase {
	t.Helper()
	return NewCategoryUseCase(repository.NewSQLRepository(dbtest.New(t)), logger.NewNop()).(*categoryUseCase)
}

func TestCreateCategory_RejectsBlank(t *testing.T) {
	uc := newUseCase(t)
	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "   "})
	assert.ErrorIs(t, err, model.ErrEmptyText)
}

func TestGetCategory_NotFound(t *testing.T) {
	uc := newUseCase(t)
	_, err := uc.GetCategory(context.Background(), 7)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRenameAndDelete(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	c, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Dairy"})
	require.NoError(t, err)

	renamed, err := uc.RenameCategory(ctx, &dto.RenameCategoryInput{ID: c.ID, Name: " Milk "})
	require.NoError(t, err)
	assert.Equal(t, "Milk", renamed.Name)

	require.NoError(t, uc.DeleteCategory(ctx, c.ID))
	_, err = uc.GetCategory(ctx, c.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
