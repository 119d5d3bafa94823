package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stockbot/internal/auth"
	"github.com/fekuna/omnipos-stockbot/internal/database/dbtest"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/task/dto"
	"github.com/fekuna/omnipos-stockbot/internal/task/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) *taskUseCase {
	t.Helper()
	return NewTaskUseCase(repository.NewSQLRepository(dbtest.New(t)), logger.NewNop()).(*taskUseCase)
}

func TestAddTask_RecordsChatAndTime(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = orig })

	uc := newUseCase(t)
	ctx := auth.WithChatID(context.Background(), 555)

	created, err := uc.AddTask(ctx, &dto.AddTaskInput{Process: model.ProcessHot, Text: "  Clean the grill "})
	require.NoError(t, err)

	got, err := uc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clean the grill", got.Text)
	assert.Equal(t, int64(555), got.UserID)
	assert.Equal(t, model.ProcessHot, got.Process)
	assert.False(t, got.IsDone)
	assert.True(t, fixed.Equal(got.CreatedAt), "created_at = %v", got.CreatedAt)
}

func TestAddTask_Validation(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.AddTask(ctx, &dto.AddTaskInput{Process: 7, Text: "x"})
	assert.ErrorIs(t, err, model.ErrUnknownProcess)

	_, err = uc.AddTask(ctx, &dto.AddTaskInput{Process: model.ProcessCold, Text: " "})
	assert.ErrorIs(t, err, model.ErrEmptyText)
}

func TestListOpenTasks_HidesDoneAndOtherProcesses(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	first, err := uc.AddTask(ctx, &dto.AddTaskInput{Process: model.ProcessCold, Text: "Cut salad"})
	require.NoError(t, err)
	second, err := uc.AddTask(ctx, &dto.AddTaskInput{Process: model.ProcessCold, Text: "Portion cheese"})
	require.NoError(t, err)
	_, err = uc.AddTask(ctx, &dto.AddTaskInput{Process: model.ProcessDelivery, Text: "Pack orders"})
	require.NoError(t, err)

	done, err := uc.CompleteTask(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, done.IsDone)

	open, err := uc.ListOpenTasks(ctx, model.ProcessCold)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, second.ID, open[0].ID)

	_, err = uc.ListOpenTasks(ctx, 0)
	assert.ErrorIs(t, err, model.ErrUnknownProcess)
}

func TestEditAndComplete_Missing(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.EditTask(ctx, &dto.EditTaskInput{ID: 99, Text: "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = uc.CompleteTask(ctx, 99)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = uc.EditTask(ctx, &dto.EditTaskInput{ID: 1, Text: ""})
	assert.ErrorIs(t, err, model.ErrEmptyText)
}
