package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stockbot/internal/auth"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/task"
	"github.com/fekuna/omnipos-stockbot/internal/task/dto"
	"go.uber.org/zap"
)

type taskUseCase struct {
	repo   task.Repository
	logger logger.ZapLogger
}

func NewTaskUseCase(repo task.Repository, log logger.ZapLogger) task.UseCase {
	return &taskUseCase{repo: repo, logger: log}
}

// AddTask records the task under the chat found in ctx.
func (uc *taskUseCase) AddTask(ctx context.Context, input *dto.AddTaskInput) (*model.Task, error) {
	if !input.Process.Valid() {
		return nil, fmt.Errorf("process %d: %w", input.Process, model.ErrUnknownProcess)
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, model.ErrEmptyText
	}

	t := &model.Task{
		UserID:    auth.GetChatID(ctx),
		Text:      text,
		CreatedAt: timeNow().UTC(),
		Process:   input.Process,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	uc.logger.Info("task added",
		zap.Int64("task_id", t.ID),
		zap.String("process", t.Process.Key()),
		zap.Int64("user_id", t.UserID),
	)
	return t, nil
}

func (uc *taskUseCase) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}
	return t, nil
}

func (uc *taskUseCase) ListOpenTasks(ctx context.Context, process model.Process) ([]model.Task, error) {
	if !process.Valid() {
		return nil, fmt.Errorf("process %d: %w", process, model.ErrUnknownProcess)
	}
	return uc.repo.FindOpenByProcess(ctx, process)
}

func (uc *taskUseCase) EditTask(ctx context.Context, input *dto.EditTaskInput) (*model.Task, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, model.ErrEmptyText
	}
	if err := uc.repo.UpdateText(ctx, input.ID, text); err != nil {
		return nil, err
	}
	return uc.GetTask(ctx, input.ID)
}

func (uc *taskUseCase) CompleteTask(ctx context.Context, id int64) (*model.Task, error) {
	if err := uc.repo.SetDone(ctx, id, true); err != nil {
		return nil, err
	}
	uc.logger.Info("task completed", zap.Int64("task_id", id), zap.Int64("by_chat", auth.GetChatID(ctx)))
	return uc.GetTask(ctx, id)
}
