package task

import (
	"context"

	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/task/dto"
)

type UseCase interface {
	AddTask(ctx context.Context, input *dto.AddTaskInput) (*model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	ListOpenTasks(ctx context.Context, process model.Process) ([]model.Task, error)
	EditTask(ctx context.Context, input *dto.EditTaskInput) (*model.Task, error)
	CompleteTask(ctx context.Context, id int64) (*model.Task, error)
}
