package task

import (
	"context"

	"github.com/fekuna/omnipos-stockbot/internal/model"
)

type Repository interface {
	Create(ctx context.Context, t *model.Task) error
	FindByID(ctx context.Context, id int64) (*model.Task, error)
	// FindOpenByProcess lists tasks not yet done, oldest first.
	FindOpenByProcess(ctx context.Context, process model.Process) ([]model.Task, error)
	UpdateText(ctx context.Context, id int64, text string) error
	SetDone(ctx context.Context, id int64, done bool) error
}
