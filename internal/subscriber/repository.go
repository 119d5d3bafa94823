package subscriber

import "context"

// Repository is a set of chat ids. Add and Remove are idempotent.
type Repository interface {
	Add(ctx context.Context, chatID int64) error
	Remove(ctx context.Context, chatID int64) error
	Exists(ctx context.Context, chatID int64) (bool, error)
	List(ctx context.Context) ([]int64, error)
}
