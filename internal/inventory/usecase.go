package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-stockbot/internal/inventory/dto"
	"github.com/fekuna/omnipos-stockbot/internal/inventory/notifier"
	"github.com/fekuna/omnipos-stockbot/internal/inventory/report"
	"github.com/fekuna/omnipos-stockbot/internal/model"
)

// ErrBusy is returned when the product lock could not be taken in time.
var ErrBusy = errors.New("system busy, please try again later")

// UseCase owns the persist -> notify sequence for stock edits.
type UseCase interface {
	SetQuantity(ctx context.Context, input *dto.SetQuantityInput) (*Result, error)
	SetLimit(ctx context.Context, input *dto.SetLimitInput) (*Result, error)
	// Reevaluate re-runs the notifier without changing anything, e.g. after
	// a failed evaluation left the flag stale.
	Reevaluate(ctx context.Context, productID int64) (*Result, error)
	ReorderGroups(ctx context.Context) ([]report.Group, error)
	ReorderReport(ctx context.Context) (string, error)
}

// Result is the product as stored after the edit and the notifier's verdict.
type Result struct {
	Product *model.Product
	Outcome notifier.Outcome
}

type Evaluator interface {
	Evaluate(ctx context.Context, productID int64) (notifier.Outcome, error)
}

type Reporter interface {
	Groups(ctx context.Context) ([]report.Group, error)
	Report(ctx context.Context) (string, error)
}

// Locker is satisfied by cache.RedisClient and cache.LocalLocker.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// RefreshLock extends a lock still held under value and reports false
	// once it is lost.
	RefreshLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
