package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-stockbot/internal/inventory"
	"github.com/fekuna/omnipos-stockbot/internal/inventory/dto"
	"github.com/fekuna/omnipos-stockbot/internal/inventory/report"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/product"
	"github.com/fekuna/omnipos-stockbot/internal/quantity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LockOptions struct {
	TTL        time.Duration
	Attempts   int
	RetryDelay time.Duration
}

// DefaultLockOptions waits up to about five seconds for a busy product. The
// holder renews the TTL every TTL/3, so a slow fan-out keeps its lock.
var DefaultLockOptions = LockOptions{
	TTL:        5 * time.Second,
	Attempts:   50,
	RetryDelay: 100 * time.Millisecond,
}

type inventoryUseCase struct {
	products product.Repository
	notifier inventory.Evaluator
	reporter inventory.Reporter
	locker   inventory.Locker
	lockOpts LockOptions
	logger   logger.ZapLogger
}

func NewInventoryUseCase(
	products product.Repository,
	notifier inventory.Evaluator,
	reporter inventory.Reporter,
	locker inventory.Locker,
	lockOpts LockOptions,
	log logger.ZapLogger,
) inventory.UseCase {
	if lockOpts.Attempts < 1 {
		lockOpts.Attempts = 1
	}
	if lockOpts.TTL <= 0 {
		lockOpts.TTL = DefaultLockOptions.TTL
	}
	return &inventoryUseCase{
		products: products,
		notifier: notifier,
		reporter: reporter,
		locker:   locker,
		lockOpts: lockOpts,
		logger:   log,
	}
}

func (uc *inventoryUseCase) SetQuantity(ctx context.Context, input *dto.SetQuantityInput) (*inventory.Result, error) {
	if input.Quantity < 0 {
		return nil, quantity.ErrInvalidFormat
	}
	return uc.withProductLock(ctx, input.ProductID, func() error {
		if err := uc.products.UpdateQuantity(ctx, input.ProductID, input.Quantity); err != nil {
			return err
		}
		uc.logger.Info("Quantity updated",
			zap.Int64("product_id", input.ProductID),
			zap.Float64("qty", input.Quantity),
			zap.String("source", input.Source),
		)
		return nil
	})
}

func (uc *inventoryUseCase) SetLimit(ctx context.Context, input *dto.SetLimitInput) (*inventory.Result, error) {
	limit := input.Limit
	if limit != nil && *limit <= 0 {
		limit = nil
	}
	return uc.withProductLock(ctx, input.ProductID, func() error {
		if err := uc.products.UpdateLimit(ctx, input.ProductID, limit); err != nil {
			return err
		}
		uc.logger.Info("Limit updated",
			zap.Int64("product_id", input.ProductID),
			zap.String("limit", quantity.FormatLimit(limit, "-")),
			zap.String("source", input.Source),
		)
		return nil
	})
}

func (uc *inventoryUseCase) Reevaluate(ctx context.Context, productID int64) (*inventory.Result, error) {
	return uc.withProductLock(ctx, productID, func() error { return nil })
}

func (uc *inventoryUseCase) ReorderGroups(ctx context.Context) ([]report.Group, error) {
	return uc.reporter.Groups(ctx)
}

func (uc *inventoryUseCase) ReorderReport(ctx context.Context) (string, error) {
	return uc.reporter.Report(ctx)
}

// withProductLock runs mutate and then the notifier while holding the
// product's lock, and returns the product as stored afterwards.
func (uc *inventoryUseCase) withProductLock(ctx context.Context, productID int64, mutate func() error) (*inventory.Result, error) {
	lockKey := fmt.Sprintf("lock:inventory:%d", productID)
	lockValue := uuid.New().String()

	if err := uc.acquire(ctx, lockKey, lockValue); err != nil {
		return nil, err
	}
	stop := uc.keepLock(ctx, lockKey, lockValue)
	defer func() {
		stop()
		if err := uc.locker.ReleaseLock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.logger.Warn("Failed to release lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	if err := mutate(); err != nil {
		return nil, err
	}

	outcome, err := uc.notifier.Evaluate(ctx, productID)
	if err != nil {
		uc.logger.Error("Failed to evaluate reorder state", zap.Int64("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("evaluate product %d: %w", productID, err)
	}

	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrNotFound
	}
	return &inventory.Result{Product: p, Outcome: outcome}, nil
}

func (uc *inventoryUseCase) acquire(ctx context.Context, key, value string) error {
	for i := 0; i < uc.lockOpts.Attempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, key, value, uc.lockOpts.TTL)
		if err != nil {
			uc.logger.Error("Failed to acquire lock", zap.String("key", key), zap.Error(err))
		}
		if ok {
			return nil
		}
		if i == uc.lockOpts.Attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(uc.lockOpts.RetryDelay):
		}
	}
	return inventory.ErrBusy
}

// keepLock renews the lock every TTL/3 until the returned stop is called.
// stop waits for the renewal goroutine to exit.
func (uc *inventoryUseCase) keepLock(ctx context.Context, key, value string) (stop func()) {
	ctx = context.WithoutCancel(ctx)
	interval := uc.lockOpts.TTL / 3
	if interval <= 0 {
		interval = time.Millisecond
	}

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				ok, err := uc.locker.RefreshLock(ctx, key, value, uc.lockOpts.TTL)
				if err != nil {
					uc.logger.Warn("Failed to refresh lock", zap.String("key", key), zap.Error(err))
					continue
				}
				if !ok {
					uc.logger.Error("Lock lost before work finished", zap.String("key", key))
					return
				}
			}
		}
	}()

	return func() {
		close(done)
		<-exited
	}
}
