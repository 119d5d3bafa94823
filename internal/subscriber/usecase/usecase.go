package usecase

import (
	"context"

	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/subscriber"
	"go.uber.org/zap"
)

type subscriberUseCase struct {
	repo   subscriber.Repository
	logger logger.ZapLogger
}

func NewSubscriberUseCase(repo subscriber.Repository, log logger.ZapLogger) subscriber.UseCase {
	return &subscriberUseCase{repo: repo, logger: log}
}

func (uc *subscriberUseCase) Subscribe(ctx context.Context, chatID int64) error {
	if err := uc.repo.Add(ctx, chatID); err != nil {
		return err
	}
	uc.logger.Info("chat subscribed", zap.Int64("chat_id", chatID))
	return nil
}

func (uc *subscriberUseCase) Unsubscribe(ctx context.Context, chatID int64) error {
	if err := uc.repo.Remove(ctx, chatID); err != nil {
		return err
	}
	uc.logger.Info("chat unsubscribed", zap.Int64("chat_id", chatID))
	return nil
}

func (uc *subscriberUseCase) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	return uc.repo.Exists(ctx, chatID)
}
