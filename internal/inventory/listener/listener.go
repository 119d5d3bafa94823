package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-stockbot/internal/inventory"
	"github.com/fekuna/omnipos-stockbot/internal/inventory/dto"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventStockCounted = "StockCounted"
	EventLimitChanged = "LimitChanged"
)

// MessageReader is the part of *kafka.Reader the listener uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type ReaderConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

func NewKafkaReader(cfg *ReaderConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})
}

// StockListener applies stock counts and limit changes published by other
// systems through the same persist -> notify pipeline as chat edits.
type StockListener struct {
	reader MessageReader
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewStockListener(reader MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *StockListener {
	return &StockListener{
		reader: reader,
		uc:     uc,
		logger: logger,
	}
}

func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("Starting stock Kafka listener")
	defer l.reader.Close()
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping stock Kafka listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type StockEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   StockPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type StockPayload struct {
	ProductID int64    `json:"product_id"`
	Quantity  *float64 `json:"quantity"`
	Limit     *float64 `json:"limit"` // null clears the limit
}

func (l *StockListener) processMessage(ctx context.Context, value []byte) {
	var event StockEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	log := l.logger.With(
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.Int64("product_id", event.Payload.ProductID),
	)

	var err error
	switch event.EventType {
	case EventStockCounted:
		if event.Payload.Quantity == nil {
			log.Warn("StockCounted event without quantity")
			return
		}
		_, err = l.uc.SetQuantity(ctx, &dto.SetQuantityInput{
			ProductID: event.Payload.ProductID,
			Quantity:  *event.Payload.Quantity,
			Source:    "kafka",
		})
	case EventLimitChanged:
		_, err = l.uc.SetLimit(ctx, &dto.SetLimitInput{
			ProductID: event.Payload.ProductID,
			Limit:     event.Payload.Limit,
			Source:    "kafka",
		})
	default:
		return
	}

	if err != nil {
		log.Error("Failed to apply stock event", zap.Error(err))
		return
	}
	log.Info("Applied stock event")
}
