// Package notifier turns a product's persisted below_limit flag into a
// two-state machine and alerts subscribers when stock crosses its limit.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-stockbot/internal/category"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/product"
	"github.com/fekuna/omnipos-stockbot/internal/subscriber"
	"go.uber.org/zap"
)

// ErrUnreachable is returned (wrapped) by a Sender when the recipient can
// never receive messages again, e.g. the chat blocked the bot.
var ErrUnreachable = errors.New("recipient unreachable")

// Sender delivers one text message to one chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Alert is the content of a reorder message.
type Alert struct {
	CategoryName string // empty when the category vanished
	ProductName  string
	Quantity     float64
	Limit        float64
}

// Formatter renders an Alert as user-facing text.
type Formatter interface {
	ReorderAlert(a Alert) string
}

type State int

const (
	StateNormal State = iota
	StateAlerted
)

func (s State) String() string {
	if s == StateAlerted {
		return "alerted"
	}
	return "normal"
}

// StateOf reads the persisted state of p.
func StateOf(p *model.Product) State {
	if p.BelowLimit {
		return StateAlerted
	}
	return StateNormal
}

// Next returns the state p should be in given its current quantity and limit.
func Next(p *model.Product) State {
	if p.IsBelowLimit() {
		return StateAlerted
	}
	return StateNormal
}

type Transition int

const (
	TransitionNone Transition = iota
	TransitionAlerted
	TransitionReset
)

func (t Transition) String() string {
	switch t {
	case TransitionAlerted:
		return "alerted"
	case TransitionReset:
		return "reset"
	default:
		return "none"
	}
}

// Outcome summarizes one Evaluate call.
type Outcome struct {
	ProductID  int64
	Transition Transition
	Delivered  int
	Removed    int
	Failed     int
}

type Notifier struct {
	products    product.Repository
	categories  category.Repository
	subscribers subscriber.Repository
	sender      Sender
	formatter   Formatter
	logger      logger.ZapLogger
}

func New(
	products product.Repository,
	categories category.Repository,
	subscribers subscriber.Repository,
	sender Sender,
	formatter Formatter,
	log logger.ZapLogger,
) *Notifier {
	return &Notifier{
		products:    products,
		categories:  categories,
		subscribers: subscribers,
		sender:      sender,
		formatter:   formatter,
		logger:      log,
	}
}

// Evaluate compares the product's persisted state with its current quantity
// and limit, alerting on normal -> alerted and resetting silently on
// alerted -> normal. Delivery failures are absorbed; only store errors are
// returned.
func (n *Notifier) Evaluate(ctx context.Context, productID int64) (Outcome, error) {
	out := Outcome{ProductID: productID}

	p, err := n.products.FindByID(ctx, productID)
	if err != nil {
		return out, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return out, model.ErrNotFound
	}

	prior, next := StateOf(p), Next(p)
	switch {
	case prior == next:
		return out, nil

	case next == StateNormal:
		if err := n.products.SetBelowLimit(ctx, p.ID, false); err != nil {
			return out, fmt.Errorf("reset below_limit: %w", err)
		}
		out.Transition = TransitionReset
		n.logger.Debug("Reorder state reset", zap.Int64("product_id", p.ID))
		return out, nil
	}

	text, err := n.compose(ctx, p)
	if err != nil {
		return out, err
	}
	chats, err := n.subscribers.List(ctx)
	if err != nil {
		return out, fmt.Errorf("list subscribers: %w", err)
	}

	// The fan-out runs to completion even if the caller gives up.
	sendCtx := context.WithoutCancel(ctx)
	for _, chatID := range chats {
		err := n.sender.Send(sendCtx, chatID, text)
		switch {
		case err == nil:
			out.Delivered++
		case errors.Is(err, ErrUnreachable):
			if rmErr := n.subscribers.Remove(sendCtx, chatID); rmErr != nil {
				n.logger.Error("Failed to remove unreachable subscriber", zap.Int64("chat_id", chatID), zap.Error(rmErr))
			}
			out.Removed++
			n.logger.Info("Removed unreachable subscriber", zap.Int64("chat_id", chatID))
		default:
			out.Failed++
			n.logger.Warn("Failed to deliver reorder alert", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}

	if err := n.products.SetBelowLimit(sendCtx, p.ID, true); err != nil {
		return out, fmt.Errorf("set below_limit: %w", err)
	}
	out.Transition = TransitionAlerted

	n.logger.Info("Reorder alert sent",
		zap.Int64("product_id", p.ID),
		zap.Int("delivered", out.Delivered),
		zap.Int("removed", out.Removed),
		zap.Int("failed", out.Failed),
	)
	return out, nil
}

func (n *Notifier) compose(ctx context.Context, p *model.Product) (string, error) {
	cat, err := n.categories.FindByID(ctx, p.CategoryID)
	if err != nil {
		return "", fmt.Errorf("load category: %w", err)
	}
	a := Alert{ProductName: p.Name, Quantity: p.Quantity, Limit: *p.Limit}
	if cat != nil {
		a.CategoryName = cat.Name
	}
	return n.formatter.ReorderAlert(a), nil
}
