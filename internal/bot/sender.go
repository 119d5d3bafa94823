package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fekuna/omnipos-stockbot/internal/inventory/notifier"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers reorder alerts through the Bot API.
type Sender struct {
	api API
}

func NewSender(api API) *Sender {
	return &Sender{api: api}
}

// Send implements notifier.Sender. A 403 (bot blocked, chat deactivated)
// is reported as notifier.ErrUnreachable.
func (s *Sender) Send(_ context.Context, chatID int64, text string) error {
	_, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
	if err == nil {
		return nil
	}
	if apiErrorCode(err) == http.StatusForbidden {
		return fmt.Errorf("chat %d: %w: %v", chatID, notifier.ErrUnreachable, err)
	}
	return fmt.Errorf("chat %d: %w", chatID, err)
}

// apiErrorCode extracts the Bot API error code, or 0 for transport errors.
func apiErrorCode(err error) int {
	var ptr *tgbotapi.Error
	if errors.As(err, &ptr) {
		return ptr.Code
	}
	var val tgbotapi.Error
	if errors.As(err, &val) {
		return val.Code
	}
	return 0
}
