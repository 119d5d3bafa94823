// Package bot is the Telegram front end: commands, the bottom reply
// keyboard, inline menus and the typed-input conversations.
package bot

import (
	"context"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-stockbot/internal/auth"
	"github.com/fekuna/omnipos-stockbot/internal/category"
	"github.com/fekuna/omnipos-stockbot/internal/i18n"
	"github.com/fekuna/omnipos-stockbot/internal/inventory"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/product"
	"github.com/fekuna/omnipos-stockbot/internal/subscriber"
	"github.com/fekuna/omnipos-stockbot/internal/task"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// API is the subset of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UseCases struct {
	Categories  category.UseCase
	Products    product.UseCase
	Inventory   inventory.UseCase
	Subscribers subscriber.UseCase
	Tasks       task.UseCase
}

type Bot struct {
	api         API
	uc          UseCases
	msg         *i18n.Messages
	sessions    *sessionStore
	pollTimeout int
	logger      logger.ZapLogger
}

func New(api API, uc UseCases, msg *i18n.Messages, pollTimeout int, log logger.ZapLogger) *Bot {
	return &Bot{
		api:         api,
		uc:          uc,
		msg:         msg,
		sessions:    newSessionStore(),
		pollTimeout: pollTimeout,
		logger:      log,
	}
}

// Run long-polls for updates until ctx is done, then waits for in-flight
// handlers to finish.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	// In-flight handlers run to completion after ctx is done.
	hctx := context.WithoutCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()

	b.logger.Info("Bot is polling for updates")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Bot stopped polling")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.HandleUpdate(hctx, update)
			}()
		}
	}
}

// HandleUpdate processes one update. Updates from the same chat are
// handled one at a time.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic while handling update", zap.Int("update_id", update.UpdateID), zap.Any("panic", r))
		}
	}()

	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		q := update.CallbackQuery
		chatID := q.Message.Chat.ID
		cs := b.sessions.acquire(chatID)
		defer cs.mu.Unlock()
		b.handleCallback(auth.WithChatID(ctx, chatID), &cs.session, q)

	case update.Message != nil:
		m := update.Message
		chatID := m.Chat.ID
		cs := b.sessions.acquire(chatID)
		defer cs.mu.Unlock()
		b.handleMessage(auth.WithChatID(ctx, chatID), &cs.session, m)
	}
}

func (b *Bot) handleMessage(ctx context.Context, s *session, m *tgbotapi.Message) {
	chatID := m.Chat.ID

	if m.IsCommand() {
		s.reset()
		b.handleCommand(ctx, s, chatID, m.Command())
		return
	}

	text := strings.TrimSpace(m.Text)
	if b.handleBottomButton(ctx, s, chatID, text) {
		return
	}

	if s.step != stepIdle {
		b.handleInput(ctx, s, chatID, text)
		return
	}

	b.replyText(ctx, chatID, b.msg.T("unknown_command"))
}

// reply sends text with an inline keyboard.
func (b *Bot) reply(chatID int64, sc screen) {
	msg := tgbotapi.NewMessage(chatID, sc.text)
	msg.ReplyMarkup = sc.markup
	b.send(msg)
}

// replyText sends text with the bottom keyboard, refreshed for the chat's
// subscription state.
func (b *Bot) replyText(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = b.bottomKeyboard(b.isSubscribed(ctx, chatID))
	b.send(msg)
}

// edit replaces an inline menu message in place.
func (b *Bot) edit(m *tgbotapi.Message, sc screen) {
	b.send(tgbotapi.NewEditMessageTextAndMarkup(m.Chat.ID, m.MessageID, sc.text, sc.markup))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return
		}
		b.logger.Warn("Failed to send message", zap.Error(err))
	}
}

func (b *Bot) isSubscribed(ctx context.Context, chatID int64) bool {
	ok, err := b.uc.Subscribers.IsSubscribed(ctx, chatID)
	if err != nil {
		b.logger.Warn("Failed to read subscription", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return ok
}

// fail reports err to the chat. The session is reset unless the error
// leaves the user in the same input step.
func (b *Bot) fail(ctx context.Context, s *session, chatID int64, err error) {
	id, keep := replyForError(err, s.step)
	if id == "err_internal" {
		b.logger.Error("Request failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	if keep && s.step != stepIdle {
		b.prompt(chatID, scopeForStep(s.step), b.msg.T(id))
		return
	}
	s.reset()
	b.replyText(ctx, chatID, b.msg.T(id))
}

// prompt asks for typed input with a cancel button.
func (b *Bot) prompt(chatID int64, scope, text string) {
	b.reply(chatID, screen{text: text, markup: b.cancelKeyboard(scope)})
}
