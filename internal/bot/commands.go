package bot

import (
	"context"

	"go.uber.org/zap"
)

func (b *Bot) handleCommand(ctx context.Context, s *session, chatID int64, command string) {
	switch command {
	case "start":
		if err := b.uc.Subscribers.Subscribe(ctx, chatID); err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		b.replyText(ctx, chatID, b.msg.T("menu"))
	case "categories":
		b.sendCategories(ctx, s, chatID)
	case "add_category":
		b.startCategoryAdd(s, chatID)
	case "reorder":
		b.sendReorderList(ctx, s, chatID)
	case "subscribe":
		b.subscribe(ctx, s, chatID)
	case "unsubscribe":
		b.unsubscribe(ctx, s, chatID)
	case "tasks":
		b.reply(chatID, b.processesScreen())
	default:
		b.replyText(ctx, chatID, b.msg.T("unknown_command"))
	}
}

// handleBottomButton dispatches the reply keyboard labels. It reports false
// when text is not one of them.
func (b *Bot) handleBottomButton(ctx context.Context, s *session, chatID int64, text string) bool {
	switch text {
	case b.msg.T("btn_categories"):
		s.reset()
		b.sendCategories(ctx, s, chatID)
	case b.msg.T("btn_tasks"):
		s.reset()
		b.reply(chatID, b.processesScreen())
	case b.msg.T("btn_reorder"):
		s.reset()
		b.sendReorderList(ctx, s, chatID)
	case b.msg.T("btn_refresh"):
		*s = session{}
		b.replyText(ctx, chatID, b.msg.T("refreshed"))
		b.sendCategories(ctx, s, chatID)
	case b.msg.T("btn_subscribe"):
		s.reset()
		b.subscribe(ctx, s, chatID)
	case b.msg.T("btn_unsubscribe"):
		s.reset()
		b.unsubscribe(ctx, s, chatID)
	default:
		return false
	}
	return true
}

func (b *Bot) sendCategories(ctx context.Context, s *session, chatID int64) {
	sc, err := b.categoriesScreen(ctx)
	if err != nil {
		b.fail(ctx, s, chatID, err)
		return
	}
	b.reply(chatID, sc)
}

// sendCategory shows the category, or the category list when it is gone.
func (b *Bot) sendCategory(ctx context.Context, s *session, chatID, catID int64) {
	sc, err := b.categoryScreen(ctx, catID)
	if err != nil {
		b.logger.Debug("Category unavailable, showing list", zap.Int64("category_id", catID), zap.Error(err))
		s.categoryID = 0
		b.sendCategories(ctx, s, chatID)
		return
	}
	b.reply(chatID, sc)
}

func (b *Bot) sendReorderList(ctx context.Context, s *session, chatID int64) {
	text, err := b.uc.Inventory.ReorderReport(ctx)
	if err != nil {
		b.fail(ctx, s, chatID, err)
		return
	}
	b.replyText(ctx, chatID, text)
}

func (b *Bot) subscribe(ctx context.Context, s *session, chatID int64) {
	if err := b.uc.Subscribers.Subscribe(ctx, chatID); err != nil {
		b.fail(ctx, s, chatID, err)
		return
	}
	b.replyText(ctx, chatID, b.msg.T("subscribed"))
}

func (b *Bot) unsubscribe(ctx context.Context, s *session, chatID int64) {
	if err := b.uc.Subscribers.Unsubscribe(ctx, chatID); err != nil {
		b.fail(ctx, s, chatID, err)
		return
	}
	b.replyText(ctx, chatID, b.msg.T("unsubscribed"))
}
