package bot

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-stockbot/internal/i18n"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/quantity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleCallback(ctx context.Context, s *session, q *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.logger.Debug("Failed to answer callback", zap.Error(err))
	}

	c, ok := ParseCallback(q.Data)
	if !ok {
		b.logger.Debug("Ignoring malformed callback", zap.String("data", q.Data))
		return
	}
	if c.Action == "cancel" {
		b.cancel(ctx, s, q.Message.Chat.ID, c.Scope)
		return
	}

	// Any menu click abandons a pending typed-input step.
	s.reset()

	switch c.Scope {
	case scopeNav:
		b.handleNav(ctx, s, q.Message, c)
	case scopeCategory:
		b.handleCategory(ctx, s, q.Message, c)
	case scopeProduct:
		b.handleProduct(ctx, s, q.Message, c)
	case scopeTaskProcess:
		b.handleTaskProcess(ctx, s, q.Message, c)
	case scopeTask:
		b.handleTask(ctx, s, q.Message, c)
	default:
		b.logger.Debug("Ignoring unknown callback scope", zap.String("data", q.Data))
	}
}

func (b *Bot) handleNav(ctx context.Context, s *session, m *tgbotapi.Message, c Callback) {
	chatID := m.Chat.ID
	switch c.Action {
	case "cats":
		s.categoryID = 0
		sc, err := b.categoriesScreen(ctx)
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		b.edit(m, sc)
	case "task_proc":
		b.edit(m, b.processesScreen())
	}
}

func (b *Bot) handleCategory(ctx context.Context, s *session, m *tgbotapi.Message, c Callback) {
	chatID := m.Chat.ID
	if c.Action == "add" {
		b.startCategoryAdd(s, chatID)
		return
	}
	if !c.HasID {
		return
	}

	switch c.Action {
	case "open":
		sc, err := b.categoryScreen(ctx, c.ID)
		if err != nil {
			b.failLookup(ctx, s, chatID, err, "category_not_found")
			return
		}
		s.categoryID = c.ID
		b.edit(m, sc)

	case "actions":
		sc, err := b.categoryActionsScreen(ctx, c.ID)
		if err != nil {
			b.failLookup(ctx, s, chatID, err, "category_not_found")
			return
		}
		b.edit(m, sc)

	case "edit":
		cat, err := b.uc.Categories.GetCategory(ctx, c.ID)
		if err != nil {
			b.failLookup(ctx, s, chatID, err, "category_not_found")
			return
		}
		s.step = stepCategoryRename
		s.categoryID = cat.ID
		b.prompt(chatID, scopeCategory, b.msg.Tf("prompt_category_rename", i18n.Data{"Name": cat.Name}))

	case "del":
		cat, err := b.uc.Categories.GetCategory(ctx, c.ID)
		if err != nil {
			b.failLookup(ctx, s, chatID, err, "category_not_found")
			return
		}
		b.reply(chatID, screen{
			text:   b.msg.Tf("confirm_delete_category", i18n.Data{"Name": cat.Name}),
			markup: b.confirmKeyboard(cbID(scopeCategory, "del_yes", cat.ID), cb(scopeNav, "cats")),
		})

	case "del_yes":
		if err := b.uc.Categories.DeleteCategory(ctx, c.ID); err != nil {
			b.failLookup(ctx, s, chatID, err, "category_not_found")
			return
		}
		b.removeKeyboard(m)
		s.categoryID = 0
		b.replyText(ctx, chatID, b.msg.T("category_deleted"))
		b.sendCategories(ctx, s, chatID)
	}
}

func (b *Bot) handleProduct(ctx context.Context, s *session, m *tgbotapi.Message, c Callback) {
	chatID := m.Chat.ID
	if !c.HasID {
		return
	}

	if c.Action == "add" {
		cat, err := b.uc.Categories.GetCategory(ctx, c.ID)
		if err != nil {
			b.failLookup(ctx, s, chatID, err, "category_not_found")
			return
		}
		s.step = stepProductName
		s.categoryID = cat.ID
		b.prompt(chatID, scopeProduct, b.msg.Tf("prompt_product_name", i18n.Data{"Category": cat.Name}))
		return
	}

	if c.Action == "del_yes" {
		p, err := b.uc.Products.DeleteProduct(ctx, c.ID)
		if err != nil {
			b.failLookup(ctx, s, chatID, err, "product_not_found")
			return
		}
		b.removeKeyboard(m)
		s.categoryID = p.CategoryID
		b.replyText(ctx, chatID, b.msg.T("product_deleted"))
		b.sendCategory(ctx, s, chatID, p.CategoryID)
		return
	}

	p, err := b.uc.Products.GetProduct(ctx, c.ID)
	if err != nil {
		b.failLookup(ctx, s, chatID, err, "product_not_found")
		return
	}
	s.categoryID = p.CategoryID

	switch c.Action {
	case "open":
		b.edit(m, b.productScreen(p))
	case "edit":
		s.step = stepProductRename
		s.productID = p.ID
		b.prompt(chatID, scopeProduct, b.msg.Tf("prompt_product_rename", productData(p)))
	case "del":
		b.reply(chatID, screen{
			text: b.msg.Tf("confirm_delete_product", i18n.Data{
				"Name": p.Name,
				"Qty":  quantity.Format(p.Quantity),
			}),
			markup: b.confirmKeyboard(cbID(scopeProduct, "del_yes", p.ID), cbID(scopeProduct, "open", p.ID)),
		})
	case "qty":
		s.step = stepQuantity
		s.productID = p.ID
		b.prompt(chatID, scopeProduct, b.msg.Tf("prompt_qty", productData(p)))
	case "limit":
		s.step = stepLimit
		s.productID = p.ID
		b.prompt(chatID, scopeProduct, b.msg.Tf("prompt_limit", productData(p)))
	}
}

func (b *Bot) handleTaskProcess(ctx context.Context, s *session, m *tgbotapi.Message, c Callback) {
	chatID := m.Chat.ID
	process := model.Process(c.ID)
	if !c.HasID || !process.Valid() {
		return
	}

	switch c.Action {
	case "open":
		sc, err := b.tasksScreen(ctx, process)
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		s.process = process
		b.edit(m, sc)
	case "add":
		s.step = stepTaskText
		s.process = process
		b.prompt(chatID, scopeTaskProcess, b.msg.T("prompt_task_text"))
	}
}

func (b *Bot) handleTask(ctx context.Context, s *session, m *tgbotapi.Message, c Callback) {
	chatID := m.Chat.ID
	if !c.HasID {
		return
	}

	switch c.Action {
	case "open":
		sc, err := b.taskScreen(ctx, c.ID)
		if err != nil {
			b.failLookup(ctx, s, chatID, err, "task_not_found")
			return
		}
		b.edit(m, sc)

	case "edit":
		t, err := b.uc.Tasks.GetTask(ctx, c.ID)
		if err != nil {
			b.failLookup(ctx, s, chatID, err, "task_not_found")
			return
		}
		s.step = stepTaskEdit
		s.taskID = t.ID
		s.process = t.Process
		b.prompt(chatID, scopeTaskProcess, b.msg.Tf("prompt_task_edit", i18n.Data{"Text": t.Text}))

	case "done":
		t, err := b.uc.Tasks.CompleteTask(ctx, c.ID)
		if err != nil {
			b.failLookup(ctx, s, chatID, err, "task_not_found")
			return
		}
		b.removeKeyboard(m)
		b.replyText(ctx, chatID, b.msg.T("task_done"))
		b.sendTasks(ctx, s, chatID, t.Process)
	}
}

// cancel ends the conversation and returns to the screen it started from.
func (b *Bot) cancel(ctx context.Context, s *session, chatID int64, scope string) {
	process := s.process
	s.reset()
	b.replyText(ctx, chatID, b.msg.T("cancelled"))

	switch {
	case scope == scopeTaskProcess && process.Valid():
		b.sendTasks(ctx, s, chatID, process)
	case scope == scopeTaskProcess:
		b.reply(chatID, b.processesScreen())
	case s.categoryID != 0:
		b.sendCategory(ctx, s, chatID, s.categoryID)
	default:
		b.sendCategories(ctx, s, chatID)
	}
}

func (b *Bot) startCategoryAdd(s *session, chatID int64) {
	s.step = stepCategoryName
	b.prompt(chatID, scopeCategory, b.msg.T("prompt_category_name"))
}

func (b *Bot) sendTasks(ctx context.Context, s *session, chatID int64, process model.Process) {
	sc, err := b.tasksScreen(ctx, process)
	if err != nil {
		b.fail(ctx, s, chatID, err)
		return
	}
	b.reply(chatID, sc)
}

// removeKeyboard strips the inline keyboard from a message whose buttons
// point at something that no longer exists.
func (b *Bot) removeKeyboard(m *tgbotapi.Message) {
	b.send(tgbotapi.NewEditMessageReplyMarkup(m.Chat.ID, m.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}))
}

// failLookup replies with notFoundID when err is a missing record, and
// falls back to fail otherwise.
func (b *Bot) failLookup(ctx context.Context, s *session, chatID int64, err error, notFoundID string) {
	if errors.Is(err, model.ErrNotFound) {
		s.reset()
		b.replyText(ctx, chatID, b.msg.T(notFoundID))
		return
	}
	b.fail(ctx, s, chatID, err)
}
