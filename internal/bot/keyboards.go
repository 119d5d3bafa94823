package bot

import (
	"github.com/fekuna/omnipos-stockbot/internal/i18n"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/quantity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func button(text, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, data)
}

func row(buttons ...tgbotapi.InlineKeyboardButton) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(buttons...)
}

// bottomKeyboard is the persistent reply keyboard. The last row toggles
// the chat's subscription.
func (b *Bot) bottomKeyboard(subscribed bool) tgbotapi.ReplyKeyboardMarkup {
	sub := b.msg.T("btn_subscribe")
	if subscribed {
		sub = b.msg.T("btn_unsubscribe")
	}
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.msg.T("btn_categories")),
			tgbotapi.NewKeyboardButton(b.msg.T("btn_tasks")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.msg.T("btn_reorder")),
			tgbotapi.NewKeyboardButton(b.msg.T("btn_refresh")),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(sub)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func (b *Bot) categoriesKeyboard(cats []model.Category) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		row(button(b.msg.T("btn_add_category"), cb(scopeCategory, "add"))),
	}
	for _, c := range cats {
		rows = append(rows, row(button(
			b.msg.Tf("btn_category", i18n.Data{"Name": c.Name}),
			cbID(scopeCategory, "open", c.ID),
		)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) categoryActionsKeyboard(catID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(
			button(b.msg.T("btn_edit"), cbID(scopeCategory, "edit", catID)),
			button(b.msg.T("btn_delete"), cbID(scopeCategory, "del", catID)),
		),
		row(button(b.msg.T("btn_back"), cbID(scopeCategory, "open", catID))),
	)
}

func (b *Bot) productsKeyboard(catID int64, products []model.Product) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		row(
			button(b.msg.T("btn_category_actions"), cbID(scopeCategory, "actions", catID)),
			button(b.msg.T("btn_add_product"), cbID(scopeProduct, "add", catID)),
		),
	}
	for _, p := range products {
		rows = append(rows, row(button(
			b.msg.Tf("btn_product", i18n.Data{"Name": p.Name, "Qty": quantity.Format(p.Quantity)}),
			cbID(scopeProduct, "open", p.ID),
		)))
	}
	rows = append(rows, row(button(b.msg.T("btn_back_to_categories"), cb(scopeNav, "cats"))))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) productKeyboard(p *model.Product) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(
			button(b.msg.T("btn_edit"), cbID(scopeProduct, "edit", p.ID)),
			button(b.msg.T("btn_delete"), cbID(scopeProduct, "del", p.ID)),
		),
		row(
			button(b.msg.Tf("btn_qty", i18n.Data{"Qty": quantity.Format(p.Quantity)}), cbID(scopeProduct, "qty", p.ID)),
			button(b.msg.Tf("btn_limit", i18n.Data{"Limit": quantity.FormatLimit(p.Limit, "—")}), cbID(scopeProduct, "limit", p.ID)),
		),
		row(button(b.msg.T("btn_back_to_category"), cbID(scopeCategory, "open", p.CategoryID))),
	)
}

func (b *Bot) processesKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range model.Processes {
		rows = append(rows, row(button(b.msg.ProcessName(p), cbID(scopeTaskProcess, "open", int64(p)))))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) tasksKeyboard(process model.Process, tasks []model.Task) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		row(button(b.msg.T("btn_add_task"), cbID(scopeTaskProcess, "add", int64(process)))),
	}
	for i, t := range tasks {
		rows = append(rows, row(button(
			b.msg.Tf("task_line", i18n.Data{"N": i + 1, "Text": t.Text}),
			cbID(scopeTask, "open", t.ID),
		)))
	}
	rows = append(rows, row(button(b.msg.T("btn_back_to_processes"), cb(scopeNav, "task_proc"))))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) taskKeyboard(t *model.Task) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(
			button(b.msg.T("btn_edit"), cbID(scopeTask, "edit", t.ID)),
			button(b.msg.T("btn_done"), cbID(scopeTask, "done", t.ID)),
		),
		row(button(
			b.msg.Tf("btn_back_to_process", i18n.Data{"Process": b.msg.ProcessName(t.Process)}),
			cbID(scopeTaskProcess, "open", int64(t.Process)),
		)),
	)
}

func (b *Bot) confirmKeyboard(yes, no string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(
		button(b.msg.T("btn_confirm_delete"), yes),
		button(b.msg.T("btn_no"), no),
	))
}

func (b *Bot) cancelKeyboard(scope string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(button(b.msg.T("btn_cancel"), cb(scope, "cancel"))))
}
