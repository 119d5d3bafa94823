package bot

import (
	"context"

	"github.com/fekuna/omnipos-stockbot/internal/i18n"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/quantity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// screen is one inline-menu page, sent as a new message or edited in place.
type screen struct {
	text   string
	markup tgbotapi.InlineKeyboardMarkup
}

func (b *Bot) categoriesScreen(ctx context.Context) (screen, error) {
	cats, err := b.uc.Categories.ListCategories(ctx)
	if err != nil {
		return screen{}, err
	}
	text := b.msg.T("categories_title")
	if len(cats) == 0 {
		text = b.msg.T("categories_empty")
	}
	return screen{text: text, markup: b.categoriesKeyboard(cats)}, nil
}

func (b *Bot) categoryScreen(ctx context.Context, catID int64) (screen, error) {
	cat, err := b.uc.Categories.GetCategory(ctx, catID)
	if err != nil {
		return screen{}, err
	}
	products, err := b.uc.Products.ListProducts(ctx, catID)
	if err != nil {
		return screen{}, err
	}
	id := "category_title"
	if len(products) == 0 {
		id = "category_empty"
	}
	return screen{
		text:   b.msg.Tf(id, i18n.Data{"Name": cat.Name}),
		markup: b.productsKeyboard(catID, products),
	}, nil
}

func (b *Bot) categoryActionsScreen(ctx context.Context, catID int64) (screen, error) {
	cat, err := b.uc.Categories.GetCategory(ctx, catID)
	if err != nil {
		return screen{}, err
	}
	return screen{
		text:   b.msg.Tf("category_title", i18n.Data{"Name": cat.Name}),
		markup: b.categoryActionsKeyboard(catID),
	}, nil
}

func (b *Bot) productScreen(p *model.Product) screen {
	return screen{
		text:   b.msg.Tf("product_view", productData(p)),
		markup: b.productKeyboard(p),
	}
}

func (b *Bot) processesScreen() screen {
	return screen{text: b.msg.T("processes_title"), markup: b.processesKeyboard()}
}

func (b *Bot) tasksScreen(ctx context.Context, process model.Process) (screen, error) {
	tasks, err := b.uc.Tasks.ListOpenTasks(ctx, process)
	if err != nil {
		return screen{}, err
	}
	id := "tasks_title"
	if len(tasks) == 0 {
		id = "tasks_empty"
	}
	return screen{
		text:   b.msg.Tf(id, i18n.Data{"Process": b.msg.ProcessName(process)}),
		markup: b.tasksKeyboard(process, tasks),
	}, nil
}

func (b *Bot) taskScreen(ctx context.Context, taskID int64) (screen, error) {
	t, err := b.uc.Tasks.GetTask(ctx, taskID)
	if err != nil {
		return screen{}, err
	}
	return screen{
		text:   b.msg.Tf("task_view", i18n.Data{"Process": b.msg.ProcessName(t.Process), "Text": t.Text}),
		markup: b.taskKeyboard(t),
	}, nil
}

func productData(p *model.Product) i18n.Data {
	return i18n.Data{
		"Name":  p.Name,
		"Qty":   quantity.Format(p.Quantity),
		"Limit": quantity.FormatLimit(p.Limit, "—"),
	}
}
