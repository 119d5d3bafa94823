package bot

import (
	"context"
	"errors"

	catdto "github.com/fekuna/omnipos-stockbot/internal/category/dto"
	"github.com/fekuna/omnipos-stockbot/internal/i18n"
	invdto "github.com/fekuna/omnipos-stockbot/internal/inventory/dto"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	proddto "github.com/fekuna/omnipos-stockbot/internal/product/dto"
	"github.com/fekuna/omnipos-stockbot/internal/quantity"
	taskdto "github.com/fekuna/omnipos-stockbot/internal/task/dto"
	"go.uber.org/zap"
)

// handleInput feeds typed text to the pending conversation step.
func (b *Bot) handleInput(ctx context.Context, s *session, chatID int64, text string) {
	switch s.step {
	case stepCategoryName:
		cat, err := b.uc.Categories.CreateCategory(ctx, &catdto.CreateCategoryInput{Name: text})
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		s.reset()
		b.replyText(ctx, chatID, b.msg.Tf("category_added", i18n.Data{"Name": cat.Name}))
		b.sendCategories(ctx, s, chatID)

	case stepCategoryRename:
		cat, err := b.uc.Categories.RenameCategory(ctx, &catdto.RenameCategoryInput{ID: s.categoryID, Name: text})
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		s.reset()
		b.replyText(ctx, chatID, b.msg.Tf("category_renamed", i18n.Data{"Name": cat.Name}))
		b.sendCategories(ctx, s, chatID)

	case stepProductName:
		if text == "" {
			b.fail(ctx, s, chatID, model.ErrEmptyText)
			return
		}
		s.draftName = text
		s.step = stepProductQty
		b.prompt(chatID, scopeProduct, b.msg.T("prompt_product_qty"))

	case stepProductQty:
		qty, err := quantity.ParseQuantity(text)
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		s.draftQty = qty
		s.step = stepProductLimit
		b.prompt(chatID, scopeProduct, b.msg.T("prompt_product_limit"))

	case stepProductLimit:
		b.createProduct(ctx, s, chatID, text)

	case stepProductRename:
		p, err := b.uc.Products.RenameProduct(ctx, &proddto.RenameProductInput{ID: s.productID, Name: text})
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		s.reset()
		b.replyText(ctx, chatID, b.msg.Tf("product_renamed", i18n.Data{"Name": p.Name}))
		b.sendCategory(ctx, s, chatID, p.CategoryID)

	case stepQuantity:
		qty, err := quantity.ParseQuantity(text)
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		res, err := b.uc.Inventory.SetQuantity(ctx, &invdto.SetQuantityInput{ProductID: s.productID, Quantity: qty, Source: "chat"})
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		s.reset()
		b.replyText(ctx, chatID, b.msg.Tf("qty_updated", i18n.Data{"Qty": quantity.Format(res.Product.Quantity)}))
		b.sendCategory(ctx, s, chatID, res.Product.CategoryID)

	case stepLimit:
		limit, err := quantity.ParseLimit(text)
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		res, err := b.uc.Inventory.SetLimit(ctx, &invdto.SetLimitInput{ProductID: s.productID, Limit: limit, Source: "chat"})
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		s.reset()
		if res.Product.Limit == nil {
			b.replyText(ctx, chatID, b.msg.T("limit_cleared"))
		} else {
			b.replyText(ctx, chatID, b.msg.Tf("limit_set", i18n.Data{"Limit": quantity.Format(*res.Product.Limit)}))
		}
		b.sendCategory(ctx, s, chatID, res.Product.CategoryID)

	case stepTaskText:
		t, err := b.uc.Tasks.AddTask(ctx, &taskdto.AddTaskInput{Process: s.process, Text: text})
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		s.reset()
		b.replyText(ctx, chatID, b.msg.T("task_added"))
		b.sendTasks(ctx, s, chatID, t.Process)

	case stepTaskEdit:
		t, err := b.uc.Tasks.EditTask(ctx, &taskdto.EditTaskInput{ID: s.taskID, Text: text})
		if err != nil {
			b.fail(ctx, s, chatID, err)
			return
		}
		s.reset()
		b.replyText(ctx, chatID, b.msg.T("task_updated"))
		b.sendTasks(ctx, s, chatID, t.Process)

	default:
		b.logger.Warn("Input in unknown conversation step", zap.Int64("chat_id", chatID), zap.Int("step", int(s.step)))
		s.reset()
	}
}

// createProduct finishes the add-product conversation. A duplicate name
// sends the user back to the name step.
func (b *Bot) createProduct(ctx context.Context, s *session, chatID int64, text string) {
	limit, err := quantity.ParseLimit(text)
	if err != nil {
		b.fail(ctx, s, chatID, err)
		return
	}

	p, err := b.uc.Products.CreateProduct(ctx, &proddto.CreateProductInput{
		CategoryID: s.categoryID,
		Name:       s.draftName,
		Quantity:   s.draftQty,
		Limit:      limit,
	})
	if errors.Is(err, model.ErrDuplicateName) {
		s.step = stepProductName
		s.draftName = ""
		b.prompt(chatID, scopeProduct, b.msg.T("err_duplicate_product"))
		return
	}
	if err != nil {
		b.fail(ctx, s, chatID, err)
		return
	}

	s.reset()
	b.replyText(ctx, chatID, b.msg.Tf("product_added", i18n.Data{"Name": p.Name, "Qty": quantity.Format(p.Quantity)}))
	b.sendCategory(ctx, s, chatID, p.CategoryID)
}
