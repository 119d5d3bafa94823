package bot

import (
	"errors"

	"github.com/fekuna/omnipos-stockbot/internal/inventory"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	"github.com/fekuna/omnipos-stockbot/internal/quantity"
)

// replyForError picks the message for err in the context of step s. keep
// reports whether the conversation stays in s so the user can retype.
func replyForError(err error, s step) (msgID string, keep bool) {
	switch {
	case errors.Is(err, quantity.ErrInvalidFormat):
		if s == stepLimit || s == stepProductLimit {
			return "err_invalid_limit", true
		}
		return "err_invalid_qty", true

	case errors.Is(err, model.ErrDuplicateName):
		if s == stepCategoryName || s == stepCategoryRename {
			return "err_duplicate_category", true
		}
		return "err_duplicate_product", true

	case errors.Is(err, model.ErrEmptyText):
		if s == stepTaskText || s == stepTaskEdit {
			return "err_empty_task", true
		}
		return "err_empty_name", true

	case errors.Is(err, model.ErrNotFound):
		switch s {
		case stepProductRename, stepQuantity, stepLimit:
			return "product_not_found", false
		case stepTaskEdit:
			return "task_not_found", false
		default:
			return "category_not_found", false
		}

	case errors.Is(err, inventory.ErrBusy):
		return "err_busy", true

	default:
		return "err_internal", false
	}
}
