package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/menu/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
)

// WithdrawMenuItemCommand takes an item off the menu.
type WithdrawMenuItemCommand struct {
	MenuItemID string
}

// WithdrawMenuItemHandler soft-deletes menu items: the row stays so existing
// orders still show the product name, but new orders can no longer use it.
type WithdrawMenuItemHandler struct {
	repo    domain.MenuRepository
	txScope transaction.Scope
}

func NewWithdrawMenuItemHandler(repo domain.MenuRepository, txScope transaction.Scope) *WithdrawMenuItemHandler {
	return &WithdrawMenuItemHandler{repo: repo, txScope: txScope}
}

func (h *WithdrawMenuItemHandler) Handle(ctx context.Context, cmd WithdrawMenuItemCommand) error {
	id, err := domain.ParseMenuItemID(cmd.MenuItemID)
	if err != nil {
		return err
	}

	return h.txScope.Execute(ctx, func(ctx context.Context) error {
		item, err := h.repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding menu item: %w", err)
		}
		if !item.Available() {
			return nil
		}
		item.SetAvailable(false)
		if err := h.repo.Update(ctx, item); err != nil {
			return fmt.Errorf("saving menu item: %w", err)
		}
		return nil
	})
}
