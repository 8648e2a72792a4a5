package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/menu/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
)

// UpdateMenuItemCommand replaces the editable attributes of a menu item.
// Available is optional; nil leaves it unchanged.
type UpdateMenuItemCommand struct {
	MenuItemID  string
	Name        string
	Description string
	Category    string
	Price       string
	Currency    string
	Available   *bool
}

// UpdateMenuItemHandler handles the UpdateMenuItemCommand.
type UpdateMenuItemHandler struct {
	repo            domain.MenuRepository
	txScope         transaction.Scope
	defaultCurrency string
}

func NewUpdateMenuItemHandler(repo domain.MenuRepository, txScope transaction.Scope, defaultCurrency string) *UpdateMenuItemHandler {
	return &UpdateMenuItemHandler{repo: repo, txScope: txScope, defaultCurrency: defaultCurrency}
}

// Handle executes the update menu item use case.
func (h *UpdateMenuItemHandler) Handle(ctx context.Context, cmd UpdateMenuItemCommand) error {
	id, err := domain.ParseMenuItemID(cmd.MenuItemID)
	if err != nil {
		return err
	}
	price, err := parsePrice(cmd.Price, cmd.Currency, h.defaultCurrency)
	if err != nil {
		return err
	}
	details := domain.Details{
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		Price:       price,
	}

	return h.txScope.Execute(ctx, func(ctx context.Context) error {
		item, err := h.repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding menu item: %w", err)
		}
		if err := item.Update(details); err != nil {
			return err
		}
		if cmd.Available != nil {
			item.SetAvailable(*cmd.Available)
		}
		if err := h.repo.Update(ctx, item); err != nil {
			return fmt.Errorf("saving menu item: %w", err)
		}
		return nil
	})
}
