// Package commands contains write use cases for the menu module.
package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/menu/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// CreateMenuItemCommand represents the intent to add a dish to the menu.
// Price is a decimal string in major units ("9.50"); an empty Currency uses
// the handler's default.
type CreateMenuItemCommand struct {
	Name        string
	Description string
	Category    string
	Price       string
	Currency    string
}

// CreateMenuItemHandler handles the CreateMenuItemCommand.
type CreateMenuItemHandler struct {
	repo            domain.MenuRepository
	defaultCurrency string
}

func NewCreateMenuItemHandler(repo domain.MenuRepository, defaultCurrency string) *CreateMenuItemHandler {
	return &CreateMenuItemHandler{repo: repo, defaultCurrency: defaultCurrency}
}

// Handle executes the create menu item use case and returns the new id.
func (h *CreateMenuItemHandler) Handle(ctx context.Context, cmd CreateMenuItemCommand) (int64, error) {
	price, err := parsePrice(cmd.Price, cmd.Currency, h.defaultCurrency)
	if err != nil {
		return 0, err
	}

	item, err := domain.NewMenuItem(domain.Details{
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		Price:       price,
	})
	if err != nil {
		return 0, err
	}

	if err := h.repo.Create(ctx, item); err != nil {
		return 0, fmt.Errorf("saving menu item: %w", err)
	}
	return item.ID(), nil
}

func parsePrice(amount, currency, fallback string) (types.Money, error) {
	if amount == "" {
		return types.Money{}, domain.ErrPriceRequired
	}
	if currency == "" {
		currency = fallback
	}
	price, err := types.ParseMoney(amount, currency)
	if err != nil {
		return types.Money{}, fmt.Errorf("%w: %w", domain.ErrInvalidPrice, err)
	}
	return price, nil
}
