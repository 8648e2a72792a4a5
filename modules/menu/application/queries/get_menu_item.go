// Package queries contains read use cases for the menu module.
package queries

import (
	"context"
	"time"

	"github.com/edinson0810/pruebaCasa/modules/menu/domain"
)

// MenuItemDTO is the read model of a menu item.
type MenuItemDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       PriceDTO  `json:"price"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PriceDTO renders money as a fixed two-decimal string.
type PriceDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// GetMenuItemQuery represents a request to get a menu item by ID.
type GetMenuItemQuery struct {
	MenuItemID string
}

// GetMenuItemHandler handles GetMenuItemQuery.
type GetMenuItemHandler struct {
	repo domain.MenuRepository
}

func NewGetMenuItemHandler(repo domain.MenuRepository) *GetMenuItemHandler {
	return &GetMenuItemHandler{repo: repo}
}

func (h *GetMenuItemHandler) Handle(ctx context.Context, query GetMenuItemQuery) (*MenuItemDTO, error) {
	id, err := domain.ParseMenuItemID(query.MenuItemID)
	if err != nil {
		return nil, err
	}

	item, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMenuItemDTO(item), nil
}

func toMenuItemDTO(item *domain.MenuItem) *MenuItemDTO {
	return &MenuItemDTO{
		ID:          item.ID(),
		Name:        item.Name(),
		Description: item.Description(),
		Category:    item.Category(),
		Price: PriceDTO{
			Amount:   item.Price().Decimal().StringFixed(2),
			Currency: item.Price().Currency(),
		},
		Available: item.Available(),
		CreatedAt: item.CreatedAt(),
		UpdatedAt: item.UpdatedAt(),
	}
}
