package queries

import (
	"context"
	"strings"

	"github.com/edinson0810/pruebaCasa/modules/menu/domain"
)

// MenuListDTO contains the menu, grouped by category order.
type MenuListDTO struct {
	Items []*MenuItemDTO `json:"items"`
	Count int            `json:"count"`
}

// ListMenuItemsQuery filters the menu. AvailableOnly hides withdrawn items.
type ListMenuItemsQuery struct {
	Category      string
	AvailableOnly bool
}

// ListMenuItemsHandler handles ListMenuItemsQuery.
type ListMenuItemsHandler struct {
	repo domain.MenuRepository
}

func NewListMenuItemsHandler(repo domain.MenuRepository) *ListMenuItemsHandler {
	return &ListMenuItemsHandler{repo: repo}
}

func (h *ListMenuItemsHandler) Handle(ctx context.Context, query ListMenuItemsQuery) (*MenuListDTO, error) {
	items, err := h.repo.FindAll(ctx, domain.ListFilter{
		Category:      strings.ToLower(strings.TrimSpace(query.Category)),
		AvailableOnly: query.AvailableOnly,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]*MenuItemDTO, len(items))
	for i, item := range items {
		dtos[i] = toMenuItemDTO(item)
	}
	return &MenuListDTO{Items: dtos, Count: len(dtos)}, nil
}
