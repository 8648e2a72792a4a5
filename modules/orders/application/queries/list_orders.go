package queries

import (
	"context"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
)

const maxListLimit = 500

// OrderListDTO contains a page of orders, newest first.
type OrderListDTO struct {
	Orders []OrderDTO `json:"orders"`
	Count  int        `json:"count"`
	Offset int        `json:"offset"`
	Limit  int        `json:"limit,omitempty"`
}

// ListOrdersQuery lists orders, optionally restricted to some statuses.
// A zero Limit returns every matching order.
type ListOrdersQuery struct {
	Statuses []string
	Offset   int
	Limit    int
}

type ListOrdersHandler struct {
	reader OrderReader
}

func NewListOrdersHandler(reader OrderReader) *ListOrdersHandler {
	return &ListOrdersHandler{reader: reader}
}

func (h *ListOrdersHandler) Handle(ctx context.Context, query ListOrdersQuery) (*OrderListDTO, error) {
	filter := ListFilter{Offset: max(query.Offset, 0), Limit: query.Limit}
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	for _, s := range query.Statuses {
		status, err := domain.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	views, err := h.reader.ListOrders(ctx, filter)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}

	return &OrderListDTO{
		Orders: toOrderDTOs(views),
		Count:  len(views),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}, nil
}
