package queries

import (
	"context"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
)

// GetOrderQuery retrieves an order by ID.
type GetOrderQuery struct {
	OrderID string
}

type GetOrderHandler struct {
	reader OrderReader
}

func NewGetOrderHandler(reader OrderReader) *GetOrderHandler {
	return &GetOrderHandler{reader: reader}
}

func (h *GetOrderHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderDTO, error) {
	orderID, err := domain.ParseOrderID(query.OrderID)
	if err != nil {
		return nil, err
	}

	view, err := h.reader.GetOrder(ctx, orderID)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}

	dto := toOrderDTO(*view)
	return &dto, nil
}
