package queries

import (
	"context"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
)

// BoardDTO is the kitchen board: active orders bucketed by status. Buckets
// are never null so an empty column renders as [].
type BoardDTO struct {
	Pending   []OrderDTO `json:"pending"`
	Preparing []OrderDTO `json:"preparing"`
	Ready     []OrderDTO `json:"ready"`
}

// ListByStatusQuery has no parameters; the board always shows every
// active order.
type ListByStatusQuery struct{}

type ListByStatusHandler struct {
	reader OrderReader
}

func NewListByStatusHandler(reader OrderReader) *ListByStatusHandler {
	return &ListByStatusHandler{reader: reader}
}

// Handle reads the active orders in one pass and partitions them. Delivered
// and cancelled orders never appear.
func (h *ListByStatusHandler) Handle(ctx context.Context, _ ListByStatusQuery) (*BoardDTO, error) {
	views, err := h.reader.ListOrders(ctx, ListFilter{Statuses: domain.BoardStatuses})
	if err != nil {
		return nil, domain.AsPersistence(err)
	}

	board := &BoardDTO{
		Pending:   []OrderDTO{},
		Preparing: []OrderDTO{},
		Ready:     []OrderDTO{},
	}
	for _, view := range views {
		switch view.Status {
		case domain.StatusPending:
			board.Pending = append(board.Pending, toOrderDTO(view))
		case domain.StatusPreparing:
			board.Preparing = append(board.Preparing, toOrderDTO(view))
		case domain.StatusReady:
			board.Ready = append(board.Ready, toOrderDTO(view))
		}
	}
	return board, nil
}
