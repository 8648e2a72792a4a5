package queries

import (
	"context"
	"time"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
)

type HistoryEntryDTO struct {
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

type OrderHistoryDTO struct {
	OrderID string            `json:"order_id"`
	Entries []HistoryEntryDTO `json:"entries"`
}

// GetOrderHistoryQuery retrieves the status log of one order, oldest first.
type GetOrderHistoryQuery struct {
	OrderID string
}

type GetOrderHistoryHandler struct {
	reader OrderReader
}

func NewGetOrderHistoryHandler(reader OrderReader) *GetOrderHistoryHandler {
	return &GetOrderHistoryHandler{reader: reader}
}

func (h *GetOrderHistoryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) (*OrderHistoryDTO, error) {
	orderID, err := domain.ParseOrderID(query.OrderID)
	if err != nil {
		return nil, err
	}

	entries, err := h.reader.ListHistory(ctx, orderID)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}

	dto := &OrderHistoryDTO{
		OrderID: orderID.String(),
		Entries: make([]HistoryEntryDTO, len(entries)),
	}
	for i, e := range entries {
		dto.Entries[i] = HistoryEntryDTO{
			OldStatus: e.OldStatus.String(),
			NewStatus: e.NewStatus.String(),
			ChangedAt: e.ChangedAt,
		}
	}
	return dto, nil
}
