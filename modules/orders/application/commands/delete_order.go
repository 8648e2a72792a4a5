package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
)

// DeleteOrderCommand removes an order together with its line items.
type DeleteOrderCommand struct {
	OrderID string
}

type DeleteOrderHandler struct {
	repo     domain.OrderRepository
	txScope  transaction.Scope
	dispatch *EventDispatch
}

func NewDeleteOrderHandler(repo domain.OrderRepository, txScope transaction.Scope, dispatch *EventDispatch) *DeleteOrderHandler {
	return &DeleteOrderHandler{
		repo:     repo,
		txScope:  txScope,
		dispatch: dispatch,
	}
}

func (h *DeleteOrderHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	orderID, err := domain.ParseOrderID(cmd.OrderID)
	if err != nil {
		return err
	}

	evts := []events.Event{domain.NewOrderDeletedEvent(orderID)}
	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		if err := h.repo.Delete(ctx, orderID); err != nil {
			return fmt.Errorf("deleting order: %w", err)
		}
		return h.dispatch.InTx(ctx, evts)
	})
	if err != nil {
		return domain.AsPersistence(err)
	}

	h.dispatch.AfterCommit(ctx, evts)
	return nil
}
