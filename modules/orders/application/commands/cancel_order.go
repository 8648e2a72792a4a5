package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
)

// CancelOrderCommand cancels an order.
type CancelOrderCommand struct {
	OrderID string
}

type CancelOrderHandler struct {
	repo     domain.OrderRepository
	txScope  transaction.Scope
	dispatch *EventDispatch
}

func NewCancelOrderHandler(repo domain.OrderRepository, txScope transaction.Scope, dispatch *EventDispatch) *CancelOrderHandler {
	return &CancelOrderHandler{
		repo:     repo,
		txScope:  txScope,
		dispatch: dispatch,
	}
}

// Handle executes the cancel order use case. Only pending and preparing
// orders can be cancelled.
func (h *CancelOrderHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	orderID, err := domain.ParseOrderID(cmd.OrderID)
	if err != nil {
		return err
	}

	var order *domain.Order
	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		found, err := h.repo.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("finding order: %w", err)
		}
		order = found

		current := order.Status()
		if err := order.Cancel(); err != nil {
			return err
		}

		if err := h.repo.TransitionStatus(ctx, orderID, current, domain.StatusCancelled); err != nil {
			return fmt.Errorf("cancelling order: %w", err)
		}

		return h.dispatch.InTx(ctx, order.DomainEvents())
	})
	if err != nil {
		return domain.AsPersistence(err)
	}

	h.dispatch.AfterCommit(ctx, order.PopDomainEvents())
	return nil
}
