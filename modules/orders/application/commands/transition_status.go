package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
)

// TransitionStatusCommand moves an order to the next workflow status.
type TransitionStatusCommand struct {
	OrderID string
	Status  string
}

type TransitionStatusHandler struct {
	repo     domain.OrderRepository
	txScope  transaction.Scope
	dispatch *EventDispatch
}

func NewTransitionStatusHandler(repo domain.OrderRepository, txScope transaction.Scope, dispatch *EventDispatch) *TransitionStatusHandler {
	return &TransitionStatusHandler{
		repo:     repo,
		txScope:  txScope,
		dispatch: dispatch,
	}
}

// Handle accepts only the immediate successor of the current status. The
// stored row is updated conditionally, so two kitchen screens racing on the
// same order cannot both win.
func (h *TransitionStatusHandler) Handle(ctx context.Context, cmd TransitionStatusCommand) error {
	orderID, err := domain.ParseOrderID(cmd.OrderID)
	if err != nil {
		return err
	}
	next, err := domain.ParseStatus(cmd.Status)
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
		if err := order.TransitionTo(next); err != nil {
			return err
		}

		if err := h.repo.TransitionStatus(ctx, orderID, current, next); err != nil {
			return fmt.Errorf("updating status: %w", err)
		}

		return h.dispatch.InTx(ctx, order.DomainEvents())
	})
	if err != nil {
		return domain.AsPersistence(err)
	}

	h.dispatch.AfterCommit(ctx, order.PopDomainEvents())
	return nil
}
