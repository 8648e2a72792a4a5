package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
)

// CreateOrderCommand places a new order at a table.
type CreateOrderCommand struct {
	ServerID int64
	TableID  int64
	Status   string
	Items    []ItemRequest
}

type CreateOrderHandler struct {
	builder  *OrderBuilder
	repo     domain.OrderRepository
	txScope  transaction.Scope
	dispatch *EventDispatch
}

func NewCreateOrderHandler(
	builder *OrderBuilder,
	repo domain.OrderRepository,
	txScope transaction.Scope,
	dispatch *EventDispatch,
) *CreateOrderHandler {
	return &CreateOrderHandler{
		builder:  builder,
		repo:     repo,
		txScope:  txScope,
		dispatch: dispatch,
	}
}

// Handle builds the order outside the transaction (menu and directory reads),
// then stores header and items in one transaction. Either the whole order
// becomes visible or nothing does.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	order, err := h.builder.Build(ctx, BuildRequest{
		ServerID: cmd.ServerID,
		TableID:  cmd.TableID,
		Status:   cmd.Status,
		Items:    cmd.Items,
	})
	if err != nil {
		return "", err
	}

	evts := order.PopDomainEvents()
	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		if err := h.repo.Create(ctx, order); err != nil {
			return fmt.Errorf("creating order: %w", err)
		}
		return h.dispatch.InTx(ctx, evts)
	})
	if err != nil {
		return "", domain.AsPersistence(err)
	}

	h.dispatch.AfterCommit(ctx, evts)
	return order.ID().String(), nil
}
