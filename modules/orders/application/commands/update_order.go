package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// UpdateOrderCommand replaces the supplied subset of an order's fields.
// Nil fields are left unchanged.
type UpdateOrderCommand struct {
	OrderID  string
	ServerID *int64
	TableID  *int64
	Status   *string
	// Total is a decimal string ("19.00"). It is accepted only when it equals
	// the total derived from the items.
	Total *string
	// Items, when non-nil, replaces the whole item set.
	Items []ItemRequest
}

func (c UpdateOrderCommand) isEmpty() bool {
	return c.ServerID == nil && c.TableID == nil && c.Status == nil && c.Total == nil && c.Items == nil
}

type UpdateOrderHandler struct {
	builder  *OrderBuilder
	repo     domain.OrderRepository
	txScope  transaction.Scope
	dispatch *EventDispatch
}

func NewUpdateOrderHandler(
	builder *OrderBuilder,
	repo domain.OrderRepository,
	txScope transaction.Scope,
	dispatch *EventDispatch,
) *UpdateOrderHandler {
	return &UpdateOrderHandler{
		builder:  builder,
		repo:     repo,
		txScope:  txScope,
		dispatch: dispatch,
	}
}

// Handle applies the update. References and menu prices are resolved before
// the transaction opens; every write happens inside it.
func (h *UpdateOrderHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	orderID, err := domain.ParseOrderID(cmd.OrderID)
	if err != nil {
		return err
	}
	if cmd.isEmpty() {
		return domain.ErrNoFieldsToUpdate
	}

	var next domain.Status
	if cmd.Status != nil {
		if next, err = domain.ParseStatus(*cmd.Status); err != nil {
			return err
		}
	}
	if cmd.ServerID != nil {
		if err := h.builder.CheckServer(ctx, *cmd.ServerID); err != nil {
			return err
		}
	}
	if cmd.TableID != nil {
		if err := h.builder.CheckTable(ctx, *cmd.TableID); err != nil {
			return err
		}
	}
	var lines []domain.LineItem
	if cmd.Items != nil {
		if lines, err = h.builder.PriceItems(ctx, cmd.Items); err != nil {
			return err
		}
	}

	var order *domain.Order
	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		found, err := h.repo.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("finding order: %w", err)
		}
		order = found

		var fields domain.OrderFields
		if cmd.ServerID != nil && *cmd.ServerID != order.ServerID() {
			if err := order.AssignServer(*cmd.ServerID); err != nil {
				return err
			}
			fields.ServerID = cmd.ServerID
		}
		if cmd.TableID != nil && *cmd.TableID != order.TableID() {
			if err := order.MoveToTable(*cmd.TableID); err != nil {
				return err
			}
			fields.TableID = cmd.TableID
		}
		if lines != nil {
			if err := order.ReplaceItems(lines); err != nil {
				return err
			}
		}
		if cmd.Total != nil {
			total, err := types.ParseMoney(*cmd.Total, order.Total().Currency())
			if err != nil {
				return &domain.ValidationError{Field: "total", Reason: err.Error()}
			}
			if err := order.VerifyTotal(total); err != nil {
				return err
			}
		}

		current := order.Status()
		if cmd.Status != nil {
			if err := order.TransitionTo(next); err != nil {
				return err
			}
		}

		if !fields.IsEmpty() {
			if err := h.repo.UpdateFields(ctx, orderID, fields); err != nil {
				return fmt.Errorf("updating order: %w", err)
			}
		}
		if lines != nil {
			if err := h.repo.ReplaceItems(ctx, orderID, order.Items(), order.Total()); err != nil {
				return fmt.Errorf("replacing items: %w", err)
			}
		}
		if cmd.Status != nil {
			if err := h.repo.TransitionStatus(ctx, orderID, current, next); err != nil {
				return fmt.Errorf("updating status: %w", err)
			}
		}

		return h.dispatch.InTx(ctx, order.DomainEvents())
	})
	if err != nil {
		return domain.AsPersistence(err)
	}

	h.dispatch.AfterCommit(ctx, order.PopDomainEvents())
	return nil
}
