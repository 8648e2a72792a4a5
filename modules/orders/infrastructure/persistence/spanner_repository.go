package persistence

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/edinson0810/pruebaCasa/internal/platform/spanner"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

var (
	orderColumns     = []string{"OrderID", "ServerID", "TableID", "Status", "TotalAmount", "Currency", "CreatedAt", "UpdatedAt"}
	orderItemColumns = []string{"OrderID", "LineNo", "MenuItemID", "Quantity", "UnitAmount", "Currency"}
)

type SpannerRepository struct {
	client *spanner.Client
}

func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// write uses the transaction in ctx if available, otherwise creates a new one.
func (r *SpannerRepository) write(ctx context.Context, fn func(ctx context.Context, tx *spanner.ReadWriteTransaction) error) error {
	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return fn(ctx, tx)
	}
	_, err := r.client.ReadWriteTransaction(ctx, fn)
	return err
}

func (r *SpannerRepository) Create(ctx context.Context, order *domain.Order) error {
	orderID := order.ID().String()
	mutations := []*spanner.Mutation{
		spanner.Insert("Orders", orderColumns, []interface{}{
			orderID,
			order.ServerID(),
			order.TableID(),
			order.Status().String(),
			order.Total().Amount(),
			order.Total().Currency(),
			order.CreatedAt(),
			order.UpdatedAt(),
		}),
	}
	mutations = append(mutations, itemMutations(orderID, order.Items())...)

	err := r.write(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite(mutations)
	})
	if err != nil {
		return domain.NewPersistenceError("inserting order", err)
	}
	return nil
}

func itemMutations(orderID string, items []domain.LineItem) []*spanner.Mutation {
	mutations := make([]*spanner.Mutation, 0, len(items))
	for i, item := range items {
		mutations = append(mutations, spanner.Insert("OrderItems", orderItemColumns, []interface{}{
			orderID,
			int64(i + 1),
			item.MenuItemID,
			int64(item.Quantity),
			item.UnitPrice.Amount(),
			item.UnitPrice.Currency(),
		}))
	}
	return mutations
}

func (r *SpannerRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		// Orders + OrderItems need one snapshot; Single() is only for one read.
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	row, err := reader.ReadRow(ctx, "Orders", spanner.Key{id.String()}, orderColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.NewPersistenceError("reading order", err)
	}

	var (
		orderID, status, currency string
		serverID, tableID, total  int64
		createdAt, updatedAt      time.Time
	)
	if err := row.Columns(&orderID, &serverID, &tableID, &status, &total, &currency, &createdAt, &updatedAt); err != nil {
		return nil, domain.NewPersistenceError("scanning order", err)
	}

	items, err := r.readOrderItems(ctx, reader, orderID)
	if err != nil {
		return nil, err
	}
	totalMoney, err := types.NewMoney(total, currency)
	if err != nil {
		return nil, domain.NewPersistenceError("decoding order total", err)
	}

	return domain.Reconstitute(id, serverID, tableID, domain.Status(status), items, totalMoney, createdAt, updatedAt), nil
}

func (r *SpannerRepository) readOrderItems(ctx context.Context, reader platformspanner.ReadTransaction, orderID string) ([]domain.LineItem, error) {
	iter := reader.Read(ctx, "OrderItems", spanner.Key{orderID}.AsPrefix(),
		[]string{"MenuItemID", "Quantity", "UnitAmount", "Currency"},
	)
	defer iter.Stop()

	var items []domain.LineItem
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, domain.NewPersistenceError("reading order items", err)
		}

		var menuItemID, quantity, unitAmount int64
		var currency string
		if err := row.Columns(&menuItemID, &quantity, &unitAmount, &currency); err != nil {
			return nil, domain.NewPersistenceError("scanning order item", err)
		}
		price, err := types.NewMoney(unitAmount, currency)
		if err != nil {
			return nil, domain.NewPersistenceError("decoding unit price", err)
		}
		items = append(items, domain.LineItem{MenuItemID: menuItemID, Quantity: int(quantity), UnitPrice: price})
	}
	return items, nil
}

func (r *SpannerRepository) UpdateFields(ctx context.Context, id domain.OrderID, fields domain.OrderFields) error {
	if fields.IsEmpty() {
		return domain.ErrNoFieldsToUpdate
	}

	sets := []string{"UpdatedAt = PENDING_COMMIT_TIMESTAMP()"}
	params := map[string]interface{}{"id": id.String()}
	if fields.ServerID != nil {
		sets = append(sets, "ServerID = @serverID")
		params["serverID"] = *fields.ServerID
	}
	if fields.TableID != nil {
		sets = append(sets, "TableID = @tableID")
		params["tableID"] = *fields.TableID
	}
	if fields.Status != nil {
		sets = append(sets, "Status = @status")
		params["status"] = fields.Status.String()
	}
	if fields.Total != nil {
		sets = append(sets, "TotalAmount = @total", "Currency = @currency")
		params["total"] = fields.Total.Amount()
		params["currency"] = fields.Total.Currency()
	}

	stmt := spanner.Statement{
		SQL:    "UPDATE Orders SET " + strings.Join(sets, ", ") + " WHERE OrderID = @id",
		Params: params,
	}
	return r.updateOne(ctx, stmt, "updating order")
}

func (r *SpannerRepository) ReplaceItems(ctx context.Context, id domain.OrderID, items []domain.LineItem, total types.Money) error {
	if len(items) == 0 {
		return domain.ErrOrderEmpty
	}
	orderID := id.String()

	return r.write(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		n, err := tx.Update(ctx, spanner.Statement{
			SQL: `UPDATE Orders SET TotalAmount = @total, Currency = @currency, UpdatedAt = PENDING_COMMIT_TIMESTAMP()
			      WHERE OrderID = @id`,
			Params: map[string]interface{}{"id": orderID, "total": total.Amount(), "currency": total.Currency()},
		})
		if err != nil {
			return domain.NewPersistenceError("updating order total", err)
		}
		if n == 0 {
			return domain.ErrOrderNotFound
		}

		mutations := []*spanner.Mutation{spanner.Delete("OrderItems", spanner.Key{orderID}.AsPrefix())}
		mutations = append(mutations, itemMutations(orderID, items)...)
		if err := tx.BufferWrite(mutations); err != nil {
			return domain.NewPersistenceError("replacing order items", err)
		}
		return nil
	})
}

func (r *SpannerRepository) TransitionStatus(ctx context.Context, id domain.OrderID, from, to domain.Status) error {
	return r.write(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		n, err := tx.Update(ctx, spanner.Statement{
			SQL: `UPDATE Orders SET Status = @to, UpdatedAt = PENDING_COMMIT_TIMESTAMP()
			      WHERE OrderID = @id AND Status = @from`,
			Params: map[string]interface{}{"id": id.String(), "from": from.String(), "to": to.String()},
		})
		if err != nil {
			return domain.NewPersistenceError("updating order status", err)
		}
		if n > 0 {
			return nil
		}

		if _, err := tx.ReadRow(ctx, "Orders", spanner.Key{id.String()}, []string{"OrderID"}); err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.ErrOrderNotFound
			}
			return domain.NewPersistenceError("checking order", err)
		}
		return domain.ErrStatusChanged
	})
}

// Delete removes the order; the interleaved OrderItems and OrderStatusLog
// rows go with it (ON DELETE CASCADE).
func (r *SpannerRepository) Delete(ctx context.Context, id domain.OrderID) error {
	return r.updateOne(ctx, spanner.Statement{
		SQL:    `DELETE FROM Orders WHERE OrderID = @id`,
		Params: map[string]interface{}{"id": id.String()},
	}, "deleting order")
}

func (r *SpannerRepository) AppendHistory(ctx context.Context, entry domain.HistoryEntry) error {
	m := spanner.Insert("OrderStatusLog",
		[]string{"OrderID", "ChangedAt", "EntryID", "OldStatus", "NewStatus"},
		[]interface{}{entry.OrderID.String(), entry.ChangedAt, uuid.NewString(), entry.OldStatus.String(), entry.NewStatus.String()},
	)
	err := r.write(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite([]*spanner.Mutation{m})
	})
	if err != nil {
		return domain.NewPersistenceError("appending status history", err)
	}
	return nil
}

func (r *SpannerRepository) updateOne(ctx context.Context, stmt spanner.Statement, op string) error {
	return r.write(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		n, err := tx.Update(ctx, stmt)
		if err != nil {
			return domain.NewPersistenceError(op, err)
		}
		if n == 0 {
			return domain.ErrOrderNotFound
		}
		return nil
	})
}

var _ domain.OrderRepository = (*SpannerRepository)(nil)
