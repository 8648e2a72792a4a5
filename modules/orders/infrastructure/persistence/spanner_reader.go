package persistence

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/edinson0810/pruebaCasa/internal/platform/spanner"
	"github.com/edinson0810/pruebaCasa/modules/orders/application/queries"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

const spannerOrderViewSQL = `SELECT o.OrderID, o.ServerID, IFNULL(s.Name, ''), o.TableID, IFNULL(t.Number, 0),
       o.Status, o.TotalAmount, o.Currency, o.CreatedAt, o.UpdatedAt
FROM Orders o
LEFT JOIN Staff s ON s.StaffID = o.ServerID
LEFT JOIN DiningTables t ON t.TableID = o.TableID`

// SpannerReader serves order read models from Cloud Spanner. All reads of
// one call share a read-only transaction.
type SpannerReader struct {
	client *spanner.Client
}

func NewSpannerReader(client *spanner.Client) *SpannerReader {
	return &SpannerReader{client: client}
}

func (r *SpannerReader) reader(ctx context.Context) (platformspanner.ReadTransaction, func()) {
	if tx, ok := platformspanner.ReadTransactionFromContext(ctx); ok {
		return tx, func() {}
	}
	roTx := r.client.ReadOnlyTransaction()
	return roTx, roTx.Close
}

func (r *SpannerReader) ListOrders(ctx context.Context, filter queries.ListFilter) ([]queries.OrderView, error) {
	reader, done := r.reader(ctx)
	defer done()

	stmt := spanner.Statement{SQL: spannerOrderViewSQL, Params: map[string]interface{}{}}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		stmt.SQL += " WHERE o.Status IN UNNEST(@statuses)"
		stmt.Params["statuses"] = statuses
	}
	stmt.SQL += " ORDER BY o.CreatedAt DESC, o.OrderID"
	if filter.Limit > 0 {
		stmt.SQL += " LIMIT @limit OFFSET @offset"
		stmt.Params["limit"] = int64(filter.Limit)
		stmt.Params["offset"] = int64(filter.Offset)
	} else if filter.Offset > 0 {
		// GoogleSQL requires LIMIT before OFFSET.
		stmt.SQL += " LIMIT 9223372036854775807 OFFSET @offset"
		stmt.Params["offset"] = int64(filter.Offset)
	}

	views, err := r.queryViews(ctx, reader, stmt)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, reader, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *SpannerReader) GetOrder(ctx context.Context, id domain.OrderID) (*queries.OrderView, error) {
	reader, done := r.reader(ctx)
	defer done()

	views, err := r.queryViews(ctx, reader, spanner.Statement{
		SQL:    spannerOrderViewSQL + " WHERE o.OrderID = @id",
		Params: map[string]interface{}{"id": id.String()},
	})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrOrderNotFound
	}
	if err := r.attachItems(ctx, reader, views); err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (r *SpannerReader) ListHistory(ctx context.Context, id domain.OrderID) ([]domain.HistoryEntry, error) {
	reader, done := r.reader(ctx)
	defer done()

	if _, err := reader.ReadRow(ctx, "Orders", spanner.Key{id.String()}, []string{"OrderID"}); err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.NewPersistenceError("checking order", err)
	}

	iter := reader.Read(ctx, "OrderStatusLog", spanner.Key{id.String()}.AsPrefix(),
		[]string{"ChangedAt", "OldStatus", "NewStatus"})
	defer iter.Stop()

	entries := []domain.HistoryEntry{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, domain.NewPersistenceError("reading status history", err)
		}

		entry := domain.HistoryEntry{OrderID: id}
		var oldStatus, newStatus string
		if err := row.Columns(&entry.ChangedAt, &oldStatus, &newStatus); err != nil {
			return nil, domain.NewPersistenceError("scanning status history", err)
		}
		entry.OldStatus, entry.NewStatus = domain.Status(oldStatus), domain.Status(newStatus)
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *SpannerReader) queryViews(ctx context.Context, reader platformspanner.ReadTransaction, stmt spanner.Statement) ([]queries.OrderView, error) {
	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	views := []queries.OrderView{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, domain.NewPersistenceError("listing orders", err)
		}

		var (
			view                 queries.OrderView
			tableNumber          int64
			status, currency     string
			total                int64
			createdAt, updatedAt time.Time
		)
		if err := row.Columns(&view.ID, &view.ServerID, &view.ServerName, &view.TableID, &tableNumber,
			&status, &total, &currency, &createdAt, &updatedAt); err != nil {
			return nil, domain.NewPersistenceError("scanning order", err)
		}
		view.TableNumber = int(tableNumber)
		view.Status = domain.Status(status)
		view.CreatedAt, view.UpdatedAt = createdAt, updatedAt
		if view.Total, err = types.NewMoney(total, currency); err != nil {
			return nil, domain.NewPersistenceError("decoding order total", err)
		}
		views = append(views, view)
	}
	return views, nil
}

func (r *SpannerReader) attachItems(ctx context.Context, reader platformspanner.ReadTransaction, views []queries.OrderView) error {
	if len(views) == 0 {
		return nil
	}
	ids := make([]string, len(views))
	index := make(map[string]int, len(views))
	for i := range views {
		ids[i] = views[i].ID
		index[views[i].ID] = i
		views[i].Items = []queries.ItemView{}
	}

	iter := reader.Query(ctx, spanner.Statement{
		SQL: `SELECT i.OrderID, i.LineNo, i.MenuItemID, IFNULL(m.Name, ''), i.Quantity, i.UnitAmount, i.Currency
		      FROM OrderItems i
		      LEFT JOIN MenuItems m ON m.MenuItemID = i.MenuItemID
		      WHERE i.OrderID IN UNNEST(@ids)
		      ORDER BY i.OrderID, i.LineNo`,
		Params: map[string]interface{}{"ids": ids},
	})
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return domain.NewPersistenceError("reading order items", err)
		}

		var (
			orderID, currency            string
			lineNo, quantity, unitAmount int64
			item                         queries.ItemView
		)
		if err := row.Columns(&orderID, &lineNo, &item.MenuItemID, &item.ProductName, &quantity, &unitAmount, &currency); err != nil {
			return domain.NewPersistenceError("scanning order item", err)
		}
		item.LineNo, item.Quantity = int(lineNo), int(quantity)
		if item.UnitPrice, err = types.NewMoney(unitAmount, currency); err != nil {
			return domain.NewPersistenceError("decoding unit price", err)
		}
		if i, ok := index[orderID]; ok {
			views[i].Items = append(views[i].Items, item)
		}
	}
}

var _ queries.OrderReader = (*SpannerReader)(nil)
