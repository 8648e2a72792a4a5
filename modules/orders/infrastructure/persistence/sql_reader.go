package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/edinson0810/pruebaCasa/internal/platform/sqldb"
	"github.com/edinson0810/pruebaCasa/modules/orders/application/queries"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// itemBatchSize bounds the IN list used to load items for a page of orders.
const itemBatchSize = 200

const orderViewColumns = `SELECT o.id, o.server_id, COALESCE(s.name, ''), o.table_id, COALESCE(t.number, 0),
    o.status, o.total_amount, o.currency, o.created_at, o.updated_at
FROM orders o
LEFT JOIN staff s ON s.id = o.server_id
LEFT JOIN dining_tables t ON t.id = o.table_id`

// SQLReader serves order read models. Headers and items are read inside one
// read-only transaction so a concurrent create is seen entirely or not at all.
type SQLReader struct {
	db   *sqldb.DB
	read *sqldb.ReadOnlyScope
}

func NewSQLReader(db *sqldb.DB) *SQLReader {
	return &SQLReader{db: db, read: sqldb.NewReadOnlyScope(db)}
}

func (r *SQLReader) ListOrders(ctx context.Context, filter queries.ListFilter) ([]queries.OrderView, error) {
	var query strings.Builder
	var args []any

	query.WriteString(orderViewColumns)
	if len(filter.Statuses) > 0 {
		query.WriteString(" WHERE o.status IN (" + sqldb.Placeholders(len(filter.Statuses)) + ")")
		for _, s := range filter.Statuses {
			args = append(args, s.String())
		}
	}
	query.WriteString(" ORDER BY o.created_at DESC, o.id")
	switch {
	case filter.Limit > 0:
		query.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	case filter.Offset > 0 && r.db.Dialect() == sqldb.DialectSQLite:
		query.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, filter.Offset)
	case filter.Offset > 0:
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	views := []queries.OrderView{}
	err := r.read.Execute(ctx, func(ctx context.Context) error {
		q := r.db.Querier(ctx)
		rows, err := q.QueryContext(ctx, r.db.Rebind(query.String()), args...)
		if err != nil {
			return domain.NewPersistenceError("listing orders", err)
		}
		defer rows.Close()

		for rows.Next() {
			view, err := scanOrderView(rows)
			if err != nil {
				return err
			}
			views = append(views, view)
		}
		if err := rows.Err(); err != nil {
			return domain.NewPersistenceError("listing orders", err)
		}
		rows.Close()

		return r.attachItems(ctx, q, views)
	})
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	return views, nil
}

func (r *SQLReader) GetOrder(ctx context.Context, id domain.OrderID) (*queries.OrderView, error) {
	var view queries.OrderView
	err := r.read.Execute(ctx, func(ctx context.Context) error {
		q := r.db.Querier(ctx)
		row := q.QueryRowContext(ctx, r.db.Rebind(orderViewColumns+" WHERE o.id = ?"), id.String())

		var err error
		view, err = scanOrderView(row)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		views := []queries.OrderView{view}
		if err := r.attachItems(ctx, q, views); err != nil {
			return err
		}
		view = views[0]
		return nil
	})
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	return &view, nil
}

func (r *SQLReader) ListHistory(ctx context.Context, id domain.OrderID) ([]domain.HistoryEntry, error) {
	entries := []domain.HistoryEntry{}
	err := r.read.Execute(ctx, func(ctx context.Context) error {
		q := r.db.Querier(ctx)

		var one int
		err := q.QueryRowContext(ctx, r.db.Rebind(`SELECT 1 FROM orders WHERE id = ?`), id.String()).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return domain.NewPersistenceError("checking order", err)
		}

		rows, err := q.QueryContext(ctx, r.db.Rebind(`SELECT old_status, new_status, changed_at
    FROM order_status_log WHERE order_id = ? ORDER BY changed_at, id`), id.String())
		if err != nil {
			return domain.NewPersistenceError("reading status history", err)
		}
		defer rows.Close()

		for rows.Next() {
			entry := domain.HistoryEntry{OrderID: id}
			var oldStatus, newStatus string
			if err := rows.Scan(&oldStatus, &newStatus, &entry.ChangedAt); err != nil {
				return domain.NewPersistenceError("scanning status history", err)
			}
			entry.OldStatus, entry.NewStatus = domain.Status(oldStatus), domain.Status(newStatus)
			entries = append(entries, entry)
		}
		if err := rows.Err(); err != nil {
			return domain.NewPersistenceError("reading status history", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	return entries, nil
}

// attachItems loads the items of every view in batches and assigns them in
// line order. Views without items get an empty slice.
func (r *SQLReader) attachItems(ctx context.Context, q sqldb.Querier, views []queries.OrderView) error {
	index := make(map[string]int, len(views))
	for i := range views {
		index[views[i].ID] = i
		views[i].Items = []queries.ItemView{}
	}

	for start := 0; start < len(views); start += itemBatchSize {
		end := min(start+itemBatchSize, len(views))
		args := make([]any, 0, end-start)
		for _, v := range views[start:end] {
			args = append(args, v.ID)
		}

		query := `SELECT i.order_id, i.line_no, i.menu_item_id, COALESCE(m.name, ''), i.quantity, i.unit_amount, i.currency
FROM order_items i
LEFT JOIN menu_items m ON m.id = i.menu_item_id
WHERE i.order_id IN (` + sqldb.Placeholders(len(args)) + `)
ORDER BY i.order_id, i.line_no`

		if err := r.scanItems(ctx, q, query, args, views, index); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLReader) scanItems(ctx context.Context, q sqldb.Querier, query string, args []any, views []queries.OrderView, index map[string]int) error {
	rows, err := q.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return domain.NewPersistenceError("reading order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID    string
			item       queries.ItemView
			unitAmount int64
			currency   string
		)
		if err := rows.Scan(&orderID, &item.LineNo, &item.MenuItemID, &item.ProductName, &item.Quantity, &unitAmount, &currency); err != nil {
			return domain.NewPersistenceError("scanning order item", err)
		}
		if item.UnitPrice, err = types.NewMoney(unitAmount, currency); err != nil {
			return domain.NewPersistenceError("decoding unit price", err)
		}
		if i, ok := index[orderID]; ok {
			views[i].Items = append(views[i].Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.NewPersistenceError("reading order items", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderView(row rowScanner) (queries.OrderView, error) {
	var (
		view        queries.OrderView
		status      string
		totalAmount int64
		currency    string
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := row.Scan(&view.ID, &view.ServerID, &view.ServerName, &view.TableID, &view.TableNumber,
		&status, &totalAmount, &currency, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return view, err
	}
	if err != nil {
		return view, domain.NewPersistenceError("scanning order", err)
	}

	view.Status = domain.Status(status)
	view.CreatedAt, view.UpdatedAt = createdAt, updatedAt
	if view.Total, err = types.NewMoney(totalAmount, currency); err != nil {
		return view, domain.NewPersistenceError("decoding order total", err)
	}
	return view, nil
}

var _ queries.OrderReader = (*SQLReader)(nil)
