// Package persistence implements repository interfaces for orders.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/edinson0810/pruebaCasa/internal/platform/sqldb"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// SQLRepository stores orders in SQLite or PostgreSQL. Every method joins the
// transaction carried by ctx; multi-statement writes open one when there is none.
type SQLRepository struct {
	db   *sqldb.DB
	read *sqldb.ReadOnlyScope
}

func NewSQLRepository(db *sqldb.DB) *SQLRepository {
	return &SQLRepository{db: db, read: sqldb.NewReadOnlyScope(db)}
}

func (r *SQLRepository) Create(ctx context.Context, order *domain.Order) error {
	err := r.db.WithinTx(ctx, func(ctx context.Context) error {
		q := r.db.Querier(ctx)
		_, err := q.ExecContext(ctx, r.db.Rebind(`INSERT INTO orders
    (id, server_id, table_id, status, total_amount, currency, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			order.ID().String(),
			order.ServerID(),
			order.TableID(),
			order.Status().String(),
			order.Total().Amount(),
			order.Total().Currency(),
			order.CreatedAt(),
			order.UpdatedAt(),
		)
		if err != nil {
			return domain.NewPersistenceError("inserting order", err)
		}
		return r.insertItems(ctx, q, order.ID(), order.Items())
	})
	return domain.AsPersistence(err)
}

func (r *SQLRepository) insertItems(ctx context.Context, q sqldb.Querier, id domain.OrderID, items []domain.LineItem) error {
	query := r.db.Rebind(`INSERT INTO order_items
    (order_id, line_no, menu_item_id, quantity, unit_amount, currency)
    VALUES (?, ?, ?, ?, ?, ?)`)
	for i, item := range items {
		_, err := q.ExecContext(ctx, query,
			id.String(),
			i+1,
			item.MenuItemID,
			item.Quantity,
			item.UnitPrice.Amount(),
			item.UnitPrice.Currency(),
		)
		if err != nil {
			return domain.NewPersistenceError("inserting order item", err)
		}
	}
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	var order *domain.Order
	err := r.read.Execute(ctx, func(ctx context.Context) error {
		q := r.db.Querier(ctx)

		var (
			serverID, tableID int64
			status, currency  string
			totalAmount       int64
			createdAt         time.Time
			updatedAt         time.Time
		)
		err := q.QueryRowContext(ctx, r.db.Rebind(`SELECT server_id, table_id, status, total_amount, currency, created_at, updated_at
    FROM orders WHERE id = ?`), id.String()).
			Scan(&serverID, &tableID, &status, &totalAmount, &currency, &createdAt, &updatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return domain.NewPersistenceError("reading order", err)
		}

		items, err := r.findItems(ctx, q, id)
		if err != nil {
			return err
		}

		total, err := types.NewMoney(totalAmount, currency)
		if err != nil {
			return domain.NewPersistenceError("decoding order total", err)
		}
		order = domain.Reconstitute(id, serverID, tableID, domain.Status(status), items, total, createdAt, updatedAt)
		return nil
	})
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	return order, nil
}

func (r *SQLRepository) findItems(ctx context.Context, q sqldb.Querier, id domain.OrderID) ([]domain.LineItem, error) {
	rows, err := q.QueryContext(ctx, r.db.Rebind(`SELECT menu_item_id, quantity, unit_amount, currency
    FROM order_items WHERE order_id = ? ORDER BY line_no`), id.String())
	if err != nil {
		return nil, domain.NewPersistenceError("reading order items", err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var (
			item       domain.LineItem
			unitAmount int64
			currency   string
		)
		if err := rows.Scan(&item.MenuItemID, &item.Quantity, &unitAmount, &currency); err != nil {
			return nil, domain.NewPersistenceError("scanning order item", err)
		}
		if item.UnitPrice, err = types.NewMoney(unitAmount, currency); err != nil {
			return nil, domain.NewPersistenceError("decoding unit price", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("reading order items", err)
	}
	return items, nil
}

func (r *SQLRepository) UpdateFields(ctx context.Context, id domain.OrderID, fields domain.OrderFields) error {
	if fields.IsEmpty() {
		return domain.ErrNoFieldsToUpdate
	}

	var (
		sets []string
		args []any
	)
	if fields.ServerID != nil {
		sets = append(sets, "server_id = ?")
		args = append(args, *fields.ServerID)
	}
	if fields.TableID != nil {
		sets = append(sets, "table_id = ?")
		args = append(args, *fields.TableID)
	}
	if fields.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, fields.Status.String())
	}
	if fields.Total != nil {
		sets = append(sets, "total_amount = ?", "currency = ?")
		args = append(args, fields.Total.Amount(), fields.Total.Currency())
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id.String())

	query := "UPDATE orders SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := r.db.Querier(ctx).ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return domain.NewPersistenceError("updating order", err)
	}
	return requireAffected(res, "updating order")
}

func (r *SQLRepository) ReplaceItems(ctx context.Context, id domain.OrderID, items []domain.LineItem, total types.Money) error {
	if len(items) == 0 {
		return domain.ErrOrderEmpty
	}

	err := r.db.WithinTx(ctx, func(ctx context.Context) error {
		q := r.db.Querier(ctx)
		res, err := q.ExecContext(ctx, r.db.Rebind(`UPDATE orders SET total_amount = ?, currency = ?, updated_at = ? WHERE id = ?`),
			total.Amount(), total.Currency(), time.Now().UTC(), id.String())
		if err != nil {
			return domain.NewPersistenceError("updating order total", err)
		}
		if err := requireAffected(res, "updating order total"); err != nil {
			return err
		}

		if _, err := q.ExecContext(ctx, r.db.Rebind(`DELETE FROM order_items WHERE order_id = ?`), id.String()); err != nil {
			return domain.NewPersistenceError("deleting order items", err)
		}
		return r.insertItems(ctx, q, id, items)
	})
	return domain.AsPersistence(err)
}

func (r *SQLRepository) TransitionStatus(ctx context.Context, id domain.OrderID, from, to domain.Status) error {
	q := r.db.Querier(ctx)
	res, err := q.ExecContext(ctx, r.db.Rebind(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`),
		to.String(), time.Now().UTC(), id.String(), from.String())
	if err != nil {
		return domain.NewPersistenceError("updating order status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewPersistenceError("updating order status", err)
	}
	if n > 0 {
		return nil
	}

	var one int
	err = q.QueryRowContext(ctx, r.db.Rebind(`SELECT 1 FROM orders WHERE id = ?`), id.String()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.NewPersistenceError("checking order", err)
	}
	return domain.ErrStatusChanged
}

// Delete relies on ON DELETE CASCADE for items and history.
func (r *SQLRepository) Delete(ctx context.Context, id domain.OrderID) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, r.db.Rebind(`DELETE FROM orders WHERE id = ?`), id.String())
	if err != nil {
		return domain.NewPersistenceError("deleting order", err)
	}
	return requireAffected(res, "deleting order")
}

func (r *SQLRepository) AppendHistory(ctx context.Context, entry domain.HistoryEntry) error {
	_, err := r.db.Querier(ctx).ExecContext(ctx, r.db.Rebind(`INSERT INTO order_status_log
    (order_id, old_status, new_status, changed_at) VALUES (?, ?, ?, ?)`),
		entry.OrderID.String(), entry.OldStatus.String(), entry.NewStatus.String(), entry.ChangedAt)
	if err != nil {
		return domain.NewPersistenceError("appending status history", err)
	}
	return nil
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewPersistenceError(op, err)
	}
	if n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

var _ domain.OrderRepository = (*SQLRepository)(nil)
