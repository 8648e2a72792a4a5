// Package persistence implements repository interfaces for the menu.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edinson0810/pruebaCasa/internal/platform/sqldb"
	"github.com/edinson0810/pruebaCasa/modules/menu/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

const menuColumns = `id, name, description, category, price_amount, currency, available, created_at, updated_at`

// SQLRepository stores menu items in SQLite or PostgreSQL.
type SQLRepository struct {
	db *sqldb.DB
}

func NewSQLRepository(db *sqldb.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Compile-time interface check.
var _ domain.MenuRepository = (*SQLRepository)(nil)

func (r *SQLRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	var id int64
	err := r.db.Querier(ctx).QueryRowContext(ctx, r.db.Rebind(`INSERT INTO menu_items
    (name, description, category, price_amount, currency, available, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		item.Name(),
		item.Description(),
		item.Category(),
		item.Price().Amount(),
		item.Price().Currency(),
		item.Available(),
		item.CreatedAt(),
		item.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("inserting menu item: %w", err)
	}
	item.AssignID(id)
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, r.db.Rebind(`UPDATE menu_items
    SET name = ?, description = ?, category = ?, price_amount = ?, currency = ?, available = ?, updated_at = ?
    WHERE id = ?`),
		item.Name(),
		item.Description(),
		item.Category(),
		item.Price().Amount(),
		item.Price().Currency(),
		item.Available(),
		item.UpdatedAt(),
		item.ID(),
	)
	if err != nil {
		return fmt.Errorf("updating menu item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating menu item: %w", err)
	}
	if n == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	row := r.db.Querier(ctx).QueryRowContext(ctx,
		r.db.Rebind(`SELECT `+menuColumns+` FROM menu_items WHERE id = ?`), id)
	item, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMenuItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, filter domain.ListFilter) ([]*domain.MenuItem, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.AvailableOnly {
		where = append(where, "available = ?")
		args = append(args, true)
	}

	query := `SELECT ` + menuColumns + ` FROM menu_items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY category, name, id`

	rows, err := r.db.Querier(ctx).QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	defer rows.Close()

	items := []*domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var (
		id                 int64
		name, description  string
		category, currency string
		amount             int64
		available          bool
		createdAt          time.Time
		updatedAt          time.Time
	)
	err := row.Scan(&id, &name, &description, &category, &amount, &currency, &available, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning menu item: %w", err)
	}

	price, err := types.NewMoney(amount, currency)
	if err != nil {
		return nil, fmt.Errorf("decoding price of menu item %d: %w", id, err)
	}
	details := domain.Details{Name: name, Description: description, Category: category, Price: price}
	return domain.Reconstitute(id, details, available, createdAt, updatedAt), nil
}
