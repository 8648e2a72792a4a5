package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/edinson0810/pruebaCasa/internal/platform/spanner"
	"github.com/edinson0810/pruebaCasa/modules/menu/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

var menuItemColumns = []string{"MenuItemID", "Name", "Description", "Category", "PriceAmount", "Currency", "Available", "CreatedAt", "UpdatedAt"}

// SpannerRepository implements MenuRepository using Cloud Spanner.
// MenuItemID comes from the MenuItemsSeq bit-reversed sequence.
type SpannerRepository struct {
	client *spanner.Client
}

func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface check.
var _ domain.MenuRepository = (*SpannerRepository)(nil)

func (r *SpannerRepository) write(ctx context.Context, fn func(ctx context.Context, tx *spanner.ReadWriteTransaction) error) error {
	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return fn(ctx, tx)
	}
	_, err := r.client.ReadWriteTransaction(ctx, fn)
	return err
}

func (r *SpannerRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	stmt := spanner.Statement{
		SQL: `INSERT INTO MenuItems (Name, Description, Category, PriceAmount, Currency, Available, CreatedAt, UpdatedAt)
		      VALUES (@name, @description, @category, @amount, @currency, @available, @createdAt, @updatedAt)
		      THEN RETURN MenuItemID`,
		Params: map[string]interface{}{
			"name":        item.Name(),
			"description": item.Description(),
			"category":    item.Category(),
			"amount":      item.Price().Amount(),
			"currency":    item.Price().Currency(),
			"available":   item.Available(),
			"createdAt":   item.CreatedAt(),
			"updatedAt":   item.UpdatedAt(),
		},
	}

	var id int64
	err := r.write(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		iter := tx.Query(ctx, stmt)
		defer iter.Stop()
		row, err := iter.Next()
		if err != nil {
			return err
		}
		return row.Columns(&id)
	})
	if err != nil {
		return fmt.Errorf("inserting menu item: %w", err)
	}
	item.AssignID(id)
	return nil
}

func (r *SpannerRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	stmt := spanner.Statement{
		SQL: `UPDATE MenuItems
		      SET Name = @name, Description = @description, Category = @category,
		          PriceAmount = @amount, Currency = @currency, Available = @available, UpdatedAt = @updatedAt
		      WHERE MenuItemID = @id`,
		Params: map[string]interface{}{
			"id":          item.ID(),
			"name":        item.Name(),
			"description": item.Description(),
			"category":    item.Category(),
			"amount":      item.Price().Amount(),
			"currency":    item.Price().Currency(),
			"available":   item.Available(),
			"updatedAt":   item.UpdatedAt(),
		},
	}

	var affected int64
	err := r.write(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		n, err := tx.Update(ctx, stmt)
		affected = n
		return err
	})
	if err != nil {
		return fmt.Errorf("updating menu item: %w", err)
	}
	if affected == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *SpannerRepository) FindByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	row, err := rtx.ReadRow(ctx, "MenuItems", spanner.Key{id}, menuItemColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("reading menu item: %w", err)
	}
	return scanSpannerMenuItem(row)
}

func (r *SpannerRepository) FindAll(ctx context.Context, filter domain.ListFilter) ([]*domain.MenuItem, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	stmt := spanner.Statement{
		SQL: `SELECT MenuItemID, Name, Description, Category, PriceAmount, Currency, Available, CreatedAt, UpdatedAt
		      FROM MenuItems
		      WHERE (@category = '' OR Category = @category)
		        AND (NOT @availableOnly OR Available)
		      ORDER BY Category, Name, MenuItemID`,
		Params: map[string]interface{}{
			"category":      filter.Category,
			"availableOnly": filter.AvailableOnly,
		},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	items := []*domain.MenuItem{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing menu items: %w", err)
		}
		item, err := scanSpannerMenuItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func scanSpannerMenuItem(row *spanner.Row) (*domain.MenuItem, error) {
	var (
		id                                    int64
		name, description, category, currency string
		amount                                int64
		available                             bool
		createdAt, updatedAt                  time.Time
	)
	if err := row.Columns(&id, &name, &description, &category, &amount, &currency, &available, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning menu item: %w", err)
	}

	price, err := types.NewMoney(amount, currency)
	if err != nil {
		return nil, fmt.Errorf("decoding price of menu item %d: %w", id, err)
	}
	details := domain.Details{Name: name, Description: description, Category: category, Price: price}
	return domain.Reconstitute(id, details, available, createdAt, updatedAt), nil
}
