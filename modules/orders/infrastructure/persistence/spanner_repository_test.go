package persistence_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformspanner "github.com/edinson0810/pruebaCasa/internal/platform/spanner"
	"github.com/edinson0810/pruebaCasa/internal/platform/spanner/emulator"
	"github.com/edinson0810/pruebaCasa/modules/orders/application/queries"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/orders/infrastructure/persistence"
)

// setupSpanner returns an emulator database seeded with the same staff,
// tables and menu items as setupTestDB.
func setupSpanner(t *testing.T) *spanner.Client {
	t.Helper()
	client := emulator.NewDatabase(t)

	now := time.Now().UTC()
	staffCols := []string{"StaffID", "Name", "Email", "Role", "Status", "CreatedAt", "UpdatedAt"}
	tableCols := []string{"TableID", "Number", "Seats", "CreatedAt"}
	menuCols := []string{"MenuItemID", "Name", "Description", "Category", "PriceAmount", "Currency", "Available", "CreatedAt", "UpdatedAt"}

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Insert("Staff", staffCols, []interface{}{int64(1), "Ana Perez", "ana@example.com", "waiter", "active", now, now}),
		spanner.Insert("Staff", staffCols, []interface{}{int64(3), "Luis Gomez", "luis@example.com", "waiter", "active", now, now}),
		spanner.Insert("DiningTables", tableCols, []interface{}{int64(2), int64(12), int64(4), now}),
		spanner.Insert("DiningTables", tableCols, []interface{}{int64(4), int64(14), int64(2), now}),
		spanner.Insert("MenuItems", menuCols, []interface{}{int64(5), "Burger", "", "mains", int64(950), "USD", true, now, now}),
		spanner.Insert("MenuItems", menuCols, []interface{}{int64(6), "Fries", "", "sides", int64(425), "USD", true, now, now}),
	})
	require.NoError(t, err)
	return client
}

func spannerCount(t *testing.T, client *spanner.Client, table string, id domain.OrderID) int64 {
	t.Helper()
	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM " + table + " WHERE OrderID = @id",
		Params: map[string]interface{}{"id": id.String()},
	})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err)
	var n int64
	require.NoError(t, row.Columns(&n))
	return n
}

func TestSpannerRepository_CreateAndFind(t *testing.T) {
	client := setupSpanner(t)
	repo := persistence.NewSpannerRepository(client)
	ctx := context.Background()

	order := newOrder(t, domain.StatusPending,
		domain.LineItem{MenuItemID: 5, Quantity: 2, UnitPrice: usd(950)},
		domain.LineItem{MenuItemID: 6, Quantity: 1, UnitPrice: usd(425)},
	)
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.FindByID(ctx, order.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, found.Status())
	assert.Equal(t, int64(2325), found.Total().Amount())
	require.Len(t, found.Items(), 2)
	assert.Equal(t, int64(5), found.Items()[0].MenuItemID)
	assert.Equal(t, int64(6), found.Items()[1].MenuItemID)

	_, err = repo.FindByID(ctx, domain.NewOrderID())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestSpannerRepository_Create_IsAtomic(t *testing.T) {
	client := setupSpanner(t)
	repo := persistence.NewSpannerRepository(client)

	// Menu item 99 does not exist, so the commit fails on its foreign key.
	order := newOrder(t, domain.StatusPending,
		domain.LineItem{MenuItemID: 5, Quantity: 1, UnitPrice: usd(950)},
		domain.LineItem{MenuItemID: 99, Quantity: 1, UnitPrice: usd(100)},
	)

	err := repo.Create(context.Background(), order)

	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Zero(t, spannerCount(t, client, "Orders", order.ID()))
	assert.Zero(t, spannerCount(t, client, "OrderItems", order.ID()))
}

func TestSpannerRepository_Create_JoinsOuterTransaction(t *testing.T) {
	client := setupSpanner(t)
	repo := persistence.NewSpannerRepository(client)
	scope := platformspanner.NewReadWriteTransactionScope(client)

	order := newOrder(t, domain.StatusPending)
	err := scope.Execute(context.Background(), func(ctx context.Context) error {
		if err := repo.Create(ctx, order); err != nil {
			return err
		}
		return assert.AnError
	})

	require.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, spannerCount(t, client, "Orders", order.ID()))
}

func TestSpannerRepository_TransitionStatus(t *testing.T) {
	client := setupSpanner(t)
	repo := persistence.NewSpannerRepository(client)
	ctx := context.Background()

	order := newOrder(t, domain.StatusPending)
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, repo.TransitionStatus(ctx, order.ID(), domain.StatusPending, domain.StatusPreparing))

	err := repo.TransitionStatus(ctx, order.ID(), domain.StatusPending, domain.StatusPreparing)
	assert.ErrorIs(t, err, domain.ErrStatusChanged)

	err = repo.TransitionStatus(ctx, domain.NewOrderID(), domain.StatusPending, domain.StatusPreparing)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	found, err := repo.FindByID(ctx, order.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, found.Status())
}

func TestSpannerRepository_UpdateAndReplace(t *testing.T) {
	client := setupSpanner(t)
	repo := persistence.NewSpannerRepository(client)
	ctx := context.Background()

	order := newOrder(t, domain.StatusPending)
	require.NoError(t, repo.Create(ctx, order))

	table := int64(4)
	require.NoError(t, repo.UpdateFields(ctx, order.ID(), domain.OrderFields{TableID: &table}))
	require.NoError(t, repo.ReplaceItems(ctx, order.ID(),
		[]domain.LineItem{{MenuItemID: 6, Quantity: 4, UnitPrice: usd(425)}}, usd(1700)))

	found, err := repo.FindByID(ctx, order.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(4), found.TableID())
	assert.Equal(t, int64(1700), found.Total().Amount())
	require.Len(t, found.Items(), 1)
	assert.Equal(t, int64(6), found.Items()[0].MenuItemID)

	assert.ErrorIs(t, repo.UpdateFields(ctx, order.ID(), domain.OrderFields{}), domain.ErrNoFieldsToUpdate)
	assert.ErrorIs(t, repo.UpdateFields(ctx, domain.NewOrderID(), domain.OrderFields{TableID: &table}), domain.ErrOrderNotFound)
}

func TestSpannerRepository_Delete_Cascades(t *testing.T) {
	client := setupSpanner(t)
	repo := persistence.NewSpannerRepository(client)
	ctx := context.Background()

	order := newOrder(t, domain.StatusPending)
	require.NoError(t, repo.Create(ctx, order))
	require.NoError(t, repo.AppendHistory(ctx, domain.HistoryEntry{
		OrderID: order.ID(), NewStatus: domain.StatusPending, ChangedAt: time.Now().UTC(),
	}))

	require.NoError(t, repo.Delete(ctx, order.ID()))

	assert.Zero(t, spannerCount(t, client, "Orders", order.ID()))
	assert.Zero(t, spannerCount(t, client, "OrderItems", order.ID()))
	assert.Zero(t, spannerCount(t, client, "OrderStatusLog", order.ID()))
	assert.ErrorIs(t, repo.Delete(ctx, order.ID()), domain.ErrOrderNotFound)
}

func TestSpannerReader(t *testing.T) {
	client := setupSpanner(t)
	repo := persistence.NewSpannerRepository(client)
	reader := persistence.NewSpannerReader(client)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)

	var ids []domain.OrderID
	for i, status := range []domain.Status{domain.StatusPending, domain.StatusReady, domain.StatusDelivered} {
		seed := newOrder(t, status)
		at := base.Add(time.Duration(i) * time.Minute)
		order := domain.Reconstitute(seed.ID(), seed.ServerID(), seed.TableID(), status, seed.Items(), seed.Total(), at, at)
		require.NoError(t, repo.Create(ctx, order))
		ids = append(ids, order.ID())
	}

	views, err := reader.ListOrders(ctx, queries.ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, ids[2].String(), views[0].ID, "newest first")
	assert.Equal(t, "Ana Perez", views[0].ServerName)
	assert.Equal(t, 12, views[0].TableNumber)
	require.Len(t, views[0].Items, 1)
	assert.Equal(t, "Burger", views[0].Items[0].ProductName)

	board, err := reader.ListOrders(ctx, queries.ListFilter{Statuses: []domain.Status{domain.StatusPending, domain.StatusReady}})
	require.NoError(t, err)
	assert.Len(t, board, 2)

	view, err := reader.GetOrder(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "19.00 USD", view.Total.String())

	_, err = reader.GetOrder(ctx, domain.NewOrderID())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	require.NoError(t, repo.AppendHistory(ctx, domain.HistoryEntry{
		OrderID: ids[0], NewStatus: domain.StatusPending, ChangedAt: base,
	}))
	history, err := reader.ListHistory(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.StatusPending, history[0].NewStatus)
}
