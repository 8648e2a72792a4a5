package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edinson0810/pruebaCasa/internal/platform/sqldb"
	"github.com/edinson0810/pruebaCasa/modules/orders/application/queries"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/orders/infrastructure/persistence"
)

// storeAt persists an order with an explicit creation time so ordering is
// deterministic.
func storeAt(t *testing.T, db *sqldb.DB, status domain.Status, createdAt time.Time) domain.OrderID {
	t.Helper()
	base := newOrder(t, status)
	order := domain.Reconstitute(base.ID(), base.ServerID(), base.TableID(), status, base.Items(), base.Total(), createdAt, createdAt)
	require.NoError(t, persistence.NewSQLRepository(db).Create(context.Background(), order))
	return order.ID()
}

func TestSQLReader_ListOrders_NewestFirstWithJoins(t *testing.T) {
	db := setupTestDB(t)
	reader := persistence.NewSQLReader(db)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	oldest := storeAt(t, db, domain.StatusPending, base)
	newest := storeAt(t, db, domain.StatusDelivered, base.Add(2*time.Minute))
	middle := storeAt(t, db, domain.StatusReady, base.Add(time.Minute))

	views, err := reader.ListOrders(context.Background(), queries.ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, newest.String(), views[0].ID)
	assert.Equal(t, middle.String(), views[1].ID)
	assert.Equal(t, oldest.String(), views[2].ID)

	v := views[0]
	assert.Equal(t, "Ana Perez", v.ServerName)
	assert.Equal(t, 12, v.TableNumber)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "Burger", v.Items[0].ProductName)
	assert.Equal(t, 2, v.Items[0].Quantity)
	assert.Equal(t, "19.00 USD", v.Total.String())
}

func TestSQLReader_ListOrders_Filters(t *testing.T) {
	db := setupTestDB(t)
	reader := persistence.NewSQLReader(db)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	storeAt(t, db, domain.StatusPending, base)
	storeAt(t, db, domain.StatusPreparing, base.Add(time.Minute))
	storeAt(t, db, domain.StatusDelivered, base.Add(2*time.Minute))
	storeAt(t, db, domain.StatusReady, base.Add(3*time.Minute))

	active, err := reader.ListOrders(context.Background(), queries.ListFilter{Statuses: domain.BoardStatuses})
	require.NoError(t, err)
	require.Len(t, active, 3)
	for _, v := range active {
		assert.NotEqual(t, domain.StatusDelivered, v.Status)
	}

	page, err := reader.ListOrders(context.Background(), queries.ListFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, domain.StatusDelivered, page[0].Status)
	assert.Equal(t, domain.StatusPreparing, page[1].Status)

	tail, err := reader.ListOrders(context.Background(), queries.ListFilter{Offset: 3})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, domain.StatusPending, tail[0].Status)
}

func TestSQLReader_ListOrders_EmptyIsNotNil(t *testing.T) {
	views, err := persistence.NewSQLReader(setupTestDB(t)).ListOrders(context.Background(), queries.ListFilter{})

	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestSQLReader_GetOrder(t *testing.T) {
	db := setupTestDB(t)
	reader := persistence.NewSQLReader(db)
	id := storeAt(t, db, domain.StatusPending, time.Now().UTC())

	view, err := reader.GetOrder(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id.String(), view.ID)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].LineNo)

	_, err = reader.GetOrder(context.Background(), domain.NewOrderID())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestSQLReader_ListHistory(t *testing.T) {
	db := setupTestDB(t)
	reader := persistence.NewSQLReader(db)
	repo := persistence.NewSQLRepository(db)
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	id := storeAt(t, db, domain.StatusPending, at)
	require.NoError(t, repo.AppendHistory(ctx, domain.HistoryEntry{OrderID: id, NewStatus: domain.StatusPending, ChangedAt: at}))
	require.NoError(t, repo.AppendHistory(ctx, domain.HistoryEntry{
		OrderID: id, OldStatus: domain.StatusPending, NewStatus: domain.StatusPreparing, ChangedAt: at.Add(time.Minute),
	}))

	entries, err := reader.ListHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.Status(""), entries[0].OldStatus)
	assert.Equal(t, domain.StatusPreparing, entries[1].NewStatus)

	_, err = reader.ListHistory(ctx, domain.NewOrderID())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
