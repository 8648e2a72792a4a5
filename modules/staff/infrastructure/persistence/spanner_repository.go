package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/edinson0810/pruebaCasa/internal/platform/spanner"
	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
)

var staffSpannerColumns = []string{"StaffID", "Name", "Email", "Role", "Status", "CreatedAt", "UpdatedAt"}

// SpannerRepository implements StaffRepository and TableRepository using Cloud Spanner.
// Keys come from the StaffSeq and DiningTablesSeq sequences.
type SpannerRepository struct {
	client *spanner.Client
}

// NewSpannerRepository creates a new Spanner-backed staff repository.
func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface checks.
var (
	_ domain.StaffRepository = (*SpannerRepository)(nil)
	_ domain.TableRepository = (*SpannerRepository)(nil)
)

// write uses the transaction in ctx if available, otherwise creates a new one.
func (r *SpannerRepository) write(ctx context.Context, fn func(ctx context.Context, tx *spanner.ReadWriteTransaction) error) error {
	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return fn(ctx, tx)
	}
	_, err := r.client.ReadWriteTransaction(ctx, fn)
	return err
}

func (r *SpannerRepository) reader(ctx context.Context) platformspanner.ReadTransaction {
	if rtx, ok := platformspanner.ReadTransactionFromContext(ctx); ok {
		return rtx
	}
	return r.client.Single()
}

func (r *SpannerRepository) insertReturningID(ctx context.Context, stmt spanner.Statement) (int64, error) {
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
	return id, err
}

func (r *SpannerRepository) Create(ctx context.Context, member *domain.StaffMember) error {
	id, err := r.insertReturningID(ctx, spanner.Statement{
		SQL: `INSERT INTO Staff (Name, Email, Role, Status, CreatedAt, UpdatedAt)
		      VALUES (@name, @email, @role, @status, @createdAt, @updatedAt)
		      THEN RETURN StaffID`,
		Params: map[string]interface{}{
			"name":      member.Name().String(),
			"email":     member.Email().String(),
			"role":      member.Role().String(),
			"status":    member.Status().String(),
			"createdAt": member.CreatedAt(),
			"updatedAt": member.UpdatedAt(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to save staff member: %w", err)
	}
	member.AssignID(id)
	return nil
}

func (r *SpannerRepository) Update(ctx context.Context, member *domain.StaffMember) error {
	_, err := r.reader(ctx).ReadRow(ctx, "Staff", spanner.Key{member.ID()}, []string{"StaffID"})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.ErrStaffNotFound
		}
		return fmt.Errorf("failed to read staff member: %w", err)
	}

	mutations := []*spanner.Mutation{
		spanner.Update("Staff", staffSpannerColumns, []interface{}{
			member.ID(),
			member.Name().String(),
			member.Email().String(),
			member.Role().String(),
			member.Status().String(),
			member.CreatedAt(),
			member.UpdatedAt(),
		}),
	}

	// Use existing transaction if available
	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}
	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to save staff member: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	row, err := r.reader(ctx).ReadRow(ctx, "Staff", spanner.Key{id}, staffSpannerColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to read staff member: %w", err)
	}
	return scanSpannerStaff(row)
}

func (r *SpannerRepository) EmailExists(ctx context.Context, email domain.Email) (bool, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT 1 FROM Staff@{FORCE_INDEX=StaffByEmail} WHERE Email = @email LIMIT 1`,
		Params: map[string]interface{}{"email": email.String()},
	}

	iter := r.reader(ctx).Query(ctx, stmt)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check staff email: %w", err)
	}
	return true, nil
}

func (r *SpannerRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.StaffMember, int, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		rtx = roTx
	}

	countIter := rtx.Query(ctx, spanner.Statement{SQL: `SELECT COUNT(*) FROM Staff WHERE Status != 'deleted'`})
	defer countIter.Stop()

	var total int64
	countRow, err := countIter.Next()
	if err != nil && err != iterator.Done {
		return nil, 0, fmt.Errorf("failed to count staff: %w", err)
	}
	if countRow != nil {
		if err := countRow.Columns(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}

	stmt := spanner.Statement{
		SQL: `SELECT StaffID, Name, Email, Role, Status, CreatedAt, UpdatedAt
		      FROM Staff
		      WHERE Status != 'deleted'
		      ORDER BY Name, StaffID
		      LIMIT @limit OFFSET @offset`,
		Params: map[string]interface{}{
			"limit":  int64(limit),
			"offset": int64(offset),
		},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	members := []*domain.StaffMember{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to query staff: %w", err)
		}
		member, err := scanSpannerStaff(row)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, member)
	}

	return members, int(total), nil
}

func scanSpannerStaff(row *spanner.Row) (*domain.StaffMember, error) {
	var (
		id                              int64
		nameStr, emailStr, role, status string
		createdAt, updatedAt            time.Time
	)
	if err := row.Columns(&id, &nameStr, &emailStr, &role, &status, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan staff member: %w", err)
	}
	return reconstitute(id, nameStr, emailStr, role, status, createdAt, updatedAt)
}

// Tables

func (r *SpannerRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	id, err := r.insertReturningID(ctx, spanner.Statement{
		SQL: `INSERT INTO DiningTables (Number, Seats, CreatedAt)
		      VALUES (@number, @seats, @createdAt)
		      THEN RETURN TableID`,
		Params: map[string]interface{}{
			"number":    int64(table.Number()),
			"seats":     int64(table.Seats()),
			"createdAt": table.CreatedAt(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to save table: %w", err)
	}
	table.AssignID(id)
	return nil
}

func (r *SpannerRepository) TableNumberExists(ctx context.Context, number int) (bool, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT 1 FROM DiningTables@{FORCE_INDEX=DiningTablesByNumber} WHERE Number = @number LIMIT 1`,
		Params: map[string]interface{}{"number": int64(number)},
	}

	iter := r.reader(ctx).Query(ctx, stmt)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check table number: %w", err)
	}
	return true, nil
}

func (r *SpannerRepository) FindTableByID(ctx context.Context, id int64) (*domain.Table, error) {
	row, err := r.reader(ctx).ReadRow(ctx, "DiningTables", spanner.Key{id}, []string{"TableID", "Number", "Seats", "CreatedAt"})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	return scanSpannerTable(row)
}

func (r *SpannerRepository) FindAllTables(ctx context.Context) ([]*domain.Table, error) {
	iter := r.reader(ctx).Query(ctx, spanner.Statement{
		SQL: `SELECT TableID, Number, Seats, CreatedAt FROM DiningTables ORDER BY Number`,
	})
	defer iter.Stop()

	tables := []*domain.Table{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query tables: %w", err)
		}
		table, err := scanSpannerTable(row)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func scanSpannerTable(row *spanner.Row) (*domain.Table, error) {
	var (
		id, number, seats int64
		createdAt         time.Time
	)
	if err := row.Columns(&id, &number, &seats, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to scan table: %w", err)
	}
	return domain.ReconstituteTable(id, int(number), int(seats), createdAt), nil
}
