// Package persistence implements repository interfaces for staff and tables.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edinson0810/pruebaCasa/internal/platform/sqldb"
	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
)

const staffColumns = `id, name, email, role, status, created_at, updated_at`

// SQLRepository stores staff members and dining tables in SQLite or PostgreSQL.
type SQLRepository struct {
	db   *sqldb.DB
	read *sqldb.ReadOnlyScope
}

func NewSQLRepository(db *sqldb.DB) *SQLRepository {
	return &SQLRepository{db: db, read: sqldb.NewReadOnlyScope(db)}
}

// Compile-time interface checks.
var (
	_ domain.StaffRepository = (*SQLRepository)(nil)
	_ domain.TableRepository = (*SQLRepository)(nil)
)

func (r *SQLRepository) Create(ctx context.Context, member *domain.StaffMember) error {
	var id int64
	err := r.db.Querier(ctx).QueryRowContext(ctx, r.db.Rebind(`INSERT INTO staff
    (name, email, role, status, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		member.Name().String(),
		member.Email().String(),
		member.Role().String(),
		member.Status().String(),
		member.CreatedAt(),
		member.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("inserting staff member: %w", err)
	}
	member.AssignID(id)
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, member *domain.StaffMember) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, r.db.Rebind(`UPDATE staff
    SET name = ?, email = ?, role = ?, status = ?, updated_at = ?
    WHERE id = ?`),
		member.Name().String(),
		member.Email().String(),
		member.Role().String(),
		member.Status().String(),
		member.UpdatedAt(),
		member.ID(),
	)
	if err != nil {
		return fmt.Errorf("updating staff member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating staff member: %w", err)
	}
	if n == 0 {
		return domain.ErrStaffNotFound
	}
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	row := r.db.Querier(ctx).QueryRowContext(ctx,
		r.db.Rebind(`SELECT `+staffColumns+` FROM staff WHERE id = ?`), id)
	member, err := scanStaff(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStaffNotFound
	}
	return member, err
}

func (r *SQLRepository) EmailExists(ctx context.Context, email domain.Email) (bool, error) {
	var n int
	err := r.db.Querier(ctx).QueryRowContext(ctx,
		r.db.Rebind(`SELECT COUNT(*) FROM staff WHERE email = ?`), email.String()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking staff email: %w", err)
	}
	return n > 0, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.StaffMember, int, error) {
	var (
		members []*domain.StaffMember
		total   int
	)
	err := r.read.Execute(ctx, func(ctx context.Context) error {
		q := r.db.Querier(ctx)
		if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff WHERE status <> 'deleted'`).Scan(&total); err != nil {
			return fmt.Errorf("counting staff: %w", err)
		}

		rows, err := q.QueryContext(ctx, r.db.Rebind(`SELECT `+staffColumns+` FROM staff
    WHERE status <> 'deleted'
    ORDER BY name, id
    LIMIT ? OFFSET ?`), limit, offset)
		if err != nil {
			return fmt.Errorf("listing staff: %w", err)
		}
		defer rows.Close()

		members = []*domain.StaffMember{}
		for rows.Next() {
			member, err := scanStaff(rows)
			if err != nil {
				return err
			}
			members = append(members, member)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStaff(row rowScanner) (*domain.StaffMember, error) {
	var (
		id                              int64
		nameStr, emailStr, role, status string
		createdAt, updatedAt            time.Time
	)
	err := row.Scan(&id, &nameStr, &emailStr, &role, &status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning staff member: %w", err)
	}
	return reconstitute(id, nameStr, emailStr, role, status, createdAt, updatedAt)
}

func reconstitute(id int64, nameStr, emailStr, role, status string, createdAt, updatedAt time.Time) (*domain.StaffMember, error) {
	name, err := domain.NewName(nameStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse name of staff member %d: %w", id, err)
	}
	email, err := domain.NewEmail(emailStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email of staff member %d: %w", id, err)
	}
	return domain.Reconstitute(id, name, email, domain.Role(role), domain.Status(status), createdAt, updatedAt), nil
}

// Tables

func (r *SQLRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	var id int64
	err := r.db.Querier(ctx).QueryRowContext(ctx, r.db.Rebind(`INSERT INTO dining_tables
    (number, seats, created_at) VALUES (?, ?, ?) RETURNING id`),
		table.Number(), table.Seats(), table.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("inserting table: %w", err)
	}
	table.AssignID(id)
	return nil
}

func (r *SQLRepository) TableNumberExists(ctx context.Context, number int) (bool, error) {
	var n int
	err := r.db.Querier(ctx).QueryRowContext(ctx,
		r.db.Rebind(`SELECT COUNT(*) FROM dining_tables WHERE number = ?`), number).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking table number: %w", err)
	}
	return n > 0, nil
}

func (r *SQLRepository) FindTableByID(ctx context.Context, id int64) (*domain.Table, error) {
	var (
		number, seats int
		createdAt     time.Time
	)
	err := r.db.Querier(ctx).QueryRowContext(ctx,
		r.db.Rebind(`SELECT number, seats, created_at FROM dining_tables WHERE id = ?`), id).
		Scan(&number, &seats, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return domain.ReconstituteTable(id, number, seats, createdAt), nil
}

func (r *SQLRepository) FindAllTables(ctx context.Context) ([]*domain.Table, error) {
	rows, err := r.db.Querier(ctx).QueryContext(ctx,
		`SELECT id, number, seats, created_at FROM dining_tables ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	tables := []*domain.Table{}
	for rows.Next() {
		var (
			id            int64
			number, seats int
			createdAt     time.Time
		)
		if err := rows.Scan(&id, &number, &seats, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning table: %w", err)
		}
		tables = append(tables, domain.ReconstituteTable(id, number, seats, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	return tables, nil
}
