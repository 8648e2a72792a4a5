package domain

import "context"

// StaffRepository defines the persistence interface for staff members.
type StaffRepository interface {
	// Create persists a new member and assigns its id.
	Create(ctx context.Context, member *StaffMember) error

	// Update overwrites an existing member.
	// Returns ErrStaffNotFound if the member doesn't exist.
	Update(ctx context.Context, member *StaffMember) error

	// FindByID returns ErrStaffNotFound if the member doesn't exist.
	FindByID(ctx context.Context, id int64) (*StaffMember, error)

	// EmailExists checks if any member, deleted or not, uses the email.
	EmailExists(ctx context.Context, email Email) (bool, error)

	// FindAll retrieves non-deleted members with pagination.
	FindAll(ctx context.Context, offset, limit int) ([]*StaffMember, int, error)
}

// TableRepository defines the persistence interface for dining tables.
type TableRepository interface {
	// CreateTable persists a new table and assigns its id.
	CreateTable(ctx context.Context, table *Table) error

	// TableNumberExists checks if a table already uses the number.
	TableNumberExists(ctx context.Context, number int) (bool, error)

	// FindTableByID returns ErrTableNotFound if the table doesn't exist.
	FindTableByID(ctx context.Context, id int64) (*Table, error)

	// FindAllTables lists tables ordered by number.
	FindAllTables(ctx context.Context) ([]*Table, error)
}
