package domain

import "time"

// Table is a dining table orders are placed for.
type Table struct {
	id        int64
	number    int
	seats     int
	createdAt time.Time
}

// NewTable validates the table layout. The id is assigned by the repository.
func NewTable(number, seats int) (*Table, error) {
	if number <= 0 {
		return nil, ErrTableNumber
	}
	if seats < 1 || seats > 50 {
		return nil, ErrTableSeats
	}
	return &Table{number: number, seats: seats, createdAt: time.Now().UTC()}, nil
}

func ReconstituteTable(id int64, number, seats int, createdAt time.Time) *Table {
	return &Table{id: id, number: number, seats: seats, createdAt: createdAt}
}

func (t *Table) ID() int64            { return t.id }
func (t *Table) Number() int          { return t.number }
func (t *Table) Seats() int           { return t.seats }
func (t *Table) CreatedAt() time.Time { return t.createdAt }

func (t *Table) AssignID(id int64) { t.id = id }
