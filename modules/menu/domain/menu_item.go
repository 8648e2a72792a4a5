// Package domain contains the menu catalogue entities.
package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

const maxNameLength = 200

// MenuItem is a dish or drink the restaurant sells. Items are never removed;
// withdrawing one marks it unavailable so past orders keep resolving its name.
type MenuItem struct {
	id          int64
	name        string
	description string
	category    string
	price       types.Money
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// Details are the editable attributes of a menu item.
type Details struct {
	Name        string
	Description string
	Category    string
	Price       types.Money
}

func (d Details) normalize() (Details, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.ToLower(strings.TrimSpace(d.Category))

	if d.Name == "" {
		return Details{}, ErrNameRequired
	}
	if len(d.Name) > maxNameLength {
		return Details{}, ErrNameLength
	}
	if d.Price.Currency() == "" {
		return Details{}, ErrPriceRequired
	}
	if d.Price.IsNegative() {
		return Details{}, ErrNegativePrice
	}
	return d, nil
}

// NewMenuItem creates an available item. The id is assigned by the repository.
func NewMenuItem(details Details) (*MenuItem, error) {
	d, err := details.normalize()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &MenuItem{
		name:        d.Name,
		description: d.Description,
		category:    d.Category,
		price:       d.Price,
		available:   true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstitute recreates a MenuItem from persistence.
func Reconstitute(id int64, details Details, available bool, createdAt, updatedAt time.Time) *MenuItem {
	return &MenuItem{
		id:          id,
		name:        details.Name,
		description: details.Description,
		category:    details.Category,
		price:       details.Price,
		available:   available,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (m *MenuItem) ID() int64            { return m.id }
func (m *MenuItem) Name() string         { return m.name }
func (m *MenuItem) Description() string  { return m.description }
func (m *MenuItem) Category() string     { return m.category }
func (m *MenuItem) Price() types.Money   { return m.price }
func (m *MenuItem) Available() bool      { return m.available }
func (m *MenuItem) CreatedAt() time.Time { return m.createdAt }
func (m *MenuItem) UpdatedAt() time.Time { return m.updatedAt }

func (m *MenuItem) Details() Details {
	return Details{Name: m.name, Description: m.description, Category: m.category, Price: m.price}
}

// AssignID is called by repositories once the store has generated the key.
func (m *MenuItem) AssignID(id int64) { m.id = id }

// Update replaces the editable attributes. Existing orders keep the price
// they were built with.
func (m *MenuItem) Update(details Details) error {
	d, err := details.normalize()
	if err != nil {
		return err
	}
	m.name = d.Name
	m.description = d.Description
	m.category = d.Category
	m.price = d.Price
	m.updatedAt = time.Now().UTC()
	return nil
}

// SetAvailable marks the item as orderable or not.
func (m *MenuItem) SetAvailable(available bool) {
	if m.available == available {
		return
	}
	m.available = available
	m.updatedAt = time.Now().UTC()
}

// ParseMenuItemID parses a path or query identifier.
func ParseMenuItemID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidMenuItemID
	}
	return id, nil
}
