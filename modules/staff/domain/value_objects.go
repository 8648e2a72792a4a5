package domain

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Email is a value object representing a validated email address.
type Email struct {
	value string
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NewEmail creates a validated Email value object.
func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return Email{}, ErrEmailRequired
	}
	if !emailRegex.MatchString(value) {
		return Email{}, ErrEmailInvalid
	}
	return Email{value: value}, nil
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// Name is the display name shown on tickets and the kitchen board.
type Name struct {
	value string
}

// NewName creates a validated Name value object.
func NewName(value string) (Name, error) {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return Name{}, ErrNameRequired
	}
	if n := utf8.RuneCountInString(value); n < 2 || n > 100 {
		return Name{}, ErrNameLength
	}
	return Name{value: value}, nil
}

func (n Name) String() string { return n.value }
func (n Name) IsZero() bool   { return n.value == "" }

// Role is the job a staff member does on the floor.
type Role string

const (
	RoleWaiter  Role = "waiter"
	RoleChef    Role = "chef"
	RoleCashier Role = "cashier"
	RoleManager Role = "manager"
)

// ParseRole accepts any case; empty defaults to waiter.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleWaiter, nil
	}
	r := Role(s)
	switch r {
	case RoleWaiter, RoleChef, RoleCashier, RoleManager:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

// Status represents the staff account status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	default:
		return false
	}
}

// ParseID parses a positive integer identifier, returning invalid on failure.
func ParseID(s string, invalid error) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid
	}
	return id, nil
}
