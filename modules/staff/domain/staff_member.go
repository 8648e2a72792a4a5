// Package domain contains the business entities and rules for restaurant staff
// and the dining tables they serve.
package domain

import "time"

// StaffMember is the aggregate root for the staff bounded context.
type StaffMember struct {
	id        int64
	name      Name
	email     Email
	role      Role
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewStaffMember creates an active staff member. The id is assigned by the repository.
func NewStaffMember(name Name, email Email, role Role) *StaffMember {
	now := time.Now().UTC()
	return &StaffMember{
		name:      name,
		email:     email,
		role:      role,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}
}

// Reconstitute recreates a StaffMember from persistence.
func Reconstitute(
	id int64,
	name Name,
	email Email,
	role Role,
	status Status,
	createdAt, updatedAt time.Time,
) *StaffMember {
	return &StaffMember{
		id:        id,
		name:      name,
		email:     email,
		role:      role,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *StaffMember) ID() int64            { return s.id }
func (s *StaffMember) Name() Name           { return s.name }
func (s *StaffMember) Email() Email         { return s.email }
func (s *StaffMember) Role() Role           { return s.role }
func (s *StaffMember) Status() Status       { return s.status }
func (s *StaffMember) CreatedAt() time.Time { return s.createdAt }
func (s *StaffMember) UpdatedAt() time.Time { return s.updatedAt }

// AssignID is called by repositories once the store has generated the key.
func (s *StaffMember) AssignID(id int64) { s.id = id }

// UpdateProfile changes the name and role.
func (s *StaffMember) UpdateProfile(name Name, role Role) error {
	if s.status == StatusDeleted {
		return ErrStaffDeleted
	}
	s.name = name
	s.role = role
	s.updatedAt = time.Now().UTC()
	return nil
}

// ChangeEmail changes the staff member's email address.
func (s *StaffMember) ChangeEmail(email Email) error {
	if s.status == StatusDeleted {
		return ErrStaffDeleted
	}
	s.email = email
	s.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate keeps the member on record but stops new orders being taken under them.
func (s *StaffMember) Deactivate() error {
	if s.status == StatusDeleted {
		return ErrStaffDeleted
	}
	s.status = StatusInactive
	s.updatedAt = time.Now().UTC()
	return nil
}

// Activate activates the staff account.
func (s *StaffMember) Activate() error {
	if s.status == StatusDeleted {
		return ErrStaffDeleted
	}
	s.status = StatusActive
	s.updatedAt = time.Now().UTC()
	return nil
}

// Delete marks the member as deleted (soft delete). Orders they served keep
// pointing at the row.
func (s *StaffMember) Delete() {
	s.status = StatusDeleted
	s.updatedAt = time.Now().UTC()
}

// CanServe reports whether new orders may be assigned to this member.
func (s *StaffMember) CanServe() bool {
	return s.status == StatusActive
}
