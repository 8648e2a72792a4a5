// Package queries contains read use cases for the staff module.
// Queries return data and don't change state (CQRS pattern).
package queries

import (
	"context"
	"time"

	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
)

// StaffDTO is a read model for staff data.
type StaffDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetStaffQuery represents a request to get a staff member by ID.
type GetStaffQuery struct {
	StaffID string
}

// GetStaffHandler handles GetStaffQuery.
type GetStaffHandler struct {
	repo domain.StaffRepository
}

func NewGetStaffHandler(repo domain.StaffRepository) *GetStaffHandler {
	return &GetStaffHandler{repo: repo}
}

// Handle executes the get staff query.
func (h *GetStaffHandler) Handle(ctx context.Context, query GetStaffQuery) (*StaffDTO, error) {
	id, err := domain.ParseID(query.StaffID, domain.ErrInvalidStaffID)
	if err != nil {
		return nil, err
	}

	member, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toStaffDTO(member), nil
}

func toStaffDTO(member *domain.StaffMember) *StaffDTO {
	return &StaffDTO{
		ID:        member.ID(),
		Name:      member.Name().String(),
		Email:     member.Email().String(),
		Role:      member.Role().String(),
		Status:    member.Status().String(),
		CreatedAt: member.CreatedAt(),
		UpdatedAt: member.UpdatedAt(),
	}
}
