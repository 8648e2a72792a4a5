package queries

import (
	"context"

	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
)

// StaffListDTO contains a paginated list of staff members.
type StaffListDTO struct {
	Staff      []*StaffDTO `json:"staff"`
	TotalCount int         `json:"total_count"`
	Offset     int         `json:"offset"`
	Limit      int         `json:"limit"`
}

// ListStaffQuery represents a request to list staff with pagination.
type ListStaffQuery struct {
	Offset int
	Limit  int
}

// ListStaffHandler handles ListStaffQuery.
type ListStaffHandler struct {
	repo domain.StaffRepository
}

func NewListStaffHandler(repo domain.StaffRepository) *ListStaffHandler {
	return &ListStaffHandler{repo: repo}
}

// Handle executes the list staff query.
func (h *ListStaffHandler) Handle(ctx context.Context, query ListStaffQuery) (*StaffListDTO, error) {
	// Apply defaults
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	members, total, err := h.repo.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]*StaffDTO, len(members))
	for i, member := range members {
		dtos[i] = toStaffDTO(member)
	}

	return &StaffListDTO{
		Staff:      dtos,
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
	}, nil
}
