package queries

import (
	"context"

	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
)

// TableDTO is the read model of a dining table.
type TableDTO struct {
	ID     int64 `json:"id"`
	Number int   `json:"number"`
	Seats  int   `json:"seats"`
}

// TableListDTO lists the floor plan.
type TableListDTO struct {
	Tables []TableDTO `json:"tables"`
}

// ListTablesHandler returns every table ordered by number.
type ListTablesHandler struct {
	repo domain.TableRepository
}

func NewListTablesHandler(repo domain.TableRepository) *ListTablesHandler {
	return &ListTablesHandler{repo: repo}
}

func (h *ListTablesHandler) Handle(ctx context.Context) (*TableListDTO, error) {
	tables, err := h.repo.FindAllTables(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]TableDTO, len(tables))
	for i, t := range tables {
		dtos[i] = TableDTO{ID: t.ID(), Number: t.Number(), Seats: t.Seats()}
	}
	return &TableListDTO{Tables: dtos}, nil
}
