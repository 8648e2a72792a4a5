package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
)

// CreateTableCommand adds a dining table to the floor plan.
type CreateTableCommand struct {
	Number int
	Seats  int
}

// CreateTableHandler handles the CreateTableCommand.
type CreateTableHandler struct {
	repo    domain.TableRepository
	txScope transaction.Scope
}

func NewCreateTableHandler(repo domain.TableRepository, txScope transaction.Scope) *CreateTableHandler {
	return &CreateTableHandler{repo: repo, txScope: txScope}
}

func (h *CreateTableHandler) Handle(ctx context.Context, cmd CreateTableCommand) (int64, error) {
	table, err := domain.NewTable(cmd.Number, cmd.Seats)
	if err != nil {
		return 0, err
	}

	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		exists, err := h.repo.TableNumberExists(ctx, table.Number())
		if err != nil {
			return fmt.Errorf("checking table number: %w", err)
		}
		if exists {
			return domain.ErrTableNumberUsed
		}
		if err := h.repo.CreateTable(ctx, table); err != nil {
			return fmt.Errorf("saving table: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return table.ID(), nil
}
