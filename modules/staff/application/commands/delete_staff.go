package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
)

// DeleteStaffCommand represents the intent to delete a staff member.
type DeleteStaffCommand struct {
	StaffID string
}

// DeleteStaffHandler handles the DeleteStaffCommand.
type DeleteStaffHandler struct {
	repo    domain.StaffRepository
	txScope transaction.Scope
}

func NewDeleteStaffHandler(repo domain.StaffRepository, txScope transaction.Scope) *DeleteStaffHandler {
	return &DeleteStaffHandler{
		repo:    repo,
		txScope: txScope,
	}
}

// Handle executes the delete staff use case.
func (h *DeleteStaffHandler) Handle(ctx context.Context, cmd DeleteStaffCommand) error {
	id, err := domain.ParseID(cmd.StaffID, domain.ErrInvalidStaffID)
	if err != nil {
		return err
	}

	return h.txScope.Execute(ctx, func(ctx context.Context) error {
		member, err := h.repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding staff member: %w", err)
		}

		member.Delete()

		if err := h.repo.Update(ctx, member); err != nil {
			return fmt.Errorf("saving staff member: %w", err)
		}
		return nil
	})
}
