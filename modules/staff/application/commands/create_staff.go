// Package commands contains write use cases for the staff module.
// Commands change state and typically don't return data (except IDs).
package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
)

// CreateStaffCommand represents the intent to register a staff member.
type CreateStaffCommand struct {
	Name  string
	Email string
	Role  string
}

// CreateStaffHandler handles the CreateStaffCommand.
type CreateStaffHandler struct {
	repo    domain.StaffRepository
	txScope transaction.Scope
}

func NewCreateStaffHandler(repo domain.StaffRepository, txScope transaction.Scope) *CreateStaffHandler {
	return &CreateStaffHandler{
		repo:    repo,
		txScope: txScope,
	}
}

// Handle executes the create staff use case.
func (h *CreateStaffHandler) Handle(ctx context.Context, cmd CreateStaffCommand) (int64, error) {
	name, err := domain.NewName(cmd.Name)
	if err != nil {
		return 0, fmt.Errorf("invalid name: %w", err)
	}
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return 0, fmt.Errorf("invalid email: %w", err)
	}
	role, err := domain.ParseRole(cmd.Role)
	if err != nil {
		return 0, err
	}

	member := domain.NewStaffMember(name, email, role)

	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		exists, err := h.repo.EmailExists(ctx, email)
		if err != nil {
			return fmt.Errorf("checking email existence: %w", err)
		}
		if exists {
			return domain.ErrEmailExists
		}
		if err := h.repo.Create(ctx, member); err != nil {
			return fmt.Errorf("saving staff member: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return member.ID(), nil
}
