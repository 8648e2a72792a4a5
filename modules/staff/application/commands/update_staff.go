package commands

import (
	"context"
	"fmt"

	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
)

// UpdateStaffCommand represents the intent to update a staff member.
// Empty Email and Role keep the current values; Active toggles the account.
type UpdateStaffCommand struct {
	StaffID string
	Name    string
	Email   string
	Role    string
	Active  *bool
}

// UpdateStaffHandler handles the UpdateStaffCommand.
type UpdateStaffHandler struct {
	repo    domain.StaffRepository
	txScope transaction.Scope
}

func NewUpdateStaffHandler(repo domain.StaffRepository, txScope transaction.Scope) *UpdateStaffHandler {
	return &UpdateStaffHandler{
		repo:    repo,
		txScope: txScope,
	}
}

// Handle executes the update staff use case.
func (h *UpdateStaffHandler) Handle(ctx context.Context, cmd UpdateStaffCommand) error {
	id, err := domain.ParseID(cmd.StaffID, domain.ErrInvalidStaffID)
	if err != nil {
		return err
	}
	name, err := domain.NewName(cmd.Name)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	return h.txScope.Execute(ctx, func(ctx context.Context) error {
		member, err := h.repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding staff member: %w", err)
		}

		role := member.Role()
		if cmd.Role != "" {
			if role, err = domain.ParseRole(cmd.Role); err != nil {
				return err
			}
		}
		if err := member.UpdateProfile(name, role); err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}

		if cmd.Email != "" {
			email, err := domain.NewEmail(cmd.Email)
			if err != nil {
				return fmt.Errorf("invalid email: %w", err)
			}
			if !email.Equals(member.Email()) {
				exists, err := h.repo.EmailExists(ctx, email)
				if err != nil {
					return fmt.Errorf("checking email existence: %w", err)
				}
				if exists {
					return domain.ErrEmailExists
				}
				if err := member.ChangeEmail(email); err != nil {
					return err
				}
			}
		}

		if cmd.Active != nil {
			if *cmd.Active {
				err = member.Activate()
			} else {
				err = member.Deactivate()
			}
			if err != nil {
				return err
			}
		}

		if err := h.repo.Update(ctx, member); err != nil {
			return fmt.Errorf("saving staff member: %w", err)
		}
		return nil
	})
}
