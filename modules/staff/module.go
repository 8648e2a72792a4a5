// Package staff provides staff and dining table management.
// This file defines the module's public API - the single interface
// that other modules use to interact with the staff bounded context.
package staff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
	"github.com/edinson0810/pruebaCasa/modules/staff/application/commands"
	"github.com/edinson0810/pruebaCasa/modules/staff/application/queries"
	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
	httphandler "github.com/edinson0810/pruebaCasa/modules/staff/infrastructure/http"
)

// Module is the public API for the staff bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Directory (synchronous existence checks)
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// Directory answers whether servers and tables exist.
	Directory() Directory
}

// Directory is consulted when orders are placed or reassigned.
type Directory interface {
	// ServerExists reports whether id is an active staff member.
	ServerExists(ctx context.Context, id int64) (bool, error)
	TableExists(ctx context.Context, id int64) (bool, error)
}

// Repository is the combined store the module needs.
type Repository interface {
	domain.StaffRepository
	domain.TableRepository
}

// Config holds the module configuration.
type Config struct {
	Repository Repository
	TxScope    transaction.Scope
	Logger     *slog.Logger
}

// module implements the Module interface.
type module struct {
	repo     Repository
	handlers httphandler.Handlers
	logger   *slog.Logger
}

// New creates a new staff module with all dependencies wired.
func New(cfg Config) Module {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &module{
		repo: cfg.Repository,
		handlers: httphandler.Handlers{
			CreateStaff: commands.NewCreateStaffHandler(cfg.Repository, cfg.TxScope),
			UpdateStaff: commands.NewUpdateStaffHandler(cfg.Repository, cfg.TxScope),
			DeleteStaff: commands.NewDeleteStaffHandler(cfg.Repository, cfg.TxScope),
			GetStaff:    queries.NewGetStaffHandler(cfg.Repository),
			ListStaff:   queries.NewListStaffHandler(cfg.Repository),
			CreateTable: commands.NewCreateTableHandler(cfg.Repository, cfg.TxScope),
			ListTables:  queries.NewListTablesHandler(cfg.Repository),
		},
		logger: logger.With("module", "staff"),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.handlers, m.logger)
}

func (m *module) Directory() Directory { return directory{repo: m.repo} }

type directory struct {
	repo Repository
}

func (d directory) ServerExists(ctx context.Context, id int64) (bool, error) {
	member, err := d.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrStaffNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up staff member %d: %w", id, err)
	}
	return member.CanServe(), nil
}

func (d directory) TableExists(ctx context.Context, id int64) (bool, error) {
	_, err := d.repo.FindTableByID(ctx, id)
	if errors.Is(err, domain.ErrTableNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up table %d: %w", id, err)
	}
	return true, nil
}
