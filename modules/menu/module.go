// Package menu provides the restaurant menu catalogue.
// This is the public API for the menu bounded context.
package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/edinson0810/pruebaCasa/modules/menu/application/commands"
	"github.com/edinson0810/pruebaCasa/modules/menu/application/queries"
	"github.com/edinson0810/pruebaCasa/modules/menu/domain"
	httphandler "github.com/edinson0810/pruebaCasa/modules/menu/infrastructure/http"
	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// Module is the public API for the menu bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Catalog (synchronous price lookups)
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// Catalog resolves menu items for other modules.
	Catalog() Catalog
}

// Item is what other modules see of a menu item.
type Item struct {
	ID        int64
	Name      string
	Price     types.Money
	Available bool
}

// Catalog looks up menu items by id. found is false when the id is unknown.
type Catalog interface {
	LookupItem(ctx context.Context, id int64) (item Item, found bool, err error)
}

// Config holds the module configuration.
type Config struct {
	Repository      domain.MenuRepository
	TxScope         transaction.Scope
	DefaultCurrency string
	Logger          *slog.Logger
}

type module struct {
	repo   domain.MenuRepository
	logger *slog.Logger

	createItemHandler   *commands.CreateMenuItemHandler
	updateItemHandler   *commands.UpdateMenuItemHandler
	withdrawItemHandler *commands.WithdrawMenuItemHandler
	getItemHandler      *queries.GetMenuItemHandler
	listItemsHandler    *queries.ListMenuItemsHandler
}

// New creates a new menu module with all dependencies wired.
func New(cfg Config) Module {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	currency := cfg.DefaultCurrency
	if currency == "" {
		currency = "USD"
	}

	return &module{
		repo:   cfg.Repository,
		logger: logger.With("module", "menu"),

		createItemHandler:   commands.NewCreateMenuItemHandler(cfg.Repository, currency),
		updateItemHandler:   commands.NewUpdateMenuItemHandler(cfg.Repository, cfg.TxScope, currency),
		withdrawItemHandler: commands.NewWithdrawMenuItemHandler(cfg.Repository, cfg.TxScope),
		getItemHandler:      queries.NewGetMenuItemHandler(cfg.Repository),
		listItemsHandler:    queries.NewListMenuItemsHandler(cfg.Repository),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux,
		m.createItemHandler,
		m.updateItemHandler,
		m.withdrawItemHandler,
		m.getItemHandler,
		m.listItemsHandler,
		m.logger,
	)
}

func (m *module) Catalog() Catalog { return catalog{repo: m.repo} }

type catalog struct {
	repo domain.MenuRepository
}

func (c catalog) LookupItem(ctx context.Context, id int64) (Item, bool, error) {
	item, err := c.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrMenuItemNotFound) {
		return Item{}, false, nil
	}
	if err != nil {
		return Item{}, false, fmt.Errorf("looking up menu item %d: %w", id, err)
	}
	return Item{
		ID:        item.ID(),
		Name:      item.Name(),
		Price:     item.Price(),
		Available: item.Available(),
	}, true, nil
}
