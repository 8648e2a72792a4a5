// Package orders provides order management functionality.
// This is the public API for the orders bounded context.
package orders

import (
	"log/slog"
	"net/http"

	"github.com/edinson0810/pruebaCasa/internal/platform/eventbus"
	"github.com/edinson0810/pruebaCasa/modules/orders/application/commands"
	"github.com/edinson0810/pruebaCasa/modules/orders/application/eventhandlers"
	"github.com/edinson0810/pruebaCasa/modules/orders/application/queries"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	httphandler "github.com/edinson0810/pruebaCasa/modules/orders/infrastructure/http"
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
	"github.com/edinson0810/pruebaCasa/modules/shared/transaction"
)

// Module is the public API for the orders bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Domain Events (published after commit)
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	Repository domain.OrderRepository
	Reader     queries.OrderReader
	TxScope    transaction.Scope

	Menu      domain.MenuLookup
	Directory domain.StaffDirectory

	// Registry receives the module's in-transaction handlers and is consulted
	// by every command before commit.
	Registry *eventbus.EventHandlerRegistry
	// EventPublisher receives events after commit. Optional.
	EventPublisher events.Publisher
	Logger         *slog.Logger
}

type module struct {
	handlers httphandler.Handlers
	logger   *slog.Logger
}

// New creates a new orders module.
func New(cfg Config) Module {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("module", "orders")

	registry := cfg.Registry
	if registry == nil {
		registry = eventbus.NewEventHandlerRegistry(logger)
	}

	history := eventhandlers.NewStatusHistoryHandler(cfg.Repository, logger)
	for _, eventType := range history.EventTypes() {
		if err := registry.Subscribe(eventType, history); err != nil {
			logger.Error("failed to subscribe status history handler",
				slog.String("event_type", eventType.String()),
				slog.Any("error", err),
			)
		}
	}

	builder := commands.NewOrderBuilder(cfg.Menu, cfg.Directory)
	dispatch := commands.NewEventDispatch(registry, cfg.EventPublisher, logger)

	return &module{
		handlers: httphandler.Handlers{
			CreateOrder:      commands.NewCreateOrderHandler(builder, cfg.Repository, cfg.TxScope, dispatch),
			UpdateOrder:      commands.NewUpdateOrderHandler(builder, cfg.Repository, cfg.TxScope, dispatch),
			TransitionStatus: commands.NewTransitionStatusHandler(cfg.Repository, cfg.TxScope, dispatch),
			CancelOrder:      commands.NewCancelOrderHandler(cfg.Repository, cfg.TxScope, dispatch),
			DeleteOrder:      commands.NewDeleteOrderHandler(cfg.Repository, cfg.TxScope, dispatch),
			GetOrder:         queries.NewGetOrderHandler(cfg.Reader),
			ListOrders:       queries.NewListOrdersHandler(cfg.Reader),
			ListByStatus:     queries.NewListByStatusHandler(cfg.Reader),
			GetOrderHistory:  queries.NewGetOrderHistoryHandler(cfg.Reader),
		},
		logger: logger,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.handlers, m.logger)
}
