// Package main is the entry point for the restaurant order service.
// It wires together all modules and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/edinson0810/pruebaCasa/internal/config"
	"github.com/edinson0810/pruebaCasa/internal/platform/eventbus"
	"github.com/edinson0810/pruebaCasa/internal/platform/httpserver"
	"github.com/edinson0810/pruebaCasa/internal/platform/rabbitmq"
	"github.com/edinson0810/pruebaCasa/modules/menu"
	"github.com/edinson0810/pruebaCasa/modules/notifications"
	"github.com/edinson0810/pruebaCasa/modules/notifications/application/eventhandlers"
	"github.com/edinson0810/pruebaCasa/modules/notifications/infrastructure/broker"
	"github.com/edinson0810/pruebaCasa/modules/orders"
	"github.com/edinson0810/pruebaCasa/modules/orders/infrastructure/lookup"
	"github.com/edinson0810/pruebaCasa/modules/staff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newLogger(cfg config.Log) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger.Info("starting restaurant order service", slog.String("store", cfg.Store.Driver))

	st, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer st.close()

	checks := []healthCheck{{name: "store", ping: st.ping}}

	// Initialize event bus (for inter-module communication)
	eventBus := eventbus.New(logger)
	registry := eventbus.NewEventHandlerRegistry(logger)

	var notifier eventhandlers.BoardNotifier
	if cfg.Broker.Driver == config.BrokerRabbitMQ {
		mq, err := rabbitmq.Dial(cfg.Broker.RabbitMQ)
		if err != nil {
			return err
		}
		defer mq.Close()

		if err := mq.DeclareFanout(cfg.Broker.RabbitMQ.Exchange); err != nil {
			return err
		}
		notifier = broker.NewRabbitNotifier(mq, cfg.Broker.RabbitMQ.Exchange)
		checks = append(checks, healthCheck{name: "broker", ping: func(context.Context) error { return mq.Ping() }})
		logger.Info("connected to rabbitmq", slog.String("exchange", cfg.Broker.RabbitMQ.Exchange))
	}

	menuModule := menu.New(menu.Config{
		Repository:      st.menu,
		TxScope:         st.txScope,
		DefaultCurrency: cfg.Currency,
		Logger:          logger,
	})

	staffModule := staff.New(staff.Config{
		Repository: st.staff,
		TxScope:    st.txScope,
		Logger:     logger,
	})

	ordersModule := orders.New(orders.Config{
		Repository:     st.orders,
		Reader:         st.orderReader,
		TxScope:        st.txScope,
		Menu:           lookup.NewMenuLookup(menuModule.Catalog()),
		Directory:      lookup.NewStaffDirectory(staffModule.Directory()),
		Registry:       registry,
		EventPublisher: eventBus,
		Logger:         logger,
	})

	_ = notifications.New(notifications.Config{
		EventSubscriber: eventBus,
		Notifier:        notifier,
		Logger:          logger,
	})

	for _, et := range registry.EventTypes() {
		logger.Debug("transactional handlers ready", slog.String("event_type", et.String()))
	}

	router := buildRouter(st.version, checks, menuModule, staffModule, ordersModule)

	handler := httpserver.Middleware(router,
		httpserver.Recovery(logger),
		httpserver.RequestID(),
		httpserver.Tracing(),
		httpserver.Logging(logger),
		httpserver.CORS(cfg.HTTP.AllowedOrigins),
	)

	return httpserver.New(cfg.HTTP, handler, logger).Run(ctx)
}

// routeRegistrar is implemented by every module that exposes HTTP routes.
type routeRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// buildRouter creates the main HTTP router with all module handlers.
func buildRouter(version versionFunc, checks []healthCheck, modules ...routeRegistrar) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", newHealthHandler(version, checks))

	// Each module registers its own routes (same pattern as event subscriptions)
	for _, m := range modules {
		m.RegisterRoutes(mux)
	}

	return mux
}
