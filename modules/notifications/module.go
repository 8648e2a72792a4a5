// Package notifications keeps kitchen and floor screens in sync with orders.
package notifications

import (
	"log/slog"

	"github.com/edinson0810/pruebaCasa/modules/notifications/application/eventhandlers"
	"github.com/edinson0810/pruebaCasa/modules/notifications/infrastructure/broker"
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
)

// Module represents the notification module entry point.
type Module struct{}

type Config struct {
	EventSubscriber events.Subscriber
	// Notifier delivers board messages. Nil logs them instead.
	Notifier eventhandlers.BoardNotifier
	Logger   *slog.Logger
}

// New initializes the notification module and subscribes to order events.
func New(cfg Config) *Module {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("module", "notifications")

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = broker.NewLogNotifier(logger)
	}

	handler := eventhandlers.NewBoardRefreshHandler(notifier, logger)
	for _, eventType := range handler.EventTypes() {
		if err := cfg.EventSubscriber.Subscribe(eventType, handler); err != nil {
			logger.Error("failed to subscribe board refresh handler",
				slog.String("event_type", eventType.String()),
				slog.Any("error", err),
			)
		}
	}

	return &Module{}
}
