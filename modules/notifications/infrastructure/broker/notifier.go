// Package broker delivers board messages to kitchen screens.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/edinson0810/pruebaCasa/modules/notifications/application/eventhandlers"
)

const publishTimeout = 5 * time.Second

// Publisher is the part of the RabbitMQ client the notifier uses.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table) error
}

// RabbitNotifier publishes board messages to a fanout exchange. Every board
// binds its own queue, so the routing key is unused.
type RabbitNotifier struct {
	publisher Publisher
	exchange  string
}

func NewRabbitNotifier(publisher Publisher, exchange string) *RabbitNotifier {
	return &RabbitNotifier{publisher: publisher, exchange: exchange}
}

func (n *RabbitNotifier) Notify(ctx context.Context, msg eventhandlers.BoardMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding board message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return n.publisher.Publish(ctx, n.exchange, "", body, amqp.Table{
		"event_type": msg.EventType,
		"event_id":   msg.EventID,
		"order_id":   msg.OrderID,
	})
}

// LogNotifier writes board messages to the log. Used when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, msg eventhandlers.BoardMessage) error {
	n.logger.InfoContext(ctx, "board refresh",
		slog.String("event_type", msg.EventType),
		slog.String("event_id", msg.EventID),
		slog.String("order_id", msg.OrderID),
	)
	return nil
}

// Compile-time interface checks.
var (
	_ eventhandlers.BoardNotifier = (*RabbitNotifier)(nil)
	_ eventhandlers.BoardNotifier = (*LogNotifier)(nil)
)
