// Package events publishes order lifecycle notifications for fulfillment devices.
//
// Publishing is best effort: callers log a failed publish and carry on,
// the database stays the source of truth.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/coffeecloud/internal/config"
	"github.com/iudanet/coffeecloud/internal/models"
)

// Type identifies an event kind.
type Type string

const (
	// OrderPlaced is emitted after an order is committed
	OrderPlaced Type = "order.placed"
	// OrderObsolete is emitted after an order is invalidated
	OrderObsolete Type = "order.obsolete"
	// SerialLinked is emitted after a serial number is bound to an order line
	SerialLinked Type = "serial.linked"
)

// ErrNotConnected is returned when the broker connection is down.
var ErrNotConnected = errors.New("event broker not connected")

// Event is the payload sent to the broker.
type Event struct {
	OccurredAt   time.Time          `json:"occurred_at"`
	Type         Type               `json:"type"`
	Message      string             `json:"message,omitempty"`
	SerialNumber string             `json:"serial_number,omitempty"`
	Lines        []models.OrderLine `json:"lines,omitempty"`
	OrderID      int64              `json:"order_id"`
	UserID       int64              `json:"user_id,omitempty"`
	MenuID       int64              `json:"menu_id,omitempty"`
}

// Publisher sends events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewOrderPlaced builds the event for a freshly stored order.
func NewOrderPlaced(order *models.Order) Event {
	return Event{
		OccurredAt: time.Now().UTC(),
		Type:       OrderPlaced,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Message:    order.CustomizedMessage,
		Lines:      order.Lines,
	}
}

// NewOrderObsolete builds the event for an invalidated order.
func NewOrderObsolete(orderID int64) Event {
	return Event{
		OccurredAt: time.Now().UTC(),
		Type:       OrderObsolete,
		OrderID:    orderID,
	}
}

// NewSerialLinked builds the event for a new serial link.
func NewSerialLinked(link *models.SerialLink) Event {
	return Event{
		OccurredAt:   time.Now().UTC(),
		Type:         SerialLinked,
		OrderID:      link.OrderID,
		MenuID:       link.MenuID,
		SerialNumber: link.SerialNumber,
	}
}

// Subject returns the NATS subject for the event type, e.g. "coffeecloud.order.placed".
func Subject(prefix string, t Type) string {
	if prefix == "" {
		return string(t)
	}
	return prefix + "." + string(t)
}

// Topic returns the MQTT topic for the event type, e.g. "coffeecloud/order/placed".
func Topic(prefix string, t Type) string {
	topic := strings.ReplaceAll(string(t), ".", "/")
	if prefix == "" {
		return topic
	}
	return prefix + "/" + topic
}

func encode(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", event.Type, err)
	}
	return data, nil
}

// New creates the publisher selected by cfg.Backend.
func New(cfg config.EventsConfig, logger *slog.Logger) (Publisher, error) {
	switch cfg.Backend {
	case config.EventsNone, "":
		return NewLogPublisher(logger), nil
	case config.EventsNATS:
		return NewNATSPublisher(cfg.NATS, cfg.TopicPrefix, logger)
	case config.EventsMQTT:
		return NewMQTTPublisher(cfg.MQTT, cfg.TopicPrefix, logger)
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

// LogPublisher only writes events to the log.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher for the "none" backend.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event at debug level.
func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.DebugContext(ctx, "event",
		slog.String("type", string(event.Type)),
		slog.Int64("order_id", event.OrderID),
	)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error { return nil }
