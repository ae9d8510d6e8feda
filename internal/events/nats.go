package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/iudanet/coffeecloud/internal/config"
)

// NATSPublisher publishes events as JSON to NATS subjects.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
	prefix string
}

// NewNATSPublisher connects to NATS.
// The connection reconnects on its own; events published while disconnected
// are buffered by the client library up to its reconnect buffer size.
func NewNATSPublisher(cfg config.NATSConfig, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	p := &NATSPublisher{logger: logger, prefix: prefix}

	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", slog.Any("error", err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", slog.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}
	p.conn = conn

	logger.Info("Connected to NATS", slog.String("url", conn.ConnectedUrl()))

	return p, nil
}

// Publish sends the event to "<prefix>.<type>".
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.conn.IsClosed() {
		return ErrNotConnected
	}

	data, err := encode(event)
	if err != nil {
		return err
	}

	subject := Subject(p.prefix, event.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Drain()
}
