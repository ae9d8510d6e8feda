package events

import (
	"context"
	"fmt"
	"log/slog"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/iudanet/coffeecloud/internal/config"
)

// disconnectQuiesce - время в мс на отправку оставшихся сообщений при Close
const disconnectQuiesce = 250

// MQTTPublisher publishes events as JSON to MQTT topics.
type MQTTPublisher struct {
	client pahomqtt.Client
	logger *slog.Logger
	prefix string
	qos    byte
}

// NewMQTTPublisher connects to the MQTT broker.
func NewMQTTPublisher(cfg config.MQTTConfig, prefix string, logger *slog.Logger) (*MQTTPublisher, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(cfg.ConnectTimeout)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		logger.Warn("MQTT connection lost", slog.Any("error", err))
	})
	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		logger.Info("Connected to MQTT broker", slog.String("broker", cfg.Broker))
	})

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: timeout after %v", cfg.Broker, cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", cfg.Broker, err)
	}

	return &MQTTPublisher{
		client: client,
		logger: logger,
		prefix: prefix,
		qos:    cfg.QoS,
	}, nil
}

// Publish sends the event to "<prefix>/<type with dots as slashes>".
// Waits for the broker acknowledgement or ctx cancellation.
func (p *MQTTPublisher) Publish(ctx context.Context, event Event) error {
	if !p.client.IsConnectionOpen() {
		return ErrNotConnected
	}

	data, err := encode(event)
	if err != nil {
		return err
	}

	topic := Topic(p.prefix, event.Type)
	token := p.client.Publish(topic, p.qos, false, data)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("publish to %s: %w", topic, ctx.Err())
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	if p.client.IsConnected() {
		p.client.Disconnect(disconnectQuiesce)
	}
	return nil
}
