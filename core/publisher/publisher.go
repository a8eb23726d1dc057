package publisher

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher sends payloads to topics below a prefix.
type Publisher interface {
	// Publish encodes payload as JSON and publishes it retained under prefix/topic.
	Publish(topic string, payload any) error
	// Close disconnects from the broker.
	Close()
}

// ErrDisabled is returned by New when publishing is turned off.
var ErrDisabled = errors.New("mqtt publishing is not enabled in config")

// MQTT publishes over a paho client.
type MQTT struct {
	client      mqtt.Client
	topicPrefix string
	timeout     time.Duration
}

// New connects to the configured broker.
func New(cfg Config) (*MQTT, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL(cfg.Broker))
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(timeout)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("connecting to MQTT broker: timed out after %s", timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", err)
	}

	return NewWithClient(client, cfg.TopicPrefix, timeout), nil
}

// NewWithClient wraps an already configured client.
func NewWithClient(client mqtt.Client, topicPrefix string, timeout time.Duration) *MQTT {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MQTT{client: client, topicPrefix: topicPrefix, timeout: timeout}
}

func (p *MQTT) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	full := Topic(p.topicPrefix, topic)
	token := p.client.Publish(full, 1, true, body)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publishing to %s: timed out", full)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", full, err)
	}
	return nil
}

func (p *MQTT) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

// Topic joins topic levels, ignoring empty ones and stray separators.
func Topic(levels ...string) string {
	parts := make([]string, 0, len(levels))
	for _, l := range levels {
		l = strings.Trim(l, "/")
		if l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, "/")
}

func brokerURL(broker string) string {
	if strings.Contains(broker, "://") {
		return broker
	}
	return "tcp://" + broker
}
