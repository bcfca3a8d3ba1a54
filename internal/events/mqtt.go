package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

// mqttPublisher is the subset of mqtt.Client used for publishing.
type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTPublisher publishes events as JSON to <prefix>/<kind>.
type MQTTPublisher struct {
	client mqttPublisher
	prefix string
	qos    byte
}

// ConnectMQTT connects to the broker and returns a publisher for topicPrefix.
func ConnectMQTT(broker, clientID, topicPrefix string) (*MQTTPublisher, mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, nil, fmt.Errorf("mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, nil, fmt.Errorf("mqtt connect error: %w", err)
	}
	return NewMQTTPublisher(client, topicPrefix), client, nil
}

// NewMQTTPublisher wraps an already connected client.
func NewMQTTPublisher(client mqttPublisher, topicPrefix string) *MQTTPublisher {
	return &MQTTPublisher{
		client: client,
		prefix: strings.TrimSuffix(topicPrefix, "/"),
		qos:    1,
	}
}

// Topic returns the topic an event of the given kind is published on.
func (p *MQTTPublisher) Topic(kind Kind) string {
	return p.prefix + "/" + string(kind)
}

// Publish sends evt and waits for the broker acknowledgement.
func (p *MQTTPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	token := p.client.Publish(p.Topic(evt.Kind), p.qos, false, payload)

	timer := time.NewTimer(publishTimeout)
	defer timer.Stop()
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("mqtt publish to %s timed out", p.Topic(evt.Kind))
	}
}
