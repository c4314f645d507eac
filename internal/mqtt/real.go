package mqtt

import (
	"fmt"
	"time"

	"heater_relay/internal/models"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 2 * time.Second
)

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client paho.Client
	prefix string
}

// NewRealPublisher connects to broker. The client reconnects on its own
// after the initial connection.
func NewRealPublisher(broker, clientID, prefix string) (*RealPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetWill(StateTopic(prefix), `{"heater":"UNKNOWN"}`, 1, true)

	return connect(paho.NewClient(opts), broker, prefix, connectTimeout)
}

func connect(client paho.Client, broker, prefix string, timeout time.Duration) (*RealPublisher, error) {
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		// Stop the retry loop SetConnectRetry started in the background.
		client.Disconnect(0)
		return nil, fmt.Errorf("connect to %s: timeout", broker)
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &RealPublisher{client: client, prefix: prefix}, nil
}

// PublishEvent sends a journal event with QoS 1.
func (p *RealPublisher) PublishEvent(e models.HeaterEvent) error {
	payload, err := FormatEvent(e)
	if err != nil {
		return fmt.Errorf("format event payload: %w", err)
	}
	return p.publish(EventsTopic(p.prefix), 1, false, payload)
}

// PublishState sends the snapshot retained, so new subscribers see the
// current state at once.
func (p *RealPublisher) PublishState(s models.HeaterState) error {
	payload, err := FormatState(s)
	if err != nil {
		return fmt.Errorf("format state payload: %w", err)
	}
	return p.publish(StateTopic(p.prefix), 0, true, payload)
}

// publish waits a bounded time for the broker. While the client is
// reconnecting it fails at once with ErrNotConnected instead of letting paho
// queue the message.
func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnectionOpen() {
		return fmt.Errorf("publish %s: %w", topic, ErrNotConnected)
	}
	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// IsConnected reports the client connection state.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
