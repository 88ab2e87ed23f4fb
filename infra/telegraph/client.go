// Package telegraph is the pub/sub side channel of the timing toolkit. It
// distributes timing and result traffic over an MQTT broker. Unlike the
// scoreboard link, telegraph reconnects automatically and re-subscribes its
// topics on every reconnect.
package telegraph

import (
	"encoding/json"
	"fmt"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/openvelo/scoreboard/infra/logger"
	"github.com/openvelo/scoreboard/internal/eventbus"
)

// Config defines the connection parameters for the telegraph client.
type Config struct {
	Broker     string `json:"broker"`
	ClientID   string `json:"client_id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	QoS        byte   `json:"qos"`
	LWTTopic   string `json:"lwt_topic"`
	LWTPayload string `json:"lwt_payload"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "telegraph-" + uuid.NewString()[:8]
	}
}

// Message is one telegraph datagram as received from the broker.
type Message struct {
	Topic   string
	Payload []byte
}

// Decode unmarshals the JSON payload into v.
func (m Message) Decode(v any) error {
	return json.Unmarshal(m.Payload, v)
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Client is an auto-reconnecting telegraph endpoint. Received messages fan
// out through the event bus.
type Client struct {
	cli pahoClient
	qos byte
	log logger.Logger
	bus eventbus.EventBus

	mu     sync.Mutex
	topics map[string]struct{}
}

// New connects to the broker. Subscriptions survive reconnects: the set of
// subscribed topic filters is replayed from the OnConnect handler.
func New(cfg Config, bus eventbus.EventBus) (*Client, error) {
	cfg.SetDefaults()
	log := logger.New("telegraph")
	c := &Client{qos: cfg.QoS, log: log, bus: bus, topics: make(map[string]struct{})}

	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.QoS, false)
	}
	opts.OnConnect = func(cl paho.Client) {
		log.Infof("telegraph connected")
		c.mu.Lock()
		topics := make([]string, 0, len(c.topics))
		for t := range c.topics {
			topics = append(topics, t)
		}
		c.mu.Unlock()
		for _, t := range topics {
			if token := cl.Subscribe(t, c.qos, c.onMessage); token.Wait() && token.Error() != nil {
				log.Errorf("resubscribe %s: %v", t, token.Error())
			}
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("telegraph connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("telegraph reconnecting")
	}

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("telegraph connect: %w", token.Error())
	}
	c.cli = cli
	return c, nil
}

func (c *Client) onMessage(_ paho.Client, msg paho.Message) {
	c.bus.Publish(Message{Topic: msg.Topic(), Payload: msg.Payload()})
}

// Publish marshals v to JSON and publishes it on the topic.
func (c *Client) Publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", topic, err)
	}
	token := c.cli.Publish(topic, c.qos, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe registers a topic filter. Incoming messages are forwarded to the
// event bus; the filter is replayed after every reconnect.
func (c *Client) Subscribe(topic string) error {
	c.mu.Lock()
	c.topics[topic] = struct{}{}
	c.mu.Unlock()
	token := c.cli.Subscribe(topic, c.qos, c.onMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// Listen returns a channel of received messages. Callers should range over
// the channel until it closes.
func (c *Client) Listen() <-chan eventbus.Event {
	return c.bus.Subscribe()
}

// Close disconnects from the broker.
func (c *Client) Close() {
	if c.cli != nil && c.cli.IsConnected() {
		c.cli.Disconnect(250)
	}
}
