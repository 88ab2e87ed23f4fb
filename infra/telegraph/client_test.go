package telegraph

import (
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvelo/scoreboard/internal/eventbus"
)

type mockClient struct {
	mu           sync.Mutex
	disconnected bool
	published    []publishCall
	subscribed   []string
	handler      paho.MessageHandler
}

type publishCall struct {
	topic   string
	payload []byte
}

func (m *mockClient) IsConnected() bool { return true }
func (m *mockClient) Connect() paho.Token {
	return &mockToken{}
}
func (m *mockClient) Disconnect(quiesce uint) {
	m.mu.Lock()
	m.disconnected = true
	m.mu.Unlock()
}
func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	m.mu.Lock()
	m.published = append(m.published, publishCall{topic: topic, payload: payload.([]byte)})
	m.mu.Unlock()
	return &mockToken{}
}
func (m *mockClient) Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token {
	m.mu.Lock()
	m.subscribed = append(m.subscribed, topic)
	m.handler = callback
	m.mu.Unlock()
	return &mockToken{}
}

type mockToken struct{}

func (t *mockToken) Wait() bool                       { return true }
func (t *mockToken) WaitTimeout(_ time.Duration) bool { return true }
func (t *mockToken) Error() error                     { return nil }
func (t *mockToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type mockMessage struct {
	topic   string
	payload []byte
}

func (m mockMessage) Duplicate() bool   { return false }
func (m mockMessage) Qos() byte         { return 0 }
func (m mockMessage) Retained() bool    { return false }
func (m mockMessage) Topic() string     { return m.topic }
func (m mockMessage) MessageID() uint16 { return 0 }
func (m mockMessage) Payload() []byte   { return m.payload }
func (m mockMessage) Ack()              {}

func newTestClient(t *testing.T) (*Client, *mockClient) {
	t.Helper()
	mc := &mockClient{}
	orig := newMQTTClient
	newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return mc }
	t.Cleanup(func() { newMQTTClient = orig })
	c, err := New(Config{Broker: "tcp://localhost:1883"}, eventbus.New())
	require.NoError(t, err)
	return c, mc
}

func TestPublishEncodesJSON(t *testing.T) {
	c, mc := newTestClient(t)
	err := c.Publish("timing/lap", map[string]any{"rider": "21", "lap": 3})
	require.NoError(t, err)
	require.Len(t, mc.published, 1)
	assert.Equal(t, "timing/lap", mc.published[0].topic)
	assert.JSONEq(t, `{"rider":"21","lap":3}`, string(mc.published[0].payload))
}

func TestSubscribeFansOutToBus(t *testing.T) {
	c, mc := newTestClient(t)
	sub := c.Listen()
	require.NoError(t, c.Subscribe("timing/#"))
	require.NotNil(t, mc.handler)

	mc.handler(nil, mockMessage{topic: "timing/finish", payload: []byte(`{"rank":1}`)})

	select {
	case ev := <-sub:
		msg, ok := ev.(Message)
		require.True(t, ok)
		assert.Equal(t, "timing/finish", msg.Topic)
		var body struct {
			Rank int `json:"rank"`
		}
		require.NoError(t, msg.Decode(&body))
		assert.Equal(t, 1, body.Rank)
	case <-time.After(time.Second):
		t.Fatal("no message on bus")
	}
}

func TestCloseDisconnects(t *testing.T) {
	c, mc := newTestClient(t)
	c.Close()
	assert.True(t, mc.disconnected)
}

func TestClientIDDefaulted(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	assert.NotEmpty(t, cfg.ClientID)
}
