package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvelo/scoreboard/infra/logger"
)

func TestPollDecodesReading(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"temp_c":21.5,"humidity":48,"pressure":1013.2,"wind_ms":3.4}`))
	}))
	defer srv.Close()

	var got Reading
	c := NewClient(Config{URL: srv.URL}, logger.NopLogger{}, func(r Reading) { got = r })
	require.NoError(t, c.poll(context.Background()))

	assert.InDelta(t, 21.5, got.TempC, 1e-9)
	assert.InDelta(t, 48, got.Humidity, 1e-9)
	assert.InDelta(t, 3.4, got.WindMS, 1e-9)
	assert.False(t, got.Time.IsZero())
}

func TestPollRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	called := false
	c := NewClient(Config{URL: srv.URL}, logger.NopLogger{}, func(Reading) { called = true })
	assert.Error(t, c.poll(context.Background()))
	assert.False(t, called)
}

func TestIntervalDefaulted(t *testing.T) {
	c := NewClient(Config{URL: "http://localhost"}, logger.NopLogger{}, nil)
	assert.Equal(t, 60, c.cfg.PollIntervalSeconds)
}
