package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/openvelo/scoreboard/core/metrics"
)

func TestPromSinkCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, sink.RecordSend(coremetrics.SendEvent{Address: "tcp:scb:1946", Bytes: 24, OK: true, Time: now}))
	require.NoError(t, sink.RecordSend(coremetrics.SendEvent{Address: "tcp:scb:1946", Bytes: 10, OK: false, Time: now}))
	require.NoError(t, sink.RecordReconnect(coremetrics.ReconnectEvent{Address: "tcp:scb:1946", OK: true, Time: now}))

	ps := sink.(*PromSink)
	assert.InDelta(t, 1, testutil.ToFloat64(ps.sends.WithLabelValues("true")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(ps.sends.WithLabelValues("false")), 1e-9)
	assert.InDelta(t, 24, testutil.ToFloat64(ps.bytes), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(ps.reconnects.WithLabelValues("true")), 1e-9)
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	_, err = NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	assert.NoError(t, err, "re-registration must reuse existing collectors")
}

type recordingSink struct {
	sends      int
	reconnects int
}

func (r *recordingSink) RecordSend(coremetrics.SendEvent) error           { r.sends++; return nil }
func (r *recordingSink) RecordReconnect(coremetrics.ReconnectEvent) error { r.reconnects++; return nil }

func TestMultiSinkFansOut(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	m := NewMultiSink(a, b)
	require.NoError(t, m.RecordSend(coremetrics.SendEvent{}))
	require.NoError(t, m.RecordReconnect(coremetrics.ReconnectEvent{}))
	assert.Equal(t, 1, a.sends)
	assert.Equal(t, 1, b.sends)
	assert.Equal(t, 1, a.reconnects)
	assert.Equal(t, 1, b.reconnects)
}
