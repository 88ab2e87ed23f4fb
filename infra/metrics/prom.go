package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/openvelo/scoreboard/core/metrics"
)

// PromSink records scoreboard link events in Prometheus metrics.
type PromSink struct {
	sends      *prometheus.CounterVec
	bytes      prometheus.Counter
	reconnects *prometheus.CounterVec
}

// NewPromSink registers link metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	sends := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scoreboard_sends_total",
		Help: "Total number of scoreboard link writes",
	}, []string{"ok"})
	bytes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scoreboard_bytes_total",
		Help: "Total bytes written to scoreboard links",
	})
	reconnects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scoreboard_reconnects_total",
		Help: "Total number of scoreboard reconnect attempts",
	}, []string{"ok"})

	if err := reg.Register(sends); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			sends = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(bytes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			bytes = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(reconnects); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			reconnects = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{sends: sends, bytes: bytes, reconnects: reconnects}, nil
}

// RecordSend increments the send counters.
func (s *PromSink) RecordSend(ev coremetrics.SendEvent) error {
	s.sends.WithLabelValues(strconv.FormatBool(ev.OK)).Inc()
	if ev.OK {
		s.bytes.Add(float64(ev.Bytes))
	}
	return nil
}

// RecordReconnect increments the reconnect counter.
func (s *PromSink) RecordReconnect(ev coremetrics.ReconnectEvent) error {
	s.reconnects.WithLabelValues(strconv.FormatBool(ev.OK)).Inc()
	return nil
}
