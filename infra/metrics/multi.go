package metrics

import coremetrics "github.com/openvelo/scoreboard/core/metrics"

// MultiSink fans link events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSend forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSend(ev coremetrics.SendEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSend(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordReconnect forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordReconnect(ev coremetrics.ReconnectEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordReconnect(ev); err != nil {
			return err
		}
	}
	return nil
}
