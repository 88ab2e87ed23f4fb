package metrics

import "time"

// SendEvent describes one attempted write on a scoreboard link.
type SendEvent struct {
	Address string
	Bytes   int
	OK      bool
	Time    time.Time
}

// ReconnectEvent describes one SET_PORT outcome on a scoreboard link.
type ReconnectEvent struct {
	Address string
	OK      bool
	Time    time.Time
}

// Sink records link events for observability purposes.
type Sink interface {
	RecordSend(ev SendEvent) error
	RecordReconnect(ev ReconnectEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordSend(SendEvent) error           { return nil }
func (NopSink) RecordReconnect(ReconnectEvent) error { return nil }
