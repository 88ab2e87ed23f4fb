// Package board implements the scoreboard dispatch engine: a background
// worker that serializes outbound display updates to one remote scoreboard
// over TCP, UDP or a serial line. All cross-thread mutation flows through a
// FIFO command queue consumed by a single worker, so the link state needs no
// locks. Broken links are torn down and left disconnected; the application
// recovers them by issuing a new SetPort.
package board

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/openvelo/scoreboard/core/logger"
	"github.com/openvelo/scoreboard/core/metrics"
	"github.com/openvelo/scoreboard/core/unt4"
)

// Sender owns one scoreboard link. Arbitrarily many goroutines may submit
// updates concurrently; a dedicated worker consumes them in order.
type Sender struct {
	cfg   Config
	open  Opener
	log   logger.Logger
	sink  metrics.Sink
	queue *cmdQueue
	done  chan struct{}

	// cur mirrors the worker-owned transport for Connected snapshots.
	cur atomic.Pointer[slot]

	// worker-owned state
	addr   string
	ignore bool

	ovMu  sync.Mutex
	curov string

	closeOnce sync.Once
}

type slot struct{ t Transport }

// NewSender creates a Sender and starts its worker. The link starts
// disconnected; call SetPort to open it.
func NewSender(cfg Config, open Opener, sink metrics.Sink, log logger.Logger) (*Sender, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := newSender(cfg, open, sink, log)
	go s.run()
	return s, nil
}

// newSender builds a Sender without starting its worker.
func newSender(cfg Config, open Opener, sink metrics.Sink, log logger.Logger) *Sender {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Sender{
		cfg:   cfg,
		open:  open,
		log:   log,
		sink:  sink,
		queue: newCmdQueue(),
		done:  make(chan struct{}),
	}
}

// SetPort requests a reconnect to the given address string. Commands still
// queued are discarded: a new port request obsoletes traffic destined for
// the old port. The request never blocks the caller.
func (s *Sender) SetPort(spec string) {
	s.queue.Replace(command{kind: cmdSetPort, port: spec})
}

// SendMsg enqueues one protocol message for transmission.
func (s *Sender) SendMsg(m unt4.Message) {
	s.queue.Put(command{kind: cmdSend, payload: m.Pack()})
}

// Wait blocks until every command queued so far has been processed.
func (s *Sender) Wait() {
	s.queue.Wait()
}

// Connected reports whether a live transport is attached. It is a
// non-blocking snapshot and may be stale by the time it returns.
func (s *Sender) Connected() bool {
	t := s.transport()
	return t != nil && t.Live()
}

// Close terminates the worker after the queued commands ahead of the
// terminate request, closes the active transport and joins the worker.
func (s *Sender) Close() error {
	s.closeOnce.Do(func() {
		s.queue.Put(command{kind: cmdTerminate})
	})
	<-s.done
	return nil
}

func (s *Sender) run() {
	defer close(s.done)
	for {
		c := s.queue.Get()
		stop := s.process(c)
		s.queue.TaskDone()
		if stop {
			return
		}
	}
}

// process executes one command. No failure is allowed to escape the loop:
// every error is logged and converted into a state change.
func (s *Sender) process(c command) (stop bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("command panic: %v", r)
		}
	}()
	switch c.kind {
	case cmdTerminate:
		s.closeTransport()
		return true
	case cmdSetPort:
		s.setPort(c.port)
	case cmdSend:
		s.send(c.payload)
	}
	return false
}

func (s *Sender) send(payload string) {
	t := s.transport()
	if s.ignore || t == nil {
		return
	}
	buf := s.encode(payload)
	if err := t.SendAll(buf); err != nil {
		s.log.Errorf("send on %s failed: %v", s.addr, err)
		s.recordSend(len(buf), false)
		_ = t.Close()
		s.setTransport(nil)
		return
	}
	s.recordSend(len(buf), true)
}

func (s *Sender) setPort(spec string) {
	s.closeTransport()
	s.resetOverlay()
	a, err := ParseAddr(spec, s.cfg)
	if err != nil {
		s.log.Errorf("resolve %q: %v", spec, err)
		s.ignore = false
		s.recordReconnect(spec, false)
		return
	}
	if a == nil {
		s.ignore = true
		s.log.Infof("scoreboard disconnected")
		return
	}
	s.ignore = false
	t, err := s.open(a)
	if err != nil {
		s.log.Errorf("connect %s: %v", a, err)
		s.recordReconnect(a.String(), false)
		return
	}
	s.addr = a.String()
	s.setTransport(t)
	s.log.Infof("scoreboard connected to %s", s.addr)
	s.recordReconnect(s.addr, true)
}

func (s *Sender) closeTransport() {
	if t := s.transport(); t != nil {
		_ = t.Close()
		s.setTransport(nil)
	}
}

func (s *Sender) transport() Transport {
	if sl := s.cur.Load(); sl != nil {
		return sl.t
	}
	return nil
}

func (s *Sender) setTransport(t Transport) {
	if t == nil {
		s.cur.Store(nil)
		return
	}
	s.cur.Store(&slot{t: t})
}

// encode renders the packed wire string in the configured encoding.
// Characters the encoding cannot represent are substituted. The encoder is
// rebuilt per call because x/text encoders carry transform state.
func (s *Sender) encode(payload string) []byte {
	enc, err := newEncoder(s.cfg.Encoding)
	if err != nil {
		return []byte(payload)
	}
	b, err := enc.Bytes([]byte(payload))
	if err != nil {
		s.log.Warnf("encode for %s: %v", s.addr, err)
		return []byte(payload)
	}
	return b
}

func (s *Sender) resetOverlay() {
	s.ovMu.Lock()
	s.curov = ""
	s.ovMu.Unlock()
}

func (s *Sender) recordSend(n int, ok bool) {
	if err := s.sink.RecordSend(metrics.SendEvent{Address: s.addr, Bytes: n, OK: ok, Time: time.Now()}); err != nil {
		s.log.Warnf("metrics send record: %v", err)
	}
}

func (s *Sender) recordReconnect(addr string, ok bool) {
	if err := s.sink.RecordReconnect(metrics.ReconnectEvent{Address: addr, OK: ok, Time: time.Now()}); err != nil {
		s.log.Warnf("metrics reconnect record: %v", err)
	}
}
