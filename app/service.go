package app

import (
	"context"
	"fmt"

	"github.com/openvelo/scoreboard/config"
	"github.com/openvelo/scoreboard/core/board"
	coremetrics "github.com/openvelo/scoreboard/core/metrics"
	"github.com/openvelo/scoreboard/core/weather"
	"github.com/openvelo/scoreboard/infra/link"
	"github.com/openvelo/scoreboard/infra/logger"
	"github.com/openvelo/scoreboard/infra/metrics"
	"github.com/openvelo/scoreboard/infra/telegraph"
	"github.com/openvelo/scoreboard/internal/eventbus"
)

// Service orchestrates the scoreboard link, telegraph and weather poller.
type Service struct {
	Board       *board.Sender
	Telegraph   *telegraph.Client
	weather     *weather.Client
	bus         *eventbus.Bus
	log         logger.Logger
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	promEnabled := cfg.Metrics.PrometheusEnabled
	promPort := cfg.Metrics.PrometheusPort
	if promEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	sender, err := board.NewSender(cfg.Board, link.Open, sink, logger.New("scoreboard"))
	if err != nil {
		return nil, fmt.Errorf("scoreboard sender: %w", err)
	}

	svc := &Service{Board: sender, log: logg, promEnabled: promEnabled, promPort: promPort}

	if cfg.Telegraph.Broker != "" {
		svc.bus = eventbus.New()
		tg, err := telegraph.New(cfg.Telegraph, svc.bus)
		if err != nil {
			_ = sender.Close()
			return nil, fmt.Errorf("telegraph: %w", err)
		}
		svc.Telegraph = tg
	}

	if cfg.Weather.URL != "" {
		svc.weather = weather.NewClient(cfg.Weather, logger.New("weather"), func(r weather.Reading) {
			if svc.Telegraph == nil {
				return
			}
			if err := svc.Telegraph.Publish("scoreboard/weather", r); err != nil {
				logg.Errorf("weather publish: %v", err)
			}
		})
	}

	return svc, nil
}

// Run opens the scoreboard link and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	s.Board.SetPort("DEFAULT")
	if s.weather != nil {
		go func() {
			if err := s.weather.Start(ctx); err != nil {
				s.log.Errorf("weather poller: %v", err)
			}
		}()
	}
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Close drains pending scoreboard traffic and releases all resources.
func (s *Service) Close() error {
	s.Board.Wait()
	err := s.Board.Close()
	if s.Telegraph != nil {
		s.Telegraph.Close()
	}
	if s.bus != nil {
		s.bus.Close()
	}
	return err
}
