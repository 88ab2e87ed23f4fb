// Package weather polls an HTTP endpoint for trackside weather readings.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/openvelo/scoreboard/core/logger"
)

// Reading is one trackside observation.
type Reading struct {
	TempC    float64   `json:"temp_c"`
	Humidity float64   `json:"humidity"`
	Pressure float64   `json:"pressure"`
	WindMS   float64   `json:"wind_ms"`
	Time     time.Time `json:"time"`
}

// Config defines the polling parameters.
type Config struct {
	URL                 string `json:"url"`
	PollIntervalSeconds int    `json:"poll_interval_seconds"`
}

// Handler receives each successfully fetched reading.
type Handler func(Reading)

// Client polls the configured endpoint on a fixed interval.
type Client struct {
	cfg      Config
	log      logger.Logger
	client   *http.Client
	handler  Handler
	interval time.Duration
}

// NewClient creates a weather poller. The handler is invoked from the
// polling goroutine for every reading.
func NewClient(cfg Config, log logger.Logger, h Handler) *Client {
	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = 60
	}
	return &Client{
		cfg:      cfg,
		log:      log,
		client:   &http.Client{Timeout: 10 * time.Second},
		handler:  h,
		interval: time.Duration(cfg.PollIntervalSeconds) * time.Second,
	}
}

// Start begins the polling loop and blocks until the context is cancelled.
func (c *Client) Start(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.poll(ctx); err != nil {
				c.log.Errorf("weather poll: %v", err)
			}
		}
	}
}

func (c *Client) poll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather endpoint status %s", resp.Status)
	}
	var r Reading
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("decode reading: %w", err)
	}
	if r.Time.IsZero() {
		r.Time = time.Now()
	}
	if c.handler != nil {
		c.handler(r)
	}
	return nil
}
