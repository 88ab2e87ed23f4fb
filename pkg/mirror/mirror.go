// Package mirror shells out to an external copy tool (rsync by default) to
// mirror exported result files to a remote host.
package mirror

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/openvelo/scoreboard/core/logger"
)

// Config defines the mirror command. Argv is the full command line; the
// source and destination paths are appended to it.
type Config struct {
	Argv   []string `json:"argv"`
	Source string   `json:"source"`
	Dest   string   `json:"dest"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if len(c.Argv) == 0 {
		c.Argv = []string{"rsync", "-a", "--delete"}
	}
}

// Mirror runs the configured subprocess once per Run call.
type Mirror struct {
	cfg Config
	log logger.Logger
}

// New creates a Mirror from the configuration.
func New(cfg Config, log logger.Logger) *Mirror {
	cfg.SetDefaults()
	return &Mirror{cfg: cfg, log: log}
}

// Run executes one mirror pass. Output from the subprocess is logged; a
// non-zero exit is returned as an error.
func (m *Mirror) Run(ctx context.Context) error {
	if m.cfg.Source == "" || m.cfg.Dest == "" {
		return fmt.Errorf("mirror requires source and dest")
	}
	argv := append(append([]string{}, m.cfg.Argv...), m.cfg.Source, m.cfg.Dest)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		m.log.Debugw("mirror output", map[string]any{"cmd": strings.Join(argv, " "), "output": string(out)})
	}
	if err != nil {
		return fmt.Errorf("mirror %s: %w", argv[0], err)
	}
	return nil
}
