package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/openvelo/scoreboard/core/board"
	"github.com/openvelo/scoreboard/core/metrics"
	"github.com/openvelo/scoreboard/core/weather"
	"github.com/openvelo/scoreboard/infra/telegraph"
	"github.com/openvelo/scoreboard/pkg/mirror"
)

type Config struct {
	Board     board.Config     `json:"board"`
	Telegraph telegraph.Config `json:"telegraph"`
	Weather   weather.Config   `json:"weather"`
	Metrics   metrics.Config   `json:"metrics"`
	Mirror    mirror.Config    `json:"mirror"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("SB_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "sb_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Board.SetDefaults()
	cfg.Telegraph.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Mirror.SetDefaults()
	if err := cfg.Board.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
