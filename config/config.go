// Package config loads the service configuration from a JSON or YAML file
// with optional environment overrides.
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

	"github.com/freightworks/loadplan/core/allocation"
	"github.com/freightworks/loadplan/core/metrics"
	"github.com/freightworks/loadplan/infra/jobsource"
	"github.com/freightworks/loadplan/infra/mqtt"
)

type Config struct {
	Allocation allocation.Config `json:"allocation"`
	Trailer    TrailerConfig     `json:"trailer"`
	Store      StoreConfig       `json:"store"`
	MQTT       mqtt.Config       `json:"mqtt"`
	Metrics    metrics.Config    `json:"metrics"`
	JobSource  jobsource.Config  `json:"job_source"`
	API        APIConfig         `json:"api"`
}

// Load reads the file at path and applies LP_-prefixed environment
// overrides, with "__" separating nested keys.
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
	if err := k.Load(env.Provider("LP_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "lp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Allocation.SetDefaults()
	cfg.Trailer.SetDefaults()
	cfg.Store.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.JobSource.SetDefaults()
	cfg.API.SetDefaults()
	if err := cfg.Allocation.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Trailer.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}
	if cfg.JobSource.BaseURL != "" {
		if err := cfg.JobSource.Validate(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
