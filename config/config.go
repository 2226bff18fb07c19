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

	infraexport "github.com/kilianp07/ocv/infra/export"
)

// Config is the root configuration for the ocv tool.
type Config struct {
	Input   InputConfig   `json:"input"`
	Compare CompareConfig `json:"compare"`
	API     APIConfig     `json:"api"`
	Export  ExportConfig  `json:"export"`
	Metrics MetricsConfig `json:"metrics"`
}

// InputConfig locates the coefficient table.
type InputConfig struct {
	// Path is the CSV file holding one battery state per row.
	Path string `json:"path"`
}

// CompareConfig selects the default states to compare and the grid density.
type CompareConfig struct {
	LabelA      string `json:"label_a"`
	LabelB      string `json:"label_b"`
	SampleCount int    `json:"sample_count"`
}

// APIConfig configures the HTTP API server.
type APIConfig struct {
	Address string `json:"address"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddress string `json:"prometheus_address"`
}

// ExportConfig configures the comparison result sinks.
type ExportConfig struct {
	Influx infraexport.InfluxConfig `json:"influx"`
	MQTT   infraexport.MQTTConfig   `json:"mqtt"`
}

// Load reads the configuration file at path and applies OCV_ environment
// overrides.
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
	if err := k.Load(env.Provider("OCV_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "ocv_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Compare.LabelA == "" {
		c.Compare.LabelA = "new"
	}
	if c.Compare.LabelB == "" {
		c.Compare.LabelB = "eol"
	}
	if c.Compare.SampleCount == 0 {
		c.Compare.SampleCount = 100
	}
	if c.API.Address == "" {
		c.API.Address = ":8080"
	}
	if c.Metrics.PrometheusAddress == "" {
		c.Metrics.PrometheusAddress = ":9090"
	}
	if c.Export.MQTT.Topic == "" {
		c.Export.MQTT.Topic = "ocv/comparison"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}
	if c.Compare.SampleCount < 2 {
		return fmt.Errorf("compare.sample_count must be at least 2")
	}
	if c.Export.Influx.Enabled && c.Export.Influx.URL == "" {
		return fmt.Errorf("export.influx.url is required when enabled")
	}
	if c.Export.MQTT.Enabled && c.Export.MQTT.Broker == "" {
		return fmt.Errorf("export.mqtt.broker is required when enabled")
	}
	return nil
}
