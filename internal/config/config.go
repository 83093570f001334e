package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CaptureConfig holds the live capture parameters for a session.
type CaptureConfig struct {
	Device      string `yaml:"device"`
	SnapshotLen int32  `yaml:"snapshot_len"`
	Promiscuous bool   `yaml:"promiscuous"`
	// ReadTimeout bounds each blocking read so the capture loop can
	// observe the stop flag; parsed with time.ParseDuration.
	ReadTimeout string `yaml:"read_timeout"`
}

// DispatchConfig holds the batch flush policy.
type DispatchConfig struct {
	MaxBatchSize  int    `yaml:"max_batch_size"`
	MaxBufferTime string `yaml:"max_buffer_time"`
}

// NATSConfig holds the connection details for the NATS batch sink and
// its consumer-side subscriber.
type NATSConfig struct {
	URL           string `yaml:"url"`
	Subject       string `yaml:"subject"`
	StatusSubject string `yaml:"status_subject"`
}

// SinkConfig selects where flushed batches are delivered.
type SinkConfig struct {
	Type string     `yaml:"type"` // "nats" or "log"
	NATS NATSConfig `yaml:"nats"`
}

// GobConfig holds the settings for the on-disk snapshot writer.
type GobConfig struct {
	RootPath string `yaml:"root_path"`
}

// ClickHouseConfig holds the connection settings for ClickHouse.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// WriterDef defines a single statistics snapshot writer.
type WriterDef struct {
	Type             string           `yaml:"type"` // "gob" or "clickhouse"
	Enabled          bool             `yaml:"enabled"`
	SnapshotInterval string           `yaml:"snapshot_interval"`
	Gob              GobConfig        `yaml:"gob"`
	ClickHouse       ClickHouseConfig `yaml:"clickhouse"`
}

// StatsConfig holds the statistics recorder configuration.
type StatsConfig struct {
	Writers []WriterDef `yaml:"writers"`
}

// APIConfig holds the HTTP API server configuration.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Capture  CaptureConfig  `yaml:"capture"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Sink     SinkConfig     `yaml:"sink"`
	Stats    StatsConfig    `yaml:"stats"`
	API      APIConfig      `yaml:"api"`
}

// LoadConfig reads the configuration from a YAML file, applies defaults
// for unset fields, and returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills in the documented default value for every field
// that was left unset.
func (c *Config) ApplyDefaults() {
	if c.Capture.SnapshotLen <= 0 {
		c.Capture.SnapshotLen = 65536
	}
	if c.Capture.ReadTimeout == "" {
		c.Capture.ReadTimeout = "50ms"
	}
	if c.Dispatch.MaxBatchSize <= 0 {
		c.Dispatch.MaxBatchSize = 200
	}
	if c.Dispatch.MaxBufferTime == "" {
		c.Dispatch.MaxBufferTime = "300ms"
	}
	if c.Sink.Type == "" {
		c.Sink.Type = "log"
	}
	if c.Sink.NATS.Subject == "" {
		c.Sink.NATS.Subject = "netlens.batches"
	}
	if c.Sink.NATS.StatusSubject == "" {
		c.Sink.NATS.StatusSubject = "netlens.status"
	}
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = ":8080"
	}
}
