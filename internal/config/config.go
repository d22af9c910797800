package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// APIConfig holds the configuration for the HTTP API service.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// NATSConfig holds the connection details for the batch transport.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// EngineConfig holds the configuration for the stream aggregation service.
type EngineConfig struct {
	GRPCListenAddr string `yaml:"grpc_listen_addr"`
}

// AnalyticsConfig tunes the aggregation engine.
type AnalyticsConfig struct {
	TopN int `yaml:"top_n"`
}

// ManagerConfig sizes the batch processing pipeline.
type ManagerConfig struct {
	NumWorkers         int `yaml:"num_workers"`
	SizeOfBatchChannel int `yaml:"size_of_batch_channel"`
}

// GobConfig holds the configuration for the gob archive writer.
type GobConfig struct {
	RootPath string `yaml:"root_path"`
}

// ClickHouseConfig holds the connection details for ClickHouse.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// WriterDef defines a single report writer backend from the config file.
type WriterDef struct {
	Type       string           `yaml:"type"`
	Enabled    bool             `yaml:"enabled"`
	Gob        GobConfig        `yaml:"gob"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
}

// StorageConfig lists the report writer backends to run.
type StorageConfig struct {
	Writers []WriterDef `yaml:"writers"`
}

// RedisConfig holds the connection details for the redis alert store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
	TTL      string `yaml:"ttl"`
}

// AlertingConfig configures the alert store and notification threshold.
type AlertingConfig struct {
	StoreType         string      `yaml:"store_type"`
	Capacity          int         `yaml:"capacity"`
	Redis             RedisConfig `yaml:"redis"`
	NotifyMinSeverity string      `yaml:"notify_min_severity"`
}

// SMTPConfig holds the configuration for the email notifier.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// ProbeConfig configures the capture-file probe.
type ProbeConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	API       APIConfig       `yaml:"api"`
	NATS      NATSConfig      `yaml:"nats"`
	Engine    EngineConfig    `yaml:"engine"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Manager   ManagerConfig   `yaml:"manager"`
	Storage   StorageConfig   `yaml:"storage"`
	Alerting  AlertingConfig  `yaml:"alerting"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Probe     ProbeConfig     `yaml:"probe"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in values that are safe to assume when omitted.
func (c *Config) applyDefaults() {
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = ":8080"
	}
	if c.NATS.URL == "" {
		c.NATS.URL = "nats://127.0.0.1:4222"
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = "flowscope.batches"
	}
	if c.Engine.GRPCListenAddr == "" {
		c.Engine.GRPCListenAddr = ":9090"
	}
	if c.Analytics.TopN <= 0 {
		c.Analytics.TopN = 5
	}
	if c.Manager.NumWorkers <= 0 {
		c.Manager.NumWorkers = 4
	}
	if c.Manager.SizeOfBatchChannel <= 0 {
		c.Manager.SizeOfBatchChannel = 64
	}
	if c.Alerting.StoreType == "" {
		c.Alerting.StoreType = "memory"
	}
	if c.Alerting.Capacity <= 0 {
		c.Alerting.Capacity = 1000
	}
	if c.Alerting.Redis.Key == "" {
		c.Alerting.Redis.Key = "flowscope:alerts"
	}
	if c.Alerting.NotifyMinSeverity == "" {
		c.Alerting.NotifyMinSeverity = "HIGH"
	}
	if c.Probe.BatchSize <= 0 {
		c.Probe.BatchSize = 500
	}
}
