package config

import "time"

// Transport represents the full config for one GraphQL endpoint
type Transport struct {
	Name             string            `yaml:"name,omitempty"`              // Optional label used in logs
	Endpoint         string            `yaml:"endpoint"`                    // Required absolute URL
	PersistedQueries bool              `yaml:"persisted_queries,omitempty"` // Send hashed GET requests instead of full documents
	Timeout          time.Duration     `yaml:"timeout,omitempty"`           // HTTP client timeout (default 30s)
	Headers          map[string]string `yaml:"headers,omitempty"`           // Static headers added to every request
	Log              Log               `yaml:"log,omitempty"`               // Logger settings
}

// Log defines logger settings.
type Log struct {
	Level       string   `yaml:"level,omitempty"`       // debug, info, warn, error
	Format      string   `yaml:"format,omitempty"`      // console or json
	Outputs     []string `yaml:"outputs,omitempty"`     // stdout, stderr or file paths
	Development bool     `yaml:"development,omitempty"` // Development-friendly encoder and stack traces
	Rotation    Rotation `yaml:"rotation,omitempty"`    // File rotation for file outputs
}

// Rotation controls log file rotation for file outputs.
type Rotation struct {
	Enable     bool   `yaml:"enable,omitempty"`
	Filename   string `yaml:"filename,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

const (
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultLogOutput = "stderr"
)
