package config

import "time"

// Config is the root configuration for a signal pipeline instance.
type Config struct {
	Instance  InstanceConfig  `yaml:"instance"`
	Refdata   RefdataConfig   `yaml:"refdata"`
	Collector CollectorConfig `yaml:"collector"`
	Validator ValidatorConfig `yaml:"validator"`
	Runner    RunnerConfig    `yaml:"runner"`
	Database  DatabaseConfig  `yaml:"database"`
	Writers   WritersConfig   `yaml:"writers"`
	Output    OutputConfig    `yaml:"output"`
}

// InstanceConfig identifies this pipeline instance.
type InstanceConfig struct {
	ID  string `yaml:"id"`
	Env string `yaml:"env"`
}

// RefdataConfig points at optional reference-data overrides.
type RefdataConfig struct {
	Path string `yaml:"path"` // YAML overrides file; empty = built-in tables
}

// CollectorConfig holds record-source settings.
type CollectorConfig struct {
	RecordsFile string `yaml:"records_file"` // JSON array of collector records
}

// ValidatorConfig holds validation thresholds.
type ValidatorConfig struct {
	MaxAgeHours int `yaml:"max_age_hours"`
	MinScore    int `yaml:"min_score"`
	Concurrency int `yaml:"concurrency"`
}

// RunnerConfig holds interval-runner settings.
type RunnerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// DatabaseConfig holds the Postgres connection for signal persistence.
// Disabled instances write JSON output only.
type DatabaseConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// WritersConfig holds batch writer settings.
type WritersConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
}

// OutputConfig holds JSON output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}
