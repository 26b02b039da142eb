package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultMaxAgeHours   = 72
	DefaultMinScore      = 60
	DefaultConcurrency   = 8
	DefaultRunInterval   = 15 * time.Minute
	DefaultDBPort        = 5432
	DefaultDBSSLMode     = "prefer"
	DefaultMaxConns      = 10
	DefaultMinConns      = 2
	DefaultBatchSize     = 500
	DefaultFlushInterval = 5 * time.Second
	DefaultOutputDir     = "output"
)

func (c *Config) applyDefaults() {
	// Validator defaults
	if c.Validator.MaxAgeHours == 0 {
		c.Validator.MaxAgeHours = DefaultMaxAgeHours
	}
	if c.Validator.MinScore == 0 {
		c.Validator.MinScore = DefaultMinScore
	}
	if c.Validator.Concurrency == 0 {
		c.Validator.Concurrency = DefaultConcurrency
	}

	// Runner defaults
	if c.Runner.Interval == 0 {
		c.Runner.Interval = DefaultRunInterval
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Writers defaults
	if c.Writers.BatchSize == 0 {
		c.Writers.BatchSize = DefaultBatchSize
	}
	if c.Writers.FlushInterval == 0 {
		c.Writers.FlushInterval = DefaultFlushInterval
	}

	// Output defaults
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
