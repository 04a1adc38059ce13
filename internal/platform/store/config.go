package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 20 attempts with capped exponential backoff
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
// the query log is optional, so Enabled=false leaves Store.CH nil
type CHConfig struct {
	Enabled bool
	URL     string
	LogSQL  bool

	// Role tags client info in system.query_log, e.g. "api" or "ingest"
	Role string
}
