package kvstore

import (
	"context"
	"fmt"
)

// Supported values for Config.Driver.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNATS     = "nats"
)

// Config selects and configures a backend.
type Config struct {
	Driver     string `yaml:"driver"`
	Path       string `yaml:"path"`        // file root directory or sqlite database file
	DSN        string `yaml:"dsn"`         // postgres connection URL
	NATSURL    string `yaml:"nats_url"`    // nats server URL
	NATSBucket string `yaml:"nats_bucket"` // jetstream key-value bucket
}

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(cfg.Path)
	case DriverSQLite:
		return OpenSQL(ctx, SQLiteDialect{}, cfg.Path)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN)
	case DriverNATS:
		bucket := cfg.NATSBucket
		if bucket == "" {
			bucket = "draftboard"
		}
		return OpenNATSKV(ctx, cfg.NATSURL, bucket)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
