package storage

import (
	"context"
	"errors"
	"fmt"
)

// Config holds connection settings for the server-side stores.
type Config struct {
	Postgres   PostgresConfig
	ClickHouse ClickHouseConfig
}

// DefaultConfig returns a configuration with default local development
// settings.
func DefaultConfig() Config {
	return Config{
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "itinerary_state",
			User:     "itinerary",
			Password: "itinerary",
		},
		ClickHouse: ClickHouseConfig{
			Host:     "localhost",
			Port:     9000,
			Database: "itineraries",
			User:     "default",
			Password: "",
		},
	}
}

// DB wraps the PostgreSQL state store and the ClickHouse analytics sink.
type DB struct {
	State     *StateDB     // PostgreSQL: best fares and observations.
	Analytics *AnalyticsDB // ClickHouse: append-only price history.
}

// Open opens both server-side stores.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	pg, err := OpenPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ch, err := OpenClickHouse(ctx, cfg.ClickHouse)
	if err != nil {
		pg.Close()
		return nil, fmt.Errorf("clickhouse: %w", err)
	}

	return &DB{State: pg, Analytics: ch}, nil
}

// Close closes both connections.
func (d *DB) Close() error {
	var errs []error
	if d.Analytics != nil {
		if err := d.Analytics.Close(); err != nil {
			errs = append(errs, fmt.Errorf("clickhouse: %w", err))
		}
	}
	if d.State != nil {
		d.State.Close()
	}
	return errors.Join(errs...)
}

// CreateSchema creates the tables in both stores.
func (d *DB) CreateSchema(ctx context.Context) error {
	if err := d.State.CreateSchema(ctx); err != nil {
		return fmt.Errorf("postgres schema: %w", err)
	}
	if err := d.Analytics.CreateSchema(ctx); err != nil {
		return fmt.Errorf("clickhouse schema: %w", err)
	}
	return nil
}
