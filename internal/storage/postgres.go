package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"matrix_parser/internal/flight"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// StateDB wraps a PostgreSQL connection pool for itinerary state storage:
// the best observed fare per route and date, plus the raw observations.
type StateDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*StateDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &StateDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *StateDB) Close() {
	d.pool.Close()
}

// CreateSchema creates the PostgreSQL tables.
func (d *StateDB) CreateSchema(ctx context.Context) error {
	schema := `
	-- Best observed fare per route and travel date.
	CREATE TABLE IF NOT EXISTS itineraries (
		origin          TEXT NOT NULL,
		destination     TEXT NOT NULL,
		travel_date     DATE NOT NULL,
		best_price      NUMERIC(12,2) NOT NULL,
		currency        TEXT NOT NULL DEFAULT 'USD',
		airline_codes   TEXT,
		stops           INTEGER NOT NULL DEFAULT 0,
		duration_minutes INTEGER,
		first_seen      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		sample_count    INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (origin, destination, travel_date)
	);

	CREATE INDEX IF NOT EXISTS idx_itineraries_route ON itineraries(origin, destination);

	-- Every price observation, append-only.
	CREATE TABLE IF NOT EXISTS price_observations (
		id              BIGSERIAL PRIMARY KEY,
		origin          TEXT NOT NULL,
		destination     TEXT NOT NULL,
		travel_date     DATE NOT NULL,
		price           NUMERIC(12,2) NOT NULL,
		airline_codes   TEXT,
		stops           INTEGER NOT NULL DEFAULT 0,
		observed_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_observations_route ON price_observations(origin, destination, travel_date);
	`

	_, err := d.pool.Exec(ctx, schema)
	return err
}

// UpsertItinerary records a reconciled flight against its route/date key,
// keeping the lowest observed fare and bumping the sample count.
func (d *StateDB) UpsertItinerary(ctx context.Context, rec *flight.Record) error {
	airlines := ""
	for i, code := range rec.AirlineCodes() {
		if i > 0 {
			airlines += ","
		}
		airlines += code
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO itineraries (origin, destination, travel_date, best_price, airline_codes, stops, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (origin, destination, travel_date) DO UPDATE SET
			best_price = LEAST(itineraries.best_price, EXCLUDED.best_price),
			airline_codes = EXCLUDED.airline_codes,
			stops = EXCLUDED.stops,
			duration_minutes = EXCLUDED.duration_minutes,
			last_seen = NOW(),
			sample_count = itineraries.sample_count + 1
	`,
		rec.Origin(), rec.Destination(), rec.DepartureTime().UTC().Truncate(24*time.Hour),
		rec.Price.String(), airlines, rec.Stops, rec.TotalDurationMinutes)
	if err != nil {
		return fmt.Errorf("upsert itinerary: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO price_observations (origin, destination, travel_date, price, airline_codes, stops)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		rec.Origin(), rec.Destination(), rec.DepartureTime().UTC().Truncate(24*time.Hour),
		rec.Price.String(), airlines, rec.Stops)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}

	return nil
}

// BestPrice returns the lowest fare seen for a route and travel date.
func (d *StateDB) BestPrice(ctx context.Context, origin, destination string, travelDate time.Time) (decimal.Decimal, bool, error) {
	var priceText string
	err := d.pool.QueryRow(ctx, `
		SELECT best_price::text FROM itineraries
		WHERE origin = $1 AND destination = $2 AND travel_date = $3
	`, origin, destination, travelDate).Scan(&priceText)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("query best price: %w", err)
	}

	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("parse best price: %w", err)
	}
	return price, true, nil
}
