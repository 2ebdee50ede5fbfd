package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/shopspring/decimal"

	"matrix_parser/internal/flight"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// AnalyticsDB wraps a ClickHouse connection for price analytics: every
// extracted flight becomes one append-only row.
type AnalyticsDB struct {
	conn driver.Conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*AnalyticsDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &AnalyticsDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *AnalyticsDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the analytics table.
func (d *AnalyticsDB) CreateSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS flight_prices (
		event_time       DateTime,
		origin           LowCardinality(String),
		destination      LowCardinality(String),
		travel_date      Date,
		airline_codes    String,
		price            Decimal64(2),
		stops            UInt8,
		duration_minutes UInt32,
		segment_count    UInt8
	) ENGINE = MergeTree()
	ORDER BY (origin, destination, travel_date, event_time)
	`
	return d.conn.Exec(ctx, schema)
}

// InsertRecords appends a batch of extracted flights observed at the given
// time.
func (d *AnalyticsDB) InsertRecords(ctx context.Context, observedAt time.Time, recs []flight.Record) error {
	if len(recs) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO flight_prices (event_time, origin, destination, travel_date, airline_codes, price, stops, duration_minutes, segment_count)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for i := range recs {
		rec := &recs[i]
		airlines := ""
		for j, code := range rec.AirlineCodes() {
			if j > 0 {
				airlines += ","
			}
			airlines += code
		}

		err := batch.Append(
			observedAt,
			rec.Origin(),
			rec.Destination(),
			rec.DepartureTime().UTC(),
			airlines,
			rec.Price,
			uint8(rec.Stops),
			uint32(rec.TotalDurationMinutes),
			uint8(len(rec.Segments)),
		)
		if err != nil {
			return fmt.Errorf("append row %d: %w", i, err)
		}
	}

	return batch.Send()
}

// PricePoint is one observation in a route's price history.
type PricePoint struct {
	ObservedAt time.Time
	Price      decimal.Decimal
}

// PriceHistory returns price observations for a route, newest first.
func (d *AnalyticsDB) PriceHistory(ctx context.Context, origin, destination string, limit int) ([]PricePoint, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.conn.Query(ctx, `
		SELECT event_time, price FROM flight_prices
		WHERE origin = ? AND destination = ?
		ORDER BY event_time DESC
		LIMIT ?
	`, origin, destination, limit)
	if err != nil {
		return nil, fmt.Errorf("query price history: %w", err)
	}
	defer rows.Close()

	var points []PricePoint
	for rows.Next() {
		var p PricePoint
		if err := rows.Scan(&p.ObservedAt, &p.Price); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}
