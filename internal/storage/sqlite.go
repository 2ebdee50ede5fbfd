// Package storage provides persistent storage for extracted flight records:
// a local SQLite store for the batch CLI, a PostgreSQL state store for
// itinerary tracking, and a ClickHouse sink for price analytics.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"matrix_parser/internal/flight"
)

// StoredFlight is one flight row from the local store.
type StoredFlight struct {
	ID              int64
	Origin          string
	Destination     string
	DepartureTime   time.Time
	ArrivalTime     time.Time
	Airlines        string
	Price           decimal.Decimal
	Currency        string
	CabinClass      string
	DurationMinutes int
	Stops           int
	SegmentCount    int
	Notes           string
	RecordJSON      string
	ExtractedAt     time.Time
}

// FlightDB wraps a SQLite database for local flight storage.
type FlightDB struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite flight store at the given path.
func OpenSQLite(path string) (*FlightDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &FlightDB{db: db}, nil
}

// Close closes the database connection.
func (d *FlightDB) Close() error {
	return d.db.Close()
}

func createSQLiteSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS flights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		departure_time TEXT NOT NULL,
		arrival_time TEXT NOT NULL,
		airlines TEXT,
		price REAL NOT NULL,
		price_exact TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT 'USD',
		cabin_class TEXT,
		duration_minutes INTEGER,
		stops INTEGER,
		segment_count INTEGER,
		notes TEXT,
		record_json TEXT NOT NULL,
		extracted_at TEXT DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_flights_route ON flights(origin, destination);
	CREATE INDEX IF NOT EXISTS idx_flights_price ON flights(price);
	CREATE INDEX IF NOT EXISTS idx_flights_departure ON flights(departure_time);

	CREATE TABLE IF NOT EXISTS segments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		flight_id INTEGER NOT NULL REFERENCES flights(id),
		position INTEGER NOT NULL,
		airline_code TEXT,
		airline_name TEXT,
		flight_number TEXT,
		origin TEXT,
		destination TEXT,
		departure_time TEXT,
		arrival_time TEXT,
		duration_minutes INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_segments_flight ON segments(flight_id);
	`

	_, err := db.Exec(schema)
	return err
}

// Insert stores a flight record and its segments.
func (d *FlightDB) Insert(rec *flight.Record) (int64, error) {
	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("marshal record: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	priceFloat, _ := rec.Price.Float64()
	result, err := tx.Exec(`
		INSERT INTO flights (origin, destination, departure_time, arrival_time, airlines,
			price, price_exact, currency, cabin_class, duration_minutes, stops, segment_count, notes, record_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.Origin(), rec.Destination(),
		rec.DepartureTime().UTC().Format(time.RFC3339), rec.ArrivalTime().UTC().Format(time.RFC3339),
		strings.Join(rec.AirlineCodes(), ","),
		priceFloat, rec.Price.String(), "USD", string(rec.CabinClass),
		rec.TotalDurationMinutes, rec.Stops, len(rec.Segments),
		strings.Join(rec.Notes, "\n"), string(recordJSON))
	if err != nil {
		return 0, fmt.Errorf("insert flight: %w", err)
	}

	flightID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, seg := range rec.Segments {
		_, err := tx.Exec(`
			INSERT INTO segments (flight_id, position, airline_code, airline_name, flight_number,
				origin, destination, departure_time, arrival_time, duration_minutes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			flightID, i, seg.Airline.Code, seg.Airline.Name, seg.FlightNumber,
			seg.DepartureAirport.Code, seg.ArrivalAirport.Code,
			seg.DepartureTime.UTC().Format(time.RFC3339), seg.ArrivalTime.UTC().Format(time.RFC3339),
			seg.DurationMinutes)
		if err != nil {
			return 0, fmt.Errorf("insert segment %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return flightID, nil
}

// FlightQuery contains filtering options for querying stored flights.
type FlightQuery struct {
	Origin      string // Filter by origin code (exact match).
	Destination string // Filter by destination code (exact match).
	MaxPrice    *decimal.Decimal
	Limit       int // Max results (default 100).
}

// Query retrieves flights matching the given parameters, cheapest first.
func (d *FlightDB) Query(q FlightQuery) ([]StoredFlight, error) {
	var conditions []string
	var args []interface{}

	if q.Origin != "" {
		conditions = append(conditions, "origin = ?")
		args = append(args, q.Origin)
	}
	if q.Destination != "" {
		conditions = append(conditions, "destination = ?")
		args = append(args, q.Destination)
	}
	if q.MaxPrice != nil {
		maxFloat, _ := q.MaxPrice.Float64()
		conditions = append(conditions, "price <= ?")
		args = append(args, maxFloat)
	}

	query := `SELECT id, origin, destination, departure_time, arrival_time, airlines,
			price_exact, currency, cabin_class, duration_minutes, stops, segment_count, notes,
			record_json, extracted_at
			FROM flights`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY price ASC"

	limit := 100
	if q.Limit > 0 {
		limit = q.Limit
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var flights []StoredFlight
	for rows.Next() {
		var f StoredFlight
		var dep, arr, extracted, priceExact string
		var notes sql.NullString

		err := rows.Scan(&f.ID, &f.Origin, &f.Destination, &dep, &arr, &f.Airlines,
			&priceExact, &f.Currency, &f.CabinClass, &f.DurationMinutes, &f.Stops,
			&f.SegmentCount, &notes, &f.RecordJSON, &extracted)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		f.DepartureTime, _ = time.Parse(time.RFC3339, dep)
		f.ArrivalTime, _ = time.Parse(time.RFC3339, arr)
		f.ExtractedAt, _ = time.Parse("2006-01-02 15:04:05", extracted)
		if notes.Valid {
			f.Notes = notes.String
		}
		if p, perr := decimal.NewFromString(priceExact); perr == nil {
			f.Price = p
		}

		flights = append(flights, f)
	}

	return flights, rows.Err()
}

// Calendar builds a price calendar for a route from stored flights: the
// lowest observed fare per departure date.
func (d *FlightDB) Calendar(origin, destination string) (*flight.PriceCalendar, error) {
	rows, err := d.db.Query(`
		SELECT date(departure_time), MIN(price)
		FROM flights
		WHERE origin = ? AND destination = ?
		GROUP BY date(departure_time)
		ORDER BY date(departure_time)
	`, origin, destination)
	if err != nil {
		return nil, fmt.Errorf("query calendar: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cal := &flight.PriceCalendar{
		Origin:      origin,
		Destination: destination,
		CabinClass:  flight.Economy,
	}
	for rows.Next() {
		var day string
		var price float64
		if err := rows.Scan(&day, &price); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		date, _ := time.Parse("2006-01-02", day)
		p := decimal.NewFromFloat(price)
		cal.Entries = append(cal.Entries, flight.CalendarEntry{
			Date:      date,
			Price:     &p,
			Available: true,
		})
	}

	return cal, rows.Err()
}

// StoreStats holds aggregate statistics for the local store.
type StoreStats struct {
	TotalFlights int
	ByRoute      map[string]int
	ByAirline    map[string]int
}

// GetStats returns statistics about the stored flights.
func (d *FlightDB) GetStats() (*StoreStats, error) {
	stats := &StoreStats{
		ByRoute:   make(map[string]int),
		ByAirline: make(map[string]int),
	}

	row := d.db.QueryRow("SELECT COUNT(*) FROM flights")
	if err := row.Scan(&stats.TotalFlights); err != nil {
		return nil, err
	}

	rows, err := d.db.Query("SELECT origin || '-' || destination, COUNT(*) FROM flights GROUP BY 1 ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var route string
		var count int
		if err := rows.Scan(&route, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.ByRoute[route] = count
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	rows, err = d.db.Query("SELECT airline_code, COUNT(*) FROM segments GROUP BY airline_code ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var airline string
		var count int
		if err := rows.Scan(&airline, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.ByAirline[airline] = count
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	return stats, nil
}
