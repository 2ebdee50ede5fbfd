// Package main provides the itinerary-feed daemon: a NATS subscriber that
// receives captured page snapshots from harvesters, runs the flight
// reconciliation pass on each, and persists the results.
//
// Usage:
//
//	itinerary-feed [options]
//
// Options:
//
//	-nats-url URL       NATS server URL (default: nats://localhost:4222, env: NATS_URL)
//	-subject SUBJ       NATS subject to subscribe to (default: itinerary.snapshots, env: FEED_SUBJECT)
//	-max N              Max flights per page (default: 10)
//	-origin CODE        Only persist flights departing this airport (env: FEED_ORIGIN)
//	-destination CODE   Only persist flights arriving at this airport (env: FEED_DESTINATION)
//	-pg-host HOST       PostgreSQL host (default: localhost, env: POSTGRES_HOST)
//	-pg-port PORT       PostgreSQL port (default: 5432, env: POSTGRES_PORT)
//	-pg-database DB     PostgreSQL database (default: itinerary_state, env: POSTGRES_DATABASE)
//	-pg-user USER       PostgreSQL user (default: itinerary, env: POSTGRES_USER)
//	-pg-password PASS   PostgreSQL password (default: itinerary, env: POSTGRES_PASSWORD)
//	-analytics          Also write extracted flights to ClickHouse
//	-ch-host HOST       ClickHouse host (default: localhost, env: CLICKHOUSE_HOST)
//	-ch-port PORT       ClickHouse port (default: 9000, env: CLICKHOUSE_PORT)
//	-ch-database DB     ClickHouse database (default: itineraries, env: CLICKHOUSE_DATABASE)
//
// A malformed snapshot is logged and skipped; the daemon never stops over
// one bad message.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"matrix_parser/internal/flight"
	"matrix_parser/internal/page"
	"matrix_parser/internal/reconcile"
	"matrix_parser/internal/storage"
)

func main() {
	defaults := storage.DefaultConfig()

	natsURL := flag.String("nats-url", envOr("NATS_URL", nats.DefaultURL), "NATS server URL")
	subject := flag.String("subject", envOr("FEED_SUBJECT", "itinerary.snapshots"), "NATS subject to subscribe to")
	maxResults := flag.Int("max", reconcile.DefaultMaxResults, "Max flights per page")
	origin := flag.String("origin", envOr("FEED_ORIGIN", ""), "Only persist flights departing this airport")
	destination := flag.String("destination", envOr("FEED_DESTINATION", ""), "Only persist flights arriving at this airport")

	pgHost := flag.String("pg-host", envOr("POSTGRES_HOST", defaults.Postgres.Host), "PostgreSQL host")
	pgPort := flag.Int("pg-port", envIntOr("POSTGRES_PORT", defaults.Postgres.Port), "PostgreSQL port")
	pgDatabase := flag.String("pg-database", envOr("POSTGRES_DATABASE", defaults.Postgres.Database), "PostgreSQL database")
	pgUser := flag.String("pg-user", envOr("POSTGRES_USER", defaults.Postgres.User), "PostgreSQL user")
	pgPassword := flag.String("pg-password", envOr("POSTGRES_PASSWORD", defaults.Postgres.Password), "PostgreSQL password")

	analytics := flag.Bool("analytics", false, "Also write extracted flights to ClickHouse")
	chHost := flag.String("ch-host", envOr("CLICKHOUSE_HOST", defaults.ClickHouse.Host), "ClickHouse host")
	chPort := flag.Int("ch-port", envIntOr("CLICKHOUSE_PORT", defaults.ClickHouse.Port), "ClickHouse port")
	chDatabase := flag.String("ch-database", envOr("CLICKHOUSE_DATABASE", defaults.ClickHouse.Database), "ClickHouse database")

	flag.Parse()

	var route *flight.SearchParams
	if *origin != "" || *destination != "" {
		params := flight.SearchParams{
			Origin:        *origin,
			Destination:   *destination,
			DepartureDate: time.Now(),
			TripType:      flight.OneWay,
			Adults:        1,
		}
		if err := params.Validate(); err != nil {
			log.Fatalf("route filter: %v", err)
		}
		route = &params
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, err := storage.OpenPostgres(ctx, storage.PostgresConfig{
		Host:     *pgHost,
		Port:     *pgPort,
		Database: *pgDatabase,
		User:     *pgUser,
		Password: *pgPassword,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer state.Close()

	if err := state.CreateSchema(ctx); err != nil {
		log.Fatalf("postgres schema: %v", err)
	}

	var sink *storage.AnalyticsDB
	if *analytics {
		sink, err = storage.OpenClickHouse(ctx, storage.ClickHouseConfig{
			Host:     *chHost,
			Port:     *chPort,
			Database: *chDatabase,
			User:     defaults.ClickHouse.User,
			Password: defaults.ClickHouse.Password,
		})
		if err != nil {
			log.Fatalf("clickhouse: %v", err)
		}
		defer func() { _ = sink.Close() }()

		if err := sink.CreateSchema(ctx); err != nil {
			log.Fatalf("clickhouse schema: %v", err)
		}
	}

	nc, err := nats.Connect(*natsURL,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		log.Fatalf("nats connect: %v", err)
	}
	defer nc.Close()

	sub, err := nc.Subscribe(*subject, func(msg *nats.Msg) {
		handleSnapshot(ctx, msg.Data, *maxResults, route, state, sink)
	})
	if err != nil {
		log.Fatalf("nats subscribe: %v", err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	log.Printf("itinerary-feed: subscribed to %q on %s", *subject, *natsURL)
	if route != nil {
		log.Printf("itinerary-feed: persisting %s only", route.Route())
	}
	<-ctx.Done()
	log.Printf("itinerary-feed: shutting down")
}

func handleSnapshot(ctx context.Context, data []byte, maxResults int, route *flight.SearchParams, state *storage.StateDB, sink *storage.AnalyticsDB) {
	snap, kind := page.Decode(data)
	if snap == nil {
		log.Printf("skipping undecodable snapshot (%d bytes)", len(data))
		return
	}

	flights := reconcile.ExtractFlights(snap, maxResults)
	if route != nil {
		kept := flights[:0]
		for i := range flights {
			if route.Matches(&flights[i]) {
				kept = append(kept, flights[i])
			}
		}
		flights = kept
	}
	if len(flights) == 0 {
		log.Printf("snapshot (%s): no flights extracted", kind)
		return
	}

	for i := range flights {
		if err := state.UpsertItinerary(ctx, &flights[i]); err != nil {
			log.Printf("upsert failed: %v", err)
		}
	}

	if sink != nil {
		if err := sink.InsertRecords(ctx, time.Now().UTC(), flights); err != nil {
			log.Printf("analytics insert failed: %v", err)
		}
	}

	log.Printf("snapshot (%s): extracted %d flight(s)", kind, len(flights))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
