// Command-line entry point for matrix_parser (extract-focused).
//
// Note about input formats
// ------------------------
// The reconciliation engine expects a "page.Snapshot" per result page:
//   - containers (itinerary row text + described-by references)
//   - elements  (tooltip-like elements with id/role/class/attrs/text)
//
// In the real world a snapshot may arrive as either:
//  1. Feed wrapper: {"snapshot":{...}, "source":{...}}
//  2. Flat object:  {"containers":[...], "elements":[...]}
//
// This CLI autodetects both. Each input line is one page.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"matrix_parser/internal/flight"
	"matrix_parser/internal/page"
	"matrix_parser/internal/patterns"
	"matrix_parser/internal/reconcile"
	"matrix_parser/internal/storage"
)

type ExtractOut struct {
	URL     string          `json:"url,omitempty"`
	Flights []flight.Record `json:"flights"`
}

type Stats struct {
	Lines        int
	ParsedFeed   int
	ParsedFlat   int
	SkippedEmpty int
	Pages        int
	Flights      int
	TotalMinutes int
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "matrix_parser (extract) - commands:")
	fmt.Fprintln(w, "  extract  - parse JSONL page snapshots and output flight JSON")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  matrix_parser extract -input pages.jsonl [-output out.json] [-pretty] [-max N] [-store flights.db] [-stats]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - Input must be JSONL (one snapshot object per line).")
	fmt.Fprintln(w, "  - Snapshots may be flat or wrapped in a feed envelope.")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "extract":
		runExtract(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	inPath := fs.String("input", "", "Input JSONL file (default: stdin)")
	outPath := fs.String("output", "", "Output JSON file (default: stdout)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	maxResults := fs.Int("max", reconcile.DefaultMaxResults, "Max flights per page")
	storePath := fs.String("store", "", "Also store flights in a SQLite database at this path")
	showStats := fs.Bool("stats", false, "Print basic counters to stderr")
	_ = fs.Parse(args)

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	var store *storage.FlightDB
	if *storePath != "" {
		var err error
		store, err = storage.OpenSQLite(*storePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()
	}

	scanner := bufio.NewScanner(r)
	// Captured pages can be large; bump the line buffer.
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 60*1024*1024)

	out := make([]ExtractOut, 0, 64)
	st := &Stats{}
	var all []flight.Record

	for scanner.Scan() {
		st.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		snap, kind := page.Decode([]byte(line))
		if snap == nil {
			st.SkippedEmpty++
			continue
		}
		switch kind {
		case "feed":
			st.ParsedFeed++
		case "flat":
			st.ParsedFlat++
		}

		flights := reconcile.ExtractFlights(snap, *maxResults)
		st.Pages++
		st.Flights += len(flights)
		for i := range flights {
			st.TotalMinutes += flights[i].TotalDurationMinutes
			if store != nil {
				if _, err := store.Insert(&flights[i]); err != nil {
					fmt.Fprintf(os.Stderr, "Store insert failed: %v\n", err)
				}
			}
		}

		all = append(all, flights...)
		out = append(out, ExtractOut{URL: snap.URL, Flights: flights})
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Input read error: %v\n", err)
		os.Exit(1)
	}

	var wout io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		wout = f
	}

	enc, err := marshalJSON(out, *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "JSON encode error: %v\n", err)
		os.Exit(1)
	}
	_, _ = wout.Write(enc)
	if wout == os.Stdout {
		_, _ = wout.Write([]byte("\n"))
	}

	if *showStats {
		fmt.Fprintf(os.Stderr,
			"stats: lines=%d parsed(feed=%d flat=%d) skipped(empty)=%d pages=%d flights=%d flown=%s\n",
			st.Lines, st.ParsedFeed, st.ParsedFlat, st.SkippedEmpty, st.Pages, st.Flights,
			patterns.FormatDuration(st.TotalMinutes),
		)
		res := flight.Result{Flights: all, SearchedAt: time.Now().UTC(), Currency: "USD"}
		if best := res.Cheapest(); best != nil {
			fmt.Fprintf(os.Stderr, "stats: cheapest=%s USD (%s-%s)\n",
				best.Price, best.Origin(), best.Destination())
		}
		if fastest := res.Fastest(); fastest != nil {
			fmt.Fprintf(os.Stderr, "stats: fastest=%s (%s-%s)\n",
				patterns.FormatDuration(fastest.TotalDurationMinutes), fastest.Origin(), fastest.Destination())
		}
	}
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
