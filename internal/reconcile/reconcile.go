package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"

	"matrix_parser/internal/flight"
	"matrix_parser/internal/fragments"
	"matrix_parser/internal/page"
	"matrix_parser/internal/patterns"
)

// DefaultMaxResults caps extraction when the caller passes no limit.
const DefaultMaxResults = 10

// ExtractFlights runs the reconciliation pipeline over a captured page:
// harvest the fragment pool, reconcile each itinerary container against it,
// and fall back to a tooltip-only pass when container-based extraction
// yields nothing. It always returns a (possibly empty) list; heuristic
// misses are never surfaced as errors.
func ExtractFlights(snap *page.Snapshot, maxResults int) []flight.Record {
	if snap == nil {
		return nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	pool := fragments.Harvest(snap.Elements)

	var records []flight.Record
	containers := snap.Containers
	if len(containers) > maxResults {
		containers = containers[:maxResults]
	}
	for i := range containers {
		if rec := parseContainerSafe(&containers[i], pool); rec != nil {
			records = append(records, *rec)
		}
	}

	// Tooltip-only second pass: the containers gave us nothing but the
	// pool still holds signals.
	if len(records) == 0 && len(pool) > 0 {
		if rec := parseFromPool(pool); rec != nil {
			records = append(records, *rec)
		}
	}

	return records
}

// parseContainerSafe is the per-container failure boundary: any panic while
// reconciling one container degrades to a skipped row.
func parseContainerSafe(c *page.Container, pool fragments.Pool) (rec *flight.Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
		}
	}()
	return parseContainer(c, pool)
}

// itineraryInfo accumulates signals gathered for one itinerary.
type itineraryInfo struct {
	mentions   []patterns.TimeMention
	airlines   []string
	candidates []patterns.PriceCandidate
	notes      []string
}

func (info *itineraryInfo) addText(text string) {
	info.mentions = append(info.mentions, patterns.ExtractTimeMentions(text)...)
	info.addAirlines(patterns.ExtractAirlineNames(text))
	info.candidates = append(info.candidates, patterns.ExtractPriceCandidates(text)...)
	if fragments.IsNoteBearing(text) {
		info.notes = append(info.notes, text)
	}
}

func (info *itineraryInfo) addAirlines(names []string) {
	for _, name := range names {
		if !contains(info.airlines, name) {
			info.airlines = append(info.airlines, name)
		}
	}
}

func (info *itineraryInfo) empty() bool {
	return len(info.mentions) == 0 && len(info.airlines) == 0 &&
		len(info.candidates) == 0 && len(info.notes) == 0
}

func parseContainer(c *page.Container, pool fragments.Pool) *flight.Record {
	price, hasPrice := patterns.ExtractMainPrice(c.Text)

	var info itineraryInfo
	for _, text := range RelatedFragments(c, pool) {
		info.addText(text)
	}

	// The row itself carries airline names and sometimes time mentions.
	info.addAirlines(patterns.ExtractAirlineNames(c.Text))
	info.mentions = append(info.mentions, patterns.ExtractTimeMentions(c.Text)...)

	drafts := BuildSegments(info.mentions, info.airlines)

	// No segments from related fragments: aggregate over the whole pool
	// rather than failing the container outright.
	if len(drafts) == 0 {
		basic := basicInfo(c.Text, pool)
		basic.candidates = append(basic.candidates, info.candidates...)
		basic.notes = append(basic.notes, info.notes...)
		info = basic
		drafts = BuildSegments(info.mentions, info.airlines)
	}

	// A container with no signal at all is not an itinerary row.
	if !hasPrice && info.empty() {
		return nil
	}

	rec := AssembleRecord(AssembleInput{
		Drafts:            drafts,
		Airlines:          info.airlines,
		ContainerPrice:    price,
		HasContainerPrice: hasPrice,
		Candidates:        info.candidates,
		Notes:             info.notes,
	})
	return &rec
}

// basicInfo gathers signals from the container text plus every pooled
// fragment, for rows whose described-by references led nowhere.
func basicInfo(containerText string, pool fragments.Pool) itineraryInfo {
	var info itineraryInfo

	allText := containerText + " " + strings.Join(pool.Texts(), " ")
	info.addAirlines(patterns.ExtractAirlineNames(allText))

	for _, text := range pool.Texts() {
		info.mentions = append(info.mentions, patterns.ExtractTimeMentions(text)...)
	}

	return info
}

// parseFromPool synthesizes one flight record directly from the classified
// fragment pool. Fragments are bucketed by content signature and the
// pooled signals feed a single itinerary.
func parseFromPool(pool fragments.Pool) (rec *flight.Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
		}
	}()

	buckets := pool.Partition()

	var price decimal.Decimal
	hasPrice := false
	for _, text := range buckets.Price {
		if p, ok := patterns.ExtractMainPrice(text); ok {
			price = p
			hasPrice = true
			break
		}
	}

	var info itineraryInfo
	for _, text := range buckets.Time {
		info.mentions = append(info.mentions, patterns.ExtractTimeMentions(text)...)
	}
	for _, text := range buckets.Airline {
		info.addAirlines(patterns.ExtractAirlineNames(text))
	}
	info.notes = append(info.notes, buckets.Note...)

	if len(info.mentions) == 0 && len(info.airlines) == 0 && !hasPrice {
		return nil
	}

	out := AssembleRecord(AssembleInput{
		Drafts:            BuildSegments(info.mentions, info.airlines),
		Airlines:          info.airlines,
		ContainerPrice:    price,
		HasContainerPrice: hasPrice,
		Notes:             info.notes,
	})
	return &out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
