package importer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ougirez/covidtrack/internal/domain"
)

// Decrease is an incoming row whose counts are lower than the values
// already stored for the same key and timestamp. The stored record is
// left untouched; the event is surfaced for operator review.
type Decrease struct {
	Record    *domain.DailyReport
	Confirmed int
	Deaths    int
	Recovered int
}

// Result accumulates everything one import run wants to report back:
// warnings, counters, decrease events and fatal errors.
type Result struct {
	RunID uuid.UUID

	unmatchedLocations map[domain.RegionNames]int
	unmatchedOrder     []domain.RegionNames
	resolvedDuplicates map[int]int
	ignoredLocations   map[domain.RegionNames]int
	matchedRecords     map[int][]*domain.DailyReport
	decreases          []Decrease
	errors             []string
	warnings           []string
}

func NewResult() *Result {
	return &Result{
		RunID:              uuid.New(),
		unmatchedLocations: make(map[domain.RegionNames]int),
		resolvedDuplicates: make(map[int]int),
		ignoredLocations:   make(map[domain.RegionNames]int),
		matchedRecords:     make(map[int][]*domain.DailyReport),
	}
}

func (r *Result) RecordError(message string) {
	r.errors = append(r.errors, message)
}

func (r *Result) RecordWarning(message string) {
	r.warnings = append(r.warnings, message)
}

// RecordMatchedRecord tracks records that did match the lookup table,
// keyed by uid. Used to detect duplicates within the batch.
func (r *Result) RecordMatchedRecord(uid int, dr *domain.DailyReport) {
	r.matchedRecords[uid] = append(r.matchedRecords[uid], dr)
}

// RecordUnmatchedLocation tracks a location the rule tables do not
// cover yet.
func (r *Result) RecordUnmatchedLocation(names domain.RegionNames) {
	if r.unmatchedLocations[names] == 0 {
		r.unmatchedOrder = append(r.unmatchedOrder, names)
	}
	r.unmatchedLocations[names]++
}

// RecordIgnoredLocation tracks a location the cleaning rules drop
// deliberately, e.g. city-level rows or cruise-ship evacuee subgroups.
func (r *Result) RecordIgnoredLocation(names domain.RegionNames) {
	r.ignoredLocations[names]++
}

// RecordResolvedDuplicate tracks a duplicate in the same report that
// was deduplicated without conflict.
func (r *Result) RecordResolvedDuplicate(uid int) {
	r.resolvedDuplicates[uid]++
}

// RecordUnexpectedDecrease tracks a reused timestamp with lower
// numbers. The higher estimate stays stored, so a rerun of the same
// report never changes the result.
func (r *Result) RecordUnexpectedDecrease(dr *domain.DailyReport, confirmed, deaths, recovered int) {
	r.decreases = append(r.decreases, Decrease{
		Record:    dr,
		Confirmed: confirmed,
		Deaths:    deaths,
		Recovered: recovered,
	})
}

// DuplicateRecords returns, per uid, the record registrations that
// more than one raw row resolved to. A group may contain the same
// record twice when two rows updated it in place.
func (r *Result) DuplicateRecords() [][]*domain.DailyReport {
	var groups [][]*domain.DailyReport
	for _, records := range r.matchedRecords {
		if len(records) > 1 {
			groups = append(groups, records)
		}
	}
	return groups
}

// Decreases returns the unexpected-decrease events in row order.
func (r *Result) Decreases() []Decrease {
	return r.decreases
}

func (r *Result) Errors() []string {
	return r.errors
}

func (r *Result) Warnings() []string {
	return r.warnings
}

// ProcessedLocations is the number of distinct matched regions.
func (r *Result) ProcessedLocations() int {
	return len(r.matchedRecords)
}

// IgnoredLocations is the number of distinct deliberately-dropped
// locations.
func (r *Result) IgnoredLocations() int {
	return len(r.ignoredLocations)
}

// ResolvedDuplicateLocations is the number of regions that had
// duplicates resolved without conflict.
func (r *Result) ResolvedDuplicateLocations() int {
	return len(r.resolvedDuplicates)
}

// Info renders the run summary: warnings first, then unmatched
// locations, then the counters, then decrease events.
func (r *Result) Info() []string {
	infos := make([]string, 0, len(r.warnings)+len(r.unmatchedOrder)+len(r.decreases)+4)

	for _, warning := range r.warnings {
		infos = append(infos, "Warning: "+warning)
	}

	for _, location := range r.unmatchedOrder {
		infos = append(infos, fmt.Sprintf("Warning: No match found for %s", location))
	}

	infos = append(infos,
		fmt.Sprintf("Number of processed locations: %d", len(r.matchedRecords)),
		fmt.Sprintf("Number of duplicate locations: %d", len(r.DuplicateRecords())),
		fmt.Sprintf("Number of resolved duplicate locations: %d", len(r.resolvedDuplicates)),
		fmt.Sprintf("Number of ignored locations: %d", len(r.ignoredLocations)),
	)

	for _, d := range r.decreases {
		infos = append(infos, fmt.Sprintf(
			"Timestamp has been reused for %s (conflicting report: confirmed=%d, deaths=%d, recovered=%d)",
			d.Record, d.Confirmed, d.Deaths, d.Recovered))
	}

	return infos
}
