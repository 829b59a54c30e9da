// Package importer reconciles one day's report rows against the region
// catalog and the stored time series.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/catalog"
	"github.com/ougirez/covidtrack/internal/pkg/constants"
	"github.com/ougirez/covidtrack/internal/pkg/fetcher"
	"github.com/ougirez/covidtrack/internal/pkg/logger"
	"github.com/ougirez/covidtrack/internal/pkg/store"
)

// BatchError carries the consistency violations that aborted a batch.
// Storage is guaranteed unchanged when it is returned.
type BatchError struct {
	Violations []string
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("unrecoverable errors while importing data: %s", strings.Join(e.Violations, "; "))
}

type Service struct {
	store   store.Store
	matcher *catalog.Matcher
}

func NewService(s store.Store, matcher *catalog.Matcher) *Service {
	return &Service{store: s, matcher: matcher}
}

// ImportDailyReport processes one day's rows as a single batch: stage
// every row, deduplicate, run the consistency checks, then commit. On
// any fatal error the whole batch rolls back.
func (s *Service) ImportDailyReport(ctx context.Context, rows []fetcher.Row) (*Result, error) {
	result := NewResult()

	batch, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.Begin: %w", err)
	}

	logger.Infof(ctx, "import run %s: %d rows", result.RunID, len(rows))

	for _, row := range rows {
		if err := s.importRow(ctx, batch, row, result); err != nil {
			_ = batch.Rollback(ctx)
			return nil, fmt.Errorf("invalid row %v: %w", row, err)
		}
	}

	if err := s.deduplicate(ctx, batch, result); err != nil {
		_ = batch.Rollback(ctx)
		return nil, fmt.Errorf("deduplicate: %w", err)
	}

	if err := s.sanityCheck(ctx, batch, result); err != nil {
		_ = batch.Rollback(ctx)
		return nil, fmt.Errorf("sanity check: %w", err)
	}

	if violations := result.Errors(); len(violations) > 0 {
		_ = batch.Rollback(ctx)
		for _, violation := range violations {
			logger.Error(ctx, violation)
		}
		return nil, &BatchError{Violations: violations}
	}

	if err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return result, nil
}

func (s *Service) importRow(ctx context.Context, batch store.Batch, raw fetcher.Row, result *Result) error {
	row, err := parseReportRow(raw)
	if err != nil {
		return err
	}

	var regionID *int
	info, outcome := s.matcher.Resolve(row.names)
	switch outcome {
	case catalog.Ignored:
		// Deliberately dropped: no record, no warning.
		result.RecordIgnoredLocation(row.names)
		return nil
	case catalog.Unmatched:
		result.RecordUnmatchedLocation(row.names)
	case catalog.Matched:
		uid := info.IdentifiedRegion.UID
		regionID = &uid
	}

	key := store.ReportKey{
		FIPS:          row.fips,
		CountryRegion: row.names.CountryRegion,
		ProvinceState: cleanOptional(row.names.ProvinceState),
		Admin2:        cleanOptional(row.names.Admin2),
		LastUpdate:    row.lastUpdate,
	}

	dr, err := batch.GetDailyReport(ctx, key)
	switch {
	case errors.Is(err, constants.ErrDBNotFound):
		dr = &domain.DailyReport{
			RegionID:      regionID,
			CountryRegion: row.names.CountryRegion,
			ProvinceState: key.ProvinceState,
			Admin2:        key.Admin2,
			FIPS:          row.fips,
			LastUpdate:    row.lastUpdate,
			Confirmed:     row.confirmed,
			Deaths:        row.deaths,
			Recovered:     row.recovered,
		}
		if err := batch.InsertDailyReport(ctx, dr); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	case err != nil:
		return fmt.Errorf("lookup: %w", err)
	default:
		if dr.Confirmed > row.confirmed || dr.Deaths > row.deaths || dr.Recovered > row.recovered {
			result.RecordUnexpectedDecrease(dr, row.confirmed, row.deaths, row.recovered)
			return nil
		}

		dr.Confirmed = row.confirmed
		dr.Deaths = row.deaths
		dr.Recovered = row.recovered
		if err := batch.UpdateDailyReportCounts(ctx, dr); err != nil {
			return fmt.Errorf("update: %w", err)
		}
	}

	if regionID != nil {
		result.RecordMatchedRecord(*regionID, dr)
	}

	return nil
}

// deduplicate removes staged duplicates: two raw rows in the same file
// that resolved to the same canonical region. The record with the
// highest (confirmed, deaths, recovered) wins; losers whose counts are
// all zero or equal are resolved silently, anything else is warned
// about. Never fatal.
func (s *Service) deduplicate(ctx context.Context, batch store.Batch, result *Result) error {
	for _, duplicates := range result.DuplicateRecords() {
		sort.SliceStable(duplicates, func(i, j int) bool {
			a, b := duplicates[i], duplicates[j]
			if a.Confirmed != b.Confirmed {
				return a.Confirmed > b.Confirmed
			}
			if a.Deaths != b.Deaths {
				return a.Deaths > b.Deaths
			}
			return a.Recovered > b.Recovered
		})
		first := duplicates[0]

		for _, other := range duplicates[1:] {
			if other.ID == first.ID {
				// Two raw rows collapsed onto the same stored record, e.g.
				// "Dona Ana" and "Doña Ana" sharing one FIPS. The store
				// hands out a fresh struct per lookup, so this is an ID
				// comparison. Nothing to delete, but the duplicate still
				// counts.
				if other.RegionID != nil {
					result.RecordResolvedDuplicate(*other.RegionID)
				}
				continue
			}

			resolved := (other.Confirmed == 0 || other.Confirmed == first.Confirmed) &&
				(other.Deaths == 0 || other.Deaths == first.Deaths) &&
				(other.Recovered == 0 || other.Recovered == first.Recovered)

			if resolved {
				if other.RegionID != nil {
					result.RecordResolvedDuplicate(*other.RegionID)
				}
			} else {
				// Conflicting reports for the same place. Keep the highest
				// estimate and warn.
				// Example: Washington/Washington County, Utah, 2020-04-03 22:46:37.
				result.RecordWarning(fmt.Sprintf(
					"Ambiguous record %s: other record has confirmed=%d, deaths=%d, recovered=%d",
					first, other.Confirmed, other.Deaths, other.Recovered))
			}

			if err := batch.DeleteDailyReport(ctx, other.ID); err != nil {
				return fmt.Errorf("delete duplicate: %w", err)
			}
		}
	}

	return nil
}

// sanityCheck verifies the uniqueness invariants over the staged state
// before commit. Each violated invariant yields exactly one error; any
// error aborts the batch. Repair is deduplicate's job, never ours.
func (s *Service) sanityCheck(ctx context.Context, batch store.Batch, result *Result) error {
	fips, err := batch.FirstDuplicateFIPS(ctx)
	if err != nil {
		return err
	}
	if fips != nil {
		result.RecordError(fmt.Sprintf("Found records with the same FIPS and last_update: %s", *fips))
	}

	regionID, err := batch.FirstDuplicateRegionID(ctx)
	if err != nil {
		return err
	}
	if regionID != nil {
		result.RecordError(fmt.Sprintf("Found records with the same region id and last_update: %d", *regionID))
	}

	names, err := batch.FirstDuplicateNames(ctx)
	if err != nil {
		return err
	}
	if names != nil {
		result.RecordError(fmt.Sprintf(
			"Found records with the same country_region, province_state, admin2, last_update and no FIPS: %s", *names))
	}

	return nil
}
