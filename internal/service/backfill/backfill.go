// Package backfill drives sequential imports of published daily
// reports and seeds the persisted region directory.
package backfill

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/catalog"
	"github.com/ougirez/covidtrack/internal/pkg/fetcher"
	"github.com/ougirez/covidtrack/internal/pkg/logger"
	"github.com/ougirez/covidtrack/internal/pkg/store"
	"github.com/ougirez/covidtrack/internal/service/importer"
)

// FirstReportDate is the earliest day with a report in the current
// column layout.
var FirstReportDate = time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)

const seedWorkers = 8

// latestDater is implemented by fetchers that can discover the most
// recent published report date.
type latestDater interface {
	LatestReportDate(ctx context.Context) (time.Time, error)
}

type Service struct {
	importer *importer.Service
	reports  fetcher.ReportFetcher
	catalog  *catalog.Catalog
	store    store.Store
}

func NewService(imp *importer.Service, reports fetcher.ReportFetcher, cat *catalog.Catalog, s store.Store) *Service {
	return &Service{
		importer: imp,
		reports:  reports,
		catalog:  cat,
		store:    s,
	}
}

// Run imports every published report from from to to inclusive, one
// day per batch, oldest first. A missing report for the final, current
// day just means it is not published yet; a missing report for an
// earlier day is an error.
func (s *Service) Run(ctx context.Context, from, to time.Time) error {
	from = truncateToDay(from)
	to = truncateToDay(to)
	if to.Before(from) {
		return fmt.Errorf("backfill range is empty: %s is after %s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		_, err := s.ImportDay(ctx, day)
		if errors.Is(err, fetcher.ErrReportNotFound) {
			if day.Equal(truncateToDay(time.Now().UTC())) {
				logger.Infof(ctx, "report for %s is not published yet, stopping", day.Format(time.DateOnly))
				return nil
			}
			return fmt.Errorf("report for %s: %w", day.Format(time.DateOnly), err)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// ImportDay fetches and imports one day's report and returns the run
// summary. Returns fetcher.ErrReportNotFound unwrapped when the day's
// report is not published.
func (s *Service) ImportDay(ctx context.Context, day time.Time) (*importer.Result, error) {
	day = truncateToDay(day)

	rows, err := s.reports.FetchReport(ctx, day)
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "importing report for %s", day.Format(time.DateOnly))

	result, err := s.importer.ImportDailyReport(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("import report for %s: %w", day.Format(time.DateOnly), err)
	}

	for _, info := range result.Info() {
		logger.Info(ctx, info)
	}

	return result, nil
}

// RunAll imports the whole published history up to today.
func (s *Service) RunAll(ctx context.Context) error {
	return s.Run(ctx, FirstReportDate, time.Now().UTC())
}

// RunLatest imports only the most recent published report. The date is
// discovered from the report directory listing when the fetcher
// supports that; otherwise yesterday's report is assumed to be the
// latest one.
func (s *Service) RunLatest(ctx context.Context) error {
	day := time.Now().UTC().AddDate(0, 0, -1)

	if dater, ok := s.reports.(latestDater); ok {
		discovered, err := dater.LatestReportDate(ctx)
		if err != nil {
			logger.Warnf(ctx, "failed to discover latest report date, falling back to yesterday: %s", err.Error())
		} else {
			day = discovered
		}
	}

	return s.Run(ctx, day, day)
}

// SeedRegions copies the catalog into the persisted region directory,
// skipping uids that are already there. Returns the number of newly
// inserted rows.
func (s *Service) SeedRegions(ctx context.Context) (int, error) {
	var seeded atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(seedWorkers)

	for _, info := range s.catalog.Regions() {
		info := info
		group.Go(func() error {
			exists, err := s.store.RegionExists(groupCtx, info.IdentifiedRegion.UID)
			if err != nil {
				return fmt.Errorf("check region %d: %w", info.IdentifiedRegion.UID, err)
			}
			if exists {
				return nil
			}

			inserted, err := s.store.SeedRegion(groupCtx, regionRow(info))
			if err != nil {
				return fmt.Errorf("seed region %d: %w", info.IdentifiedRegion.UID, err)
			}
			if inserted {
				seeded.Add(1)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return int(seeded.Load()), err
	}

	logger.Infof(ctx, "seeded %d regions", seeded.Load())

	return int(seeded.Load()), nil
}

func regionRow(info *domain.RegionInfo) *domain.Region {
	region := &domain.Region{
		UID:           info.IdentifiedRegion.UID,
		Scope:         info.IdentifiedRegion.Scope,
		ISO2:          info.IdentifiedRegion.ISO2,
		ISO3:          info.IdentifiedRegion.ISO3,
		CountryRegion: info.RegionNames.CountryRegion,
		CombinedKey:   info.CombinedKey,
		Population:    info.Population,
	}

	if fips := info.IdentifiedRegion.FIPS; fips != "" {
		region.FIPS = &fips
	}
	if province := info.RegionNames.ProvinceState; province != "" {
		region.ProvinceState = &province
	}
	if admin2 := info.RegionNames.Admin2; admin2 != "" {
		region.Admin2 = &admin2
	}
	if info.Coordinates != nil {
		lat, long := info.Coordinates.Latitude, info.Coordinates.Longitude
		region.Latitude = &lat
		region.Longitude = &long
	}

	return region
}

func truncateToDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}
