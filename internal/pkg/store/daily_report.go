package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/store/xpgx"
)

var dailyReportColumns = []string{
	"id", "region_id", "country_region", "province_state", "admin2",
	"fips", "last_update", "confirmed", "deaths", "recovered",
}

func (s *store) Begin(ctx context.Context) (Batch, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}

	return &batch{tx: tx}, nil
}

type batch struct {
	tx pgx.Tx
}

func (b *batch) Commit(ctx context.Context) error {
	return b.tx.Commit(ctx)
}

func (b *batch) Rollback(ctx context.Context) error {
	return b.tx.Rollback(ctx)
}

func (b *batch) GetDailyReport(ctx context.Context, key ReportKey) (*domain.DailyReport, error) {
	query := builder().Select(dailyReportColumns...).
		From(tableDailyReports).
		Where(matchRule(key))

	selected, err := xpgx.Get[domain.DailyReport](ctx, b.tx, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

// matchRule builds the lookup predicate in the invariant priority
// order: FIPS when present, otherwise the name tuple with absent
// fields pinned to NULL.
func matchRule(key ReportKey) sq.Eq {
	if key.FIPS != nil {
		return sq.Eq{
			"fips":        *key.FIPS,
			"last_update": key.LastUpdate,
		}
	}

	return sq.Eq{
		"country_region": key.CountryRegion,
		"province_state": nullable(key.ProvinceState),
		"admin2":         nullable(key.Admin2),
		"last_update":    key.LastUpdate,
	}
}

func (b *batch) InsertDailyReport(ctx context.Context, dr *domain.DailyReport) error {
	query := builder().Insert(tableDailyReports).
		Columns(dailyReportColumns[1:]...).
		Values(
			dr.RegionID, dr.CountryRegion, nullable(dr.ProvinceState), nullable(dr.Admin2),
			nullable(dr.FIPS), dr.LastUpdate, dr.Confirmed, dr.Deaths, dr.Recovered,
		).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if err := b.tx.QueryRow(ctx, sql, args...).Scan(&dr.ID); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (b *batch) UpdateDailyReportCounts(ctx context.Context, dr *domain.DailyReport) error {
	query := builder().Update(tableDailyReports).
		Set("confirmed", dr.Confirmed).
		Set("deaths", dr.Deaths).
		Set("recovered", dr.Recovered).
		Where(sq.Eq{"id": dr.ID})

	if _, err := xpgx.Exec(ctx, b.tx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (b *batch) DeleteDailyReport(ctx context.Context, id int64) error {
	query := builder().Delete(tableDailyReports).Where(sq.Eq{"id": id})

	if _, err := xpgx.Exec(ctx, b.tx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (b *batch) FirstDuplicateFIPS(ctx context.Context) (*string, error) {
	query := builder().Select("fips").
		From(tableDailyReports).
		Where("fips is not null").
		GroupBy("fips", "last_update").
		Having("count(*) > 1").
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var fips string
	if err := b.tx.QueryRow(ctx, sql, args...).Scan(&fips); err != nil {
		if wrapped := wrapErr(err); wrapped != err {
			return nil, nil
		}
		return nil, err
	}

	return &fips, nil
}

func (b *batch) FirstDuplicateRegionID(ctx context.Context) (*int, error) {
	query := builder().Select("region_id").
		From(tableDailyReports).
		Where("region_id is not null").
		GroupBy("region_id", "last_update").
		Having("count(*) > 1").
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var regionID int
	if err := b.tx.QueryRow(ctx, sql, args...).Scan(&regionID); err != nil {
		if wrapped := wrapErr(err); wrapped != err {
			return nil, nil
		}
		return nil, err
	}

	return &regionID, nil
}

func (b *batch) FirstDuplicateNames(ctx context.Context) (*string, error) {
	query := builder().Select("country_region", "province_state", "admin2", "last_update").
		From(tableDailyReports).
		Where("fips is null and region_id is null").
		GroupBy("country_region", "province_state", "admin2", "last_update").
		Having("count(*) > 1").
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		country    string
		province   *string
		admin2     *string
		lastUpdate time.Time
	)
	if err := b.tx.QueryRow(ctx, sql, args...).Scan(&country, &province, &admin2, &lastUpdate); err != nil {
		if wrapped := wrapErr(err); wrapped != err {
			return nil, nil
		}
		return nil, err
	}

	parts := []string{country}
	if province != nil {
		parts = append(parts, *province)
	}
	if admin2 != nil {
		parts = append(parts, *admin2)
	}
	parts = append(parts, lastUpdate.Format("2006-01-02 15:04:05"))
	key := strings.Join(parts, ", ")

	return &key, nil
}
