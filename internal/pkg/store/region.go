package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/store/xpgx"
)

var regionsColumns = []string{
	"uid", "scope", "country_code_iso2", "country_code_iso3", "fips",
	"country_region", "province_state", "admin2", "combined_key",
	"population", "latitude", "longitude", "created_at", "updated_at",
}

// SeedRegion inserts a region directory row, skipping uids that are
// already present. Returns whether a row was inserted.
func (s *store) SeedRegion(ctx context.Context, region *domain.Region) (bool, error) {
	var lat, long interface{}
	if region.Latitude != nil {
		lat = *region.Latitude
	}
	if region.Longitude != nil {
		long = *region.Longitude
	}

	query := builder().Insert(tableRegions).
		Columns(
			"uid", "scope", "country_code_iso2", "country_code_iso3", "fips",
			"country_region", "province_state", "admin2", "combined_key",
			"population", "latitude", "longitude",
		).
		Values(
			region.UID, string(region.Scope), region.ISO2, region.ISO3, nullable(region.FIPS),
			region.CountryRegion, nullable(region.ProvinceState), nullable(region.Admin2),
			region.CombinedKey, region.Population, lat, long,
		).
		Suffix("on conflict (uid) do nothing")

	tag, err := xpgx.Exec(ctx, s.pool, query)
	if err != nil {
		return false, wrapErr(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *store) RegionExists(ctx context.Context, uid int) (bool, error) {
	query := builder().Select("1").
		From(tableRegions).
		Where(sq.Eq{"uid": uid})

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if wrapped := wrapErr(err); wrapped != err {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *store) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	query := builder().Select(regionsColumns...).
		From(tableRegions).
		OrderBy("uid")

	selected, err := xpgx.Select[domain.Region](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
