// Package catalog holds the canonical region reference table in memory
// and matches reported location names against it.
package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/fetcher"
)

// Catalog indexes the lookup table three ways: by name tuple, by
// combined key and by uid. It is built once and read-only afterwards,
// so it is safe to share across concurrent import runs.
type Catalog struct {
	byNames map[domain.RegionNames]*domain.RegionInfo
	byKey   map[string]*domain.RegionInfo
	byID    map[int]*domain.RegionInfo
	order   []*domain.RegionInfo
}

// Load fetches the reference table and builds the catalog. Any row
// missing a required field fails the whole load: a partially built
// catalog would silently misclassify reports.
func Load(ctx context.Context, f fetcher.ReferenceFetcher) (*Catalog, error) {
	rows, err := f.FetchReferenceTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch reference table: %w", err)
	}

	return New(rows)
}

// New builds a catalog from already-fetched reference rows.
func New(rows []fetcher.Row) (*Catalog, error) {
	c := &Catalog{
		byNames: make(map[domain.RegionNames]*domain.RegionInfo, len(rows)),
		byKey:   make(map[string]*domain.RegionInfo, len(rows)),
		byID:    make(map[int]*domain.RegionInfo, len(rows)),
	}

	for i, row := range rows {
		info, err := parseReferenceRow(row)
		if err != nil {
			return nil, fmt.Errorf("reference table row %d: %w", i+1, err)
		}

		c.byNames[info.RegionNames] = info
		c.byKey[info.CombinedKey] = info
		c.byID[info.IdentifiedRegion.UID] = info
		c.order = append(c.order, info)
	}

	return c, nil
}

// Lookup finds a region by exact structural match of the name tuple.
func (c *Catalog) Lookup(names domain.RegionNames) (*domain.RegionInfo, bool) {
	info, ok := c.byNames[names]
	return info, ok
}

// LookupByKey finds a region by its Combined_Key string.
func (c *Catalog) LookupByKey(combinedKey string) (*domain.RegionInfo, bool) {
	info, ok := c.byKey[combinedKey]
	return info, ok
}

// LookupByID finds a region by the uid assigned in the lookup table.
func (c *Catalog) LookupByID(uid int) (*domain.RegionInfo, bool) {
	info, ok := c.byID[uid]
	return info, ok
}

// Regions returns all entries in reference-table order. Used to seed
// the persisted region directory.
func (c *Catalog) Regions() []*domain.RegionInfo {
	return c.order
}

func (c *Catalog) Len() int {
	return len(c.order)
}

func requireField(row fetcher.Row, name string) (string, error) {
	value, ok := row[name]
	if !ok {
		return "", fmt.Errorf("missing required field %q", name)
	}
	return value, nil
}

func parseReferenceRow(row fetcher.Row) (*domain.RegionInfo, error) {
	required := make(map[string]string, 11)
	for _, name := range []string{
		"UID", "iso2", "iso3", "FIPS", "Admin2", "Province_State",
		"Country_Region", "Combined_Key", "Population", "Lat", "Long_",
	} {
		value, err := requireField(row, name)
		if err != nil {
			return nil, err
		}
		required[name] = value
	}

	uid, err := strconv.Atoi(required["UID"])
	if err != nil {
		return nil, fmt.Errorf("invalid UID %q: %w", required["UID"], err)
	}

	names := domain.RegionNames{
		CountryRegion: required["Country_Region"],
		ProvinceState: required["Province_State"],
		Admin2:        required["Admin2"],
	}

	info := &domain.RegionInfo{
		IdentifiedRegion: domain.IdentifiedRegion{
			UID:   uid,
			FIPS:  required["FIPS"],
			ISO2:  required["iso2"],
			ISO3:  required["iso3"],
			Scope: names.Scope(),
		},
		RegionNames: names,
		CombinedKey: required["Combined_Key"],
		Coordinates: parseLatLong(required["Lat"], required["Long_"]),
	}

	if required["Population"] != "" {
		population, err := strconv.ParseInt(required["Population"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid Population %q: %w", required["Population"], err)
		}
		info.Population = &population
	}

	return info, nil
}

// parseLatLong keeps the coordinates exactly as published. Some rows
// legitimately have no coordinates; those parse to nil.
func parseLatLong(lat, long string) *domain.LatLong {
	latitude, err := decimal.NewFromString(lat)
	if err != nil {
		return nil
	}
	longitude, err := decimal.NewFromString(long)
	if err != nil {
		return nil
	}
	return &domain.LatLong{Latitude: latitude, Longitude: longitude}
}
