package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Scope classifies a region as country-, province- or county-level.
type Scope string

const (
	ScopeCountryRegion Scope = "COUNTRY_REGION"
	ScopeProvinceState Scope = "PROVINCE_STATE"
	ScopeAdmin2        Scope = "ADMIN2"
)

// RegionNames is a raw or canonicalized location name tuple. Empty
// string means the field is absent. The zero-value comparability is
// relied on: catalog lookups use RegionNames as a map key.
type RegionNames struct {
	CountryRegion string
	ProvinceState string
	Admin2        string
}

func (n RegionNames) Scope() Scope {
	switch {
	case n.Admin2 != "":
		return ScopeAdmin2
	case n.ProvinceState != "":
		return ScopeProvinceState
	default:
		return ScopeCountryRegion
	}
}

func (n RegionNames) String() string {
	switch n.Scope() {
	case ScopeAdmin2:
		return fmt.Sprintf("%s, %s, %s", n.Admin2, n.ProvinceState, n.CountryRegion)
	case ScopeProvinceState:
		return fmt.Sprintf("%s, %s", n.ProvinceState, n.CountryRegion)
	default:
		return n.CountryRegion
	}
}

// LatLong is a geographic coordinate as published in the lookup table.
type LatLong struct {
	Latitude  decimal.Decimal
	Longitude decimal.Decimal
}

// IdentifiedRegion is the stable identity of a region: the lookup-table
// UID, country codes and (for US counties) the FIPS code.
type IdentifiedRegion struct {
	UID   int
	FIPS  string
	ISO2  string
	ISO3  string
	Scope Scope
}

// RegionInfo is everything the lookup table knows about one region.
// Instances are owned by the catalog and never mutated after load.
type RegionInfo struct {
	IdentifiedRegion IdentifiedRegion
	RegionNames      RegionNames
	Population       *int64
	CombinedKey      string
	Coordinates      *LatLong
}

// Region is a row of the persisted region directory, seeded once from
// the catalog.
type Region struct {
	UID           int              `db:"uid" json:"uid"`
	Scope         Scope            `db:"scope" json:"scope"`
	ISO2          string           `db:"country_code_iso2" json:"country_code_iso2"`
	ISO3          string           `db:"country_code_iso3" json:"country_code_iso3"`
	FIPS          *string          `db:"fips" json:"fips,omitempty"`
	CountryRegion string           `db:"country_region" json:"country_region"`
	ProvinceState *string          `db:"province_state" json:"province_state,omitempty"`
	Admin2        *string          `db:"admin2" json:"admin2,omitempty"`
	CombinedKey   string           `db:"combined_key" json:"combined_key"`
	Population    *int64           `db:"population" json:"population,omitempty"`
	Latitude      *decimal.Decimal `db:"latitude" json:"latitude,omitempty"`
	Longitude     *decimal.Decimal `db:"longitude" json:"longitude,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}
