package domain

import (
	"fmt"
	"time"
)

// DailyReport is one (region, last_update) observation of the three
// cumulative measures. RegionID is the matched lookup-table UID, or nil
// when the row could not be matched and is stored keyed by raw names.
type DailyReport struct {
	ID            int64     `db:"id"`
	RegionID      *int      `db:"region_id"`
	CountryRegion string    `db:"country_region"`
	ProvinceState *string   `db:"province_state"`
	Admin2        *string   `db:"admin2"`
	FIPS          *string   `db:"fips"`
	LastUpdate    time.Time `db:"last_update"`
	Confirmed     int       `db:"confirmed"`
	Deaths        int       `db:"deaths"`
	Recovered     int       `db:"recovered"`
}

func (dr *DailyReport) String() string {
	names := RegionNames{CountryRegion: dr.CountryRegion}
	if dr.ProvinceState != nil {
		names.ProvinceState = *dr.ProvinceState
	}
	if dr.Admin2 != nil {
		names.Admin2 = *dr.Admin2
	}
	return fmt.Sprintf("%s at %s (confirmed=%d, deaths=%d, recovered=%d)",
		names, dr.LastUpdate.Format("2006-01-02 15:04:05"), dr.Confirmed, dr.Deaths, dr.Recovered)
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
