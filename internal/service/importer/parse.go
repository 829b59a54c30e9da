package importer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/fetcher"
)

// duplicateAdmin2 normalizes admin2 spellings that appear twice in the
// same report with the same FIPS, so they collapse onto one record.
// See https://github.com/CSSEGISandData/COVID-19/issues/1620.
var duplicateAdmin2 = map[string]string{
	"Dona Ana":           "Doña Ana",
	"Elko County":        "Elko",
	"Garfield County":    "Garfield",
	"Walla Walla County": "Walla Walla",
}

var lastUpdateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/06 15:04",
}

// parseLastUpdate accepts the two formats reports have historically
// used. Anything else, including a blank value, fails the row.
func parseLastUpdate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("last update is missing")
	}

	for _, layout := range lastUpdateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unknown last update format %q", value)
}

// cleanOptional treats a blank CSV value as absent.
func cleanOptional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// reportRow is a raw row normalized across the two historical column
// naming schemes, before any matching or storage logic runs.
type reportRow struct {
	names      domain.RegionNames
	fips       *string
	lastUpdate time.Time
	confirmed  int
	deaths     int
	recovered  int
}

func firstOf(row fetcher.Row, keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := row[key]; ok && value != "" {
			return value, true
		}
	}
	_, ok := row[keys[len(keys)-1]]
	return "", ok
}

func parseMeasure(row fetcher.Row, key string) (int, error) {
	value, ok := row[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	if value == "" {
		return 0, fmt.Errorf("%s is empty", key)
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative %s %d", key, n)
	}

	return n, nil
}

// parseReportRow normalizes one raw row. Errors here are fatal for the
// whole batch: a malformed row means the file cannot be trusted.
func parseReportRow(row fetcher.Row) (*reportRow, error) {
	lastUpdateStr, ok := firstOf(row, "Last Update", "Last_Update")
	if !ok {
		return nil, fmt.Errorf("missing last update field")
	}

	lastUpdate, err := parseLastUpdate(lastUpdateStr)
	if err != nil {
		return nil, err
	}

	country, ok := firstOf(row, "Country_Region", "Country/Region")
	if !ok {
		return nil, fmt.Errorf("missing country field")
	}

	province, _ := firstOf(row, "Province_State", "Province/State")

	admin2 := row["Admin2"]
	if canonical, ok := duplicateAdmin2[admin2]; ok {
		admin2 = canonical
	}

	confirmed, err := parseMeasure(row, "Confirmed")
	if err != nil {
		return nil, err
	}
	deaths, err := parseMeasure(row, "Deaths")
	if err != nil {
		return nil, err
	}
	recovered, err := parseMeasure(row, "Recovered")
	if err != nil {
		return nil, err
	}

	return &reportRow{
		names: domain.RegionNames{
			CountryRegion: country,
			ProvinceState: province,
			Admin2:        admin2,
		},
		fips:       cleanOptional(row["FIPS"]),
		lastUpdate: lastUpdate,
		confirmed:  confirmed,
		deaths:     deaths,
		recovered:  recovered,
	}, nil
}
