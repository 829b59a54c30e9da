package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/fetcher"
)

func referenceRows() []fetcher.Row {
	return []fetcher.Row{
		{
			"UID": "156", "iso2": "CN", "iso3": "CHN", "FIPS": "",
			"Admin2": "", "Province_State": "", "Country_Region": "China",
			"Combined_Key": "China", "Population": "1404676330",
			"Lat": "35.8617", "Long_": "104.1954",
		},
		{
			"UID": "15642", "iso2": "CN", "iso3": "CHN", "FIPS": "",
			"Admin2": "", "Province_State": "Hubei", "Country_Region": "China",
			"Combined_Key": "Hubei, China", "Population": "59170000",
			"Lat": "30.9756", "Long_": "112.2707",
		},
		{
			"UID": "84035013", "iso2": "US", "iso3": "USA", "FIPS": "35013",
			"Admin2": "Doña Ana", "Province_State": "New Mexico", "Country_Region": "US",
			"Combined_Key": "Doña Ana, New Mexico, US", "Population": "218195",
			"Lat": "32.3426", "Long_": "-106.8322",
		},
		{
			"UID": "276", "iso2": "DE", "iso3": "DEU", "FIPS": "",
			"Admin2": "", "Province_State": "", "Country_Region": "Germany",
			"Combined_Key": "Germany", "Population": "",
			"Lat": "", "Long_": "",
		},
	}
}

func TestNew(t *testing.T) {
	cat, err := New(referenceRows())
	require.NoError(t, err)
	assert.Equal(t, 4, cat.Len())

	info, ok := cat.Lookup(domain.RegionNames{CountryRegion: "China", ProvinceState: "Hubei"})
	require.True(t, ok)
	assert.Equal(t, 15642, info.IdentifiedRegion.UID)
	assert.Equal(t, domain.ScopeProvinceState, info.IdentifiedRegion.Scope)
	require.NotNil(t, info.Population)
	assert.Equal(t, int64(59170000), *info.Population)
	require.NotNil(t, info.Coordinates)
	assert.Equal(t, "30.9756", info.Coordinates.Latitude.String())

	byKey, ok := cat.LookupByKey("Doña Ana, New Mexico, US")
	require.True(t, ok)
	assert.Equal(t, "35013", byKey.IdentifiedRegion.FIPS)
	assert.Equal(t, domain.ScopeAdmin2, byKey.IdentifiedRegion.Scope)

	byID, ok := cat.LookupByID(156)
	require.True(t, ok)
	assert.Equal(t, "China", byID.CombinedKey)

	_, ok = cat.Lookup(domain.RegionNames{CountryRegion: "Atlantis"})
	assert.False(t, ok)
}

func TestNewMissingCoordinatesAndPopulation(t *testing.T) {
	cat, err := New(referenceRows())
	require.NoError(t, err)

	info, ok := cat.LookupByID(276)
	require.True(t, ok)
	assert.Nil(t, info.Population)
	assert.Nil(t, info.Coordinates)
}

func TestNewRejectsIncompleteRows(t *testing.T) {
	rows := referenceRows()
	delete(rows[1], "Combined_Key")

	_, err := New(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Combined_Key")
}

func TestNewRejectsBadUID(t *testing.T) {
	rows := referenceRows()
	rows[0]["UID"] = "not-a-number"

	_, err := New(rows)
	require.Error(t, err)
}

func TestMatcherResolve(t *testing.T) {
	cat, err := New(referenceRows())
	require.NoError(t, err)
	matcher := NewMatcher(cat)

	t.Run("exact match", func(t *testing.T) {
		info, outcome := matcher.Resolve(domain.RegionNames{CountryRegion: "Germany"})
		assert.Equal(t, Matched, outcome)
		assert.Equal(t, 276, info.IdentifiedRegion.UID)
	})

	t.Run("match after cleaning", func(t *testing.T) {
		info, outcome := matcher.Resolve(domain.RegionNames{
			CountryRegion: "Mainland China",
			ProvinceState: "Hubei",
		})
		assert.Equal(t, Matched, outcome)
		assert.Equal(t, 15642, info.IdentifiedRegion.UID)
	})

	t.Run("ignored location", func(t *testing.T) {
		info, outcome := matcher.Resolve(domain.RegionNames{CountryRegion: "Palestine"})
		assert.Equal(t, Ignored, outcome)
		assert.Nil(t, info)
	})

	t.Run("unmatched location", func(t *testing.T) {
		info, outcome := matcher.Resolve(domain.RegionNames{CountryRegion: "Atlantis"})
		assert.Equal(t, Unmatched, outcome)
		assert.Nil(t, info)
	})
}
