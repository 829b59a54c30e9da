package backfill

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/catalog"
	"github.com/ougirez/covidtrack/internal/pkg/fetcher"
	"github.com/ougirez/covidtrack/internal/pkg/store"
	"github.com/ougirez/covidtrack/internal/service/importer"
)

// fakeReports serves canned report rows keyed by date and reports
// everything else as unpublished.
type fakeReports struct {
	reports map[string][]fetcher.Row
	latest  time.Time
}

func (f *fakeReports) FetchReport(_ context.Context, day time.Time) ([]fetcher.Row, error) {
	rows, ok := f.reports[day.Format("01-02-2006")]
	if !ok {
		return nil, fetcher.ErrReportNotFound
	}
	return rows, nil
}

func (f *fakeReports) LatestReportDate(context.Context) (time.Time, error) {
	if f.latest.IsZero() {
		return time.Time{}, errors.New("listing unavailable")
	}
	return f.latest, nil
}

// fakeStore covers the region directory methods; backfill runs that
// reach the report tables are not exercised through it.
type fakeStore struct {
	mu      sync.Mutex
	regions map[int]domain.Region
}

func newFakeStore() *fakeStore {
	return &fakeStore{regions: make(map[int]domain.Region)}
}

func (s *fakeStore) Begin(context.Context) (store.Batch, error) {
	return nil, errors.New("not supported")
}

func (s *fakeStore) SeedRegion(_ context.Context, region *domain.Region) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regions[region.UID]; ok {
		return false, nil
	}
	s.regions[region.UID] = *region
	return true, nil
}

func (s *fakeStore) RegionExists(_ context.Context, uid int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.regions[uid]
	return ok, nil
}

func (s *fakeStore) ListRegions(context.Context) ([]*domain.Region, error) {
	return nil, errors.New("not supported")
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.New([]fetcher.Row{
		{
			"UID": "156", "iso2": "CN", "iso3": "CHN", "FIPS": "",
			"Admin2": "", "Province_State": "", "Country_Region": "China",
			"Combined_Key": "China", "Population": "1404676330",
			"Lat": "35.8617", "Long_": "104.1954",
		},
		{
			"UID": "276", "iso2": "DE", "iso3": "DEU", "FIPS": "",
			"Admin2": "", "Province_State": "", "Country_Region": "Germany",
			"Combined_Key": "Germany", "Population": "",
			"Lat": "", "Long_": "",
		},
		{
			"UID": "84035013", "iso2": "US", "iso3": "USA", "FIPS": "35013",
			"Admin2": "Doña Ana", "Province_State": "New Mexico", "Country_Region": "US",
			"Combined_Key": "Doña Ana, New Mexico, US", "Population": "218195",
			"Lat": "32.3426", "Long_": "-106.8322",
		},
	})
	require.NoError(t, err)

	return cat
}

func newTestService(t *testing.T, reports *fakeReports) (*Service, *fakeStore) {
	t.Helper()

	s := newFakeStore()
	cat := testCatalog(t)
	imp := importer.NewService(s, catalog.NewMatcher(cat))
	return NewService(imp, reports, cat, s), s
}

func TestRunStopsWhenTodayUnpublished(t *testing.T) {
	svc, _ := newTestService(t, &fakeReports{})

	today := time.Now().UTC()
	err := svc.Run(context.Background(), today, today)
	assert.NoError(t, err)
}

func TestRunFailsOnMissingPastReport(t *testing.T) {
	svc, _ := newTestService(t, &fakeReports{})

	from := time.Now().UTC().AddDate(0, 0, -3)
	err := svc.Run(context.Background(), from, time.Now().UTC())
	assert.ErrorIs(t, err, fetcher.ErrReportNotFound)
}

func TestRunRejectsEmptyRange(t *testing.T) {
	svc, _ := newTestService(t, &fakeReports{})

	now := time.Now().UTC()
	err := svc.Run(context.Background(), now, now.AddDate(0, 0, -1))
	assert.Error(t, err)
}

func TestRunLatestUsesDiscoveredDate(t *testing.T) {
	discovered := time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &fakeReports{latest: discovered})

	err := svc.RunLatest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2020-05-17")
}

func TestSeedRegions(t *testing.T) {
	svc, s := newTestService(t, &fakeReports{})

	// One region is already present and must be skipped.
	s.regions[276] = domain.Region{UID: 276}

	seeded, err := svc.SeedRegions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, seeded)
	assert.Len(t, s.regions, 3)

	region, ok := s.regions[84035013]
	require.True(t, ok)
	assert.Equal(t, domain.ScopeAdmin2, region.Scope)
	require.NotNil(t, region.FIPS)
	assert.Equal(t, "35013", *region.FIPS)
	require.NotNil(t, region.Latitude)
	assert.Equal(t, "32.3426", region.Latitude.String())
}

func TestRegionRowWithoutOptionalFields(t *testing.T) {
	cat := testCatalog(t)
	info, ok := cat.LookupByID(276)
	require.True(t, ok)

	region := regionRow(info)
	assert.Equal(t, 276, region.UID)
	assert.Equal(t, domain.ScopeCountryRegion, region.Scope)
	assert.Nil(t, region.FIPS)
	assert.Nil(t, region.ProvinceState)
	assert.Nil(t, region.Population)
	assert.Nil(t, region.Latitude)
}
