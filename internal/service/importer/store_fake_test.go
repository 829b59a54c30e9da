package importer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/constants"
	"github.com/ougirez/covidtrack/internal/pkg/store"
)

// memStore is an in-memory store.Store with transaction semantics good
// enough for these tests: a batch works on a copy of the committed
// rows and commit swaps it in.
type memStore struct {
	reports []domain.DailyReport
	nextID  int64
	regions map[int]domain.Region
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, regions: make(map[int]domain.Region)}
}

func (s *memStore) Begin(context.Context) (store.Batch, error) {
	staged := make([]*domain.DailyReport, 0, len(s.reports))
	for i := range s.reports {
		dr := s.reports[i]
		staged = append(staged, &dr)
	}
	return &memBatch{store: s, reports: staged, nextID: s.nextID}, nil
}

func (s *memStore) SeedRegion(_ context.Context, region *domain.Region) (bool, error) {
	if _, ok := s.regions[region.UID]; ok {
		return false, nil
	}
	s.regions[region.UID] = *region
	return true, nil
}

func (s *memStore) RegionExists(_ context.Context, uid int) (bool, error) {
	_, ok := s.regions[uid]
	return ok, nil
}

func (s *memStore) ListRegions(context.Context) ([]*domain.Region, error) {
	regions := make([]*domain.Region, 0, len(s.regions))
	for uid := range s.regions {
		region := s.regions[uid]
		regions = append(regions, &region)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].UID < regions[j].UID })
	return regions, nil
}

type memBatch struct {
	store      *memStore
	reports    []*domain.DailyReport
	nextID     int64
	rolledBack bool
}

func eqStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (b *memBatch) GetDailyReport(_ context.Context, key store.ReportKey) (*domain.DailyReport, error) {
	for _, dr := range b.reports {
		if !dr.LastUpdate.Equal(key.LastUpdate) {
			continue
		}
		if key.FIPS != nil {
			if eqStr(dr.FIPS, key.FIPS) {
				return scanned(dr), nil
			}
			continue
		}
		if dr.CountryRegion == key.CountryRegion &&
			eqStr(dr.ProvinceState, key.ProvinceState) &&
			eqStr(dr.Admin2, key.Admin2) {
			return scanned(dr), nil
		}
	}
	return nil, constants.ErrDBNotFound
}

// scanned mimics the row scanner: every lookup produces a fresh
// struct, never a pointer into the staged state.
func scanned(dr *domain.DailyReport) *domain.DailyReport {
	copied := *dr
	return &copied
}

func (b *memBatch) InsertDailyReport(_ context.Context, dr *domain.DailyReport) error {
	dr.ID = b.nextID
	b.nextID++
	b.reports = append(b.reports, dr)
	return nil
}

func (b *memBatch) UpdateDailyReportCounts(_ context.Context, dr *domain.DailyReport) error {
	for _, stored := range b.reports {
		if stored.ID == dr.ID {
			stored.Confirmed = dr.Confirmed
			stored.Deaths = dr.Deaths
			stored.Recovered = dr.Recovered
			return nil
		}
	}
	return fmt.Errorf("no report with id %d", dr.ID)
}

func (b *memBatch) DeleteDailyReport(_ context.Context, id int64) error {
	remaining := b.reports[:0]
	for _, dr := range b.reports {
		if dr.ID != id {
			remaining = append(remaining, dr)
		}
	}
	b.reports = remaining
	return nil
}

func (b *memBatch) FirstDuplicateFIPS(context.Context) (*string, error) {
	seen := make(map[string]int)
	for _, dr := range b.reports {
		if dr.FIPS == nil {
			continue
		}
		key := *dr.FIPS + "|" + dr.LastUpdate.Format(time.RFC3339)
		seen[key]++
		if seen[key] > 1 {
			return dr.FIPS, nil
		}
	}
	return nil, nil
}

func (b *memBatch) FirstDuplicateRegionID(context.Context) (*int, error) {
	seen := make(map[string]int)
	for _, dr := range b.reports {
		if dr.RegionID == nil {
			continue
		}
		key := fmt.Sprintf("%d|%s", *dr.RegionID, dr.LastUpdate.Format(time.RFC3339))
		seen[key]++
		if seen[key] > 1 {
			return dr.RegionID, nil
		}
	}
	return nil, nil
}

func (b *memBatch) FirstDuplicateNames(context.Context) (*string, error) {
	seen := make(map[string]int)
	for _, dr := range b.reports {
		if dr.FIPS != nil || dr.RegionID != nil {
			continue
		}
		parts := []string{dr.CountryRegion}
		if dr.ProvinceState != nil {
			parts = append(parts, *dr.ProvinceState)
		}
		if dr.Admin2 != nil {
			parts = append(parts, *dr.Admin2)
		}
		parts = append(parts, dr.LastUpdate.Format("2006-01-02 15:04:05"))
		key := strings.Join(parts, ", ")
		seen[key]++
		if seen[key] > 1 {
			return &key, nil
		}
	}
	return nil, nil
}

func (b *memBatch) Commit(context.Context) error {
	committed := make([]domain.DailyReport, 0, len(b.reports))
	for _, dr := range b.reports {
		committed = append(committed, *dr)
	}
	b.store.reports = committed
	b.store.nextID = b.nextID
	return nil
}

func (b *memBatch) Rollback(context.Context) error {
	b.rolledBack = true
	return nil
}
