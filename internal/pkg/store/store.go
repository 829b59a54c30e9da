package store

import (
	"context"
	"time"

	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

// ReportKey identifies a stored daily report for lookup and invariant
// enforcement. The match rule is evaluated in priority order: FIPS
// first, then the name tuple (province+admin2, province alone, country
// alone), always together with LastUpdate.
type ReportKey struct {
	FIPS          *string
	CountryRegion string
	ProvinceState *string
	Admin2        *string
	LastUpdate    time.Time
}

// Store is the persistence boundary consumed by the importer and the
// region directory seeder.
type Store interface {
	Begin(ctx context.Context) (Batch, error)

	SeedRegion(ctx context.Context, region *domain.Region) (bool, error)
	RegionExists(ctx context.Context, uid int) (bool, error)
	ListRegions(ctx context.Context) ([]*domain.Region, error)
}

// Batch is a staging transaction for one import run. Reads see both
// previously committed rows and rows staged in this batch, which the
// consistency checks depend on.
type Batch interface {
	GetDailyReport(ctx context.Context, key ReportKey) (*domain.DailyReport, error)
	InsertDailyReport(ctx context.Context, dr *domain.DailyReport) error
	UpdateDailyReportCounts(ctx context.Context, dr *domain.DailyReport) error
	DeleteDailyReport(ctx context.Context, id int64) error

	FirstDuplicateFIPS(ctx context.Context) (*string, error)
	FirstDuplicateRegionID(ctx context.Context) (*int, error)
	FirstDuplicateNames(ctx context.Context) (*string, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type store struct {
	pool *Pool
}

func NewStore(pool *Pool) Store {
	return &store{pool: pool}
}
