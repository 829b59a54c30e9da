// Command import runs report imports and region seeding from the
// command line, without the admin API.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ougirez/covidtrack/internal/pkg/catalog"
	"github.com/ougirez/covidtrack/internal/pkg/config"
	"github.com/ougirez/covidtrack/internal/pkg/constants"
	"github.com/ougirez/covidtrack/internal/pkg/fetcher"
	"github.com/ougirez/covidtrack/internal/pkg/logger"
	"github.com/ougirez/covidtrack/internal/pkg/store"
	"github.com/ougirez/covidtrack/internal/pkg/store/xpgx"
	"github.com/ougirez/covidtrack/internal/service/backfill"
	"github.com/ougirez/covidtrack/internal/service/importer"
)

var (
	flagAll         = flag.Bool("all", false, "import every published report from the first one up to today")
	flagLatest      = flag.Bool("latest", false, "import only the most recent published report")
	flagFrom        = flag.String("from", "", "first report date to import, YYYY-MM-DD")
	flagTo          = flag.String("to", "", "last report date to import, YYYY-MM-DD (defaults to today)")
	flagSeedRegions = flag.Bool("seed-regions", false, "seed the region directory from the lookup table")
)

func main() {
	flag.Parse()

	ctx := context.Background()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger.Init(zapLogger)

	config.Init(ctx)

	pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperDSNKey))
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer pool.Close()

	s := store.NewStore(pool)

	httpFetcher := fetcher.NewHTTPFetcher(
		viper.GetString(constants.ViperLookupURLKey),
		viper.GetString(constants.ViperReportBaseURLKey),
		viper.GetString(constants.ViperListingURLKey),
	)

	cat, err := catalog.Load(ctx, httpFetcher)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	logger.Infof(ctx, "loaded %d catalog regions", cat.Len())

	importerService := importer.NewService(s, catalog.NewMatcher(cat))
	backfillService := backfill.NewService(importerService, httpFetcher, cat, s)

	if *flagSeedRegions {
		if _, err := backfillService.SeedRegions(ctx); err != nil {
			logger.Fatal(ctx, err)
		}
	}

	switch {
	case *flagAll:
		err = backfillService.RunAll(ctx)
	case *flagLatest:
		err = backfillService.RunLatest(ctx)
	case *flagFrom != "":
		var from, to time.Time
		from, err = time.Parse(time.DateOnly, *flagFrom)
		if err != nil {
			logger.Fatal(ctx, "invalid -from date: ", err)
		}
		to = time.Now().UTC()
		if *flagTo != "" {
			to, err = time.Parse(time.DateOnly, *flagTo)
			if err != nil {
				logger.Fatal(ctx, "invalid -to date: ", err)
			}
		}
		err = backfillService.Run(ctx, from, to)
	default:
		if !*flagSeedRegions {
			logger.Fatal(ctx, "nothing to do: pass -all, -latest, -from or -seed-regions")
		}
	}
	if err != nil {
		logger.Fatal(ctx, err)
	}
}
