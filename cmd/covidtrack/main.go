package main

import (
	"context"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ougirez/covidtrack/internal/api"
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

func main() {
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

	apiService, err := api.NewAPIService(s, backfillService)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	apiService.Serve(viper.GetString(constants.ViperListenAddrKey))
}
