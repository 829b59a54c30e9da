package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ougirez/covidtrack/internal/api/controller"
	"github.com/ougirez/covidtrack/internal/pkg/logger"
	"github.com/ougirez/covidtrack/internal/pkg/store"
	"github.com/ougirez/covidtrack/internal/service/backfill"
)

type APIService struct {
	router *echo.Echo
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(store store.Store, backfillService *backfill.Service) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.Use(middleware.Logger())
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Logger.SetLevel(log.INFO)

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(backfillService, store)

	imports := api.Group("/import", svc.AdminMiddleware)
	imports.POST("/daily", cntrl.ImportDaily)
	imports.POST("/backfill", cntrl.Backfill)

	regions := api.Group("/regions")
	regions.POST("/seed", cntrl.SeedRegions, svc.AdminMiddleware)
	regions.GET("/list", cntrl.GetRegions)

	return svc, nil
}
