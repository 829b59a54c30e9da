package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type seedRegionsResponse struct {
	Seeded int `json:"seeded"`
}

func (c *Controller) SeedRegions(ctx echo.Context) error {
	seeded, err := c.backfill.SeedRegions(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, seedRegionsResponse{Seeded: seeded})
}

func (c *Controller) GetRegions(ctx echo.Context) error {
	regions, err := c.store.ListRegions(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, regions)
}
