package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/covidtrack/internal/pkg/constants"
	"github.com/ougirez/covidtrack/internal/pkg/fetcher"
	"github.com/ougirez/covidtrack/internal/service/backfill"
)

type importDailyRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type importDailyResponse struct {
	RunID string   `json:"run_id"`
	Info  []string `json:"info"`
}

func (c *Controller) ImportDaily(ctx echo.Context) error {
	var req importDailyRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	day, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return constants.ErrBadRequest
	}

	result, err := c.backfill.ImportDay(ctx.Request().Context(), day)
	if errors.Is(err, fetcher.ErrReportNotFound) {
		return constants.NewCodedError(http.StatusNotFound, "report for "+req.Date+" is not published")
	}
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, importDailyResponse{
		RunID: result.RunID.String(),
		Info:  result.Info(),
	})
}

type backfillRequest struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

type backfillResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (c *Controller) Backfill(ctx echo.Context) error {
	var req backfillRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	from := backfill.FirstReportDate
	to := time.Now().UTC()
	if req.From != "" {
		from, _ = time.Parse(time.DateOnly, req.From)
	}
	if req.To != "" {
		to, _ = time.Parse(time.DateOnly, req.To)
	}

	if err := c.backfill.Run(ctx.Request().Context(), from, to); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, backfillResponse{
		From: from.Format(time.DateOnly),
		To:   to.Format(time.DateOnly),
	})
}
