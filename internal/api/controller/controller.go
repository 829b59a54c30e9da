package controller

import (
	"github.com/ougirez/covidtrack/internal/pkg/store"
	"github.com/ougirez/covidtrack/internal/service/backfill"
)

type Controller struct {
	backfill *backfill.Service
	store    store.Store
}

func NewController(backfillService *backfill.Service, s store.Store) *Controller {
	return &Controller{backfill: backfillService, store: s}
}
