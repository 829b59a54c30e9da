package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ougirez/covidtrack/internal/pkg/constants"
)

const (
	tableDailyReports = "daily_reports"
	tableRegions      = "regions"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder returns a squirrel SQL builder object.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// nullable unwraps an optional string so squirrel renders IS NULL for
// the absent case instead of comparing against a nil argument.
func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
