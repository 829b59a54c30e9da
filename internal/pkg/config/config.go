// Package config initializes viper with the defaults both binaries
// share.
package config

import (
	"context"

	"github.com/spf13/viper"

	"github.com/ougirez/covidtrack/internal/pkg/constants"
	"github.com/ougirez/covidtrack/internal/pkg/logger"
)

// Init reads config.yaml from the working directory. A missing file is
// fine: defaults and environment variables cover every key.
func Init(ctx context.Context) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault(constants.ViperListenAddrKey, ":8080")
	viper.SetDefault(constants.ViperLookupURLKey,
		"https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/UID_ISO_FIPS_LookUp_Table.csv")
	viper.SetDefault(constants.ViperReportBaseURLKey,
		"https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_daily_reports/")
	viper.SetDefault(constants.ViperListingURLKey,
		"https://github.com/CSSEGISandData/COVID-19/tree/master/csse_covid_19_data/csse_covid_19_daily_reports")

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnf(ctx, "no config file found, using defaults and env: %s", err.Error())
	}
}
