// Package cleaning rewrites inconsistently reported location names into
// the canonical form used by the lookup table
// (https://github.com/CSSEGISandData/COVID-19/blob/master/csse_covid_19_data/UID_ISO_FIPS_LookUp_Table.csv).
//
// The rules are ordered, fixed tables. New historical quirks are added
// as data, not as control flow.
package cleaning

import (
	"strings"

	"github.com/ougirez/covidtrack/internal/domain"
)

// countryMap maps country names to the canonical spelling.
var countryMap = map[string]string{
	"Mainland China":             "China",
	"South Korea":                "Korea, South",
	"Taiwan":                     "Taiwan*", // the lookup table really spells it this way
	"UK":                         "United Kingdom",
	"Czech Republic":             "Czechia",
	"Bahamas, The":               "Bahamas",
	"The Bahamas":                "Bahamas",
	"Gambia, The":                "Gambia",
	"The Gambia":                 "Gambia",
	"Republic of the Congo":      "Congo (Kinshasa)",
	"Viet Nam":                   "Vietnam",
	"Russian Federation":         "Russia",
	"Republic of Moldova":        "Moldova",
	"Cape Verde":                 "Cabo Verde",
	"East Timor":                 "Timor-Leste",
	"Iran (Islamic Republic of)": "Iran",
	"Republic of Korea":          "Korea, South",
	"Republic of Ireland":        "Ireland",
}

// notACountry maps sub-national territories that were reported as
// countries to the sovereign state the lookup table files them under.
var notACountry = map[string]string{
	"Guadaloupe":       "France",
	"Guadeloupe":       "France",
	"Martinique":       "France",
	"Reunion":          "France",
	"French Guiana":    "France",
	"Saint Barthelemy": "France",
	"St Martin":        "France",
	"St. Martin":       "France",
	"Saint Martin":     "France",
	"Mayotte":          "France",
	"Aruba":            "Netherlands",
	"Curacao":          "Netherlands",
	"Greenland":        "Denmark",
	"Faroe Islands":    "Denmark",
	"Hong Kong":        "China",
	"Macau":            "China",
	"Macao":            "China",
	"Guam":             "US",
	"Puerto Rico":      "US",
	"Gibraltar":        "United Kingdom",
	"Cayman Islands":   "United Kingdom",
	"Channel Islands":  "United Kingdom",
}

// ignoredTerritories are reported locations with no lookup-table entry
// at all. Rows naming them are dropped deliberately, not warned about.
var ignoredTerritories = map[string]struct{}{
	"Guernsey":                       {}, // the lookup table does not distinguish between the channel islands
	"Jersey":                         {},
	"Palestine":                      {}, // no longer recognised in the lookup table
	"occupied Palestinian territory": {},
	"Vatican City":                   {},
	"External territories":           {}, // not present in lookup table
	"Jervis Bay Territory":           {}, // not present in lookup table
}

// provinceDuplicatesCountry lists provinces that duplicate their own
// country-level entry.
var provinceDuplicatesCountry = map[string]struct{}{
	"Taiwan":         {},
	"France":         {},
	"United Kingdom": {},
	"Netherlands":    {},
	"Denmark":        {},
	"US":             {},
	"UK":             {},
}

var provinceMap = map[string]string{
	"Fench Guiana":                      "French Guiana",
	"United States Virgin Islands":      "Virgin Islands",
	"Virgin Islands, U.S.":              "Virgin Islands",
	"Saint Martin":                      "St Martin",
	"St. Martin":                        "St Martin",
	"Macao":                             "Macau",
	"Falkland Islands (Islas Malvinas)": "Falkland Islands (Malvinas)",
	"Guadaloupe":                        "Guadeloupe",
}

// RemoveSAR strips the " SAR" marker, e.g. "Hong Kong SAR" -> "Hong Kong".
func RemoveSAR(names domain.RegionNames) domain.RegionNames {
	return domain.RegionNames{
		CountryRegion: strings.ReplaceAll(names.CountryRegion, " SAR", ""),
		ProvinceState: strings.ReplaceAll(names.ProvinceState, " SAR", ""),
		Admin2:        names.Admin2,
	}
}

// FixFakeCountries handles provinces/states incorrectly reported as countries.
func FixFakeCountries(names domain.RegionNames) domain.RegionNames {
	if country, ok := notACountry[names.CountryRegion]; ok {
		return domain.RegionNames{
			CountryRegion: country,
			ProvinceState: names.CountryRegion,
			Admin2:        names.Admin2,
		}
	}

	return names
}

// FixFakeProvinces handles countries incorrectly reported as provinces
// (according to the lookup table).
func FixFakeProvinces(names domain.RegionNames) domain.RegionNames {
	if _, ok := provinceDuplicatesCountry[names.ProvinceState]; ok {
		country := names.CountryRegion
		if names.ProvinceState == "Taiwan" {
			country = "Taiwan"
		}
		return domain.RegionNames{CountryRegion: country}
	}

	return names
}

// CorrectTypos maps countries and provinces to canonical names.
func CorrectTypos(names domain.RegionNames) domain.RegionNames {
	country := names.CountryRegion
	if canonical, ok := countryMap[country]; ok {
		country = canonical
	}

	province := names.ProvinceState
	if canonical, ok := provinceMap[province]; ok {
		province = canonical
	}

	return domain.RegionNames{
		CountryRegion: country,
		ProvinceState: province,
		Admin2:        names.Admin2,
	}
}

// MapCountries runs the country-level rewrite stages. ok=false means
// the location is deliberately ignored.
func MapCountries(names domain.RegionNames) (domain.RegionNames, bool) {
	if _, ignored := ignoredTerritories[names.CountryRegion]; ignored {
		return domain.RegionNames{}, false
	}

	names = RemoveSAR(names)
	names = FixFakeCountries(names)
	names = FixFakeProvinces(names)
	names = CorrectTypos(names)

	return names, true
}
