package cleaning

import "github.com/ougirez/covidtrack/internal/domain"

var unitedFederationOfCruiseShips = map[string]struct{}{
	"Cruise Ship": {},
	"Others":      {},
}

var diamondPrincess = map[string]struct{}{
	"Diamond Princess":             {},
	"Diamond Princess cruise ship": {},
}

var diamondPrincessToCountry = map[string]struct{}{
	"Unassigned Location (From Diamond Princess)": {},
	"From Diamond Princess":                       {}, // used for Australia, but this isn't included in the lookup table
}

var grandPrincessToCountry = map[string]struct{}{
	"Grand Princess Cruise Ship": {},
}

var diamondPrincessToCity = map[string]struct{}{
	"Lackland, TX (From Diamond Princess)": {},
	"Omaha, NE (From Diamond Princess)":    {},
	"Travis, CA (From Diamond Princess)":   {},
}

// MapBoatPassengers reclassifies cruise-ship-related rows. Passengers
// reported under US/Canada are rehomed to a synthetic province named
// after the ship; the ships themselves are promoted to countries.
// ok=false means the location is deliberately ignored.
func MapBoatPassengers(names domain.RegionNames) (domain.RegionNames, bool) {
	usOrCanada := names.CountryRegion == "US" || names.CountryRegion == "Canada"

	if _, ok := diamondPrincessToCountry[names.ProvinceState]; ok && usOrCanada {
		return domain.RegionNames{
			CountryRegion: names.CountryRegion,
			ProvinceState: "Diamond Princess",
		}, true
	}

	if _, ok := grandPrincessToCountry[names.ProvinceState]; ok && usOrCanada {
		return domain.RegionNames{
			CountryRegion: names.CountryRegion,
			ProvinceState: "Grand Princess",
		}, true
	}

	_, shipProvince := diamondPrincess[names.ProvinceState]
	_, shipCountry := unitedFederationOfCruiseShips[names.CountryRegion]
	if shipProvince && shipCountry {
		// The Diamond Princess got promoted from a province into a country
		return domain.RegionNames{CountryRegion: "Diamond Princess"}, true
	}

	if _, ok := diamondPrincessToCountry[names.ProvinceState]; ok {
		return domain.RegionNames{}, false
	}
	if _, ok := diamondPrincessToCity[names.ProvinceState]; ok {
		return domain.RegionNames{}, false
	}

	return names, true
}
