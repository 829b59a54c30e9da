package cleaning

import "github.com/ougirez/covidtrack/internal/domain"

// CanonicalLocation runs the full rewrite pipeline in its fixed order.
// ok=false means the location should be ignored outright, as opposed to
// reported as unmatched.
func CanonicalLocation(names domain.RegionNames) (domain.RegionNames, bool) {
	names, ok := MapCountries(names)
	if !ok {
		return domain.RegionNames{}, false
	}

	names, ok = MapCountyToAdmin2(names)
	if !ok {
		return domain.RegionNames{}, false
	}

	return MapBoatPassengers(names)
}
