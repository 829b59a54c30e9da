package cleaning

import (
	"strings"

	"github.com/ougirez/covidtrack/internal/domain"
)

// Early reports carried city and county information in the
// province_state field. Some of those places are now reported reliably
// under admin2; countyMap rewrites the ones that can be mapped.
var countyMap = map[string]domain.RegionNames{
	"Santa Clara, CA":          {CountryRegion: "US", ProvinceState: "California", Admin2: "Santa Clara"},
	"Santa Clara County, CA":   {CountryRegion: "US", ProvinceState: "California", Admin2: "Santa Clara"},
	"Sacramento County, CA":    {CountryRegion: "US", ProvinceState: "California", Admin2: "Sacramento"},
	"San Benito, CA":           {CountryRegion: "US", ProvinceState: "California", Admin2: "San Benito"},
	"San Diego County, CA":     {CountryRegion: "US", ProvinceState: "California", Admin2: "San Diego"},
	"Humboldt County, CA":      {CountryRegion: "US", ProvinceState: "California", Admin2: "Humboldt"},
	"Los Angeles, CA":          {CountryRegion: "US", ProvinceState: "California", Admin2: "Los Angeles"},
	"Orange, CA":               {CountryRegion: "US", ProvinceState: "California", Admin2: "Orange"},
	"Orange County, CA":        {CountryRegion: "US", ProvinceState: "California", Admin2: "Orange"},
	"Snohomish County, WA":     {CountryRegion: "US", ProvinceState: "Washington", Admin2: "Snohomish"},
	"Providence, RI":           {CountryRegion: "US", ProvinceState: "Rhode Island", Admin2: "Providence"},
	"King County, WA":          {CountryRegion: "US", ProvinceState: "Washington", Admin2: "King"},
	"Cook County, IL":          {CountryRegion: "US", ProvinceState: "Illinois", Admin2: "Cook"},
	"Grafton County, NH":       {CountryRegion: "US", ProvinceState: "New Hampshire", Admin2: "Grafton"},
	"Hillsborough, FL":         {CountryRegion: "US", ProvinceState: "Florida", Admin2: "Hillsborough"},
	"Placer County, CA":        {CountryRegion: "US", ProvinceState: "California", Admin2: "Placer"},
	"San Mateo, CA":            {CountryRegion: "US", ProvinceState: "California", Admin2: "San Mateo"},
	"Sarasota, FL":             {CountryRegion: "US", ProvinceState: "Florida", Admin2: "Sarasota"},
	"Sonoma County, CA":        {CountryRegion: "US", ProvinceState: "California", Admin2: "Sonoma"},
	"Umatilla, OR":             {CountryRegion: "US", ProvinceState: "Oregon", Admin2: "Umatilla"},
	"New York City, NY":        {CountryRegion: "US", ProvinceState: "New York", Admin2: "New York City"},
	"Fulton County, GA":        {CountryRegion: "US", ProvinceState: "Georgia", Admin2: "Fulton"},
	"Washington County, OR":    {CountryRegion: "US", ProvinceState: "Oregon", Admin2: "Washington"},
	" Norfolk County, MA":      {CountryRegion: "US", ProvinceState: "Massachusetts", Admin2: "Norfolk"},
	"Norfolk County, MA":       {CountryRegion: "US", ProvinceState: "Massachusetts", Admin2: "Norfolk"},
	"Maricopa County, AZ":      {CountryRegion: "US", ProvinceState: "Arizona", Admin2: "Maricopa"},
	"Wake County, NC":          {CountryRegion: "US", ProvinceState: "North Carolina", Admin2: "Wake"},
	"Westchester County, NY":   {CountryRegion: "US", ProvinceState: "New York", Admin2: "Westchester"},
	"Bergen County, NJ":        {CountryRegion: "US", ProvinceState: "New Jersey", Admin2: "Bergen"},
	"Harris County, TX":        {CountryRegion: "US", ProvinceState: "Texas", Admin2: "Harris"},
	"San Francisco County, CA": {CountryRegion: "US", ProvinceState: "California", Admin2: "San Francisco"},
	"Clark County, NV":         {CountryRegion: "US", ProvinceState: "Nevada", Admin2: "Clark"},
	"Contra Costa County, CA":  {CountryRegion: "US", ProvinceState: "California", Admin2: "Contra Costa"},
	"Fort Bend County, TX":     {CountryRegion: "US", ProvinceState: "Texas", Admin2: "Fort Bend"},
	"Grant County, WA":         {CountryRegion: "US", ProvinceState: "Washington", Admin2: "Grant"},
	"Queens County, NY":        {CountryRegion: "US", ProvinceState: "New York", Admin2: "Queens"},
	"Santa Rosa County, FL":    {CountryRegion: "US", ProvinceState: "Florida", Admin2: "Santa Rosa"},
	"Williamson County, TN":    {CountryRegion: "US", ProvinceState: "Tennessee", Admin2: "Williamson"},
	// This says NYC but it's NY county (FIPS 36061)
	"New York County, NY":    {CountryRegion: "US", ProvinceState: "New York", Admin2: "New York City"},
	"Montgomery County, MD":  {CountryRegion: "US", ProvinceState: "Maryland", Admin2: "Montgomery"},
	"Suffolk County, MA":     {CountryRegion: "US", ProvinceState: "Massachusetts", Admin2: "Suffolk"},
	"Denver County, CO":      {CountryRegion: "US", ProvinceState: "Colorado", Admin2: "Denver"},
	"Summit County, CO":      {CountryRegion: "US", ProvinceState: "Colorado", Admin2: "Summit"},
	"Chatham County, NC":     {CountryRegion: "US", ProvinceState: "North Carolina", Admin2: "Chatham"},
	"Delaware County, PA":    {CountryRegion: "US", ProvinceState: "Pennsylvania", Admin2: "Delaware"},
	"Douglas County, NE":     {CountryRegion: "US", ProvinceState: "Nebraska", Admin2: "Douglas"},
	"Fayette County, KY":     {CountryRegion: "US", ProvinceState: "Kentucky", Admin2: "Fayette"},
	"Floyd County, GA":       {CountryRegion: "US", ProvinceState: "Georgia", Admin2: "Floyd"},
	"Marion County, IN":      {CountryRegion: "US", ProvinceState: "Indiana", Admin2: "Marion"},
	"Middlesex County, MA":   {CountryRegion: "US", ProvinceState: "Massachusetts", Admin2: "Middlesex"},
	"Nassau County, NY":      {CountryRegion: "US", ProvinceState: "New York", Admin2: "Nassau"},
	"Ramsey County, MN":      {CountryRegion: "US", ProvinceState: "Minnesota", Admin2: "Ramsey"},
	"Washoe County, NV":      {CountryRegion: "US", ProvinceState: "Nevada", Admin2: "Washoe"},
	"Wayne County, PA":       {CountryRegion: "US", ProvinceState: "Pennsylvania", Admin2: "Wayne"},
	"Yolo County, CA":        {CountryRegion: "US", ProvinceState: "California", Admin2: "Yolo"},
	"Douglas County, CO":     {CountryRegion: "US", ProvinceState: "Colorado", Admin2: "Douglas"},
	"Providence County, RI":  {CountryRegion: "US", ProvinceState: "Rhode Island", Admin2: "Providence"},
	"Alameda County, CA":     {CountryRegion: "US", ProvinceState: "California", Admin2: "Alameda"},
	"Montgomery County, PA":  {CountryRegion: "US", ProvinceState: "Pennsylvania", Admin2: "Montgomery"},
	"Kershaw County, SC":     {CountryRegion: "US", ProvinceState: "South Carolina", Admin2: "Kershaw"},
	"Pierce County, WA":      {CountryRegion: "US", ProvinceState: "Washington", Admin2: "Pierce"},
	"Rockland County, NY":    {CountryRegion: "US", ProvinceState: "New York", Admin2: "Rockland"},
	"Broward County, FL":     {CountryRegion: "US", ProvinceState: "Florida", Admin2: "Broward"},
	"Cobb County, GA":        {CountryRegion: "US", ProvinceState: "Georgia", Admin2: "Cobb"},
	"Johnson County, IA":     {CountryRegion: "US", ProvinceState: "Iowa", Admin2: "Johnson"},
	"Fairfax County, VA":     {CountryRegion: "US", ProvinceState: "Virginia", Admin2: "Fairfax"},
	"Harrison County, KY":    {CountryRegion: "US", ProvinceState: "Kentucky", Admin2: "Harrison"},
	"Hendricks County, IN":   {CountryRegion: "US", ProvinceState: "Indiana", Admin2: "Hendricks"},
	"Honolulu County, HI":    {CountryRegion: "US", ProvinceState: "Hawaii", Admin2: "Honolulu"},
	"Jackson County, OR ":    {CountryRegion: "US", ProvinceState: "Oregon", Admin2: "Jackson"},
	"Lee County, FL":         {CountryRegion: "US", ProvinceState: "Florida", Admin2: "Lee"},
	"Manatee County, FL":     {CountryRegion: "US", ProvinceState: "Florida", Admin2: "Manatee"},
	"Pinal County, AZ":       {CountryRegion: "US", ProvinceState: "Arizona", Admin2: "Pinal"},
	"Saratoga County, NY":    {CountryRegion: "US", ProvinceState: "New York", Admin2: "Saratoga"},
	"Washington, D.C.":       {CountryRegion: "US", ProvinceState: "District of Columbia", Admin2: "District of Columbia"},
	"Bennington County, VT":  {CountryRegion: "US", ProvinceState: "Vermont", Admin2: "Bennington"},
	"Berkshire County, MA":   {CountryRegion: "US", ProvinceState: "Massachusetts", Admin2: "Berkshire"},
	"Carver County, MN":      {CountryRegion: "US", ProvinceState: "Minnesota", Admin2: "Carver"},
	"Charleston County, SC":  {CountryRegion: "US", ProvinceState: "South Carolina", Admin2: "Charleston"},
	"Charlotte County, FL":   {CountryRegion: "US", ProvinceState: "Florida", Admin2: "Charlotte"},
	"Cherokee County, GA":    {CountryRegion: "US", ProvinceState: "Georgia", Admin2: "Cherokee"},
	"Clark County, WA":       {CountryRegion: "US", ProvinceState: "Washington", Admin2: "Clark"},
	"Collin County, TX":      {CountryRegion: "US", ProvinceState: "Texas", Admin2: "Collin"},
	"Davidson County, TN":    {CountryRegion: "US", ProvinceState: "Tennessee", Admin2: "Davidson"},
	"Davis County, UT":       {CountryRegion: "US", ProvinceState: "Utah", Admin2: "Davis"},
	"Douglas County, OR":     {CountryRegion: "US", ProvinceState: "Oregon", Admin2: "Douglas"},
	"El Paso County, CO":     {CountryRegion: "US", ProvinceState: "Colorado", Admin2: "El Paso"},
	"Fairfield County, CT":   {CountryRegion: "US", ProvinceState: "Connecticut", Admin2: "Fairfield"},
	"Fresno County, CA":      {CountryRegion: "US", ProvinceState: "California", Admin2: "Fresno"},
	"Harford County, MD":     {CountryRegion: "US", ProvinceState: "Maryland", Admin2: "Harford"},
	"Hudson County, NJ":      {CountryRegion: "US", ProvinceState: "New Jersey", Admin2: "Hudson"},
	"Jefferson County, KY":   {CountryRegion: "US", ProvinceState: "Kentucky", Admin2: "Jefferson"},
	"Jefferson County, WA":   {CountryRegion: "US", ProvinceState: "Washington", Admin2: "Jefferson"},
	"Jefferson Parish, LA":   {CountryRegion: "US", ProvinceState: "Louisiana", Admin2: "Jefferson"},
	"Johnson County, KS":     {CountryRegion: "US", ProvinceState: "Kansas", Admin2: "Johnson"},
	"Kittitas County, WA":    {CountryRegion: "US", ProvinceState: "Washington", Admin2: "Kittitas"},
	"Klamath County, OR":     {CountryRegion: "US", ProvinceState: "Oregon", Admin2: "Klamath"},
	"Madera County, CA":      {CountryRegion: "US", ProvinceState: "California", Admin2: "Madera"},
	"Marion County, OR":      {CountryRegion: "US", ProvinceState: "Oregon", Admin2: "Marion"},
	"Okaloosa County, FL":    {CountryRegion: "US", ProvinceState: "Florida", Admin2: "Okaloosa"},
	"Plymouth County, MA":    {CountryRegion: "US", ProvinceState: "Massachusetts", Admin2: "Plymouth"},
	"Polk County, GA":        {CountryRegion: "US", ProvinceState: "Georgia", Admin2: "Polk"},
	"Riverside County, CA":   {CountryRegion: "US", ProvinceState: "California", Admin2: "Riverside"},
	"Rockingham County, NH":  {CountryRegion: "US", ProvinceState: "New Hampshire", Admin2: "Rockingham"},
	"Shasta County, CA":      {CountryRegion: "US", ProvinceState: "California", Admin2: "Shasta"},
	"Shelby County, TN":      {CountryRegion: "US", ProvinceState: "Tennessee", Admin2: "Shelby"},
	"Spartanburg County, SC": {CountryRegion: "US", ProvinceState: "South Carolina", Admin2: "Spartanburg"},
	"Spokane County, WA":     {CountryRegion: "US", ProvinceState: "Washington", Admin2: "Spokane"},
	"St. Louis County, MO":   {CountryRegion: "US", ProvinceState: "Missouri", Admin2: "St. Louis"},
	"Suffolk County, NY":     {CountryRegion: "US", ProvinceState: "New York", Admin2: "Suffolk"},
	"Tulsa County, OK":       {CountryRegion: "US", ProvinceState: "Oklahoma", Admin2: "Tulsa"},
	"Ulster County, NY":      {CountryRegion: "US", ProvinceState: "New York", Admin2: "Ulster"},
	"Volusia County, FL":     {CountryRegion: "US", ProvinceState: "Florida", Admin2: "Volusia"},
	"Montgomery County, TX":  {CountryRegion: "US", ProvinceState: "Texas", Admin2: "Montgomery"},
	"Santa Cruz County, CA":  {CountryRegion: "US", ProvinceState: "California", Admin2: "Santa Cruz"},
}

// ignoredCities are city-level rows that are no longer reported
// individually and cannot be matched.
var ignoredCities = map[string]struct{}{
	"Toronto, ON":             {},
	"Seattle, WA":             {},
	"Chicago, IL":             {},
	" Montreal, QC":           {},
	"London, ON":              {},
	"Boston, MA":              {},
	"Madison, WI":             {},
	"Portland, OR":            {},
	"San Antonio, TX":         {},
	"Tempe, AZ":               {},
	"Berkeley, CA":            {},
	"Unassigned Location, WA": {},
	"Unknown Location, MA":    {},
	"Unassigned Location, VT": {},
	"Calgary, Alberta":        {},
	"Edmonton, Alberta":       {},
	"Wuhan Evacuee":           {},
	"Norwell County, MA":      {},
}

type admin2Province struct {
	admin2   string
	province string
}

// ignoredCitiesAdmin2 are admin2 values that are really city names
// ambiguous with a county elsewhere.
var ignoredCitiesAdmin2 = map[admin2Province]struct{}{
	{"Brockton", "Massachusetts"}: {}, // a city in Plymouth County
	{"Nashua", "New Hampshire"}:   {}, // a city in Hillsborough County
	{"Soldotna", "Alaska"}:        {}, // a city in Kenai Peninsula
	{"Sterling", "Alaska"}:        {}, // a city in Kenai Peninsula
}

var ignoredAdmin2 = map[string]struct{}{
	"unassigned":   {},
	"Out-of-state": {},
	"Unknown":      {},
}

var admin2Map = map[string]string{
	"Do√±a Ana": "Dona Ana",
	"Desoto":    "DeSoto",
	"LeSeur":    "Le Sueur",
}

// CleanAdmin2 normalizes the admin2 field: known misspellings,
// trailing " County", and unassignable values.
func CleanAdmin2(names domain.RegionNames) (domain.RegionNames, bool) {
	if names.Admin2 == "" {
		return names, true
	}

	admin2 := names.Admin2
	if canonical, ok := admin2Map[admin2]; ok {
		admin2 = canonical
	}

	if _, ignored := ignoredAdmin2[admin2]; ignored {
		return domain.RegionNames{}, false
	}

	if _, ignored := ignoredCitiesAdmin2[admin2Province{admin2, names.ProvinceState}]; ignored {
		return domain.RegionNames{}, false
	}

	admin2 = strings.TrimSuffix(admin2, " County")

	return domain.RegionNames{
		CountryRegion: names.CountryRegion,
		ProvinceState: names.ProvinceState,
		Admin2:        admin2,
	}, true
}

// MapCountyToAdmin2 rewrites legacy "City, ST"/"County, ST" province
// values into full country/province/admin2 triples. ok=false means the
// location is deliberately ignored.
func MapCountyToAdmin2(names domain.RegionNames) (domain.RegionNames, bool) {
	if _, ignored := ignoredCities[names.ProvinceState]; ignored {
		return domain.RegionNames{}, false
	}

	if mapped, ok := countyMap[names.ProvinceState]; ok {
		names = mapped
	}

	return CleanAdmin2(names)
}
