package horoscope

import "strings"

// staticCity is a hand maintained entry with a known fixed offset.
type staticCity struct {
	lat       float64
	lon       float64
	tzID      string
	utcOffset float64
	name      string
}

// staticCities guarantees deterministic, network free answers for the places
// users actually type. Keys are normalized: lowercase, first comma segment.
var staticCities = map[string]staticCity{
	"mumbai":      {19.076, 72.8777, "Asia/Kolkata", 5.5, "Mumbai, India"},
	"bombay":      {19.076, 72.8777, "Asia/Kolkata", 5.5, "Mumbai, India"},
	"delhi":       {28.7041, 77.1025, "Asia/Kolkata", 5.5, "Delhi, India"},
	"new delhi":   {28.6139, 77.209, "Asia/Kolkata", 5.5, "New Delhi, India"},
	"kolkata":     {22.5726, 88.3639, "Asia/Kolkata", 5.5, "Kolkata, India"},
	"calcutta":    {22.5726, 88.3639, "Asia/Kolkata", 5.5, "Kolkata, India"},
	"chennai":     {13.0827, 80.2707, "Asia/Kolkata", 5.5, "Chennai, India"},
	"bengaluru":   {12.9716, 77.5946, "Asia/Kolkata", 5.5, "Bengaluru, India"},
	"bangalore":   {12.9716, 77.5946, "Asia/Kolkata", 5.5, "Bengaluru, India"},
	"hyderabad":   {17.385, 78.4867, "Asia/Kolkata", 5.5, "Hyderabad, India"},
	"pune":        {18.5204, 73.8567, "Asia/Kolkata", 5.5, "Pune, India"},
	"ahmedabad":   {23.0225, 72.5714, "Asia/Kolkata", 5.5, "Ahmedabad, India"},
	"jaipur":      {26.9124, 75.7873, "Asia/Kolkata", 5.5, "Jaipur, India"},
	"lucknow":     {26.8467, 80.9462, "Asia/Kolkata", 5.5, "Lucknow, India"},
	"london":      {51.5074, -0.1278, "Europe/London", 0, "London, United Kingdom"},
	"paris":       {48.8566, 2.3522, "Europe/Paris", 1, "Paris, France"},
	"new york":    {40.7128, -74.006, "America/New_York", -5, "New York, United States"},
	"los angeles": {34.0522, -118.2437, "America/Los_Angeles", -8, "Los Angeles, United States"},
	"chicago":     {41.8781, -87.6298, "America/Chicago", -6, "Chicago, United States"},
	"toronto":     {43.6532, -79.3832, "America/Toronto", -5, "Toronto, Canada"},
	"singapore":   {1.3521, 103.8198, "Asia/Singapore", 8, "Singapore"},
	"dubai":       {25.2048, 55.2708, "Asia/Dubai", 4, "Dubai, United Arab Emirates"},
	"tokyo":       {35.6762, 139.6503, "Asia/Tokyo", 9, "Tokyo, Japan"},
	"sydney":      {-33.8688, 151.2093, "Australia/Sydney", 10, "Sydney, Australia"},
	"kathmandu":   {27.7172, 85.324, "Asia/Kathmandu", 5.75, "Kathmandu, Nepal"},
	"colombo":     {6.9271, 79.8612, "Asia/Colombo", 5.5, "Colombo, Sri Lanka"},
	"dhaka":       {23.8103, 90.4125, "Asia/Dhaka", 6, "Dhaka, Bangladesh"},
	"karachi":     {24.8607, 67.0011, "Asia/Karachi", 5, "Karachi, Pakistan"},
}

// normalizePlace trims qualifiers so "Mumbai, Maharashtra, India" still hits
// the table entry for "mumbai".
func normalizePlace(place string) string {
	normalized := strings.ToLower(strings.TrimSpace(place))
	if idx := strings.Index(normalized, ","); idx >= 0 {
		normalized = normalized[:idx]
	}
	return strings.TrimSpace(normalized)
}

func lookupStaticCity(place string) (staticCity, bool) {
	city, ok := staticCities[normalizePlace(place)]
	return city, ok
}

// singleZone maps ISO country codes of single timezone countries to a fixed
// identifier and offset, saving a second network round trip after geocoding.
type singleZone struct {
	tzID      string
	utcOffset float64
}

var singleZoneCountries = map[string]singleZone{
	"in": {"Asia/Kolkata", 5.5},
	"np": {"Asia/Kathmandu", 5.75},
	"lk": {"Asia/Colombo", 5.5},
	"bd": {"Asia/Dhaka", 6},
	"pk": {"Asia/Karachi", 5},
	"sg": {"Asia/Singapore", 8},
	"my": {"Asia/Kuala_Lumpur", 8},
	"hk": {"Asia/Hong_Kong", 8},
	"ph": {"Asia/Manila", 8},
	"th": {"Asia/Bangkok", 7},
	"jp": {"Asia/Tokyo", 9},
	"kr": {"Asia/Seoul", 9},
	"ae": {"Asia/Dubai", 4},
	"sa": {"Asia/Riyadh", 3},
	"tr": {"Europe/Istanbul", 3},
	"ke": {"Africa/Nairobi", 3},
	"eg": {"Africa/Cairo", 2},
	"za": {"Africa/Johannesburg", 2},
	"ng": {"Africa/Lagos", 1},
}

func lookupSingleZone(countryCode string) (singleZone, bool) {
	zone, ok := singleZoneCountries[strings.ToLower(strings.TrimSpace(countryCode))]
	return zone, ok
}
