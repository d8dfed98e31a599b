package domain

// locations is the fixed resort reference list for the northern Rockies feed.
// Order here is the presentation baseline; the conditions table re-sorts by
// freshness and snowfall but always contains exactly these rows.
var locations = []ResortLocation{
	{DisplayName: "Snowbowl", Lat: 47.032417, Lon: -113.9915282},
	{DisplayName: "Discovery", Lat: 46.262206, Lon: -113.246187},
	{DisplayName: "Lookout Pass", Lat: 47.4531005, Lon: -115.706537},
	{DisplayName: "Big Mountain", Lat: 48.502127, Lon: -114.341252},
	{DisplayName: "Lost Trail", Lat: 45.695247, Lon: -113.965263},
	{DisplayName: "Teton Pass", Lat: 47.929804, Lon: -112.816723},
	{DisplayName: "Showdown", Lat: 46.837747, Lon: -110.715599},
	{DisplayName: "Blacktail", Lat: 48.011676, Lon: -114.365251},
	{DisplayName: "Bridger Bowl", Lat: 45.813919, Lon: -110.921873},
	{DisplayName: "Big Sky", Lat: 45.280943, Lon: -111.440644},
	{DisplayName: "Red Lodge Mountain", Lat: 45.181125, Lon: -109.354325},
	{DisplayName: "Maverick", Lat: 45.438286, Lon: -113.142233},
	{DisplayName: "Great Divide", Lat: 46.748900, Lon: -112.328513},
	{DisplayName: "Bear Paw", Lat: 48.162084, Lon: -109.679937},
	{DisplayName: "Silver Mountain", Lat: 47.499070, Lon: -116.119163},
	{DisplayName: "Turner Mountain", Lat: 48.609788, Lon: -115.648756},
	{DisplayName: "Schweitzer", Lat: 48.377785, Lon: -116.633436},
}

// displayNames maps collector document keys to location-table display names.
// RedLodge appears twice because the collector renamed the key mid-season
// and both spellings exist in historical documents.
var displayNames = map[string]string{
	"Snowbowl":         "Snowbowl",
	"Discovery":        "Discovery",
	"LookoutPass":      "Lookout Pass",
	"BigMountain":      "Big Mountain",
	"LostTrail":        "Lost Trail",
	"TetonPass":        "Teton Pass",
	"Showdown":         "Showdown",
	"Blacktail":        "Blacktail",
	"BridgerBowl":      "Bridger Bowl",
	"BigSky":           "Big Sky",
	"RedLodge":         "Red Lodge Mountain",
	"RedLodgeMountain": "Red Lodge Mountain",
	"Maverick":         "Maverick",
	"GreatDivide":      "Great Divide",
	"BearPaw":          "Bear Paw",
	"SilverMountain":   "Silver Mountain",
	"TurnerMountain":   "Turner Mountain",
	"Schweitzer":       "Schweitzer",
}

// Locations returns a copy of the fixed resort reference list.
func Locations() []ResortLocation {
	out := make([]ResortLocation, len(locations))
	copy(out, locations)
	return out
}

// ResolveDisplayName maps a collector document key to its display name.
// Unknown keys pass through unchanged.
func ResolveDisplayName(resortID string) string {
	if name, ok := displayNames[resortID]; ok {
		return name
	}
	return resortID
}
