package pricerise

// optOutRegions lists the territories where the platform lets a price rise
// go out with an opt-out notification instead of requiring subscribers to
// actively re-consent. Hand-curated against the publisher documentation;
// regions outside this set are never rewritten.
var optOutRegions = map[string]struct{}{
	"AT": {}, "AU": {}, "BE": {}, "BG": {}, "CA": {}, "CH": {}, "CY": {},
	"CZ": {}, "DE": {}, "DK": {}, "EE": {}, "ES": {}, "FI": {}, "FR": {},
	"GB": {}, "GR": {}, "HR": {}, "HU": {}, "IE": {}, "IS": {}, "IT": {},
	"JP": {}, "LI": {}, "LT": {}, "LU": {}, "LV": {}, "MT": {}, "NL": {},
	"NO": {}, "NZ": {}, "PL": {}, "PT": {}, "RO": {}, "SE": {}, "SG": {},
	"SI": {}, "SK": {}, "TR": {}, "TW": {}, "US": {}, "ZA": {},
}

// AllowsOptOut reports whether regionCode may receive an opt-out style
// price increase.
func AllowsOptOut(regionCode string) bool {
	_, ok := optOutRegions[regionCode]
	return ok
}
