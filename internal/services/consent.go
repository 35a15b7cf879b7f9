package services

// Jurisdictions whose visitors must be offered a cookie consent banner.
// EU/EEA plus the UK, five US states with consumer privacy statutes, and
// Quebec. Decided from GeoIP ISO codes; unknown geography shows no banner.

var consentCountries = map[string]bool{
	// EU
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true, "CZ": true,
	"DK": true, "EE": true, "FI": true, "FR": true, "DE": true, "GR": true,
	"HU": true, "IE": true, "IT": true, "LV": true, "LT": true, "LU": true,
	"MT": true, "NL": true, "PL": true, "PT": true, "RO": true, "SK": true,
	"SI": true, "ES": true, "SE": true,
	// EEA
	"IS": true, "LI": true, "NO": true,
	// UK
	"GB": true,
}

var consentUSStates = map[string]bool{
	"CA": true, // CCPA/CPRA
	"VA": true, // VCDPA
	"CO": true, // CPA
	"CT": true, // CTDPA
	"UT": true, // UCPA
}

var consentCAProvinces = map[string]bool{
	"QC": true, // Law 25
}

// RequiresConsentBanner decides from ISO country and region codes whether
// the cookie banner header should be signaled.
func RequiresConsentBanner(countryISO, regionISO string) bool {
	if consentCountries[countryISO] {
		return true
	}
	switch countryISO {
	case "US":
		return consentUSStates[regionISO]
	case "CA":
		return consentCAProvinces[regionISO]
	}
	return false
}
