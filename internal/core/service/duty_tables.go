package service

import "sort"

// Reference tables for the duty model tier. Rates are percentages.

const (
	defaultCategory     = "General Merchandise"
	defaultCategoryRate = 5.0
	preferentialFactor  = 0.2
)

var categoryBaseRates = map[string]float64{
	"electronics":         5.0,
	"computers":           2.5,
	"clothing":            12.0,
	"apparel":             12.0,
	"textiles":            10.0,
	"footwear":            15.0,
	"food":                8.0,
	"beverages":           9.0,
	"agriculture":         10.0,
	"machinery":           3.5,
	"automotive":          7.5,
	"auto parts":          6.0,
	"chemicals":           6.0,
	"pharmaceuticals":     2.0,
	"medical":             2.5,
	"furniture":           6.5,
	"toys":                4.5,
	"cosmetics":           6.5,
	"jewelry":             8.5,
	"books":               0.0,
	"steel":               7.0,
	"metals":              6.0,
	"plastics":            6.0,
	"sports":              6.0,
	"home appliances":     5.5,
	"general merchandise": defaultCategoryRate,
}

// countryDutyAdjustments scales the category base rate for the importing
// country. Countries not listed use 1.0.
var countryDutyAdjustments = map[string]float64{
	"US": 1.0,
	"CA": 0.9,
	"MX": 1.1,
	"BR": 2.0,
	"AR": 1.9,
	"CL": 0.8,
	"CN": 1.3,
	"IN": 1.8,
	"JP": 0.8,
	"KR": 1.1,
	"VN": 1.2,
	"TH": 1.3,
	"ID": 1.2,
	"MY": 1.0,
	"PH": 1.1,
	"SG": 0.1,
	"HK": 0.1,
	"TW": 0.9,
	"AU": 0.85,
	"NZ": 0.7,
	"GB": 0.95,
	"DE": 0.9,
	"FR": 0.9,
	"IT": 0.9,
	"ES": 0.9,
	"NL": 0.9,
	"BE": 0.9,
	"PL": 0.9,
	"SE": 0.9,
	"CH": 0.6,
	"NO": 0.7,
	"TR": 1.4,
	"RU": 1.5,
	"AE": 0.9,
	"SA": 1.0,
	"IL": 0.9,
	"ZA": 1.3,
	"NG": 1.6,
	"EG": 1.7,
	"KE": 1.5,
}

// tradeBlocs lists multilateral agreements. Members of the same bloc trade
// at the preferential factor.
var tradeBlocs = map[string][]string{
	"USMCA":    {"US", "CA", "MX"},
	"EU":       {"AT", "BE", "BG", "HR", "CY", "CZ", "DK", "EE", "FI", "FR", "DE", "GR", "HU", "IE", "IT", "LV", "LT", "LU", "MT", "NL", "PL", "PT", "RO", "SK", "SI", "ES", "SE"},
	"ASEAN":    {"BN", "KH", "ID", "LA", "MY", "MM", "PH", "SG", "TH", "VN"},
	"MERCOSUR": {"AR", "BR", "PY", "UY"},
	"EFTA":     {"CH", "IS", "LI", "NO"},
	"GCC":      {"AE", "BH", "KW", "OM", "QA", "SA"},
	"AfCFTA":   {"NG", "KE", "EG", "ZA", "GH", "ET", "MA"},
}

// bilateralAgreements are checked in both directions.
var bilateralAgreements = map[[2]string]string{
	{"US", "KR"}: "KORUS",
	{"US", "AU"}: "AUSFTA",
	{"US", "SG"}: "USSFTA",
	{"US", "IL"}: "US-Israel FTA",
	{"US", "CL"}: "US-Chile FTA",
	{"AU", "NZ"}: "ANZCERTA",
	{"JP", "AU"}: "JAEPA",
	{"CN", "NZ"}: "China-NZ FTA",
	{"CN", "AU"}: "ChAFTA",
	{"GB", "AU"}: "UK-Australia FTA",
	{"CA", "KR"}: "CKFTA",
}

// blocMembership is tradeBlocs inverted to country -> bloc names.
var blocMembership = func() map[string][]string {
	m := make(map[string][]string)
	for bloc, members := range tradeBlocs {
		for _, c := range members {
			m[c] = append(m[c], bloc)
		}
	}
	for _, blocs := range m {
		sort.Strings(blocs)
	}
	return m
}()
