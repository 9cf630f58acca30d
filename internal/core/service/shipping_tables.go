package service

import "github.com/99minutos/landed-cost/internal/core/domain"

// Region codes used by the aggregator distance factor and the estimate
// distance fallback.
const (
	regionNorthAmerica = "NA"
	regionSouthAmerica = "SA"
	regionEurope       = "EU"
	regionAsia         = "AS"
	regionAfrica       = "AF"
	regionOceania      = "OC"
)

var countryRegions = map[string]string{
	"US": regionNorthAmerica, "CA": regionNorthAmerica, "MX": regionNorthAmerica,
	"GT": regionNorthAmerica, "PA": regionNorthAmerica, "CR": regionNorthAmerica,

	"BR": regionSouthAmerica, "AR": regionSouthAmerica, "CL": regionSouthAmerica,
	"CO": regionSouthAmerica, "PE": regionSouthAmerica, "UY": regionSouthAmerica,
	"PY": regionSouthAmerica, "EC": regionSouthAmerica, "VE": regionSouthAmerica,

	"GB": regionEurope, "IE": regionEurope, "DE": regionEurope, "FR": regionEurope,
	"IT": regionEurope, "ES": regionEurope, "PT": regionEurope, "NL": regionEurope,
	"BE": regionEurope, "LU": regionEurope, "AT": regionEurope, "CH": regionEurope,
	"PL": regionEurope, "CZ": regionEurope, "SE": regionEurope, "NO": regionEurope,
	"DK": regionEurope, "FI": regionEurope, "GR": regionEurope, "HU": regionEurope,
	"RO": regionEurope, "TR": regionEurope, "RU": regionEurope, "UA": regionEurope,

	"CN": regionAsia, "JP": regionAsia, "KR": regionAsia, "IN": regionAsia,
	"SG": regionAsia, "HK": regionAsia, "TW": regionAsia, "VN": regionAsia,
	"TH": regionAsia, "MY": regionAsia, "ID": regionAsia, "PH": regionAsia,
	"BD": regionAsia, "PK": regionAsia, "AE": regionAsia, "SA": regionAsia,
	"IL": regionAsia, "QA": regionAsia,

	"ZA": regionAfrica, "NG": regionAfrica, "EG": regionAfrica, "KE": regionAfrica,
	"MA": regionAfrica, "GH": regionAfrica, "ET": regionAfrica,

	"AU": regionOceania, "NZ": regionOceania, "FJ": regionOceania, "PG": regionOceania,
}

// regionDistanceFactors is symmetric; lookups try both orders.
var regionDistanceFactors = map[[2]string]float64{
	{regionNorthAmerica, regionSouthAmerica}: 1.3,
	{regionNorthAmerica, regionEurope}:       1.5,
	{regionNorthAmerica, regionAsia}:         1.8,
	{regionNorthAmerica, regionAfrica}:       2.0,
	{regionNorthAmerica, regionOceania}:      1.9,
	{regionSouthAmerica, regionEurope}:       1.7,
	{regionSouthAmerica, regionAsia}:         2.1,
	{regionSouthAmerica, regionAfrica}:       1.9,
	{regionSouthAmerica, regionOceania}:      2.0,
	{regionEurope, regionAsia}:               1.6,
	{regionEurope, regionAfrica}:             1.4,
	{regionEurope, regionOceania}:            2.0,
	{regionAsia, regionAfrica}:               1.7,
	{regionAsia, regionOceania}:              1.4,
	{regionAfrica, regionOceania}:            2.0,
}

// Rate types offered by the freight aggregator, keyed by mode family and
// shipment type. The "" entry is the per-mode default.
var rateTypes = map[domain.ModeFamily]map[string]string{
	domain.ModeAir: {
		domain.ShipmentExpress:      "air_express",
		domain.ShipmentStandard:     "air_standard",
		domain.ShipmentLCL:          "air_standard",
		domain.ShipmentConsolidated: "air_consolidated",
		domain.ShipmentFCL:          "air_charter",
		"":                          "air_standard",
	},
	domain.ModeSea: {
		domain.ShipmentFCL:          "sea_fcl",
		domain.ShipmentLCL:          "sea_lcl",
		domain.ShipmentBulk:         "sea_bulk",
		domain.ShipmentConsolidated: "sea_lcl",
		"":                          "sea_lcl",
	},
	domain.ModeRail: {
		domain.ShipmentFCL:  "rail_fcl",
		domain.ShipmentLCL:  "rail_lcl",
		domain.ShipmentBulk: "rail_bulk",
		"":                  "rail_lcl",
	},
	domain.ModeRoad: {
		domain.ShipmentFTL:     "road_ftl",
		domain.ShipmentFCL:     "road_ftl",
		domain.ShipmentLTL:     "road_ltl",
		domain.ShipmentLCL:     "road_ltl",
		domain.ShipmentExpress: "road_express",
		"":                     "road_ltl",
	},
}

type weightBreak struct {
	upToKg     float64
	multiplier float64
}

// weightBreaks are ordered; the last break applies above every threshold.
var weightBreaks = map[domain.ModeFamily][]weightBreak{
	domain.ModeAir:  {{45, 1.0}, {100, 0.9}, {300, 0.8}, {500, 0.75}, {1000, 0.7}, {0, 0.65}},
	domain.ModeSea:  {{1000, 1.0}, {5000, 0.85}, {10000, 0.75}, {0, 0.65}},
	domain.ModeRail: {{500, 1.0}, {2000, 0.9}, {10000, 0.8}, {0, 0.7}},
	domain.ModeRoad: {{100, 1.0}, {1000, 0.9}, {5000, 0.8}, {0, 0.7}},
}

// Distance estimate constants, in km.
const (
	sameCountryDistanceKm   = 500
	intraRegionDistanceKm   = 1500
	interRegionDistanceKm   = 8000
	flatFallbackBase        = 50.0
	flatFallbackPerKg       = 2.5
	flatFallbackCrossRegion = 1.5
)

// countryDistancesKm holds approximate great-circle distances between major
// trading partners. Symmetric; lookups try both orders.
var countryDistancesKm = map[[2]string]float64{
	{"US", "CN"}: 11600, {"US", "JP"}: 10100, {"US", "KR"}: 11100, {"US", "IN"}: 12500,
	{"US", "DE"}: 7200, {"US", "GB"}: 6800, {"US", "FR"}: 7300, {"US", "MX"}: 2500,
	{"US", "CA"}: 1500, {"US", "BR"}: 7700, {"US", "AU"}: 15000, {"US", "VN"}: 13400,
	{"US", "SG"}: 15300, {"US", "NL"}: 7000, {"US", "IT"}: 7900, {"US", "ZA"}: 12800,
	{"CN", "DE"}: 7400, {"CN", "GB"}: 8100, {"CN", "FR"}: 8200, {"CN", "JP"}: 2100,
	{"CN", "KR"}: 950, {"CN", "AU"}: 8900, {"CN", "IN"}: 3800, {"CN", "SG"}: 4500,
	{"CN", "VN"}: 2300, {"CN", "BR"}: 16900, {"CN", "NL"}: 7800, {"CN", "CA"}: 10500,
	{"CN", "MX"}: 12400, {"CN", "ZA"}: 11900,
	{"DE", "GB"}: 930, {"DE", "FR"}: 880, {"DE", "IT"}: 1000, {"DE", "ES"}: 1870,
	{"DE", "NL"}: 580, {"DE", "PL"}: 520, {"DE", "JP"}: 9000, {"DE", "IN"}: 6000,
	{"GB", "FR"}: 340, {"GB", "IN"}: 6700, {"GB", "AU"}: 17000, {"GB", "JP"}: 9600,
	{"JP", "KR"}: 1150, {"JP", "AU"}: 7800, {"JP", "SG"}: 5300,
	{"IN", "AE"}: 2200, {"IN", "SG"}: 4100, {"AU", "NZ"}: 2200, {"AU", "SG"}: 6300,
	{"CA", "MX"}: 3600, {"BR", "AR"}: 2400, {"MX", "BR"}: 7400,
}

var perKgKmRates = map[domain.ModeFamily]float64{
	domain.ModeAir:  0.0012,
	domain.ModeSea:  0.00004,
	domain.ModeRail: 0.00008,
	domain.ModeRoad: 0.00015,
}

const defaultPerKgKmRate = 0.0005

// volumetricDivisors convert cm³ to chargeable kg.
var volumetricDivisors = map[domain.ModeFamily]float64{
	domain.ModeAir:  6000,
	domain.ModeSea:  1000,
	domain.ModeRail: 3000,
	domain.ModeRoad: 3000,
}

const defaultVolumetricDivisor = 5000

var fuelSurcharges = map[domain.ModeFamily]float64{
	domain.ModeAir:  0.25,
	domain.ModeSea:  0.12,
	domain.ModeRail: 0.10,
	domain.ModeRoad: 0.15,
}

const defaultFuelSurcharge = 0.15

var packageTypeFactors = map[string]float64{
	domain.PackageEnvelope:  0.8,
	domain.PackageBox:       1.0,
	domain.PackagePallet:    1.1,
	domain.PackageCrate:     1.15,
	domain.PackageDrum:      1.2,
	domain.PackageContainer: 1.25,
}

var shipmentTypeFactors = map[string]float64{
	domain.ShipmentExpress:      1.5,
	domain.ShipmentLCL:          1.2,
	domain.ShipmentLTL:          1.1,
	domain.ShipmentStandard:     1.0,
	domain.ShipmentConsolidated: 0.95,
	domain.ShipmentFTL:          0.85,
	domain.ShipmentFCL:          0.8,
	domain.ShipmentBulk:         0.7,
}

// carriersByMode feeds the display-only carrier name.
var carriersByMode = map[domain.ModeFamily][]string{
	domain.ModeAir:     {"DHL Express", "FedEx International", "UPS Worldwide", "Lufthansa Cargo"},
	domain.ModeSea:     {"Maersk", "MSC", "CMA CGM", "COSCO Shipping"},
	domain.ModeRail:    {"DB Cargo", "China Railway Express", "Union Pacific"},
	domain.ModeRoad:    {"DHL Freight", "XPO Logistics", "DSV Road"},
	domain.ModeUnknown: {"Freight Forwarder"},
}
