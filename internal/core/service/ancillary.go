package service

import (
	"math"
	"strings"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/pkg/money"
)

var insuranceRates = map[domain.ModeFamily]float64{
	domain.ModeAir:  0.5,
	domain.ModeRoad: 0.8,
	domain.ModeRail: 1.0,
	domain.ModeSea:  1.5,
}

const defaultInsuranceRate = 1.0

// Insurance is the cargo insurance premium on the declared product value.
func Insurance(productValue float64, transportMode string) float64 {
	rate, ok := insuranceRates[domain.FamilyOf(transportMode)]
	if !ok {
		rate = defaultInsuranceRate
	}
	return money.ApplyRate(productValue, rate)
}

// customsRule is either a percentage of value clamped to [min, max] (a zero
// max means uncapped) or, when flat is set, a fixed fee.
type customsRule struct {
	percent float64
	min     float64
	max     float64
	flat    float64
}

var customsRules = map[string]customsRule{
	"US": {percent: 0.3464, min: 32.71, max: 634.62},
	"CA": {flat: 35},
	"MX": {percent: 0.8, min: 20},
	"BR": {percent: 1.0, min: 40, max: 800},
	"GB": {flat: 25},
	"DE": {percent: 0.4, min: 20, max: 500},
	"FR": {percent: 0.4, min: 20, max: 500},
	"IT": {percent: 0.4, min: 20, max: 500},
	"ES": {percent: 0.4, min: 20, max: 500},
	"NL": {percent: 0.4, min: 20, max: 500},
	"CN": {percent: 0.5, min: 15, max: 400},
	"JP": {flat: 30},
	"KR": {percent: 0.3, min: 15, max: 300},
	"IN": {percent: 1.0, min: 25, max: 1000},
	"AU": {flat: 50},
	"NZ": {flat: 45},
	"SG": {flat: 20},
}

const defaultCustomsPercent = 0.5

// CustomsFee is the broker/clearance processing fee at destination.
func CustomsFee(productValue float64, destination string) float64 {
	rule, ok := customsRules[domain.NormalizeCountry(destination)]
	if !ok {
		return money.ApplyRate(productValue, defaultCustomsPercent)
	}
	if rule.flat > 0 {
		return money.Round2(rule.flat)
	}
	fee := productValue * rule.percent / 100
	fee = math.Max(fee, rule.min)
	if rule.max > 0 {
		fee = math.Min(fee, rule.max)
	}
	return money.Round2(fee)
}

var lastMileBaseRates = map[string]float64{
	"US": 15, "CA": 18, "MX": 12, "BR": 14,
	"GB": 12, "DE": 11, "FR": 12, "IT": 13, "ES": 12, "NL": 10,
	"CN": 8, "JP": 14, "KR": 10, "IN": 6, "SG": 9,
	"AU": 16, "NZ": 17, "AE": 13, "ZA": 12,
}

const (
	defaultLastMileBase     = 15.0
	lastMileWeightThreshold = 10.0 // kg
	lastMilePerKg           = 0.5
	lastMileVolumeThreshold = 0.1 // m³
	lastMilePerM3           = 50.0
)

// LastMileDelivery prices delivery from the destination hub to the consignee.
func LastMileDelivery(destination string, weightKg float64, dims domain.Dimensions) float64 {
	base, ok := lastMileBaseRates[domain.NormalizeCountry(destination)]
	if !ok {
		base = defaultLastMileBase
	}
	cost := base
	if weightKg > lastMileWeightThreshold {
		cost += (weightKg - lastMileWeightThreshold) * lastMilePerKg
	}
	if v := dims.VolumeM3(); v > lastMileVolumeThreshold {
		cost += (v - lastMileVolumeThreshold) * lastMilePerM3
	}
	return money.Round2(cost)
}

var packageSurcharges = map[string]float64{
	domain.PackagePallet:    35,
	domain.PackageCrate:     45,
	domain.PackageDrum:      30,
	domain.PackageContainer: 150,
}

const (
	handlingBaseFee = 25.0
	handlingPerUnit = 0.5
)

// HandlingFees covers warehouse handling of the shipment.
func HandlingFees(quantity int, packageType string) float64 {
	fee := handlingBaseFee + float64(quantity)*handlingPerUnit
	for k, v := range packageSurcharges {
		if strings.EqualFold(k, packageType) {
			fee += v
			break
		}
	}
	return money.Round2(fee)
}
