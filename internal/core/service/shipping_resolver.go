package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/landed-cost/internal/api/metrics"
	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
	"github.com/99minutos/landed-cost/internal/pkg/money"
)

// CarrierPicker chooses the display carrier from the options for a mode.
type CarrierPicker func(options []string) string

// FirstCarrier always picks the first option.
func FirstCarrier(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

// RandomCarrier picks with the given source; seed it for reproducible output.
func RandomCarrier(rng *rand.Rand) CarrierPicker {
	var mu sync.Mutex
	return func(options []string) string {
		if len(options) == 0 {
			return ""
		}
		mu.Lock()
		defer mu.Unlock()
		return options[rng.Intn(len(options))]
	}
}

// ShippingResolverDeps wires the shipping tiers. Carrier and Aggregator may be nil.
type ShippingResolverDeps struct {
	Carrier     ports.CarrierRateProvider
	Aggregator  ports.FreightRateSource
	PickCarrier CarrierPicker
	TierTimeout time.Duration
	Logger      zerolog.Logger
}

// ShippingResolver prices freight through carrier API, rate aggregator and
// finally the distance model. Freight rates are never cached.
type ShippingResolver struct {
	carrier    ports.CarrierRateProvider
	aggregator ports.FreightRateSource
	pick       CarrierPicker
	timeout    time.Duration
	log        zerolog.Logger
}

func NewShippingResolver(deps ShippingResolverDeps) *ShippingResolver {
	pick := deps.PickCarrier
	if pick == nil {
		pick = FirstCarrier
	}
	return &ShippingResolver{
		carrier:    deps.Carrier,
		aggregator: deps.Aggregator,
		pick:       pick,
		timeout:    deps.TierTimeout,
		log:        deps.Logger,
	}
}

// ResolveShippingCost always returns a non-negative cost.
func (r *ShippingResolver) ResolveShippingCost(ctx context.Context, product domain.ProductDetails, shipping domain.ShippingDetails) domain.ShippingQuote {
	origin := domain.NormalizeCountry(product.OriginCountry)
	destination := domain.NormalizeCountry(product.DestinationCountry)
	carriers := carriersByMode[domain.FamilyOf(shipping.TransportMode)]

	quote, ok := r.fromCarrier(ctx, origin, destination, shipping)
	if !ok {
		quote, ok = r.fromAggregator(ctx, origin, destination, shipping)
	}
	if !ok {
		quote = EstimateShippingCost(origin, destination, shipping)
		if quote.Source == domain.SourceFlatRate {
			metrics.TierFailuresTotal.WithLabelValues("shipping", "estimate").Inc()
		}
	}
	if quote.Carrier == "" {
		quote.Carrier = r.pick(carriers)
	}

	metrics.TierResolutionsTotal.WithLabelValues("shipping", quote.Source).Inc()
	return quote
}

func (r *ShippingResolver) fromCarrier(ctx context.Context, origin, destination string, s domain.ShippingDetails) (domain.ShippingQuote, bool) {
	if r.carrier == nil {
		return domain.ShippingQuote{}, false
	}
	req := ports.CarrierQuoteRequest{
		Origin:        origin,
		Destination:   destination,
		WeightKg:      s.Weight,
		Dimensions:    s.Dimensions,
		TransportMode: s.TransportMode,
		ShipmentType:  s.ShipmentType,
		PackageType:   s.PackageType,
		Quantity:      s.Quantity,
	}
	q, err := attempt(ctx, r.timeout, func(ctx context.Context) (ports.CarrierQuote, error) {
		return r.carrier.Quote(ctx, req)
	})
	if err == nil && !validRate(q.Cost) {
		err = fmt.Errorf("carrier returned unusable cost %v", q.Cost)
	}
	if err != nil {
		metrics.TierFailuresTotal.WithLabelValues("shipping", "carrier").Inc()
		r.log.Debug().Err(err).Str("origin", origin).Str("destination", destination).Msg("carrier tier failed")
		return domain.ShippingQuote{}, false
	}
	return domain.ShippingQuote{Cost: money.Round2(q.Cost), Source: domain.SourceCarrierAPI, Carrier: q.Carrier}, true
}

func (r *ShippingResolver) fromAggregator(ctx context.Context, origin, destination string, s domain.ShippingDetails) (domain.ShippingQuote, bool) {
	if r.aggregator == nil {
		return domain.ShippingQuote{}, false
	}
	fail := func(err error) (domain.ShippingQuote, bool) {
		metrics.TierFailuresTotal.WithLabelValues("shipping", "aggregator").Inc()
		r.log.Debug().Err(err).Str("origin", origin).Str("destination", destination).Msg("aggregator tier failed")
		return domain.ShippingQuote{}, false
	}

	rateType, ok := RateTypeFor(s.TransportMode, s.ShipmentType)
	if !ok {
		return fail(fmt.Errorf("no rate type for mode %q", s.TransportMode))
	}
	distance, ok := RegionDistanceFactor(origin, destination)
	if !ok {
		return fail(fmt.Errorf("no region lane %s-%s", origin, destination))
	}
	base, err := attempt(ctx, r.timeout, func(ctx context.Context) (float64, error) {
		return r.aggregator.BaseRate(ctx, rateType)
	})
	if err == nil && !validRate(base) {
		err = fmt.Errorf("aggregator returned unusable base rate %v", base)
	}
	if err != nil {
		return fail(err)
	}

	cost := base * WeightFactor(domain.FamilyOf(s.TransportMode), s.Weight) * distance
	return domain.ShippingQuote{Cost: money.Round2(cost), Source: domain.SourceRateAggregator}, true
}

// RateTypeFor maps transport mode and shipment type to an aggregator rate
// type, defaulting per mode when the combination is unknown.
func RateTypeFor(transportMode, shipmentType string) (string, bool) {
	byType, ok := rateTypes[domain.FamilyOf(transportMode)]
	if !ok {
		return "", false
	}
	for st, rt := range byType {
		if st != "" && strings.EqualFold(st, shipmentType) {
			return rt, true
		}
	}
	return byType[""], true
}

// WeightFactor is weight times the weight-break multiplier of the mode.
func WeightFactor(family domain.ModeFamily, weightKg float64) float64 {
	breaks, ok := weightBreaks[family]
	if !ok {
		return weightKg
	}
	for _, b := range breaks {
		if b.upToKg == 0 || weightKg < b.upToKg {
			return weightKg * b.multiplier
		}
	}
	return weightKg
}

// RegionDistanceFactor is 1.0 within a region and the region-pair multiplier
// across regions. Unknown countries have no factor.
func RegionDistanceFactor(origin, destination string) (float64, bool) {
	ro, ok := countryRegions[domain.NormalizeCountry(origin)]
	if !ok {
		return 0, false
	}
	rd, ok := countryRegions[domain.NormalizeCountry(destination)]
	if !ok {
		return 0, false
	}
	if ro == rd {
		return 1.0, true
	}
	if f, ok := regionDistanceFactors[[2]string{ro, rd}]; ok {
		return f, true
	}
	f, ok := regionDistanceFactors[[2]string{rd, ro}]
	return f, ok
}

// EstimateDistanceKm approximates the distance between two countries:
// 500 km for a domestic shipment, then the pairwise table, then a regional
// default.
func EstimateDistanceKm(origin, destination string) float64 {
	origin = domain.NormalizeCountry(origin)
	destination = domain.NormalizeCountry(destination)
	if origin == destination {
		return sameCountryDistanceKm
	}
	if d, ok := countryDistancesKm[[2]string{origin, destination}]; ok {
		return d
	}
	if d, ok := countryDistancesKm[[2]string{destination, origin}]; ok {
		return d
	}
	ro, okO := countryRegions[origin]
	rd, okD := countryRegions[destination]
	if okO && okD && ro == rd {
		return intraRegionDistanceKm
	}
	return interRegionDistanceKm
}

// ChargeableWeight is the larger of actual and volumetric weight.
func ChargeableWeight(family domain.ModeFamily, weightKg float64, dims domain.Dimensions) float64 {
	divisor, ok := volumetricDivisors[family]
	if !ok {
		divisor = defaultVolumetricDivisor
	}
	return math.Max(weightKg, dims.VolumeCm3()/divisor)
}

// EstimateShippingCost is the terminal shipping tier. When the distance
// model cannot produce a finite cost it degrades to a flat rate.
func EstimateShippingCost(origin, destination string, s domain.ShippingDetails) domain.ShippingQuote {
	cost, err := distanceEstimate(origin, destination, s)
	if err != nil {
		return domain.ShippingQuote{Cost: flatRate(origin, destination, s.Weight), Source: domain.SourceFlatRate}
	}
	return domain.ShippingQuote{Cost: cost, Source: domain.SourceDistanceModel}
}

func distanceEstimate(origin, destination string, s domain.ShippingDetails) (float64, error) {
	if !validRate(s.Weight) {
		return 0, fmt.Errorf("invalid weight %v", s.Weight)
	}
	family := domain.FamilyOf(s.TransportMode)

	rate, ok := perKgKmRates[family]
	if !ok {
		rate = defaultPerKgKmRate
	}
	fuel, ok := fuelSurcharges[family]
	if !ok {
		fuel = defaultFuelSurcharge
	}

	cost := ChargeableWeight(family, s.Weight, s.Dimensions) *
		EstimateDistanceKm(origin, destination) *
		rate *
		(1 + fuel) *
		factorFold(packageTypeFactors, s.PackageType) *
		factorFold(shipmentTypeFactors, s.ShipmentType)

	if !validRate(cost) {
		return 0, fmt.Errorf("distance estimate produced %v", cost)
	}
	return money.Round2(cost), nil
}

func flatRate(origin, destination string, weightKg float64) float64 {
	if !validRate(weightKg) {
		weightKg = 0
	}
	cost := flatFallbackBase + weightKg*flatFallbackPerKg
	ro := countryRegions[domain.NormalizeCountry(origin)]
	rd := countryRegions[domain.NormalizeCountry(destination)]
	if ro != rd || ro == "" {
		cost *= flatFallbackCrossRegion
	}
	if math.IsInf(cost, 0) {
		return math.MaxFloat64
	}
	return money.Round2(cost)
}

// factorFold looks key up case-insensitively, defaulting to 1.0.
func factorFold(table map[string]float64, key string) float64 {
	for k, v := range table {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return 1.0
}
