package refdata

import (
	"context"
	"strings"

	"github.com/99minutos/landed-cost/internal/core/domain"
)

// Published base freight rates in USD per chargeable kg.
var defaultBaseRates = map[string]float64{
	"air_express":      9.5,
	"air_standard":     5.0,
	"air_consolidated": 4.5,
	"air_charter":      4.0,
	"sea_fcl":          0.15,
	"sea_lcl":          0.35,
	"sea_bulk":         0.08,
	"rail_fcl":         0.4,
	"rail_lcl":         0.6,
	"rail_bulk":        0.3,
	"road_ftl":         0.3,
	"road_ltl":         0.55,
	"road_express":     1.2,
}

// RateCard is a FreightRateSource backed by a fixed table. It stands in for
// the freight aggregator when no rates API is configured. The card is
// immutable once built.
type RateCard struct {
	rates map[string]float64
}

// NewRateCard returns the default card with overrides applied on top,
// typically FREIGHT_RATE_OVERRIDES. Override keys are case-insensitive.
func NewRateCard(overrides map[string]float64) *RateCard {
	rates := make(map[string]float64, len(defaultBaseRates)+len(overrides))
	for k, v := range defaultBaseRates {
		rates[k] = v
	}
	for k, v := range overrides {
		rates[strings.ToLower(k)] = v
	}
	return &RateCard{rates: rates}
}

func (c *RateCard) BaseRate(_ context.Context, rateType string) (float64, error) {
	r, ok := c.rates[strings.ToLower(rateType)]
	if !ok {
		return 0, domain.ErrRateNotFound
	}
	return r, nil
}
