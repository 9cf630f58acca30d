package ports

import (
	"context"

	"github.com/99minutos/landed-cost/internal/core/domain"
)

// DutyRateProvider is the live tariff source (duty Tier 1).
type DutyRateProvider interface {
	DutyRate(ctx context.Context, hsCode, origin, destination string) (domain.DutyRate, error)
}

// DutyReferenceStore is the local reference table (duty Tier 2).
// Keys look like "CN_85" or "CN_general". Missing keys return domain.ErrRateNotFound.
type DutyReferenceStore interface {
	LookupDutyRate(ctx context.Context, key string) (domain.DutyRate, error)
}

// TaxRateProvider returns the consumption-tax rate for a product in a country.
type TaxRateProvider interface {
	TaxRate(ctx context.Context, hsCode, country string) (TaxRateQuote, error)
}

// TaxReferenceStore is the local tax table consulted before the built-in
// defaults. Missing countries return domain.ErrRateNotFound.
type TaxReferenceStore interface {
	LookupTaxRate(ctx context.Context, country string) (TaxRateQuote, error)
}

// TaxRateQuote is the raw answer of a TaxRateProvider.
type TaxRateQuote struct {
	Rate        float64
	Name        string
	Description string
}

// CarrierQuoteRequest carries everything a carrier needs for a real-time quote.
type CarrierQuoteRequest struct {
	Origin        string
	Destination   string
	WeightKg      float64
	Dimensions    domain.Dimensions
	TransportMode string
	ShipmentType  string
	PackageType   string
	Quantity      int
}

// CarrierQuote is a real-time freight quote.
type CarrierQuote struct {
	Cost    float64
	Carrier string
}

// CarrierRateProvider is the carrier quoting API (shipping Tier 1).
type CarrierRateProvider interface {
	Quote(ctx context.Context, req CarrierQuoteRequest) (CarrierQuote, error)
}

// FreightRateSource is the third-party aggregator (shipping Tier 2). It
// returns the base rate per kg for a rate type such as "sea_fcl".
type FreightRateSource interface {
	BaseRate(ctx context.Context, rateType string) (float64, error)
}

// DutyRateWriter and TaxRateWriter are implemented by the reference stores
// so reference data can be seeded.
type DutyRateWriter interface {
	UpsertDutyRate(ctx context.Context, key string, rate domain.DutyRate) error
}

type TaxRateWriter interface {
	UpsertTaxRate(ctx context.Context, country string, quote TaxRateQuote) error
}
