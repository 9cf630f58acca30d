package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/landed-cost/internal/api/metrics"
	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/pkg/money"
)

// CostServiceDeps wires the resolvers into the aggregator. A nil resolver is
// replaced by one with no external tiers, which still always resolves.
type CostServiceDeps struct {
	Duty     *DutyResolver
	Tax      *TaxResolver
	Shipping *ShippingResolver
	Logger   zerolog.Logger
	NewID    func() string
	Now      func() time.Time
}

type CostService struct {
	duty     *DutyResolver
	tax      *TaxResolver
	shipping *ShippingResolver
	logger   zerolog.Logger
	newID    func() string
	now      func() time.Time
}

func NewCostService(deps CostServiceDeps) *CostService {
	s := &CostService{
		duty:     deps.Duty,
		tax:      deps.Tax,
		shipping: deps.Shipping,
		logger:   deps.Logger,
		newID:    deps.NewID,
		now:      deps.Now,
	}
	if s.duty == nil {
		s.duty = NewDutyResolver(DutyResolverDeps{Logger: deps.Logger})
	}
	if s.tax == nil {
		s.tax = NewTaxResolver(TaxResolverDeps{Logger: deps.Logger})
	}
	if s.shipping == nil {
		s.shipping = NewShippingResolver(ShippingResolverDeps{Logger: deps.Logger})
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ResolveDutyRate exposes the duty cascade on its own.
func (s *CostService) ResolveDutyRate(ctx context.Context, hsCode, origin, destination, category string) domain.DutyRate {
	return s.duty.ResolveDutyRate(ctx, hsCode, origin, destination, category)
}

// CalculateCosts validates the input and produces the full landed cost
// breakdown. Resolver tiers never fail the calculation; only invalid input or
// a broken aggregation does.
func (s *CostService) CalculateCosts(ctx context.Context, product domain.ProductDetails, shipping domain.ShippingDetails) (result *domain.CostResult, err error) {
	start := time.Now()
	if err := product.Validate(); err != nil {
		metrics.CalculationsTotal.WithLabelValues("invalid_input").Inc()
		return nil, err
	}
	if err := shipping.Validate(); err != nil {
		metrics.CalculationsTotal.WithLabelValues("invalid_input").Inc()
		return nil, err
	}

	defer func() {
		if p := recover(); p != nil {
			s.logger.Error().Interface("panic", p).Str("hs_code", product.HSCode).Msg("cost aggregation panicked")
			result, err = nil, fmt.Errorf("%w: %v", domain.ErrCalculationFailed, p)
		}
		if err != nil {
			metrics.CalculationsTotal.WithLabelValues("failed").Inc()
			return
		}
		metrics.CalculationsTotal.WithLabelValues("ok").Inc()
		metrics.CalculationDuration.Observe(time.Since(start).Seconds())
	}()

	b := s.aggregate(ctx, product, shipping)
	if math.IsNaN(b.TotalLandedCost) || math.IsInf(b.TotalLandedCost, 0) {
		return nil, fmt.Errorf("%w: total is %v", domain.ErrCalculationFailed, b.TotalLandedCost)
	}

	result = &domain.CostResult{
		CalculationID: s.newID(),
		Breakdown:     b,
		Components:    buildComponents(b, shipping),
		CalculatedAt:  s.now().UTC(),
	}

	s.logger.Info().
		Str("calculation_id", result.CalculationID).
		Str("origin", product.OriginCountry).
		Str("destination", product.DestinationCountry).
		Str("duty_source", b.DutySource).
		Str("shipping_source", b.ShippingSource).
		Float64("total_landed_cost", b.TotalLandedCost).
		Msg("landed cost calculated")

	return result, nil
}

// aggregate resolves every amount. Tax is resolved after duty because the
// dutiable value includes the duty amount.
func (s *CostService) aggregate(ctx context.Context, product domain.ProductDetails, shipping domain.ShippingDetails) domain.CostBreakdown {
	productCost := money.Round2(product.Value * float64(shipping.Quantity))

	duty := s.duty.ResolveDutyRate(ctx, product.HSCode, product.OriginCountry, product.DestinationCountry, product.Category)
	dutyAmount := money.ApplyRate(productCost, duty.Rate)

	freight := s.shipping.ResolveShippingCost(ctx, product, shipping)
	insurance := Insurance(productCost, shipping.TransportMode)
	customs := CustomsFee(productCost, product.DestinationCountry)

	tax := s.tax.ResolveTaxRate(ctx, product.HSCode, product.DestinationCountry, money.Sum(productCost, dutyAmount))

	lastMile := LastMileDelivery(product.DestinationCountry, shipping.Weight, shipping.Dimensions)
	handling := HandlingFees(shipping.Quantity, shipping.PackageType)

	shippingCost := money.Round2(freight.Cost)
	total := money.Sum(productCost, dutyAmount, tax.Amount, shippingCost, insurance, customs, lastMile, handling)

	return domain.CostBreakdown{
		ProductCost:      productCost,
		DutyAmount:       dutyAmount,
		DutyRate:         duty.Rate,
		TaxAmount:        tax.Amount,
		TaxRate:          tax.Rate,
		ShippingCost:     shippingCost,
		InsuranceCost:    insurance,
		CustomsFees:      customs,
		LastMileDelivery: lastMile,
		HandlingFees:     handling,
		TotalLandedCost:  total,
		DataSource:       duty.Source,
		DutySource:       duty.Source,
		DutyDescription:  duty.Description,
		TaxName:          tax.Name,
		TaxSource:        tax.Source,
		ShippingSource:   freight.Source,
		Carrier:          freight.Carrier,
	}
}

func buildComponents(b domain.CostBreakdown, shipping domain.ShippingDetails) []domain.CostComponent {
	lines := []domain.CostComponent{
		{Name: "Product Value", Value: b.ProductCost, Category: domain.CategoryProduct,
			Description: fmt.Sprintf("%d units", shipping.Quantity)},
		{Name: "Import Duty", Value: b.DutyAmount, Category: domain.CategoryDuty,
			Description: fmt.Sprintf("%.2f%% (%s)", b.DutyRate, b.DutySource)},
		{Name: "Tax", Value: b.TaxAmount, Category: domain.CategoryTax,
			Description: fmt.Sprintf("%s %.2f%%", b.TaxName, b.TaxRate)},
		{Name: "Freight", Value: b.ShippingCost, Category: domain.CategoryShipping,
			Description: fmt.Sprintf("%s via %s (%s)", shipping.TransportMode, b.Carrier, b.ShippingSource)},
		{Name: "Insurance", Value: b.InsuranceCost, Category: domain.CategoryOther,
			Description: "Cargo insurance"},
		{Name: "Customs Clearance", Value: b.CustomsFees, Category: domain.CategoryOther,
			Description: "Customs processing fee"},
		{Name: "Last Mile", Value: b.LastMileDelivery, Category: domain.CategoryShipping,
			Description: "Delivery from destination hub"},
		{Name: "Handling", Value: b.HandlingFees, Category: domain.CategoryOther,
			Description: "Warehouse handling"},
	}
	for i := range lines {
		lines[i].Percentage = money.Percent(lines[i].Value, b.TotalLandedCost)
	}
	return lines
}
