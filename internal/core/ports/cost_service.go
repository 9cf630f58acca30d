package ports

import (
	"context"

	"github.com/99minutos/landed-cost/internal/core/domain"
)

// CalculateCostsInput pairs the two inputs of one calculation.
type CalculateCostsInput struct {
	Product  domain.ProductDetails
	Shipping domain.ShippingDetails
}

// CostService is the landed cost use case.
type CostService interface {
	// CalculateCosts validates the input, resolves every cost, and returns the
	// breakdown. Validation failures wrap domain.ErrInvalidInput; unexpected
	// aggregation failures wrap domain.ErrCalculationFailed.
	CalculateCosts(ctx context.Context, product domain.ProductDetails, shipping domain.ShippingDetails) (*domain.CostResult, error)
	// ResolveDutyRate runs the duty cascade alone. Category only feeds the
	// model tier and may be empty.
	ResolveDutyRate(ctx context.Context, hsCode, origin, destination, category string) domain.DutyRate
}

// BatchItemResult is the outcome of one item in a batch calculation.
type BatchItemResult struct {
	Index  int
	Result *domain.CostResult
	Err    error
}
