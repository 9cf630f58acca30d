package domain

import (
	"errors"
	"time"
)

var ErrCalculationFailed = errors.New("failed to calculate cost breakdown")
var ErrRateNotFound = errors.New("rate not found")
var ErrForbidden = errors.New("access forbidden")

// Provenance tags reported by the resolvers.
const (
	SourceCached          = "Cached"
	SourceAPI             = "API"
	SourceDatabase        = "Database"
	SourceDatabaseGeneral = "Database (General Rate)"
	SourceModel           = "Model-based estimate"
	SourceDefault         = "Default"

	SourceCarrierAPI     = "Carrier API"
	SourceRateAggregator = "Rate aggregator"
	SourceDistanceModel  = "Distance-based estimate"
	SourceFlatRate       = "Flat-rate fallback"
)

// CostCategory classifies a CostComponent.
type CostCategory string

const (
	CategoryProduct  CostCategory = "product"
	CategoryDuty     CostCategory = "duty"
	CategoryTax      CostCategory = "tax"
	CategoryShipping CostCategory = "shipping"
	CategoryOther    CostCategory = "other"
)

// DutyRate is an ad-valorem duty rate in percent.
type DutyRate struct {
	Rate        float64 `json:"rate"`
	Source      string  `json:"source"`
	Description string  `json:"description,omitempty"`
}

// TaxRate is a consumption-tax rate in percent and the amount it yields.
type TaxRate struct {
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Source      string  `json:"source"`
}

// ShippingQuote is the freight cost for a shipment.
type ShippingQuote struct {
	Cost    float64 `json:"cost"`
	Source  string  `json:"source"`
	Carrier string  `json:"carrier,omitempty"`
}

// CostBreakdown holds every resolved amount of a calculation.
// TotalLandedCost is always the sum of the eight amount fields.
type CostBreakdown struct {
	ProductCost      float64 `json:"product_cost"`
	DutyAmount       float64 `json:"duty_amount"`
	DutyRate         float64 `json:"duty_rate"`
	TaxAmount        float64 `json:"tax_amount"`
	TaxRate          float64 `json:"tax_rate"`
	ShippingCost     float64 `json:"shipping_cost"`
	InsuranceCost    float64 `json:"insurance_cost"`
	CustomsFees      float64 `json:"customs_fees"`
	LastMileDelivery float64 `json:"last_mile_delivery"`
	HandlingFees     float64 `json:"handling_fees"`
	TotalLandedCost  float64 `json:"total_landed_cost"`
	DataSource       string  `json:"data_source"`

	DutySource      string `json:"duty_source"`
	DutyDescription string `json:"duty_description,omitempty"`
	TaxName         string `json:"tax_name"`
	TaxSource       string `json:"tax_source"`
	ShippingSource  string `json:"shipping_source"`
	Carrier         string `json:"carrier,omitempty"`
}

// CostComponent is one line of the ordered breakdown.
type CostComponent struct {
	Name        string       `json:"name"`
	Value       float64      `json:"value"`
	Percentage  float64      `json:"percentage"`
	Description string       `json:"description"`
	Category    CostCategory `json:"category"`
}

// CostResult is returned by a landed cost calculation.
type CostResult struct {
	CalculationID string          `json:"calculation_id"`
	Breakdown     CostBreakdown   `json:"breakdown"`
	Components    []CostComponent `json:"components"`
	CalculatedAt  time.Time       `json:"calculated_at"`
}
