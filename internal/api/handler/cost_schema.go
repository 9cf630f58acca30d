package handler

import (
	"time"

	"github.com/99minutos/landed-cost/internal/core/domain"
)

type productRequest struct {
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	HSCode             string  `json:"hs_code"             validate:"omitempty,max=14"`
	OriginCountry      string  `json:"origin_country"      validate:"required,len=2,alpha"`
	DestinationCountry string  `json:"destination_country" validate:"required,len=2,alpha"`
	Value              float64 `json:"value"               validate:"gt=0"`
}

type dimensionsRequest struct {
	Length float64 `json:"length" validate:"gt=0"`
	Width  float64 `json:"width"  validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
	Unit   string  `json:"unit"   validate:"omitempty,oneof=cm mm m in"`
}

type shippingRequest struct {
	Quantity      int               `json:"quantity"       validate:"gt=0"`
	TransportMode string            `json:"transport_mode" validate:"required"`
	ShipmentType  string            `json:"shipment_type"`
	PackageType   string            `json:"package_type"`
	Weight        float64           `json:"weight"         validate:"gt=0"`
	Dimensions    dimensionsRequest `json:"dimensions"`
}

type calculateRequest struct {
	Product  productRequest  `json:"product"`
	Shipping shippingRequest `json:"shipping"`
}

type costResponse struct {
	CalculationID string                 `json:"calculation_id"`
	Breakdown     domain.CostBreakdown   `json:"breakdown"`
	Components    []domain.CostComponent `json:"components"`
	CalculatedAt  time.Time              `json:"calculated_at"`
}

type batchItemResponse struct {
	Index  int           `json:"index"`
	Result *costResponse `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

type batchResponse struct {
	Results   []batchItemResponse `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

type dutyRateQuery struct {
	HSCode      string `query:"hs_code"     json:"hs_code"     validate:"required"`
	Origin      string `query:"origin"      json:"origin"      validate:"required,len=2,alpha"`
	Destination string `query:"destination" json:"destination" validate:"required,len=2,alpha"`
	Category    string `query:"category"    json:"category"`
}

type dutyRateResponse struct {
	HSCode      string  `json:"hs_code"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Rate        float64 `json:"rate"`
	Source      string  `json:"source"`
	Description string  `json:"description,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (r calculateRequest) toDomain() (domain.ProductDetails, domain.ShippingDetails) {
	p := domain.ProductDetails{
		Description:        r.Product.Description,
		Category:           r.Product.Category,
		HSCode:             r.Product.HSCode,
		OriginCountry:      r.Product.OriginCountry,
		DestinationCountry: r.Product.DestinationCountry,
		Value:              r.Product.Value,
	}
	s := domain.ShippingDetails{
		Quantity:      r.Shipping.Quantity,
		TransportMode: r.Shipping.TransportMode,
		ShipmentType:  r.Shipping.ShipmentType,
		PackageType:   r.Shipping.PackageType,
		Weight:        r.Shipping.Weight,
		Dimensions: domain.Dimensions{
			Length: r.Shipping.Dimensions.Length,
			Width:  r.Shipping.Dimensions.Width,
			Height: r.Shipping.Dimensions.Height,
			Unit:   r.Shipping.Dimensions.Unit,
		},
	}
	return p, s
}

func toCostResponse(res *domain.CostResult) *costResponse {
	return &costResponse{
		CalculationID: res.CalculationID,
		Breakdown:     res.Breakdown,
		Components:    res.Components,
		CalculatedAt:  res.CalculatedAt,
	}
}
