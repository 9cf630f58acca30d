package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

// ModeFamily groups the transport mode variants that share pricing tables.
type ModeFamily string

const (
	ModeAir     ModeFamily = "air"
	ModeSea     ModeFamily = "sea"
	ModeRail    ModeFamily = "rail"
	ModeRoad    ModeFamily = "road"
	ModeUnknown ModeFamily = ""
)

// Transport modes accepted from callers. Other spellings are still mapped
// through FamilyOf by keyword.
const (
	TransportAirFreight  = "Air Freight"
	TransportExpressAir  = "Express Air"
	TransportSeaFreight  = "Sea Freight"
	TransportRailFreight = "Rail Freight"
	TransportRoadFreight = "Road Freight"
)

// Shipment types. Which ones make sense depends on the transport mode.
const (
	ShipmentLCL          = "LCL"
	ShipmentFCL          = "FCL"
	ShipmentExpress      = "Express"
	ShipmentStandard     = "Standard"
	ShipmentBulk         = "Bulk"
	ShipmentFTL          = "FTL"
	ShipmentLTL          = "LTL"
	ShipmentConsolidated = "Consolidated"
)

// Package types.
const (
	PackageBox       = "Box"
	PackageEnvelope  = "Envelope"
	PackagePallet    = "Pallet"
	PackageCrate     = "Crate"
	PackageDrum      = "Drum"
	PackageContainer = "Container"
)

// FamilyOf maps a free-form transport mode to its family. "express" and
// "courier" only mean air when no other mode is named.
func FamilyOf(mode string) ModeFamily {
	m := strings.ToLower(mode)
	switch {
	case strings.Contains(m, "air"):
		return ModeAir
	case strings.Contains(m, "sea"), strings.Contains(m, "ocean"):
		return ModeSea
	case strings.Contains(m, "rail"), strings.Contains(m, "train"):
		return ModeRail
	case strings.Contains(m, "road"), strings.Contains(m, "truck"):
		return ModeRoad
	case strings.Contains(m, "express"), strings.Contains(m, "courier"):
		return ModeAir
	default:
		return ModeUnknown
	}
}

// ProductDetails describes the goods being imported. Value is the unit price.
type ProductDetails struct {
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	HSCode             string  `json:"hs_code"`
	OriginCountry      string  `json:"origin_country"`
	DestinationCountry string  `json:"destination_country"`
	Value              float64 `json:"value"`
}

// Dimensions of the shipment. Unit defaults to centimetres when empty.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// ShippingDetails describes how the goods travel. Weight is the total
// shipment weight in kilograms.
type ShippingDetails struct {
	Quantity      int        `json:"quantity"`
	TransportMode string     `json:"transport_mode"`
	ShipmentType  string     `json:"shipment_type"`
	PackageType   string     `json:"package_type"`
	Weight        float64    `json:"weight"`
	Dimensions    Dimensions `json:"dimensions"`
}

var unitToCm = map[string]float64{
	"":   1,
	"cm": 1,
	"mm": 0.1,
	"m":  100,
	"in": 2.54,
}

// VolumeCm3 returns the volume in cubic centimetres.
func (d Dimensions) VolumeCm3() float64 {
	f, ok := unitToCm[strings.ToLower(d.Unit)]
	if !ok {
		f = 1
	}
	return d.Length * f * d.Width * f * d.Height * f
}

// VolumeM3 returns the volume in cubic metres.
func (d Dimensions) VolumeM3() float64 {
	return d.VolumeCm3() / 1_000_000
}

func (d Dimensions) validate() error {
	if _, ok := unitToCm[strings.ToLower(d.Unit)]; !ok {
		return invalid("dimensions.unit", "unsupported unit %q", d.Unit)
	}
	sides := []struct {
		name string
		v    float64
	}{{"length", d.Length}, {"width", d.Width}, {"height", d.Height}}
	for _, s := range sides {
		if !positive(s.v) {
			return invalid("dimensions."+s.name, "must be greater than 0")
		}
	}
	return nil
}

// Validate rejects product input that cannot be priced.
func (p ProductDetails) Validate() error {
	if !positive(p.Value) {
		return invalid("value", "must be greater than 0")
	}
	if strings.TrimSpace(p.OriginCountry) == "" {
		return invalid("origin_country", "is required")
	}
	if strings.TrimSpace(p.DestinationCountry) == "" {
		return invalid("destination_country", "is required")
	}
	return nil
}

// Validate rejects shipping input that cannot be priced.
func (s ShippingDetails) Validate() error {
	if s.Quantity <= 0 {
		return invalid("quantity", "must be greater than 0")
	}
	if !positive(s.Weight) {
		return invalid("weight", "must be greater than 0")
	}
	return s.Dimensions.validate()
}

// NormalizeCountry upper-cases and trims a country code.
func NormalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, fmt.Sprintf(format, args...))
}
