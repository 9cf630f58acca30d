package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func validShipping() ShippingDetails {
	return ShippingDetails{
		Quantity:      1,
		TransportMode: TransportSeaFreight,
		Weight:        12,
		Dimensions:    Dimensions{Length: 40, Width: 30, Height: 20, Unit: "cm"},
	}
}

func TestProductDetails_Validate(t *testing.T) {
	ok := ProductDetails{Value: 10, OriginCountry: "US", DestinationCountry: "MX"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name  string
		p     ProductDetails
		field string
	}{
		{"zero value", ProductDetails{Value: 0, OriginCountry: "US", DestinationCountry: "MX"}, "value"},
		{"NaN value", ProductDetails{Value: math.NaN(), OriginCountry: "US", DestinationCountry: "MX"}, "value"},
		{"blank origin", ProductDetails{Value: 1, OriginCountry: "  ", DestinationCountry: "MX"}, "origin_country"},
		{"missing destination", ProductDetails{Value: 1, OriginCountry: "US"}, "destination_country"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error should name %q, got %q", tc.field, err.Error())
			}
		})
	}
}

func TestShippingDetails_Validate(t *testing.T) {
	if err := validShipping().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*ShippingDetails)
		field  string
	}{
		{"zero quantity", func(s *ShippingDetails) { s.Quantity = 0 }, "quantity"},
		{"infinite weight", func(s *ShippingDetails) { s.Weight = math.Inf(1) }, "weight"},
		{"negative width", func(s *ShippingDetails) { s.Dimensions.Width = -1 }, "dimensions.width"},
		{"first bad side wins", func(s *ShippingDetails) {
			s.Dimensions.Length = 0
			s.Dimensions.Height = 0
		}, "dimensions.length"},
		{"unknown unit", func(s *ShippingDetails) { s.Dimensions.Unit = "ft" }, "dimensions.unit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validShipping()
			tc.mutate(&s)
			err := s.Validate()
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error should name %q, got %q", tc.field, err.Error())
			}
		})
	}
}

func TestDimensions_Volume(t *testing.T) {
	d := Dimensions{Length: 1, Width: 0.5, Height: 0.2, Unit: "m"}
	if got := d.VolumeCm3(); math.Abs(got-100000) > 1e-6 {
		t.Errorf("VolumeCm3: want 100000, got %v", got)
	}
	if got := d.VolumeM3(); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("VolumeM3: want 0.1, got %v", got)
	}
	if got := (Dimensions{Length: 10, Width: 10, Height: 10}).VolumeCm3(); got != 1000 {
		t.Errorf("empty unit is centimetres: want 1000, got %v", got)
	}
}

func TestFamilyOf(t *testing.T) {
	cases := map[string]ModeFamily{
		TransportAirFreight:  ModeAir,
		TransportExpressAir:  ModeAir,
		"Courier":            ModeAir,
		"Express":            ModeAir,
		"Road Express":       ModeRoad,
		"Express Truck":      ModeRoad,
		"Rail Express":       ModeRail,
		"Sea Courier":        ModeSea,
		TransportSeaFreight:  ModeSea,
		"Ocean":              ModeSea,
		TransportRailFreight: ModeRail,
		"truck":              ModeRoad,
		"Teleport":           ModeUnknown,
	}
	for mode, want := range cases {
		if got := FamilyOf(mode); got != want {
			t.Errorf("FamilyOf(%q) = %q, want %q", mode, got, want)
		}
	}
}
