package service

import (
	"testing"

	"github.com/99minutos/landed-cost/internal/core/domain"
)

func TestInsurance(t *testing.T) {
	cases := []struct {
		mode string
		want float64
	}{
		{domain.TransportAirFreight, 5},
		{domain.TransportRoadFreight, 8},
		{domain.TransportRailFreight, 10},
		{domain.TransportSeaFreight, 15},
		{"Teleport", 10},
	}
	for _, tc := range cases {
		if got := Insurance(1000, tc.mode); got != tc.want {
			t.Errorf("%s: want %v, got %v", tc.mode, tc.want, got)
		}
	}
}

func TestCustomsFee(t *testing.T) {
	cases := []struct {
		name        string
		value       float64
		destination string
		want        float64
	}{
		{"floor applies", 1000, "US", 32.71},
		{"percentage between bounds", 50000, "US", 173.2},
		{"cap applies", 200000, "DE", 500},
		{"flat fee", 1000, "ca", 35},
		{"unknown country", 1000, "ZZ", 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CustomsFee(tc.value, tc.destination); got != tc.want {
				t.Errorf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestLastMileDelivery(t *testing.T) {
	small := domain.Dimensions{Length: 20, Width: 20, Height: 10}
	if got := LastMileDelivery("US", 5, small); got != 15 {
		t.Errorf("under both thresholds: want 15, got %v", got)
	}

	large := domain.Dimensions{Length: 100, Width: 100, Height: 50, Unit: "cm"}
	// 15 base + 20 kg over x 0.5 + 0.4 m³ over x 50
	if got := LastMileDelivery("US", 30, large); got != 45 {
		t.Errorf("over both thresholds: want 45, got %v", got)
	}

	if got := LastMileDelivery("ZZ", 1, small); got != 15 {
		t.Errorf("unknown country uses default base: want 15, got %v", got)
	}
}

func TestHandlingFees(t *testing.T) {
	if got := HandlingFees(10, domain.PackageBox); got != 30 {
		t.Errorf("box: want 30, got %v", got)
	}
	if got := HandlingFees(10, domain.PackagePallet); got != 65 {
		t.Errorf("pallet: want 65, got %v", got)
	}
	if got := HandlingFees(1, "container"); got != 175.5 {
		t.Errorf("container: want 175.5, got %v", got)
	}
}
