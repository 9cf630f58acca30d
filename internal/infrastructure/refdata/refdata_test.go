package refdata

import (
	"context"
	"errors"
	"testing"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

func TestDefaultStore_Lookups(t *testing.T) {
	s := NewDefaultStore()
	ctx := context.Background()

	r, err := s.LookupDutyRate(ctx, "CN_8517")
	if err != nil || r.Rate != 3.0 {
		t.Errorf("CN_8517: want 3.0, got %+v %v", r, err)
	}
	if _, err := s.LookupDutyRate(ctx, "ZZ_general"); !errors.Is(err, domain.ErrRateNotFound) {
		t.Errorf("expected ErrRateNotFound, got %v", err)
	}

	q, err := s.LookupTaxRate(ctx, "at")
	if err != nil || q.Rate != 20 {
		t.Errorf("AT tax: want 20, got %+v %v", q, err)
	}
}

func TestStore_Upsert(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_ = s.UpsertDutyRate(ctx, "US_general", domain.DutyRate{Rate: 3, Source: "ignored"})
	_ = s.UpsertDutyRate(ctx, "US_general", domain.DutyRate{Rate: 4})
	r, _ := s.LookupDutyRate(ctx, "US_general")
	if r.Rate != 4 || r.Source != "" {
		t.Errorf("upsert must overwrite and not keep a source, got %+v", r)
	}

	_ = s.UpsertTaxRate(ctx, "us", ports.TaxRateQuote{Rate: 7})
	if q, err := s.LookupTaxRate(ctx, "US"); err != nil || q.Rate != 7 {
		t.Errorf("tax upsert: got %+v %v", q, err)
	}
}

func TestSeed_Counts(t *testing.T) {
	s := NewStore()
	d, tx, err := Seed(context.Background(), s, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != len(DefaultDutyRates()) || tx != 0 {
		t.Errorf("expected %d duty rows and no tax rows, got %d/%d", len(DefaultDutyRates()), d, tx)
	}
}

func TestDefaultTables_NonNegative(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range DefaultDutyRates() {
		if e.Rate < 0 {
			t.Errorf("%s has negative rate", e.Key)
		}
		if seen[e.Key] {
			t.Errorf("duplicate key %s", e.Key)
		}
		seen[e.Key] = true
	}
	for _, e := range DefaultTaxRates() {
		if e.Rate < 0 {
			t.Errorf("%s has negative rate", e.Country)
		}
	}
}

func TestRateCard(t *testing.T) {
	c := NewRateCard(map[string]float64{"SEA_FCL": 0.2})
	ctx := context.Background()

	if r, err := c.BaseRate(ctx, "sea_fcl"); err != nil || r != 0.2 {
		t.Errorf("override: want 0.2, got %v %v", r, err)
	}
	if r, err := c.BaseRate(ctx, "Air_Standard"); err != nil || r != 5.0 {
		t.Errorf("default: want 5.0, got %v %v", r, err)
	}
	if _, err := c.BaseRate(ctx, "hyperloop"); !errors.Is(err, domain.ErrRateNotFound) {
		t.Errorf("expected ErrRateNotFound, got %v", err)
	}
	c = NewRateCard(map[string]float64{"Hyperloop": 12})
	if r, _ := c.BaseRate(ctx, "hyperloop"); r != 12 {
		t.Errorf("new rate type: want 12, got %v", r)
	}
}
