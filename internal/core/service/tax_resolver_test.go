package service

import (
	"context"
	"testing"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

func TestTaxResolver_ProviderTier(t *testing.T) {
	provider := &stubTaxProvider{quote: ports.TaxRateQuote{Rate: 9, Description: "reduced rate"}}
	r := NewTaxResolver(TaxResolverDeps{Provider: provider, Logger: discardLogger})

	got := r.ResolveTaxRate(context.Background(), "8517.62", "cn", 1065)
	if got.Source != domain.SourceAPI || got.Rate != 9 {
		t.Fatalf("expected API 9%%, got %+v", got)
	}
	if got.Name != "Value Added Tax" {
		t.Errorf("missing name should default, got %q", got.Name)
	}
	if got.Description != "reduced rate" {
		t.Errorf("description must pass through, got %q", got.Description)
	}
	if got.Amount != 95.85 {
		t.Errorf("expected 1065 x 9%% = 95.85, got %v", got.Amount)
	}
}

func TestTaxResolver_ProviderFailureUsesTable(t *testing.T) {
	provider := &stubTaxProvider{err: errUnavailable}
	r := NewTaxResolver(TaxResolverDeps{Provider: provider, Logger: discardLogger})

	got := r.ResolveTaxRate(context.Background(), "8517.62", "CN", 1065)
	if got.Source != domain.SourceDatabase || got.Rate != 13 {
		t.Fatalf("expected CN table rate 13%%, got %+v", got)
	}
	if got.Amount != 138.45 {
		t.Errorf("expected 138.45, got %v", got.Amount)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}
}

func TestStaticTaxRate_UnknownCountry(t *testing.T) {
	got := StaticTaxRate("ZZ")
	if got.Rate != 10 || got.Name != "Value Added Tax" || got.Source != domain.SourceDefault {
		t.Errorf("unexpected default %+v", got)
	}
}

func TestStaticTaxRate_ZeroRateCountry(t *testing.T) {
	r := NewTaxResolver(TaxResolverDeps{Logger: discardLogger})
	got := r.ResolveTaxRate(context.Background(), "", "US", 500)
	if got.Rate != 0 || got.Amount != 0 || got.Source != domain.SourceDatabase {
		t.Errorf("US import tax should be 0, got %+v", got)
	}
}

type stubTaxReference struct {
	rates map[string]ports.TaxRateQuote
}

func (s *stubTaxReference) LookupTaxRate(_ context.Context, country string) (ports.TaxRateQuote, error) {
	q, ok := s.rates[country]
	if !ok {
		return ports.TaxRateQuote{}, domain.ErrRateNotFound
	}
	return q, nil
}

func TestTaxResolver_ReferenceOverridesTable(t *testing.T) {
	ref := &stubTaxReference{rates: map[string]ports.TaxRateQuote{"CN": {Rate: 9, Name: "VAT (reduced)"}}}
	r := NewTaxResolver(TaxResolverDeps{Provider: &stubTaxProvider{err: errUnavailable}, Reference: ref, Logger: discardLogger})

	got := r.ResolveTaxRate(context.Background(), "", "CN", 100)
	if got.Rate != 9 || got.Name != "VAT (reduced)" || got.Source != domain.SourceDatabase {
		t.Errorf("expected reference rate, got %+v", got)
	}

	// countries missing from the store fall back to the built-in table
	got = r.ResolveTaxRate(context.Background(), "", "DE", 100)
	if got.Rate != 19 || got.Amount != 19 {
		t.Errorf("expected DE table rate 19%%, got %+v", got)
	}
}
