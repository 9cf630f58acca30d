package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/landed-cost/internal/api/metrics"
	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
	"github.com/99minutos/landed-cost/internal/pkg/money"
)

const (
	defaultTaxRate = 10.0
	defaultTaxName = "Value Added Tax"
)

type consumptionTax struct {
	rate float64
	name string
}

var countryTaxRates = map[string]consumptionTax{
	"US": {0, "Sales Tax (state level, not collected at import)"},
	"CA": {5, "Goods and Services Tax"},
	"MX": {16, "Impuesto al Valor Agregado"},
	"BR": {17, "ICMS"},
	"AR": {21, "Impuesto al Valor Agregado"},
	"CL": {19, "Impuesto al Valor Agregado"},
	"CN": {13, "Value Added Tax"},
	"JP": {10, "Consumption Tax"},
	"KR": {10, "Value Added Tax"},
	"IN": {18, "Integrated Goods and Services Tax"},
	"SG": {9, "Goods and Services Tax"},
	"MY": {10, "Sales Tax"},
	"TH": {7, "Value Added Tax"},
	"VN": {10, "Value Added Tax"},
	"ID": {11, "Pajak Pertambahan Nilai"},
	"PH": {12, "Value Added Tax"},
	"AU": {10, "Goods and Services Tax"},
	"NZ": {15, "Goods and Services Tax"},
	"GB": {20, "Value Added Tax"},
	"DE": {19, "Mehrwertsteuer"},
	"FR": {20, "Taxe sur la Valeur Ajoutée"},
	"IT": {22, "Imposta sul Valore Aggiunto"},
	"ES": {21, "Impuesto sobre el Valor Añadido"},
	"NL": {21, "Belasting over de Toegevoegde Waarde"},
	"BE": {21, "Value Added Tax"},
	"PL": {23, "Value Added Tax"},
	"SE": {25, "Mervärdesskatt"},
	"IE": {23, "Value Added Tax"},
	"CH": {8.1, "Mehrwertsteuer"},
	"NO": {25, "Merverdiavgift"},
	"TR": {20, "Katma Değer Vergisi"},
	"RU": {20, "Value Added Tax"},
	"AE": {5, "Value Added Tax"},
	"SA": {15, "Value Added Tax"},
	"ZA": {15, "Value Added Tax"},
	"NG": {7.5, "Value Added Tax"},
	"EG": {14, "Value Added Tax"},
	"KE": {16, "Value Added Tax"},
}

// TaxResolverDeps wires the tax tiers. Provider and Reference may be nil.
type TaxResolverDeps struct {
	Provider    ports.TaxRateProvider
	Reference   ports.TaxReferenceStore
	TierTimeout time.Duration
	Logger      zerolog.Logger
}

// TaxResolver resolves the destination consumption tax on a dutiable value.
type TaxResolver struct {
	provider  ports.TaxRateProvider
	reference ports.TaxReferenceStore
	timeout   time.Duration
	log       zerolog.Logger
}

func NewTaxResolver(deps TaxResolverDeps) *TaxResolver {
	return &TaxResolver{
		provider:  deps.Provider,
		reference: deps.Reference,
		timeout:   deps.TierTimeout,
		log:       deps.Logger,
	}
}

// ResolveTaxRate returns the rate and the amount owed on dutiableValue
// (product cost plus duty).
func (r *TaxResolver) ResolveTaxRate(ctx context.Context, hsCode, destination string, dutiableValue float64) domain.TaxRate {
	destination = domain.NormalizeCountry(destination)

	tax, ok := r.fromProvider(ctx, hsCode, destination)
	if !ok {
		tax, ok = r.fromReference(ctx, destination)
	}
	if !ok {
		tax = StaticTaxRate(destination)
	}
	tax.Amount = money.ApplyRate(dutiableValue, tax.Rate)

	metrics.TierResolutionsTotal.WithLabelValues("tax", tax.Source).Inc()
	return tax
}

func (r *TaxResolver) fromProvider(ctx context.Context, hsCode, destination string) (domain.TaxRate, bool) {
	if r.provider == nil {
		return domain.TaxRate{}, false
	}
	quote, err := attempt(ctx, r.timeout, func(ctx context.Context) (ports.TaxRateQuote, error) {
		return r.provider.TaxRate(ctx, hsCode, destination)
	})
	if err == nil && !validRate(quote.Rate) {
		err = fmt.Errorf("provider returned unusable rate %v", quote.Rate)
	}
	if err != nil {
		metrics.TierFailuresTotal.WithLabelValues("tax", "api").Inc()
		r.log.Debug().Err(err).Str("destination", destination).Msg("tax api tier failed")
		return domain.TaxRate{}, false
	}

	name := quote.Name
	if name == "" {
		name = defaultTaxName
	}
	return domain.TaxRate{
		Rate:        quote.Rate,
		Name:        name,
		Description: quote.Description,
		Source:      domain.SourceAPI,
	}, true
}

func (r *TaxResolver) fromReference(ctx context.Context, destination string) (domain.TaxRate, bool) {
	if r.reference == nil {
		return domain.TaxRate{}, false
	}
	quote, err := attempt(ctx, r.timeout, func(ctx context.Context) (ports.TaxRateQuote, error) {
		return r.reference.LookupTaxRate(ctx, destination)
	})
	if err == nil && !validRate(quote.Rate) {
		err = fmt.Errorf("reference returned unusable rate %v", quote.Rate)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrRateNotFound) {
			metrics.TierFailuresTotal.WithLabelValues("tax", "database").Inc()
			r.log.Debug().Err(err).Str("destination", destination).Msg("tax reference tier failed")
		}
		return domain.TaxRate{}, false
	}

	name := quote.Name
	if name == "" {
		name = defaultTaxName
	}
	return domain.TaxRate{
		Rate:        quote.Rate,
		Name:        name,
		Description: quote.Description,
		Source:      domain.SourceDatabase,
	}, true
}

// StaticTaxRate looks a country up in the built-in table. Unknown countries
// get the 10% default.
func StaticTaxRate(country string) domain.TaxRate {
	country = domain.NormalizeCountry(country)
	if t, ok := countryTaxRates[country]; ok {
		return domain.TaxRate{
			Rate:        t.rate,
			Name:        t.name,
			Description: fmt.Sprintf("%s (%s) at %.1f%%", t.name, country, t.rate),
			Source:      domain.SourceDatabase,
		}
	}
	return domain.TaxRate{
		Rate:        defaultTaxRate,
		Name:        defaultTaxName,
		Description: defaultTaxName,
		Source:      domain.SourceDefault,
	}
}
