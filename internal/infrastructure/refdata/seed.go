// Package refdata holds the default reference tables shipped with the
// engine and an in-memory store that serves them.
package refdata

import (
	"context"
	"fmt"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

// DutyEntry is one row of the duty reference table. Key is
// "{destination}_{hs prefix}" or "{destination}_general".
type DutyEntry struct {
	Key         string
	Rate        float64
	Description string
}

// TaxEntry is one row of the tax reference table.
type TaxEntry struct {
	Country     string
	Rate        float64
	Name        string
	Description string
}

var defaultDutyRates = []DutyEntry{
	{"US_851762", 0, "Machines for the reception, conversion and transmission of data"},
	{"US_8517", 0, "Telephone sets and other apparatus for transmission of voice or data"},
	{"US_8471", 0, "Automatic data processing machines"},
	{"US_85", 2.6, "Electrical machinery and equipment"},
	{"US_61", 14.9, "Apparel, knitted or crocheted"},
	{"US_62", 13.6, "Apparel, not knitted or crocheted"},
	{"US_64", 12.5, "Footwear"},
	{"US_94", 3.2, "Furniture, bedding, lamps"},
	{"US_95", 1.9, "Toys, games and sports requisites"},
	{"US_general", 3.4, "US average MFN applied tariff"},

	{"CN_8517", 3.0, "Telephone sets and other apparatus"},
	{"CN_8471", 0, "Automatic data processing machines (ITA)"},
	{"CN_85", 8.0, "Electrical machinery and equipment"},
	{"CN_61", 16.0, "Apparel, knitted or crocheted"},
	{"CN_62", 16.0, "Apparel, not knitted or crocheted"},
	{"CN_87", 15.0, "Vehicles other than railway"},
	{"CN_general", 7.5, "China average MFN applied tariff"},

	{"MX_85", 5.0, "Electrical machinery and equipment"},
	{"MX_61", 25.0, "Apparel, knitted or crocheted"},
	{"MX_64", 30.0, "Footwear"},
	{"MX_general", 7.1, "Mexico average MFN applied tariff"},

	{"DE_8517", 0, "Telephone sets (ITA)"},
	{"DE_85", 2.2, "Electrical machinery and equipment"},
	{"DE_61", 12.0, "Apparel, knitted or crocheted"},
	{"DE_64", 8.0, "Footwear"},
	{"DE_general", 5.1, "EU common external tariff average"},

	{"GB_85", 2.0, "Electrical machinery and equipment"},
	{"GB_61", 12.0, "Apparel, knitted or crocheted"},
	{"GB_general", 3.9, "UK Global Tariff average"},

	{"JP_85", 0, "Electrical machinery and equipment"},
	{"JP_61", 9.1, "Apparel, knitted or crocheted"},
	{"JP_general", 4.0, "Japan average MFN applied tariff"},

	{"IN_8517", 20.0, "Telephone sets and other apparatus"},
	{"IN_85", 10.0, "Electrical machinery and equipment"},
	{"IN_general", 17.0, "India average MFN applied tariff"},

	{"BR_85", 14.0, "Electrical machinery and equipment"},
	{"BR_general", 13.3, "Mercosur common external tariff average"},

	{"CA_general", 3.8, "Canada average MFN applied tariff"},
	{"AU_general", 2.4, "Australia average MFN applied tariff"},
}

// EU headline VAT rates not covered by the built-in tax table.
var defaultTaxRates = []TaxEntry{
	{"AT", 20, "Umsatzsteuer", "Austrian standard VAT"},
	{"PT", 23, "Imposto sobre o Valor Acrescentado", "Portuguese standard VAT"},
	{"DK", 25, "Merværdiafgift", "Danish standard VAT"},
	{"FI", 25.5, "Arvonlisävero", "Finnish standard VAT"},
	{"GR", 24, "Fóros Prostithémenis Axías", "Greek standard VAT"},
	{"HU", 27, "Általános forgalmi adó", "Hungarian standard VAT"},
	{"CZ", 21, "Daň z přidané hodnoty", "Czech standard VAT"},
	{"RO", 19, "Taxa pe valoarea adăugată", "Romanian standard VAT"},
	{"LU", 17, "Taxe sur la valeur ajoutée", "Luxembourg standard VAT"},
	{"SK", 23, "Daň z pridanej hodnoty", "Slovak standard VAT"},
	{"HR", 25, "Porez na dodanu vrijednost", "Croatian standard VAT"},
	{"UY", 22, "Impuesto al Valor Agregado", "Uruguayan standard VAT"},
	{"CO", 19, "Impuesto al Valor Agregado", "Colombian standard VAT"},
	{"PE", 18, "Impuesto General a las Ventas", "Peruvian general sales tax"},
}

// DefaultDutyRates returns a copy of the bundled duty table.
func DefaultDutyRates() []DutyEntry {
	return append([]DutyEntry(nil), defaultDutyRates...)
}

// DefaultTaxRates returns a copy of the bundled tax table.
func DefaultTaxRates() []TaxEntry {
	return append([]TaxEntry(nil), defaultTaxRates...)
}

// Seed writes the bundled tables through the given writers. Either writer may
// be nil to skip that table.
func Seed(ctx context.Context, duty ports.DutyRateWriter, tax ports.TaxRateWriter) (dutyRows, taxRows int, err error) {
	if duty != nil {
		for _, e := range defaultDutyRates {
			if err := duty.UpsertDutyRate(ctx, e.Key, domain.DutyRate{Rate: e.Rate, Description: e.Description}); err != nil {
				return dutyRows, taxRows, fmt.Errorf("seed duty %s: %w", e.Key, err)
			}
			dutyRows++
		}
	}
	if tax != nil {
		for _, e := range defaultTaxRates {
			q := ports.TaxRateQuote{Rate: e.Rate, Name: e.Name, Description: e.Description}
			if err := tax.UpsertTaxRate(ctx, e.Country, q); err != nil {
				return dutyRows, taxRows, fmt.Errorf("seed tax %s: %w", e.Country, err)
			}
			taxRows++
		}
	}
	return dutyRows, taxRows, nil
}
