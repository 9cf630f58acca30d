package refdata

import (
	"context"
	"sync"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

// Store is an in-memory duty and tax reference table.
type Store struct {
	mu   sync.RWMutex
	duty map[string]domain.DutyRate
	tax  map[string]ports.TaxRateQuote
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		duty: make(map[string]domain.DutyRate),
		tax:  make(map[string]ports.TaxRateQuote),
	}
}

// NewDefaultStore returns a store preloaded with the bundled tables.
func NewDefaultStore() *Store {
	s := NewStore()
	// in-memory upserts cannot fail
	_, _, _ = Seed(context.Background(), s, s)
	return s
}

func (s *Store) LookupDutyRate(_ context.Context, key string) (domain.DutyRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.duty[key]
	if !ok {
		return domain.DutyRate{}, domain.ErrRateNotFound
	}
	return r, nil
}

func (s *Store) LookupTaxRate(_ context.Context, country string) (ports.TaxRateQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.tax[domain.NormalizeCountry(country)]
	if !ok {
		return ports.TaxRateQuote{}, domain.ErrRateNotFound
	}
	return q, nil
}

func (s *Store) UpsertDutyRate(_ context.Context, key string, rate domain.DutyRate) error {
	s.mu.Lock()
	s.duty[key] = domain.DutyRate{Rate: rate.Rate, Description: rate.Description}
	s.mu.Unlock()
	return nil
}

func (s *Store) UpsertTaxRate(_ context.Context, country string, quote ports.TaxRateQuote) error {
	s.mu.Lock()
	s.tax[domain.NormalizeCountry(country)] = quote
	s.mu.Unlock()
	return nil
}
