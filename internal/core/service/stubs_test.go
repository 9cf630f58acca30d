package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errUnavailable = errors.New("provider unavailable")

// ---------------------------------------------------------------------------
// Cache stub
// ---------------------------------------------------------------------------

type stubCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	gets    int
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *stubCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *stubCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *stubCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *stubCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string][]byte{}
	return nil
}

// ---------------------------------------------------------------------------
// Provider stubs
// ---------------------------------------------------------------------------

type stubDutyProvider struct {
	rate  domain.DutyRate
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (p *stubDutyProvider) DutyRate(ctx context.Context, _, _, _ string) (domain.DutyRate, error) {
	p.calls.Add(1)
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return domain.DutyRate{}, ctx.Err()
		}
	}
	return p.rate, p.err
}

// stubReference answers from a key→rate map; missing keys are ErrRateNotFound.
type stubReference struct {
	rates  map[string]float64
	err    error
	looked []string
}

func (s *stubReference) LookupDutyRate(_ context.Context, key string) (domain.DutyRate, error) {
	s.looked = append(s.looked, key)
	if s.err != nil {
		return domain.DutyRate{}, s.err
	}
	r, ok := s.rates[key]
	if !ok {
		return domain.DutyRate{}, domain.ErrRateNotFound
	}
	return domain.DutyRate{Rate: r, Description: key}, nil
}

type stubTaxProvider struct {
	quote ports.TaxRateQuote
	err   error
	calls int
}

func (p *stubTaxProvider) TaxRate(context.Context, string, string) (ports.TaxRateQuote, error) {
	p.calls++
	return p.quote, p.err
}

type stubCarrier struct {
	quote   ports.CarrierQuote
	err     error
	panics  bool
	calls   int
	lastReq ports.CarrierQuoteRequest
}

func (c *stubCarrier) Quote(_ context.Context, req ports.CarrierQuoteRequest) (ports.CarrierQuote, error) {
	c.calls++
	c.lastReq = req
	if c.panics {
		panic("carrier exploded")
	}
	return c.quote, c.err
}

type stubFreight struct {
	rates    map[string]float64
	err      error
	lastType string
}

func (f *stubFreight) BaseRate(_ context.Context, rateType string) (float64, error) {
	f.lastType = rateType
	if f.err != nil {
		return 0, f.err
	}
	r, ok := f.rates[rateType]
	if !ok {
		return 0, domain.ErrRateNotFound
	}
	return r, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func phoneProduct() domain.ProductDetails {
	return domain.ProductDetails{
		Description:        "Smartphones",
		Category:           "Electronics",
		HSCode:             "8517.62",
		OriginCountry:      "US",
		DestinationCountry: "CN",
		Value:              100,
	}
}

func smallAirShipment() domain.ShippingDetails {
	return domain.ShippingDetails{
		Quantity:      10,
		TransportMode: domain.TransportAirFreight,
		Weight:        5,
		Dimensions:    domain.Dimensions{Length: 20, Width: 20, Height: 10, Unit: "cm"},
	}
}
