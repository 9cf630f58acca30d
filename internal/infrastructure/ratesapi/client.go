// Package ratesapi is the HTTP client for the external rates service. One
// client serves tariffs, tax rates, carrier quotes and aggregator freight
// rates.
package ratesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	defaultRPS     = 20
	maxErrorBody   = 512
)

// Config holds rates service connection settings. OAuth2 client credentials
// are used when ClientID is set.
type Config struct {
	BaseURL           string
	ClientID          string
	ClientSecret      string
	TokenURL          string
	Scopes            []string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	// HTTPClient is the transport used for API and token calls; nil uses a
	// client with Timeout.
	HTTPClient *http.Client
}

// Client implements DutyRateProvider, TaxRateProvider, CarrierRateProvider
// and FreightRateSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var (
	_ ports.DutyRateProvider    = (*Client)(nil)
	_ ports.TaxRateProvider     = (*Client)(nil)
	_ ports.CarrierRateProvider = (*Client)(nil)
	_ ports.FreightRateSource   = (*Client)(nil)
)

// NewClient builds a client. It fails only on an unusable base URL.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.ParseRequestURI(base); err != nil || base == "" {
		return nil, fmt.Errorf("ratesapi: invalid base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	if cfg.ClientID != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		authed := cc.Client(ctx)
		authed.Timeout = timeout
		httpClient = authed
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(rps)
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

type tariffResponse struct {
	Rate        *float64 `json:"rate"`
	Description string   `json:"description"`
}

// DutyRate calls GET /v1/tariffs.
func (c *Client) DutyRate(ctx context.Context, hsCode, origin, destination string) (domain.DutyRate, error) {
	q := url.Values{"hs_code": {hsCode}, "origin": {origin}, "destination": {destination}}
	var resp tariffResponse
	if err := c.do(ctx, http.MethodGet, "/v1/tariffs?"+q.Encode(), nil, &resp); err != nil {
		return domain.DutyRate{}, err
	}
	if resp.Rate == nil {
		return domain.DutyRate{}, fmt.Errorf("ratesapi: tariff response without rate")
	}
	return domain.DutyRate{Rate: *resp.Rate, Description: resp.Description}, nil
}

type taxResponse struct {
	Rate        *float64 `json:"rate"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// TaxRate calls GET /v1/tax-rates.
func (c *Client) TaxRate(ctx context.Context, hsCode, country string) (ports.TaxRateQuote, error) {
	q := url.Values{"hs_code": {hsCode}, "country": {country}}
	var resp taxResponse
	if err := c.do(ctx, http.MethodGet, "/v1/tax-rates?"+q.Encode(), nil, &resp); err != nil {
		return ports.TaxRateQuote{}, err
	}
	if resp.Rate == nil {
		return ports.TaxRateQuote{}, fmt.Errorf("ratesapi: tax response without rate")
	}
	return ports.TaxRateQuote{Rate: *resp.Rate, Name: resp.Name, Description: resp.Description}, nil
}

type quoteRequest struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	WeightKg      float64    `json:"weight_kg"`
	Dimensions    dimensions `json:"dimensions"`
	TransportMode string     `json:"transport_mode"`
	ShipmentType  string     `json:"shipment_type,omitempty"`
	PackageType   string     `json:"package_type,omitempty"`
	Quantity      int        `json:"quantity"`
}

type dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

type quoteResponse struct {
	Cost    *float64 `json:"cost"`
	Carrier string   `json:"carrier"`
}

// Quote calls POST /v1/quotes.
func (c *Client) Quote(ctx context.Context, req ports.CarrierQuoteRequest) (ports.CarrierQuote, error) {
	unit := req.Dimensions.Unit
	if unit == "" {
		unit = "cm"
	}
	body := quoteRequest{
		Origin:        req.Origin,
		Destination:   req.Destination,
		WeightKg:      req.WeightKg,
		Dimensions:    dimensions{req.Dimensions.Length, req.Dimensions.Width, req.Dimensions.Height, unit},
		TransportMode: req.TransportMode,
		ShipmentType:  req.ShipmentType,
		PackageType:   req.PackageType,
		Quantity:      req.Quantity,
	}
	var resp quoteResponse
	if err := c.do(ctx, http.MethodPost, "/v1/quotes", body, &resp); err != nil {
		return ports.CarrierQuote{}, err
	}
	if resp.Cost == nil {
		return ports.CarrierQuote{}, fmt.Errorf("ratesapi: quote response without cost")
	}
	return ports.CarrierQuote{Cost: *resp.Cost, Carrier: resp.Carrier}, nil
}

type freightRateResponse struct {
	RatePerKg *float64 `json:"rate_per_kg"`
}

// BaseRate calls GET /v1/freight-rates/{rateType}.
func (c *Client) BaseRate(ctx context.Context, rateType string) (float64, error) {
	var resp freightRateResponse
	if err := c.do(ctx, http.MethodGet, "/v1/freight-rates/"+url.PathEscape(rateType), nil, &resp); err != nil {
		return 0, err
	}
	if resp.RatePerKg == nil {
		return 0, fmt.Errorf("ratesapi: freight rate response without rate_per_kg")
	}
	return *resp.RatePerKg, nil
}

// do sends one request and decodes a 2xx JSON body into out. 404 maps to
// domain.ErrRateNotFound.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("ratesapi: rate limit wait: %w", err)
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("ratesapi: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("ratesapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ratesapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrRateNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ratesapi: decode response: %w", err)
	}
	return nil
}

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ratesapi: unexpected status %d: %s", e.Code, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
