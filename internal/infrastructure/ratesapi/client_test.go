package ratesapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{BaseURL: srv.URL, RequestsPerSecond: 1000})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestClient_DutyRate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tariffs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("hs_code") != "8517.62" || q.Get("origin") != "US" || q.Get("destination") != "CN" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = w.Write([]byte(`{"rate": 3.5, "description": "MFN"}`))
	}))

	got, err := c.DutyRate(context.Background(), "8517.62", "US", "CN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Rate != 3.5 || got.Description != "MFN" {
		t.Errorf("unexpected rate %+v", got)
	}
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	if _, err := c.DutyRate(context.Background(), "1", "US", "CN"); !errors.Is(err, domain.ErrRateNotFound) {
		t.Errorf("expected ErrRateNotFound, got %v", err)
	}
}

func TestClient_ServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))

	_, err := c.TaxRate(context.Background(), "", "DE")
	if !IsStatus(err, http.StatusBadGateway) {
		t.Fatalf("expected 502 StatusError, got %v", err)
	}
	if !strings.Contains(err.Error(), "upstream exploded") {
		t.Errorf("error should carry the body, got %q", err.Error())
	}
}

func TestClient_MissingRateIsAnError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name": "VAT"}`))
	}))

	if _, err := c.TaxRate(context.Background(), "", "DE"); err == nil {
		t.Error("a response without a rate must not read as 0%")
	}
}

func TestClient_Quote(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/quotes" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var body quoteRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body.WeightKg != 5 || body.Dimensions.Unit != "cm" || body.Quantity != 10 {
			t.Errorf("unexpected body %+v", body)
		}
		_, _ = w.Write([]byte(`{"cost": 88.2, "carrier": "DHL Express"}`))
	}))

	got, err := c.Quote(context.Background(), ports.CarrierQuoteRequest{
		Origin: "US", Destination: "CN", WeightKg: 5, Quantity: 10,
		Dimensions: domain.Dimensions{Length: 20, Width: 20, Height: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cost != 88.2 || got.Carrier != "DHL Express" {
		t.Errorf("unexpected quote %+v", got)
	}
}

func TestClient_BaseRate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/freight-rates/sea_fcl" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"rate_per_kg": 0.18}`))
	}))

	got, err := c.BaseRate(context.Background(), "sea_fcl")
	if err != nil || got != 0.18 {
		t.Errorf("want 0.18, got %v %v", got, err)
	}
}

func TestClient_ClientCredentials(t *testing.T) {
	var tokenCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1/freight-rates/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"rate_per_kg": 5}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL:      srv.URL,
		ClientID:     "landed-cost",
		ClientSecret: "s3cret",
		TokenURL:     srv.URL + "/oauth/token",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := c.BaseRate(context.Background(), "air_standard"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if n := tokenCalls.Load(); n != 1 {
		t.Errorf("token should be fetched once and reused, got %d fetches", n)
	}
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "not a url"}); err == nil {
		t.Error("expected error for invalid base url")
	}
}
