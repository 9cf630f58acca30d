// Package sqlite serves duty and tax reference data from a local SQLite file,
// for offline estimates without MongoDB.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

//go:embed schema.sql
var schemaSQL string

// ReferenceStore implements the duty and tax reference ports on SQLite.
type ReferenceStore struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(path string) (*ReferenceStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &ReferenceStore{db: db}, nil
}

func (s *ReferenceStore) Close() error {
	return s.db.Close()
}

func (s *ReferenceStore) LookupDutyRate(ctx context.Context, key string) (domain.DutyRate, error) {
	var r domain.DutyRate
	err := s.db.QueryRowContext(ctx, `
		SELECT rate, description FROM duty_rates WHERE key = ?
	`, key).Scan(&r.Rate, &r.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DutyRate{}, domain.ErrRateNotFound
	}
	if err != nil {
		return domain.DutyRate{}, fmt.Errorf("query duty rate %s: %w", key, err)
	}
	return r, nil
}

func (s *ReferenceStore) UpsertDutyRate(ctx context.Context, key string, rate domain.DutyRate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO duty_rates (key, rate, description) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			rate = excluded.rate,
			description = excluded.description,
			updated_at = CURRENT_TIMESTAMP
	`, key, rate.Rate, rate.Description)
	if err != nil {
		return fmt.Errorf("upsert duty rate %s: %w", key, err)
	}
	return nil
}

func (s *ReferenceStore) LookupTaxRate(ctx context.Context, country string) (ports.TaxRateQuote, error) {
	country = domain.NormalizeCountry(country)
	var q ports.TaxRateQuote
	err := s.db.QueryRowContext(ctx, `
		SELECT rate, name, description FROM tax_rates WHERE country = ?
	`, country).Scan(&q.Rate, &q.Name, &q.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.TaxRateQuote{}, domain.ErrRateNotFound
	}
	if err != nil {
		return ports.TaxRateQuote{}, fmt.Errorf("query tax rate %s: %w", country, err)
	}
	return q, nil
}

func (s *ReferenceStore) UpsertTaxRate(ctx context.Context, country string, quote ports.TaxRateQuote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tax_rates (country, rate, name, description) VALUES (?, ?, ?, ?)
		ON CONFLICT(country) DO UPDATE SET
			rate = excluded.rate,
			name = excluded.name,
			description = excluded.description,
			updated_at = CURRENT_TIMESTAMP
	`, domain.NormalizeCountry(country), quote.Rate, quote.Name, quote.Description)
	if err != nil {
		return fmt.Errorf("upsert tax rate %s: %w", country, err)
	}
	return nil
}

// Ping reports whether the database is usable.
func (s *ReferenceStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
