package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

const collectionTaxRates = "tax_rates"

type taxRateDoc struct {
	Country     string    `bson:"country"`
	Rate        float64   `bson:"rate"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// TaxRepository implements ports.TaxReferenceStore using MongoDB.
type TaxRepository struct {
	col *mongo.Collection
}

func NewTaxRepository(db *mongo.Database) *TaxRepository {
	return &TaxRepository{col: db.Collection(collectionTaxRates)}
}

func (r *TaxRepository) LookupTaxRate(ctx context.Context, country string) (ports.TaxRateQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	country = domain.NormalizeCountry(country)
	var doc taxRateDoc
	err := r.col.FindOne(ctx, bson.M{"country": country}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ports.TaxRateQuote{}, domain.ErrRateNotFound
		}
		return ports.TaxRateQuote{}, fmt.Errorf("find tax rate %s: %w", country, err)
	}
	return ports.TaxRateQuote{Rate: doc.Rate, Name: doc.Name, Description: doc.Description}, nil
}

func (r *TaxRepository) UpsertTaxRate(ctx context.Context, country string, quote ports.TaxRateQuote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	country = domain.NormalizeCountry(country)
	update := bson.M{"$set": bson.M{
		"rate":        quote.Rate,
		"name":        quote.Name,
		"description": quote.Description,
		"updated_at":  time.Now().UTC(),
	}}
	_, err := r.col.UpdateOne(ctx, bson.M{"country": country}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert tax rate %s: %w", country, err)
	}
	return nil
}

func (r *TaxRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "country", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
