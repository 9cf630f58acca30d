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
)

const collectionDutyRates = "duty_rates"

// dutyRateDoc is the stored shape of a duty reference row.
type dutyRateDoc struct {
	Key         string    `bson:"key"`
	Rate        float64   `bson:"rate"`
	Description string    `bson:"description,omitempty"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// DutyRepository implements ports.DutyReferenceStore using MongoDB.
type DutyRepository struct {
	col *mongo.Collection
}

func NewDutyRepository(db *mongo.Database) *DutyRepository {
	return &DutyRepository{col: db.Collection(collectionDutyRates)}
}

// LookupDutyRate fetches the row stored under key, e.g. "CN_8517".
func (r *DutyRepository) LookupDutyRate(ctx context.Context, key string) (domain.DutyRate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc dutyRateDoc
	err := r.col.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.DutyRate{}, domain.ErrRateNotFound
		}
		return domain.DutyRate{}, fmt.Errorf("find duty rate %s: %w", key, err)
	}
	return domain.DutyRate{Rate: doc.Rate, Description: doc.Description}, nil
}

// UpsertDutyRate inserts or replaces the row for key.
func (r *DutyRepository) UpsertDutyRate(ctx context.Context, key string, rate domain.DutyRate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := dutyRateDoc{Key: key, Rate: rate.Rate, Description: rate.Description, UpdatedAt: time.Now().UTC()}
	_, err := r.col.ReplaceOne(ctx, bson.M{"key": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert duty rate %s: %w", key, err)
	}
	return nil
}

// EnsureIndexes creates the unique key index on the duty_rates collection.
func (r *DutyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
