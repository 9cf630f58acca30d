package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/landed-cost/internal/api/handler"
	"github.com/99minutos/landed-cost/internal/core/ports"
	"github.com/99minutos/landed-cost/internal/core/service"
	"github.com/99minutos/landed-cost/internal/infrastructure/cache"
	mongostore "github.com/99minutos/landed-cost/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/landed-cost/internal/infrastructure/db/redis"
	"github.com/99minutos/landed-cost/internal/infrastructure/db/sqlite"
	"github.com/99minutos/landed-cost/internal/infrastructure/ratesapi"
	"github.com/99minutos/landed-cost/internal/infrastructure/refdata"
	"github.com/99minutos/landed-cost/internal/pkg/config"
)

// engine is the wired landed cost engine plus the resources it owns.
type engine struct {
	cache     ports.Cache
	costs     *service.CostService
	readiness map[string]handler.Pinger
	closers   []func(context.Context) error
}

// Close releases every backend connection in reverse order of creation.
func (e *engine) Close(ctx context.Context) {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i](ctx)
	}
}

type referenceStores struct {
	duty ports.DutyReferenceStore
	tax  ports.TaxReferenceStore
}

// buildEngine connects the configured backends and assembles the resolvers.
func buildEngine(ctx context.Context, cfg *config.Config, picker service.CarrierPicker, log zerolog.Logger) (*engine, error) {
	eng := &engine{readiness: map[string]handler.Pinger{}}

	c, err := eng.openCache(ctx, cfg)
	if err != nil {
		eng.Close(ctx)
		return nil, err
	}
	eng.cache = c

	refs, err := eng.openReference(ctx, cfg, log)
	if err != nil {
		eng.Close(ctx)
		return nil, err
	}

	var (
		dutyAPI    ports.DutyRateProvider
		taxAPI     ports.TaxRateProvider
		carrier    ports.CarrierRateProvider
		aggregator ports.FreightRateSource = refdata.NewRateCard(cfg.FreightRateOverrides)
	)
	if cfg.RatesAPI.BaseURL != "" {
		client, err := ratesapi.NewClient(ratesapi.Config{
			BaseURL:           cfg.RatesAPI.BaseURL,
			ClientID:          cfg.RatesAPI.ClientID,
			ClientSecret:      cfg.RatesAPI.ClientSecret,
			TokenURL:          cfg.RatesAPI.TokenURL,
			Scopes:            cfg.RatesAPI.Scopes,
			Timeout:           cfg.RatesAPI.Timeout,
			RequestsPerSecond: cfg.RatesAPI.RequestsPerSecond,
		})
		if err != nil {
			eng.Close(ctx)
			return nil, err
		}
		dutyAPI, taxAPI, carrier, aggregator = client, client, client, client
		log.Info().Str("base_url", cfg.RatesAPI.BaseURL).Msg("rates API enabled")
	}

	duty := service.NewDutyResolver(service.DutyResolverDeps{
		Provider:    dutyAPI,
		Reference:   refs.duty,
		Cache:       eng.cache,
		CacheTTL:    cfg.DutyCacheTTL,
		TierTimeout: cfg.TierTimeout,
		Logger:      log,
	})
	tax := service.NewTaxResolver(service.TaxResolverDeps{
		Provider:    taxAPI,
		Reference:   refs.tax,
		TierTimeout: cfg.TierTimeout,
		Logger:      log,
	})
	shipping := service.NewShippingResolver(service.ShippingResolverDeps{
		Carrier:     carrier,
		Aggregator:  aggregator,
		PickCarrier: picker,
		TierTimeout: cfg.TierTimeout,
		Logger:      log,
	})
	eng.costs = service.NewCostService(service.CostServiceDeps{
		Duty:     duty,
		Tax:      tax,
		Shipping: shipping,
		Logger:   log,
	})
	return eng, nil
}

func (e *engine) openCache(ctx context.Context, cfg *config.Config) (ports.Cache, error) {
	if cfg.CacheBackend != config.BackendRedis {
		return cache.NewMemory(), nil
	}

	client, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	e.closers = append(e.closers, func(context.Context) error { return client.Close() })
	e.readiness["redis"] = handler.PingerFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	return redisstore.NewCache(client, cfg.Redis.KeyPrefix), nil
}

func (e *engine) openReference(ctx context.Context, cfg *config.Config, log zerolog.Logger) (referenceStores, error) {
	switch cfg.ReferenceBackend {
	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			return referenceStores{}, fmt.Errorf("reference store: %w", err)
		}
		e.closers = append(e.closers, client.Disconnect)
		e.readiness["mongodb"] = handler.PingerFunc(func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		})

		duty := mongostore.NewDutyRepository(db)
		tax := mongostore.NewTaxRepository(db)
		if err := duty.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure duty_rates indexes")
		}
		if err := tax.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure tax_rates indexes")
		}
		return referenceStores{duty: duty, tax: tax}, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return referenceStores{}, fmt.Errorf("reference store: %w", err)
		}
		e.closers = append(e.closers, func(context.Context) error { return store.Close() })
		e.readiness["sqlite"] = store
		return referenceStores{duty: store, tax: store}, nil

	default:
		store := refdata.NewDefaultStore()
		return referenceStores{duty: store, tax: store}, nil
	}
}
