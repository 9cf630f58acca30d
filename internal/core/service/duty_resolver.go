package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/99minutos/landed-cost/internal/api/metrics"
	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
	"github.com/99minutos/landed-cost/internal/pkg/money"
)

const DefaultDutyCacheTTL = 24 * time.Hour

// DutyResolverDeps wires the duty tiers. Provider, Reference and Cache are
// optional; a nil tier is skipped.
type DutyResolverDeps struct {
	Provider    ports.DutyRateProvider
	Reference   ports.DutyReferenceStore
	Cache       ports.Cache
	CacheTTL    time.Duration
	TierTimeout time.Duration
	Logger      zerolog.Logger
}

// DutyResolver resolves an ad-valorem duty rate through cache, live API,
// reference table and finally the heuristic model.
type DutyResolver struct {
	provider  ports.DutyRateProvider
	reference ports.DutyReferenceStore
	cache     ports.Cache
	cacheTTL  time.Duration
	timeout   time.Duration
	log       zerolog.Logger
	group     singleflight.Group
}

func NewDutyResolver(deps DutyResolverDeps) *DutyResolver {
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = DefaultDutyCacheTTL
	}
	return &DutyResolver{
		provider:  deps.Provider,
		reference: deps.Reference,
		cache:     deps.Cache,
		cacheTTL:  ttl,
		timeout:   deps.TierTimeout,
		log:       deps.Logger,
	}
}

// DutyCacheKey builds the cache key for a duty lookup.
func DutyCacheKey(hsCode, origin, destination string) string {
	return fmt.Sprintf("duty_%s_%s_%s", strings.TrimSpace(hsCode), origin, destination)
}

// ResolveDutyRate always returns a rate. Category only feeds the model tier.
func (r *DutyResolver) ResolveDutyRate(ctx context.Context, hsCode, origin, destination, category string) domain.DutyRate {
	origin = domain.NormalizeCountry(origin)
	destination = domain.NormalizeCountry(destination)
	key := DutyCacheKey(hsCode, origin, destination)

	if rate, ok := r.fromCache(ctx, key); ok {
		metrics.TierResolutionsTotal.WithLabelValues("duty", rate.Source).Inc()
		return rate
	}

	// The shared lookup outlives any single caller; each caller still
	// stops waiting when its own ctx ends.
	shared := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key+"|"+strings.ToLower(category), func() (any, error) {
		return r.resolveTiers(shared, key, hsCode, origin, destination, category), nil
	})

	var rate domain.DutyRate
	select {
	case res := <-ch:
		rate = res.Val.(domain.DutyRate)
	case <-ctx.Done():
		r.log.Debug().Err(ctx.Err()).Str("key", key).Msg("duty lookup abandoned, using model estimate")
		rate = EstimateDutyRate(category, origin, destination)
	}
	metrics.TierResolutionsTotal.WithLabelValues("duty", rate.Source).Inc()
	return rate
}

func (r *DutyResolver) resolveTiers(ctx context.Context, key, hsCode, origin, destination, category string) domain.DutyRate {
	if rate, ok := r.fromAPI(ctx, hsCode, origin, destination); ok {
		r.store(ctx, key, rate)
		return rate
	}
	if rate, ok := r.fromReference(ctx, hsCode, destination); ok {
		return rate
	}
	return EstimateDutyRate(category, origin, destination)
}

func (r *DutyResolver) fromCache(ctx context.Context, key string) (domain.DutyRate, bool) {
	if r.cache == nil {
		return domain.DutyRate{}, false
	}
	raw, found, err := r.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		r.log.Warn().Err(err).Str("key", key).Msg("duty cache read failed, resolving anyway")
		return domain.DutyRate{}, false
	}
	if !found {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return domain.DutyRate{}, false
	}

	var rate domain.DutyRate
	if err := json.Unmarshal(raw, &rate); err != nil {
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		r.log.Warn().Err(err).Str("key", key).Msg("discarding undecodable duty cache entry")
		_ = r.cache.Delete(ctx, key)
		return domain.DutyRate{}, false
	}
	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	rate.Source = domain.SourceCached
	return rate, true
}

func (r *DutyResolver) store(ctx context.Context, key string, rate domain.DutyRate) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(rate)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.cacheTTL); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("failed to cache duty rate")
	}
}

func (r *DutyResolver) fromAPI(ctx context.Context, hsCode, origin, destination string) (domain.DutyRate, bool) {
	if r.provider == nil {
		return domain.DutyRate{}, false
	}
	rate, err := attempt(ctx, r.timeout, func(ctx context.Context) (domain.DutyRate, error) {
		return r.provider.DutyRate(ctx, hsCode, origin, destination)
	})
	if err == nil && !validRate(rate.Rate) {
		err = fmt.Errorf("provider returned unusable rate %v", rate.Rate)
	}
	if err != nil {
		metrics.TierFailuresTotal.WithLabelValues("duty", "api").Inc()
		r.log.Debug().Err(err).Str("hs_code", hsCode).Str("destination", destination).Msg("duty api tier failed")
		return domain.DutyRate{}, false
	}
	rate.Source = domain.SourceAPI
	return rate, true
}

func (r *DutyResolver) fromReference(ctx context.Context, hsCode, destination string) (domain.DutyRate, bool) {
	if r.reference == nil {
		return domain.DutyRate{}, false
	}
	for _, prefix := range hsPrefixes(hsCode) {
		rate, err := r.lookup(ctx, destination+"_"+prefix)
		if err == nil {
			rate.Source = domain.SourceDatabase
			return rate, true
		}
		if !errors.Is(err, domain.ErrRateNotFound) {
			metrics.TierFailuresTotal.WithLabelValues("duty", "database").Inc()
			r.log.Debug().Err(err).Str("destination", destination).Msg("duty reference tier failed")
			return domain.DutyRate{}, false
		}
	}

	rate, err := r.lookup(ctx, destination+"_general")
	if err != nil {
		metrics.TierFailuresTotal.WithLabelValues("duty", "database").Inc()
		return domain.DutyRate{}, false
	}
	rate.Source = domain.SourceDatabaseGeneral
	return rate, true
}

func (r *DutyResolver) lookup(ctx context.Context, key string) (domain.DutyRate, error) {
	rate, err := attempt(ctx, r.timeout, func(ctx context.Context) (domain.DutyRate, error) {
		return r.reference.LookupDutyRate(ctx, key)
	})
	if err == nil && !validRate(rate.Rate) {
		return domain.DutyRate{}, fmt.Errorf("reference %s: unusable rate %v", key, rate.Rate)
	}
	return rate, err
}

// hsPrefixes returns the 6, 4 and 2 digit prefixes of an HS code, longest
// first. Separators such as dots are ignored.
func hsPrefixes(hsCode string) []string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, hsCode)

	var out []string
	for _, n := range []int{6, 4, 2} {
		if len(digits) >= n {
			out = append(out, digits[:n])
		}
	}
	return out
}

// EstimateDutyRate is the terminal duty tier. It never fails: an unknown
// category uses the default category rate and an unknown destination is
// left unadjusted.
func EstimateDutyRate(category, origin, destination string) domain.DutyRate {
	origin = domain.NormalizeCountry(origin)
	destination = domain.NormalizeCountry(destination)

	catName := strings.TrimSpace(category)
	base, ok := categoryBaseRates[strings.ToLower(catName)]
	if !ok {
		base = defaultCategoryRate
		catName = defaultCategory
	}
	adjust, ok := countryDutyAdjustments[destination]
	if !ok {
		adjust = 1.0
	}

	rate := base * adjust
	desc := fmt.Sprintf("Estimated from %s base rate %.2f%% adjusted x%.2f for %s", catName, base, adjust, destination)
	if agreement, ok := SharedTradeAgreement(origin, destination); ok {
		rate *= preferentialFactor
		desc += fmt.Sprintf("; %s preferential rate applied", agreement)
	}

	return domain.DutyRate{
		Rate:        money.Round2(rate),
		Source:      domain.SourceModel,
		Description: desc,
	}
}

// SharedTradeAgreement reports the bloc or bilateral agreement covering both
// countries, in either direction.
func SharedTradeAgreement(a, b string) (string, bool) {
	a = domain.NormalizeCountry(a)
	b = domain.NormalizeCountry(b)
	if a == "" || b == "" || a == b {
		return "", false
	}
	for _, bloc := range blocMembership[a] {
		for _, other := range blocMembership[b] {
			if bloc == other {
				return bloc, true
			}
		}
	}
	if name, ok := bilateralAgreements[[2]string{a, b}]; ok {
		return name, true
	}
	if name, ok := bilateralAgreements[[2]string{b, a}]; ok {
		return name, true
	}
	return "", false
}

func validRate(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
