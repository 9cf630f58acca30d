package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/99minutos/landed-cost/internal/api/metrics"
	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

type job struct {
	ctx   context.Context
	index int
	input ports.CalculateCostsInput
	out   chan<- ports.BatchItemResult
}

// Pool runs batch landed cost calculations on a fixed set of workers. Items
// are sharded by HS code and trade lane, so repeated items for one lane run
// in sequence and all but the first read their duty rate from the cache.
type Pool struct {
	workers []chan job
	service ports.CostService
	log     zerolog.Logger
}

// NewPool creates a Pool with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewPool(numWorkers int, service ports.CostService, log zerolog.Logger) *Pool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	p := &Pool{
		workers: make([]chan job, numWorkers),
		service: service,
		log:     log,
	}
	for i := range p.workers {
		p.workers[i] = make(chan job, channelBuffer)
	}
	return p
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
// Calculate blocks until Start has been called.
func (p *Pool) Start(ctx context.Context) {
	for i, ch := range p.workers {
		go p.runWorker(ctx, i, ch)
	}
}

// Calculate runs every input and returns one result per input, in input
// order. A failing item carries its own error; the batch only fails as a
// whole when ctx ends first.
func (p *Pool) Calculate(ctx context.Context, inputs []ports.CalculateCostsInput) ([]ports.BatchItemResult, error) {
	out := make(chan ports.BatchItemResult, len(inputs))

	for i, in := range inputs {
		idx := p.shardIndex(in.Product)
		select {
		case p.workers[idx] <- job{ctx: ctx, index: i, input: in, out: out}:
			metrics.BatchQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(p.workers[idx])))
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	results := make([]ports.BatchItemResult, len(inputs))
	for range inputs {
		select {
		case r := <-out:
			results[r.Index] = r
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return results, nil
}

// shardIndex maps an item's HS code and lane deterministically to a worker.
func (p *Pool) shardIndex(product domain.ProductDetails) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(product.HSCode))
	_, _ = h.Write([]byte(domain.NormalizeCountry(product.OriginCountry)))
	_, _ = h.Write([]byte(domain.NormalizeCountry(product.DestinationCountry)))
	return int(h.Sum32() % uint32(len(p.workers)))
}

func (p *Pool) runWorker(ctx context.Context, id int, ch <-chan job) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			metrics.BatchQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			j.out <- p.process(id, j)
		}
	}
}

func (p *Pool) process(id int, j job) ports.BatchItemResult {
	if err := j.ctx.Err(); err != nil {
		return ports.BatchItemResult{Index: j.index, Err: err}
	}
	res, err := p.service.CalculateCosts(j.ctx, j.input.Product, j.input.Shipping)
	if err != nil {
		p.log.Warn().Err(err).
			Int("item", j.index).
			Int("worker_id", id).
			Msg("batch item failed")
	}
	return ports.BatchItemResult{Index: j.index, Result: res, Err: err}
}
