package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

// stubCostService echoes the product value as the total and rejects
// non-positive values.
type stubCostService struct {
	mu    sync.Mutex
	calls int
	delay time.Duration
}

func (s *stubCostService) CalculateCosts(ctx context.Context, p domain.ProductDetails, _ domain.ShippingDetails) (*domain.CostResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.Value <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return &domain.CostResult{Breakdown: domain.CostBreakdown{TotalLandedCost: p.Value}}, nil
}

func (s *stubCostService) ResolveDutyRate(context.Context, string, string, string, string) domain.DutyRate {
	return domain.DutyRate{}
}

func input(value float64, hs string) ports.CalculateCostsInput {
	return ports.CalculateCostsInput{
		Product: domain.ProductDetails{HSCode: hs, OriginCountry: "US", DestinationCountry: "MX", Value: value},
	}
}

func TestPool_ResultsInInputOrder(t *testing.T) {
	svc := &stubCostService{}
	p := NewPool(4, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	var inputs []ports.CalculateCostsInput
	for i := 1; i <= 50; i++ {
		inputs = append(inputs, input(float64(i), string(rune('A'+i%7))))
	}

	results, err := p.Calculate(ctx, inputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 50 {
		t.Fatalf("expected 50 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Index != i || r.Err != nil || r.Result.Breakdown.TotalLandedCost != float64(i+1) {
			t.Errorf("item %d: unexpected result %+v", i, r)
		}
	}
}

func TestPool_ItemErrorDoesNotAbortBatch(t *testing.T) {
	p := NewPool(2, &stubCostService{}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	results, err := p.Calculate(ctx, []ports.CalculateCostsInput{input(10, "85"), input(-1, "85"), input(30, "61")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(results[1].Err, domain.ErrInvalidInput) {
		t.Errorf("item 1 should carry ErrInvalidInput, got %v", results[1].Err)
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("valid items must succeed: %v / %v", results[0].Err, results[2].Err)
	}
}

func TestPool_ContextCancelled(t *testing.T) {
	svc := &stubCostService{delay: time.Second}
	p := NewPool(1, svc, zerolog.Nop())
	workerCtx, stop := context.WithCancel(context.Background())
	defer stop()
	p.Start(workerCtx)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := p.Calculate(ctx, []ports.CalculateCostsInput{input(1, "85"), input(2, "85")}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestPool_ShardIndexStable(t *testing.T) {
	p := NewPool(8, &stubCostService{}, zerolog.Nop())
	a := p.shardIndex(domain.ProductDetails{HSCode: "8517", OriginCountry: "us", DestinationCountry: "cn"})
	b := p.shardIndex(domain.ProductDetails{HSCode: "8517", OriginCountry: "US", DestinationCountry: "CN"})
	if a != b {
		t.Errorf("same lane must map to the same worker: %d vs %d", a, b)
	}
	if a < 0 || a >= 8 {
		t.Errorf("index out of range: %d", a)
	}
}

func TestNewPool_DefaultWorkers(t *testing.T) {
	p := NewPool(0, &stubCostService{}, zerolog.Nop())
	if len(p.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(p.workers))
	}
}
