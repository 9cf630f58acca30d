package service

import (
	"context"
	"fmt"
	"time"
)

const defaultTierTimeout = 3 * time.Second

// attempt runs one tier call with a deadline. The call runs in its own
// goroutine so a collaborator that ignores ctx still cannot stall the
// cascade; a panic inside the call is reported as an error.
func attempt[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		timeout = defaultTierTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		v   T
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- outcome{err: fmt.Errorf("tier panicked: %v", p)}
			}
		}()
		v, err := fn(ctx)
		ch <- outcome{v: v, err: err}
	}()

	select {
	case out := <-ch:
		return out.v, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
