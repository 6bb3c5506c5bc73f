package validate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/constraints/pkg/schema"
)

// Result is the outcome of validating one value in a batch.
type Result struct {
	Index      int
	Violations Violations
	Err        error
}

// ValidateAll validates independent values concurrently and returns one
// Result per value in input order. At most WithConcurrency values are
// checked at once. Values not started before ctx is cancelled report the
// context error.
func (v *Validator) ValidateAll(ctx context.Context, values []schema.Value, opts ...CallOption) []Result {
	results := make([]Result, len(values))

	// goroutines always return nil so one failing value does not cancel the rest
	var eg errgroup.Group
	eg.SetLimit(v.concurrency)
	for i, value := range values {
		eg.Go(func() error {
			results[i].Index = i
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Violations, results[i].Err = v.validate(ctx, nil, value, opts)
			return nil
		})
	}
	_ = eg.Wait()
	return results
}
