package async

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies f to every element of src with at most concurrencyLimit calls
// in flight, and returns the results in the order of src. The first error
// cancels the context passed to the remaining calls and is returned.
// A non-positive concurrencyLimit runs every element at once.
func Map[T any, D any](ctx context.Context, src []T, concurrencyLimit int, f func(ctx context.Context, el T) (D, error)) ([]D, error) {
	results := make([]D, len(src))
	if len(src) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if concurrencyLimit > 0 {
		g.SetLimit(concurrencyLimit)
	}

	for i, el := range src {
		i, el := i, el
		g.Go(func() error {
			r, err := f(gctx, el)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
