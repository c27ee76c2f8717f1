// Package fetch runs a batch of independent lookups concurrently and fails
// the batch as a whole on the first error.
package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// All calls fn once per key, concurrently, and waits for every call to
// return. On success the results are keyed by input key. If any call fails,
// the context passed to the remaining calls is cancelled and All returns the
// first error with no results. Duplicate keys are fetched once.
//
// A limit <= 0 means no bound on concurrent calls.
func All[K comparable, V any](ctx context.Context, keys []K, limit int, fn func(context.Context, K) (V, error)) (map[K]V, error) {
	unique := make([]K, 0, len(keys))
	seen := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	// one slot per key, so no locking is needed
	values := make([]V, len(unique))
	for i, k := range unique {
		g.Go(func() error {
			v, err := fn(gctx, k)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[K]V, len(unique))
	for i, k := range unique {
		results[k] = values[i]
	}
	return results, nil
}
