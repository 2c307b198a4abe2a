package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one item of a fan-out: a value or the error that replaced it.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Gather calls fetch for every item with at most limit calls in flight and waits for all
// of them to settle. Failures stay in their Result and never cancel the other calls.
// results[i] belongs to items[i].
func Gather[I, T any](ctx context.Context, limit int, items []I, fetch func(context.Context, I) (T, error)) []Result[T] {
	results := make([]Result[T], len(items))
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Value, results[i].Err = fetch(ctx, item)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
