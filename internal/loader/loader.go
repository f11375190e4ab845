// Package loader bulk-loads values into a sortedlist.List from a pool of
// workers.
package loader

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/sortedlist"
)

// Stats describes a completed Load.
type Stats struct {
	Values   int           // Values offered to the list
	Shards   int           // Shards the values were split into
	Inserted int           // Growth of the list during the load
	Elapsed  time.Duration // Wall time of the load
}

// Load inserts values into list using up to workers goroutines. If workers
// is less than 1, GOMAXPROCS workers are used.
//
// The values are split into contiguous shards, one per worker. Each worker
// sorts a copy of its shard and inserts it with InsertNear, feeding every
// returned node back as the next hint, so an insert only scans from its
// predecessor rather than from the head of the list. The first error
// cancels the remaining work and is returned.
func Load[T any](
	ctx context.Context,
	list *sortedlist.List[T],
	values []T,
	cmp sortedlist.CompareFunc[T],
	workers int,
) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	before := list.Len()
	shards := split(values, workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := pond.NewPool(max(len(shards), 1), pond.WithContext(ctx))
	defer pool.StopAndWait()

	var (
		mu       sync.Mutex
		firstErr error
	)

	// The first failure is kept so the cancellation it triggers does not
	// mask it.
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()

		if firstErr == nil {
			firstErr = err

			cancel()
		}
	}

	group := pool.NewGroup()

	for _, shard := range shards {
		group.SubmitErr(func() error {
			if err := insertShard(ctx, list, shard, cmp); err != nil {
				fail(err)

				return err
			}

			return nil
		})
	}

	err := group.Wait()

	mu.Lock()
	if firstErr != nil {
		err = firstErr
	}
	mu.Unlock()

	stats := Stats{
		Values:   len(values),
		Shards:   len(shards),
		Inserted: list.Len() - before,
		Elapsed:  time.Since(start),
	}

	logger.Get(ctx).Debug("bulk load finished",
		"list", list.Name(),
		"values", stats.Values,
		"shards", stats.Shards,
		"inserted", stats.Inserted,
		"elapsed", stats.Elapsed,
		"error", err)

	return stats, err
}

func insertShard[T any](ctx context.Context, list *sortedlist.List[T], shard []T, cmp sortedlist.CompareFunc[T]) error {
	sorted := slices.Clone(shard)
	slices.SortFunc(sorted, cmp)

	var hint *sortedlist.Node[T]

	for _, value := range sorted {
		node, err := list.InsertNearCtx(ctx, hint, value, cmp)
		if err != nil {
			return err
		}

		hint = node
	}

	return nil
}

// split cuts values into at most n contiguous, non-empty shards.
func split[T any](values []T, n int) [][]T {
	if len(values) == 0 {
		return nil
	}

	n = min(n, len(values))
	size := (len(values) + n - 1) / n

	return slices.Collect(slices.Chunk(values, size))
}
