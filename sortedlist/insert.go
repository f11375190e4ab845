package sortedlist

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CompareFunc orders two elements. It returns a negative number when existing
// sorts before candidate, zero when they are equal and a positive number when
// existing sorts after candidate. It must be deterministic and consistent
// across every insert into one list.
type CompareFunc[T any] func(existing, candidate T) int

// Insert adds value to the list at its sorted position. Inserting a value
// equal to one already present leaves the list unchanged and is not an error.
// It blocks until the insertion lock is available.
func (l *List[T]) Insert(value T, cmp CompareFunc[T]) error {
	return l.InsertCtx(context.Background(), value, cmp)
}

// InsertCtx is Insert with a context bounding the wait for the insertion
// lock. If the context ends first the insert fails with ErrLockUnavailable
// and the list is unchanged.
func (l *List[T]) InsertCtx(ctx context.Context, value T, cmp CompareFunc[T]) error {
	_, err := l.insert(ctx, nil, value, cmp)

	return err
}

// InsertNear inserts value scanning forward from hint instead of from the
// head of the list, and returns the node holding value (newly linked or
// already present). A nil hint scans from the head. A hint that sorts after
// value is ignored and the scan starts from the head, so any hint from this
// list yields the same result as Insert; hints at or just before the
// insertion point make the scan short.
//
// Feeding each returned node back as the next hint makes ascending runs of
// inserts O(1) each:
//
//	var hint *sortedlist.Node[int]
//	for _, v := range ascending {
//	    if hint, err = list.InsertNear(hint, v, cmp.Compare[int]); err != nil {
//	        return err
//	    }
//	}
func (l *List[T]) InsertNear(hint *Node[T], value T, cmp CompareFunc[T]) (*Node[T], error) {
	return l.InsertNearCtx(context.Background(), hint, value, cmp)
}

// InsertNearCtx is InsertNear with a context bounding the wait for the
// insertion lock.
func (l *List[T]) InsertNearCtx(
	ctx context.Context, hint *Node[T], value T, cmp CompareFunc[T],
) (*Node[T], error) {
	return l.insert(ctx, hint, value, cmp)
}

func (l *List[T]) insert(ctx context.Context, hint *Node[T], value T, cmp CompareFunc[T]) (*Node[T], error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if cmp == nil {
		l.metrics.failed.Inc()

		return nil, ErrNilComparator
	}

	if l.destroyed.Load() {
		l.metrics.failed.Inc()

		return nil, ErrDestroyed
	}

	if hint != nil && hint.owner.Load() != l {
		l.metrics.failed.Inc()

		return nil, ErrForeignHint
	}

	if err := l.acquire(ctx); err != nil {
		l.metrics.failed.Inc()

		return nil, err
	}
	defer l.lock.Release(1)

	// Destroy may have run while we waited for the lock.
	if l.destroyed.Load() {
		l.metrics.failed.Inc()

		return nil, ErrDestroyed
	}

	node, scanned, inserted := l.link(hint, value, cmp)

	l.metrics.observe(inserted, scanned)
	recordInsertEvent(ctx, l.name, scanned, inserted)

	return node, nil
}

func (l *List[T]) acquire(ctx context.Context) error {
	start := time.Now()
	err := l.lock.Acquire(ctx, 1)

	l.metrics.lockWait.Observe(time.Since(start).Seconds())

	if err != nil {
		l.logger.WarnContext(ctx, "could not acquire insertion lock", "error", err)

		return fmt.Errorf("%w: %w", ErrLockUnavailable, err)
	}

	return nil
}

// link places value in the chain and reports the node now holding it, the
// number of comparisons made and whether a new node was linked.
// Must be called with the insertion lock held.
func (l *List[T]) link(hint *Node[T], value T, cmp CompareFunc[T]) (*Node[T], int, bool) {
	var (
		prev    *Node[T]
		cur     = l.head.Load()
		scanned int
	)

	if hint != nil {
		scanned++

		result := cmp(hint.value, value)
		if result == 0 {
			return hint, scanned, false
		}

		if result < 0 {
			prev, cur = hint, hint.next.Load()
		}
	}

	for cur != nil {
		scanned++

		result := cmp(cur.value, value)
		if result == 0 {
			return cur, scanned, false
		}

		if result > 0 {
			break
		}

		prev, cur = cur, cur.next.Load()
	}

	node := l.newNode(value)

	// The successor is set before the node is published, so lock-free
	// readers never observe a node with a dangling tail.
	node.next.Store(cur)

	if prev == nil {
		l.head.Store(node)
	} else {
		prev.next.Store(node)
	}

	l.size.Inc()
	l.generation.Inc()

	return node, scanned, true
}

func recordInsertEvent(ctx context.Context, name string, scanned int, inserted bool) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.AddEvent("sortedlist.insert", trace.WithAttributes(
		attribute.String("sortedlist.name", name),
		attribute.Int("sortedlist.scanned", scanned),
		attribute.Bool("sortedlist.inserted", inserted),
	))
}
