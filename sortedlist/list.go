package sortedlist

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"
)

// List is a sorted, singly linked list of distinct values.
//
// The zero value is not usable; create lists with New. A List must not be
// copied after creation.
type List[T any] struct {
	id     string
	name   string
	copier func(T) T
	logger *slog.Logger

	head atomic.Pointer[Node[T]]
	lock *semaphore.Weighted // Serializes inserts (scan + link)

	size       atomic.Int64
	generation atomic.Uint64 // Bumped whenever the chain changes
	destroyed  atomic.Bool

	metrics listMetrics
}

// New creates an empty list. It fails with ErrInvalidOption when an option
// was given an unusable value.
func New[T any](opts ...Option[T]) (*List[T], error) {
	cfg := options[T]{name: defaultName}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(cfg.invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOption, strings.Join(cfg.invalid, ", "))
	}

	if cfg.logger == nil {
		cfg.logger = logger.Get()
	}

	list := &List[T]{
		id:     uuid.NewString(),
		name:   cfg.name,
		copier: cfg.copier,
		lock:   semaphore.NewWeighted(1),
	}

	list.logger = cfg.logger.With("list", list.name, "list_id", list.id)
	list.metrics = newListMetrics(list.name)

	listsAlive.Inc()

	list.logger.Debug("sorted list created", "element_size", list.ElementSize())

	return list, nil
}

// ID returns the unique identifier assigned to the list at creation.
func (l *List[T]) ID() string {
	return l.id
}

// Name returns the name given with WithName, or "default".
func (l *List[T]) Name() string {
	return l.name
}

// ElementSize reports the in-memory size of one element value.
func (l *List[T]) ElementSize() uintptr {
	var zeroVal T

	return unsafe.Sizeof(zeroVal)
}

// Len returns the number of elements currently linked into the list.
func (l *List[T]) Len() int {
	return int(l.size.Load())
}

// ForEach calls visit for every element in ascending order and returns the
// number of elements visited. A nil visit only counts. No lock is taken, see
// the package documentation for how this interacts with concurrent inserts.
//
// visit receives the stored element; it must not modify memory the element
// references.
func (l *List[T]) ForEach(visit func(T)) int {
	count := 0

	for node := l.head.Load(); node != nil; node = node.next.Load() {
		count++

		if visit != nil {
			visit(node.value)
		}
	}

	return count
}

// All returns an iterator over the elements in ascending order.
// Like ForEach it takes no lock.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for node := l.head.Load(); node != nil; node = node.next.Load() {
			if !yield(node.value) {
				return
			}
		}
	}
}

// Entries returns a copy of every element in ascending order.
func (l *List[T]) Entries() []T {
	entries := make([]T, 0, l.Len())

	for node := l.head.Load(); node != nil; node = node.next.Load() {
		entries = append(entries, l.copyValue(node.value))
	}

	return entries
}

// Destroy releases every node of the list, in order, and marks the list as
// destroyed. It waits for an in-flight insert to finish first. Later inserts
// fail with ErrDestroyed, traversals see an empty list and cursors report
// exhaustion. Calling Destroy more than once is a no-op.
//
// Destroy must not run concurrently with a traversal of the same list.
func (l *List[T]) Destroy() {
	if !l.destroyed.CompareAndSwap(false, true) {
		return
	}

	// Cannot fail with a background context.
	_ = l.lock.Acquire(context.Background(), 1)
	defer l.lock.Release(1)

	released := 0
	for node := l.head.Swap(nil); node != nil; released++ {
		node = node.release()
	}

	l.size.Store(0)
	l.generation.Inc()
	l.metrics.released(released)

	listsAlive.Dec()

	l.logger.Debug("sorted list destroyed", "released", released)
}

// Close destroys the list. It implements io.Closer and always returns nil.
func (l *List[T]) Close() error {
	l.Destroy()

	return nil
}

func (l *List[T]) copyValue(value T) T {
	if l.copier == nil {
		return value
	}

	return l.copier(value)
}
