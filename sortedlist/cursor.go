package sortedlist

// Cursor is a caller-held position in a List, used to step through its
// elements one at a time. Cursors are independent of each other and of the
// list's insertion lock; the list does not track them.
//
// A cursor is not safe for concurrent use by multiple goroutines.
type Cursor[T any] struct {
	list       *List[T]
	next       *Node[T]
	generation uint64
}

// Cursor returns a new cursor positioned at the first element.
func (l *List[T]) Cursor() *Cursor[T] {
	cur := &Cursor[T]{list: l}
	cur.Reset()

	return cur
}

// Reset moves the cursor back to the first element of the list.
func (c *Cursor[T]) Reset() {
	// Generation first: an insert landing between the two loads makes the
	// cursor report Stale rather than silently missing it.
	c.generation = c.list.generation.Load()
	c.next = c.list.head.Load()
}

// Next copies the element under the cursor into out and advances the cursor.
// It returns false, leaving out untouched, once the cursor has moved past
// the last element or the list has been destroyed. A nil out advances
// without copying.
func (c *Cursor[T]) Next(out *T) bool {
	node := c.next
	if node == nil || c.list.destroyed.Load() {
		return false
	}

	if out != nil {
		*out = c.list.copyValue(node.value)
	}

	c.next = node.next.Load()

	return true
}

// Stale reports whether the list has changed since the cursor was created or
// last reset. A cursor that is not stale visits exactly the elements that
// were present at reset time.
func (c *Cursor[T]) Stale() bool {
	return c.list.generation.Load() != c.generation
}
