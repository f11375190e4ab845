package sortedlist

import "go.uber.org/atomic"

// Node is a single link in a List. It owns a private copy of one element
// and an atomically published reference to its successor.
//
// Nodes are only created by inserts. InsertNear hands them back so that they
// can be passed as the hint of a later insert.
type Node[T any] struct {
	value T
	next  atomic.Pointer[Node[T]]
	owner atomic.Pointer[List[T]]
}

// Value returns a copy of the element held by the node. After the owning
// list is destroyed it returns the zero value.
func (n *Node[T]) Value() T {
	if list := n.owner.Load(); list != nil {
		return list.copyValue(n.value)
	}

	return n.value
}

// newNode copies value into a fresh, unlinked node owned by l.
// It does not touch the chain.
func (l *List[T]) newNode(value T) *Node[T] {
	node := &Node[T]{value: l.copyValue(value)}
	node.owner.Store(l)

	return node
}

// release unlinks the node and drops its element so that a hint retained by
// a caller does not keep the rest of the chain, or the element, reachable.
// It returns the former successor.
func (n *Node[T]) release() *Node[T] {
	var zeroVal T

	next := n.next.Swap(nil)
	n.owner.Store(nil)
	n.value = zeroVal

	return next
}
