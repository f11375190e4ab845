// Package compare provides comparison functions for ordering values in
// sorted containers such as sortedlist.List.
//
// Every function produced here follows the usual three-way convention:
// negative when a sorts before b, zero when they are equal, positive when a
// sorts after b. A zero result is treated as equality by sorted containers,
// so two values a comparator considers equal are never stored twice.
package compare

import "cmp"

// Func is a three-way comparison function. Being an alias of the plain
// function type, it is assignable to sortedlist.CompareFunc.
type Func[T any] = func(a, b T) int

// Comparable is implemented by types that can compare themselves for equality.
type Comparable[T any] interface {
	Equals(other T) bool
}

// Sortable is implemented by types that define both equality and order.
type Sortable[T any] interface {
	Comparable[T]

	LessThan(other T) bool
}

// Equals compares two values using the Comparable interface.
func Equals[T any](a Comparable[T], b T) bool {
	return a.Equals(b)
}

// Ordered returns the natural ascending order of an ordered type.
func Ordered[T cmp.Ordered]() Func[T] {
	return cmp.Compare[T]
}

// OfSortable orders types implementing Sortable.
//
// Example:
//
//	type Version struct{ Major, Minor int }
//
//	func (v Version) Equals(o Version) bool   { return v == o }
//	func (v Version) LessThan(o Version) bool { ... }
//
//	list.Insert(Version{1, 2}, compare.OfSortable[Version]())
func OfSortable[T Sortable[T]]() Func[T] {
	return func(a, b T) int {
		switch {
		case a.Equals(b):
			return 0
		case a.LessThan(b):
			return -1
		default:
			return 1
		}
	}
}

// By orders values by a key extracted from each of them.
//
// Example:
//
//	byAge := compare.By(func(p Person) int { return p.Age })
func By[T any, K cmp.Ordered](key func(T) K) Func[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// Reverse inverts the order of f.
func Reverse[T any](f Func[T]) Func[T] {
	return func(a, b T) int {
		return f(b, a)
	}
}
