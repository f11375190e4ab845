// Package sortedlist provides a generic, singly linked list that keeps its
// elements in ascending order according to a caller-supplied comparison
// function, and accepts concurrent insertion from many goroutines.
//
// # Overview
//
// A [List] stores one private copy of every distinct value inserted into it.
// Ordering and equality are delegated entirely to a [CompareFunc], which is
// passed on every insert call:
//
//	list, err := sortedlist.New[int]()
//	if err != nil {
//	    return err
//	}
//	defer list.Destroy()
//
//	for _, v := range []int{5, 3, 8, 3, 1} {
//	    if err := list.Insert(v, cmp.Compare[int]); err != nil {
//	        return err
//	    }
//	}
//
//	list.ForEach(func(v int) { fmt.Println(v) }) // 1 3 5 8
//
// Inserting a value that compares equal to one already present is a no-op.
// Insertion scans from the head, so every insert is O(n). When values arrive
// in (nearly) ascending order, [List.InsertNear] starts the scan from a node
// returned by a previous insert instead:
//
//	var hint *sortedlist.Node[int]
//	for _, v := range ascending {
//	    if hint, err = list.InsertNear(hint, v, cmp.Compare[int]); err != nil {
//	        return err
//	    }
//	}
//
// # Reading
//
// [List.ForEach] visits every element in order and returns the count.
// [List.All] is the range-over-func form. A [Cursor] is a caller-held
// position for incremental iteration:
//
//	cur := list.Cursor()
//	var v int
//	for cur.Next(&v) {
//	    use(v)
//	}
//
// # Thread Safety
//
// Inserts are serialized by a single list-wide lock, so the scan and the link
// of one insert never interleave with another insert. The lock is acquired
// with a context ([List.InsertCtx], [List.InsertNearCtx]); when the context
// ends first the insert fails with [ErrLockUnavailable].
//
// Traversals ([List.ForEach], [List.All], cursors) take no lock. Every link
// is published atomically after the new node is fully built, so a traversal
// running alongside inserts sees a well-formed chain, but it may or may not
// observe values linked after it started. Use [Cursor.Stale] to detect that
// the list changed underneath a cursor.
//
// [List.Destroy] must not run concurrently with traversals of the same list.
package sortedlist
