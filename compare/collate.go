package compare

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collated orders strings by the collation rules of a language, e.g. so that
// "Ärger" sorts next to "Arger" in German rather than after "Zebra".
// Collation options such as collate.IgnoreCase make more strings compare
// equal, which in a sorted container means they are deduplicated.
//
// A collator is not safe for concurrent use, so the returned function
// serializes calls to it.
func Collated(tag language.Tag, opts ...collate.Option) Func[string] {
	var (
		mut      sync.Mutex
		collator = collate.New(tag, opts...)
	)

	return func(a, b string) int {
		mut.Lock()
		defer mut.Unlock()

		return collator.CompareString(a, b)
	}
}
