package compare

import (
	"strings"

	"facette.io/natsort"
)

// Natural orders strings the way humans expect when they embed numbers:
// "file2" sorts before "file10". Strings that natural ordering cannot tell
// apart (such as "a01" and "a1") fall back to byte order, so distinct strings
// never compare equal.
func Natural(a, b string) int {
	if a == b {
		return 0
	}

	// natsort.Compare reports true both ways for strings it treats as equal.
	lt, gt := natsort.Compare(a, b), natsort.Compare(b, a)

	switch {
	case lt == gt:
		return strings.Compare(a, b)
	case lt:
		return -1
	default:
		return 1
	}
}
