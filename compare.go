package safemap

import "cmp"

// Compare mirrors the container's Compare template parameter from the
// original design: a strict weak ordering over keys. It must return a
// negative number if a < b, zero if a == b, and a positive number if
// a > b.
type Compare[K any] func(a, b K) int

// defaultCompare returns the natural ordering for any cmp.Ordered key.
func defaultCompare[K cmp.Ordered]() Compare[K] {
	return cmp.Compare[K]
}
