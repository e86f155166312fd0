package safemap

import "github.com/pkg/errors"

// Sentinel errors returned by Map and Iterator operations. Callers should
// compare against these with errors.Is: At wraps ErrKeyNotFound with
// github.com/pkg/errors to add the key as context, while the other
// operations return the sentinels directly.
var (
	// ErrKeyNotFound is returned by operations that require an existing
	// key (e.g. At) when the key is absent.
	ErrKeyNotFound = errors.New("safemap: key not found")

	// ErrEndIterator is returned when an operation that dereferences an
	// iterator (Key, Value, SetValue) is called on an end()/rend()
	// iterator, which names a position rather than an element.
	ErrEndIterator = errors.New("safemap: iterator does not reference an element")

	// ErrReadOnlyIterator is returned by SetValue on an iterator obtained
	// from a const-qualified traversal (CBegin/CEnd/CRBegin/CREnd).
	ErrReadOnlyIterator = errors.New("safemap: iterator is read-only")

	// ErrCrossContainer is returned when an Iterator or a range of
	// Iterators passed to an Erase/Assign call did not originate from the
	// receiving Map.
	ErrCrossContainer = errors.New("safemap: iterator does not belong to this container")

	// ErrClosedIterator is returned by Key, Value, SetValue, Next and Prev
	// on an Iterator after Close has already been called on it.
	ErrClosedIterator = errors.New("safemap: iterator already closed")
)
