package safemap

import (
	"sync/atomic"
)

/*
entry represents a single stored value inside a Map's substrate.

DESIGN PURPOSE

Each key maps to an entry rather than directly to the user's value. This
lets the container associate two pieces of iterator-protocol metadata with
every stored value without disturbing the value's own type:

STRUCTURE

value           -> The user-supplied value.
refCount        -> Number of live Iterators currently pinning this entry.
eraseWhenUnused -> Tombstone: true once a caller has logically erased this
                   key while refCount was still > 0.

TOMBSTONE PROTOCOL

- refCount is atomic defensively: every pin, unpin and read of it in this
  package, Iterator.Close() included, happens with the container's mutex
  held, so the atomic type is not load-bearing. Every place refCount is
  read *together with* eraseWhenUnused to decide on a physical erase
  holds the container's mutex as well.
- An entry is physically present in the substrate iff refCount > 0 or
  eraseWhenUnused == false. Physical removal is the container's and the
  Iterator's joint responsibility, never the entry's own.
*/
type entry[V any] struct {
	value           V
	refCount        atomic.Int32
	eraseWhenUnused bool
}

func newEntry[V any](value V) *entry[V] {
	return &entry[V]{value: value}
}

// live reports whether this entry is currently visible to lookups.
func (e *entry[V]) live() bool {
	return !e.eraseWhenUnused
}

// pin increments the reference count; must be called with the container
// mutex held.
func (e *entry[V]) pin() {
	e.refCount.Add(1)
}

// unpin decrements the reference count and reports whether the entry is
// now both unreferenced and tombstoned, i.e. ready for physical removal.
// Must be called with the container mutex held.
func (e *entry[V]) unpin() bool {
	n := e.refCount.Add(-1)
	if n < 0 {
		panic("safemap: entry reference count went negative")
	}
	return n == 0 && e.eraseWhenUnused
}
