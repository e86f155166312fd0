package safemap

import (
	"cmp"

	"github.com/pkg/errors"
)

/*
Map implements safe::map: a thread-safe, ordered key-value container whose
iterators stay valid across concurrent mutation, including mutation that
would otherwise invalidate the element an iterator currently references.

================================================================================
ARCHITECTURAL OVERVIEW
================================================================================

Map combines two layers, the same two-data-structure split an LRU cache
gets from pairing a lookup index with a linked list, adapted here from
recency-order to sort-order:

1. substrate (skiplist.go)
   - An ordered skip list keyed by Compare[K], giving O(log n) lookup and
     O(1) neighbor access once a node is in hand.

2. entry wrapper (entry.go)
   - Each stored value carries an atomic reference count and a tombstone
     flag, so erasing a key an Iterator still points at defers physical
     removal instead of invalidating that Iterator.

M (Mode) and C (Circularity) are compile-time parameters selecting one of
the eight iterator-advancement state machines implemented in advance.go.

================================================================================
CONCURRENCY MODEL
================================================================================

- One sync.Mutex, held in *shared, guards the substrate and every entry's
  tombstone flag for the duration of each public method.
- There is no lock-free read path; every operation serializes on that
  one mutex by design.

================================================================================
STRUCTURE FIELDS
================================================================================

sh -> Shared handle: mutex, substrate, id, logger, allocator, comparator,
      live-entry count, and hit/miss/tombstone counters. Iterators hold
      the same *shared, so Close()/Next()/Prev() can keep those counters
      and the substrate consistent without needing a back-pointer to Map.
*/
type Map[K cmp.Ordered, V any, M Mode, C Circularity] struct {
	sh *shared[K, V]
}

/*
New initializes and returns a configured Map instance.

CONFIGURATION MODEL:
Uses the functional options pattern to allow extensible configuration
without modifying the constructor signature.

INITIALIZATION STEPS:
1. Apply user-provided options onto a default config (natural ordering,
   no-op logger, zero-value allocator).
2. Allocate the substrate and shared handle.
*/
func New[K cmp.Ordered, V any, M Mode, C Circularity](opts ...Option[K, V]) *Map[K, V, M, C] {
	cfg := newConfig[K, V](opts...)
	m := &Map[K, V, M, C]{sh: newShared[K, V](cfg)}
	m.startAutoCleanup(cfg.cleanupInterval)
	return m
}

// KeyComp returns the comparator this Map orders keys by.
func (m *Map[K, V, M, C]) KeyComp() Compare[K] {
	return m.sh.compare
}

// ValueComp is an alias for KeyComp: safe::map, like std::map, orders
// value_type (key, value) pairs solely by key.
func (m *Map[K, V, M, C]) ValueComp() Compare[K] {
	return m.sh.compare
}

// MaxSize reports the theoretical upper bound on Size. Present for API
// parity with the original design; Go imposes no container-specific limit
// short of available memory.
func (m *Map[K, V, M, C]) MaxSize() int {
	return int(^uint(0) >> 1)
}

// Size returns the number of keys currently visible to lookups. Entries
// tombstoned but still pinned by a live Iterator are not counted.
func (m *Map[K, V, M, C]) Size() int {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	return m.sh.live
}

// Empty reports whether Size() == 0.
func (m *Map[K, V, M, C]) Empty() bool {
	return m.Size() == 0
}

// Stats returns a snapshot of the Map's hit/miss/tombstone counters.
func (m *Map[K, V, M, C]) Stats() Stats {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	return m.sh.stats
}

// At returns the value stored for key, or ErrKeyNotFound wrapped with
// context if key is absent — the lookup-by-value counterpart to Find,
// named after the original design's bounds-checked at().
func (m *Map[K, V, M, C]) At(key K) (V, error) {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	n := m.sh.sub.find(key)
	if n == nil || !n.entry.live() {
		m.sh.stats.Misses++
		var zero V
		return zero, errors.Wrapf(ErrKeyNotFound, "safemap: At(%v)", key)
	}
	m.sh.stats.Hits++
	return n.entry.value, nil
}

// Count returns 1 if key is present and live, 0 otherwise. safe::map never
// stores duplicate keys, so Count is always 0 or 1; it exists for parity
// with the original multi-key-capable container family.
func (m *Map[K, V, M, C]) Count(key K) int {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	n := m.sh.sub.find(key)
	if n == nil || !n.entry.live() {
		return 0
	}
	return 1
}

// Find returns an Iterator referencing key, or End() if key is absent.
// The returned Iterator pins its entry and must be Close()d.
func (m *Map[K, V, M, C]) Find(key K) Iterator[K, V, M, C] {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	n := m.sh.sub.find(key)
	if n == nil || !n.entry.live() {
		m.sh.stats.Misses++
		return m.endLocked(false)
	}
	m.sh.stats.Hits++
	return m.newIteratorLocked(n, false, false)
}

// LowerBound returns an Iterator to the first key >= key.
func (m *Map[K, V, M, C]) LowerBound(key K) Iterator[K, V, M, C] {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	return m.newIteratorLocked(m.sh.sub.ceil(key), false, false)
}

// UpperBound returns an Iterator to the first key > key.
func (m *Map[K, V, M, C]) UpperBound(key K) Iterator[K, V, M, C] {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	return m.newIteratorLocked(m.sh.sub.above(key), false, false)
}

// EqualRange returns [LowerBound(key), UpperBound(key)). Since keys are
// unique, the range spans at most one element.
func (m *Map[K, V, M, C]) EqualRange(key K) (Iterator[K, V, M, C], Iterator[K, V, M, C]) {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	lo := m.sh.sub.ceil(key)
	hi := lo
	if lo != nil && m.sh.compare(lo.key, key) == 0 {
		hi = m.sh.sub.next(lo)
	}
	return m.newIteratorLocked(lo, false, false), m.newIteratorLocked(hi, false, false)
}

// Insert adds key/value if key is absent (or tombstoned-but-absent-to-
// lookups), returning an Iterator to the element and true; if key is
// already live, returns an Iterator to the existing element and false
// without modifying it.
func (m *Map[K, V, M, C]) Insert(key K, value V) (Iterator[K, V, M, C], bool) {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	n := m.sh.sub.find(key)
	if n != nil && n.entry.live() {
		return m.newIteratorLocked(n, false, false), false
	}
	if n != nil && !n.entry.live() {
		// A tombstoned entry for this key is still physically present
		// because an Iterator pins it. Resurrect it in place rather than
		// inserting a second node for the same key — the substrate
		// guarantees at most one node per key, so any Iterator still
		// pinning this node will observe the resurrected value on its
		// next Key()/Value() call. This is a deliberate divergence from
		// giving the reinserted key a wholly new identity; see DESIGN.md.
		n.entry.value = value
		n.entry.eraseWhenUnused = false
		m.sh.live++
		m.sh.sugar().Debugw("resurrected tombstoned entry", "key", key)
		return m.newIteratorLocked(n, false, false), true
	}

	n, _ = m.sh.sub.insert(key, value)
	m.sh.live++
	return m.newIteratorLocked(n, false, false), true
}

// InsertOrGet returns an Iterator to key's element, inserting the
// allocator's zero value first if key is absent. A tombstoned entry still
// physically present for key is resurrected with its stored value. This is
// the container's
// operator[]-style convenience, split into an explicit two-result call
// since Go has no subscript-assignment operator to overload.
func (m *Map[K, V, M, C]) InsertOrGet(key K) (Iterator[K, V, M, C], bool) {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	n := m.sh.sub.find(key)
	if n != nil && n.entry.live() {
		return m.newIteratorLocked(n, false, false), false
	}

	if n != nil {
		n.entry.eraseWhenUnused = false
		m.sh.live++
		return m.newIteratorLocked(n, false, false), true
	}
	n, _ = m.sh.sub.insert(key, m.sh.alloc.New())
	m.sh.live++
	return m.newIteratorLocked(n, false, false), true
}
