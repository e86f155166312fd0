package safemap

import "cmp"

/*
Iterator implements safe::map's iterator family: a cursor into a Map that
stays valid across concurrent mutation by other goroutines, including
mutation that logically erases the element it currently references.

================================================================================
HOW VALIDITY IS PRESERVED
================================================================================

Every non-end Iterator pins the node.entry it was constructed from (see
entry.go's reference-count protocol) for as long as the Iterator is open.
Erase on a pinned entry sets its tombstone flag instead of physically
removing it; physical removal happens the moment the last pin is released
(Iterator.Close, Next, Prev or Assign moving off the node) and the
tombstone flag is already set.

================================================================================
RESOURCE LIFECYCLE
================================================================================

Go has no destructors, so where the original design relies on an
iterator's destructor releasing its pinned reference, this package expects
callers to call Close() — typically via `defer it.Close()`. An Iterator
must never be duplicated by a bare struct copy: copying the struct copies
the cursor without bumping its reference count, so a Close() on either
copy would release a pin the other copy still depends on. Use Clone()
instead, which takes the same reference bump a C++ copy constructor would
take implicitly.

================================================================================
STRUCTURE FIELDS
================================================================================

sh       -> Shared handle (mutex, substrate) borrowed from the owning Map.
cur      -> Current node, nil meaning end()/rend().
reverse  -> True for iterators obtained via RBegin/REnd/CRBegin/CREnd.
readOnly -> True for iterators obtained via the CBegin/CEnd family;
            SetValue on these returns ErrReadOnlyIterator.
closed   -> True once Close has released cur's pin.
*/
type Iterator[K cmp.Ordered, V any, M Mode, C Circularity] struct {
	sh       *shared[K, V]
	cur      *node[K, V]
	reverse  bool
	readOnly bool
	closed   bool
}

func (m *Map[K, V, M, C]) newIteratorLocked(n *node[K, V], reverse, readOnly bool) Iterator[K, V, M, C] {
	if n != nil {
		n.entry.pin()
	}
	return Iterator[K, V, M, C]{sh: m.sh, cur: n, reverse: reverse, readOnly: readOnly}
}

func (m *Map[K, V, M, C]) endLocked(reverse bool) Iterator[K, V, M, C] {
	return Iterator[K, V, M, C]{sh: m.sh, cur: nil, reverse: reverse}
}

// Begin returns an Iterator to the first live element in key order (for
// EvenErased, the first element, tombstoned or not).
func (m *Map[K, V, M, C]) Begin() Iterator[K, V, M, C] {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	return m.newIteratorLocked(m.firstLocked(false), false, false)
}

// End returns a past-the-end Iterator.
func (m *Map[K, V, M, C]) End() Iterator[K, V, M, C] {
	return m.endLocked(false)
}

// RBegin returns an Iterator to the first element in reverse key order.
func (m *Map[K, V, M, C]) RBegin() Iterator[K, V, M, C] {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	return m.newIteratorLocked(m.firstLocked(true), true, false)
}

// REnd returns a past-the-end Iterator for reverse traversal.
func (m *Map[K, V, M, C]) REnd() Iterator[K, V, M, C] {
	return m.endLocked(true)
}

// CBegin, CEnd, CRBegin, CREnd mirror Begin/End/RBegin/REnd but mark the
// returned Iterator read-only: SetValue on it fails with
// ErrReadOnlyIterator.
func (m *Map[K, V, M, C]) CBegin() Iterator[K, V, M, C] {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	return m.newIteratorLocked(m.firstLocked(false), false, true)
}

func (m *Map[K, V, M, C]) CEnd() Iterator[K, V, M, C] {
	it := m.endLocked(false)
	it.readOnly = true
	return it
}

func (m *Map[K, V, M, C]) CRBegin() Iterator[K, V, M, C] {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	return m.newIteratorLocked(m.firstLocked(true), true, true)
}

func (m *Map[K, V, M, C]) CREnd() Iterator[K, V, M, C] {
	it := m.endLocked(true)
	it.readOnly = true
	return it
}

func (m *Map[K, V, M, C]) firstLocked(reverse bool) *node[K, V] {
	var mm M
	if mm.modeTag() == modeEvenErased {
		return sFirst(m.sh.sub, reverse)
	}
	return firstLive(m.sh.sub, reverse)
}

// Key returns the key the Iterator references. Returns ErrEndIterator if
// the Iterator is at end()/rend().
func (it *Iterator[K, V, M, C]) Key() (K, error) {
	var zero K
	if it.closed {
		return zero, ErrClosedIterator
	}
	if it.cur == nil {
		return zero, ErrEndIterator
	}
	return it.cur.key, nil
}

// Value returns the value the Iterator references. Returns
// ErrEndIterator if the Iterator is at end()/rend().
func (it *Iterator[K, V, M, C]) Value() (V, error) {
	var zero V
	if it.closed {
		return zero, ErrClosedIterator
	}
	if it.cur == nil {
		return zero, ErrEndIterator
	}
	it.sh.mu.Lock()
	defer it.sh.mu.Unlock()
	return it.cur.entry.value, nil
}

// SetValue overwrites the value the Iterator references in place. Fails
// with ErrReadOnlyIterator for const iterators, ErrEndIterator at
// end()/rend().
func (it *Iterator[K, V, M, C]) SetValue(v V) error {
	if it.closed {
		return ErrClosedIterator
	}
	if it.readOnly {
		return ErrReadOnlyIterator
	}
	if it.cur == nil {
		return ErrEndIterator
	}
	it.sh.mu.Lock()
	defer it.sh.mu.Unlock()
	it.cur.entry.value = v
	return nil
}

// Next advances the Iterator one position according to its Mode and
// Circularity. From end(), Linear OnlyForward and EvenErased iterators
// stay at end(); Circular ones wrap back to the first element (the first
// live one for OnlyForward), and ForwardThenBackward/ForwardSameThenBackward
// land on the first live element.
func (it *Iterator[K, V, M, C]) Next() error {
	if it.closed {
		return ErrClosedIterator
	}
	var mm M
	var cc C
	it.sh.mu.Lock()
	defer it.sh.mu.Unlock()
	n := advanceNext(it.sh.sub, it.cur, it.reverse, cc.circular(), mm.modeTag())
	it.relinkLocked(n)
	return nil
}

// Prev moves the Iterator one position backward according to its Mode and
// Circularity. OnlyForward iterators treat Prev as a no-op.
func (it *Iterator[K, V, M, C]) Prev() error {
	if it.closed {
		return ErrClosedIterator
	}
	var mm M
	var cc C
	it.sh.mu.Lock()
	defer it.sh.mu.Unlock()
	n := advancePrev(it.sh.sub, it.cur, it.reverse, cc.circular(), mm.modeTag())
	it.relinkLocked(n)
	return nil
}

// relinkLocked swaps the Iterator's cursor to n, pinning n (if non-nil)
// and releasing the previous cursor's pin, physically collecting it if
// that pin was the last reference to a tombstoned entry. Must be called
// with sh.mu held.
func (it *Iterator[K, V, M, C]) relinkLocked(n *node[K, V]) {
	old := it.cur
	if n != nil {
		n.entry.pin()
	}
	it.cur = n
	if old != nil {
		old.entry.unpin()
		it.sh.collectLocked(old)
	}
}

// Clone returns an independent Iterator at the same position, bumping the
// reference count the way a C++ copy constructor would. The clone must be
// Close()d independently of the original.
func (it *Iterator[K, V, M, C]) Clone() Iterator[K, V, M, C] {
	it.sh.mu.Lock()
	defer it.sh.mu.Unlock()
	if it.cur != nil {
		it.cur.entry.pin()
	}
	return Iterator[K, V, M, C]{sh: it.sh, cur: it.cur, reverse: it.reverse, readOnly: it.readOnly}
}

// Assign repoints it at other's position, releasing it's previous pin
// (physically collecting it if warranted) and taking a fresh pin on
// other's node. Returns ErrCrossContainer if the two iterators do not
// share an owning Map.
func (it *Iterator[K, V, M, C]) Assign(other Iterator[K, V, M, C]) error {
	if it.sh != other.sh {
		return ErrCrossContainer
	}
	it.sh.mu.Lock()
	defer it.sh.mu.Unlock()
	it.relinkLocked(other.cur)
	it.reverse = other.reverse
	it.readOnly = other.readOnly
	return nil
}

// Close releases the Iterator's pin on its current node, if any,
// physically collecting the node if it was tombstoned and this was the
// last pin. Close is idempotent.
func (it *Iterator[K, V, M, C]) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	if it.cur == nil {
		return nil
	}
	it.sh.mu.Lock()
	defer it.sh.mu.Unlock()
	it.cur.entry.unpin()
	it.sh.collectLocked(it.cur)
	return nil
}
