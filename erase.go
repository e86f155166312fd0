package safemap

/*
erase.go implements safe::map's removal operations, all built around the
tombstone protocol in entry.go: erasing a key never invalidates an
Iterator that already references it, because the entry's physical
removal from the substrate is deferred until the last pin on it is
released — see Iterator.Close/Next/Prev in iterator.go, which perform the
actual collectLocked call once their own pin count reaches zero.
*/

// Erase removes key, returning true if it was present and live. The
// underlying entry is tombstoned and, if no Iterator currently pins it,
// collected immediately; otherwise collection happens when the last
// pinning Iterator releases it.
func (m *Map[K, V, M, C]) Erase(key K) bool {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	n := m.sh.sub.find(key)
	if n == nil || !n.entry.live() {
		return false
	}
	m.eraseNodeLocked(n)
	return true
}

// EraseIterator removes the element it references. If another Iterator
// also references the same element, that Iterator remains valid (its
// Key/Value calls keep working) but the element disappears from future
// traversals and lookups. Returns ErrCrossContainer if it did not
// originate from m, ErrEndIterator if it is at end()/rend().
func (m *Map[K, V, M, C]) EraseIterator(it *Iterator[K, V, M, C]) error {
	if it.sh != m.sh {
		return ErrCrossContainer
	}
	if it.cur == nil {
		return ErrEndIterator
	}
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	if it.cur.entry.live() {
		m.eraseNodeLocked(it.cur)
	}
	return nil
}

// EraseRange erases every live element in [first, last), first and last
// both required to originate from m. last may be the end() Iterator.
func (m *Map[K, V, M, C]) EraseRange(first, last Iterator[K, V, M, C]) error {
	if first.sh != m.sh || last.sh != m.sh {
		return ErrCrossContainer
	}
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	n := first.cur
	for n != nil && n != last.cur {
		next := m.sh.sub.next(n)
		if n.entry.live() {
			m.eraseNodeLocked(n)
		}
		n = next
	}
	return nil
}

// EraseFast is equivalent to Erase but skips the ref-count check: it always
// sets the tombstone and defers physical removal unconditionally, never
// calling into the substrate's delete directly. The only difference from
// Erase is that it doesn't bother checking whether the entry is already
// unpinned before returning — Cleanup() or the last pinning Iterator's
// Close()/Next()/Prev() collects it later, exactly as it would for any
// other tombstoned entry. Any Iterator that already references key keeps
// working (Key/Value, and Next/Prev once the tombstone protocol's normal
// bounce/skip logic takes over) for as long as it stays open.
func (m *Map[K, V, M, C]) EraseFast(key K) bool {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	n := m.sh.sub.find(key)
	if n == nil || !n.entry.live() {
		return false
	}
	n.entry.eraseWhenUnused = true
	m.sh.live--
	return true
}

// Clear erases every live element, honoring the tombstone protocol for
// each the same way Erase does.
func (m *Map[K, V, M, C]) Clear() {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	m.clearLocked(false)
}

// ClearFast is Clear without the per-entry ref-count check: every live
// entry is tombstoned unconditionally, same as EraseFast, and left for
// Cleanup()/pin-release to reclaim. No node is unlinked from the substrate
// by this call, so any Iterator already open on this Map keeps pointing at
// a valid node.
func (m *Map[K, V, M, C]) ClearFast() {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	m.clearLocked(true)
}

func (m *Map[K, V, M, C]) clearLocked(fast bool) {
	n := m.sh.sub.first()
	for n != nil {
		next := m.sh.sub.next(n)
		if fast {
			if n.entry.live() {
				n.entry.eraseWhenUnused = true
			}
		} else if n.entry.live() {
			m.eraseNodeLocked(n)
		}
		n = next
	}
	if fast {
		m.sh.live = 0
	}
}

// Cleanup physically collects every tombstoned-but-unpinned entry still
// lingering in the substrate and returns how many it collected. Entries
// tombstoned while pinned are already collected the instant their last
// pin is released, so what Cleanup reclaims are entries that EraseFast,
// ClearFast, AssignMap or SwapMap tombstoned while no Iterator pinned
// them; those stay in the substrate until Cleanup runs or a later
// Iterator pins and releases them.
func (m *Map[K, V, M, C]) Cleanup() int {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	collected := 0
	n := m.sh.sub.first()
	for n != nil {
		next := m.sh.sub.next(n)
		if n.entry.eraseWhenUnused && n.entry.refCount.Load() == 0 {
			m.sh.sub.delete(n)
			m.sh.stats.TombstonesCollected++
			collected++
		}
		n = next
	}
	return collected
}

// eraseNodeLocked tombstones n and collects it immediately if it is
// unpinned. Must be called with m.sh.mu held.
func (m *Map[K, V, M, C]) eraseNodeLocked(n *node[K, V]) {
	n.entry.eraseWhenUnused = true
	m.sh.live--
	m.sh.collectLocked(n)
}
