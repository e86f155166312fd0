package safemap

import (
	"cmp"
	"unsafe"
)

/*
convert.go bridges Map to and from plain Go containers, grounded on the
snapshot-under-read-lock idiom used throughout the retrieved pack's own
thread-safe ordered maps: take the lock once, copy everything needed, and
let the caller work with an ordinary, unsynchronized value afterward.
*/

// FromMap builds a new Map preloaded with src's entries. Key order in src
// does not matter; the Map sorts them on insert.
func FromMap[K cmp.Ordered, V any, M Mode, C Circularity](src map[K]V, opts ...Option[K, V]) *Map[K, V, M, C] {
	m := New[K, V, M, C](opts...)
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	for k, v := range src {
		if n, inserted := m.sh.sub.insert(k, v); inserted {
			m.sh.live++
		} else {
			n.entry.value = v
		}
	}
	return m
}

// FromSlice builds a new Map from a slice of key/value pairs, later pairs
// overwriting earlier ones that share a key.
func FromSlice[K cmp.Ordered, V any, M Mode, C Circularity](pairs []KV[K, V], opts ...Option[K, V]) *Map[K, V, M, C] {
	m := New[K, V, M, C](opts...)
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()
	for _, p := range pairs {
		if n, inserted := m.sh.sub.insert(p.Key, p.Value); inserted {
			m.sh.live++
		} else {
			n.entry.value = p.Value
		}
	}
	return m
}

// KV is a key/value pair, used by FromSlice and ToSlice.
type KV[K any, V any] struct {
	Key   K
	Value V
}

// ToMap returns a plain map snapshot of every live key/value pair.
// Tombstoned entries are excluded, matching Size()'s view of the Map.
func (m *Map[K, V, M, C]) ToMap() map[K]V {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	out := make(map[K]V, m.sh.live)
	for n := m.sh.sub.first(); n != nil; n = m.sh.sub.next(n) {
		if n.entry.live() {
			out[n.key] = n.entry.value
		}
	}
	return out
}

// ToSlice returns every live key/value pair in ascending key order.
func (m *Map[K, V, M, C]) ToSlice() []KV[K, V] {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	out := make([]KV[K, V], 0, m.sh.live)
	for n := m.sh.sub.first(); n != nil; n = m.sh.sub.next(n) {
		if n.entry.live() {
			out = append(out, KV[K, V]{Key: n.key, Value: n.entry.value})
		}
	}
	return out
}

// AssignMap replaces the Map's contents with src, as if ClearFast() were
// called and every pair in src then Insert()ed. Any Iterator still open on
// this Map keeps pointing at a valid node — the old contents are
// tombstoned, not unlinked — but now traverses/reads against whatever
// src leaves behind, which is the container-level assignment Non-goal
// spec.md calls out: no promise that an iterator predating the assignment
// still makes sense afterward.
func (m *Map[K, V, M, C]) AssignMap(src map[K]V) {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	m.clearLocked(true)
	for k, v := range src {
		if n, inserted := m.sh.sub.insert(k, v); !inserted {
			n.entry.value = v
			n.entry.eraseWhenUnused = false
		}
		m.sh.live++
	}
}

// SwapMap exchanges the Map's contents with dst in place: dst receives a
// snapshot of what the Map held, and the Map is left holding what dst held
// going in. Like AssignMap, the Map's old contents are tombstoned rather
// than unlinked, so any Iterator open on it before the call keeps pointing
// at a valid node, but has no guarantee its key still means anything in
// the swapped-in contents.
func (m *Map[K, V, M, C]) SwapMap(dst *map[K]V) {
	m.sh.mu.Lock()
	defer m.sh.mu.Unlock()

	old := make(map[K]V, m.sh.live)
	for n := m.sh.sub.first(); n != nil; n = m.sh.sub.next(n) {
		if n.entry.live() {
			old[n.key] = n.entry.value
		}
	}

	incoming := *dst
	m.clearLocked(true)
	for k, v := range incoming {
		if n, inserted := m.sh.sub.insert(k, v); !inserted {
			n.entry.value = v
			n.entry.eraseWhenUnused = false
		}
		m.sh.live++
	}
	*dst = old
}

// Emplace is an alias for Insert. The original design's emplace() avoids
// an extra copy by constructing the value in place; Go value types gain
// nothing from that distinction, so Emplace exists only for API parity.
func (m *Map[K, V, M, C]) Emplace(key K, value V) (Iterator[K, V, M, C], bool) {
	return m.Insert(key, value)
}

// Swap exchanges contents with another Map of the same type. The substrate
// and mutex handles themselves are never reassigned: entries are copied
// across instead, the same way std::map::swap's original design copies
// elements between the two containers rather than repointing m_map. An
// Iterator born from either Map before the call keeps referencing the
// substrate it was actually born from — it never silently starts reading
// wraparound bounds (s.size, sFirst/sNext in advance.go) against the other
// container's substrate object — so Swap costs O(n) instead of a pointer
// exchange's O(1), in exchange for never corrupting a live iterator's
// notion of which list it is walking.
func (m *Map[K, V, M, C]) Swap(other *Map[K, V, M, C]) {
	if m == other {
		return
	}
	// Lock in a consistent order to avoid deadlocking against a
	// concurrent Swap(m) running on the other goroutine.
	first, second := m.sh, other.sh
	if uintptr(unsafe.Pointer(first)) > uintptr(unsafe.Pointer(second)) {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	mPairs := livePairsLocked(m.sh.sub)
	otherPairs := livePairsLocked(other.sh.sub)

	m.clearLocked(false)
	other.clearLocked(false)

	for _, p := range otherPairs {
		if n, inserted := m.sh.sub.insert(p.Key, p.Value); !inserted {
			n.entry.value = p.Value
			n.entry.eraseWhenUnused = false
		}
		m.sh.live++
	}
	for _, p := range mPairs {
		if n, inserted := other.sh.sub.insert(p.Key, p.Value); !inserted {
			n.entry.value = p.Value
			n.entry.eraseWhenUnused = false
		}
		other.sh.live++
	}
}

// livePairsLocked snapshots every live key/value pair in s in ascending key
// order. Caller must hold the substrate's owning mutex.
func livePairsLocked[K any, V any](s *substrate[K, V]) []KV[K, V] {
	out := make([]KV[K, V], 0, s.size)
	for n := s.first(); n != nil; n = s.next(n) {
		if n.entry.live() {
			out = append(out, KV[K, V]{Key: n.key, Value: n.entry.value})
		}
	}
	return out
}

// CopyFrom replaces the Map's contents with a snapshot of other's live
// entries, the Map-to-Map analogue of AssignMap.
func (m *Map[K, V, M, C]) CopyFrom(other *Map[K, V, M, C]) {
	m.AssignMap(other.ToMap())
}

// MoveFrom transfers other's contents into the Map via Swap and leaves
// other empty, standing in for the original design's move-assignment —
// Go has no destructive move, so this is Swap followed by clearing the
// source.
func (m *Map[K, V, M, C]) MoveFrom(other *Map[K, V, M, C]) {
	m.Swap(other)
	other.ClearFast()
}
