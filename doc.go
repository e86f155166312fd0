/*
Package safemap implements safe::map: an ordered, thread-safe key-value
container whose iterators remain valid across concurrent mutation by other
goroutines, including mutation that would logically remove the element an
iterator currently references.

================================================================================
ARCHITECTURAL OVERVIEW
================================================================================

safemap combines three layers:

1. Substrate (skiplist.go)
   - A sorted, singly-indexed skip list keyed by a generic Compare[K].
   - Node identity is stable for a node's lifetime: nodes are linked and
     unlinked, never moved or copied, so a *node[K, V] pointer taken once
     stays valid as data (its key and entry stay readable) even after it
     is physically unlinked from the list.

2. Entry wrapper (entry.go)
   - Each stored value is wrapped with an atomic reference count and a
     tombstone flag (eraseWhenUnused). The entry is physically removed
     from the substrate only once both "logically erased" and "no live
     iterator is pinning it" are true simultaneously.

3. Container + Iterator family (container.go, iterator.go, advance.go)
   - Map[K, V, M, C] owns exactly one substrate and one mutex, held for
     the duration of every public operation.
   - Iterator[K, V, M, C] holds a shared handle to that substrate+mutex,
     an opaque cursor (*node[K, V], nil meaning "end"), a direction flag,
     and a const flag. Mode (M) and Circularity (C) are compile-time type
     parameters selecting one of the eight advancement state machines
     described in advance.go.

================================================================================
CONCURRENCY MODEL
================================================================================

- One sync.Mutex per Map instance (and shared by every Iterator derived
  from it) protects the substrate and every entry's tombstone flag.
- Reference counts are atomic.Int32 defensively: every access to them,
  Iterator.Close() included, already happens under the mutex, so the
  atomic type is not load-bearing.
- There is no lock-free read path and no promise of scaling past this one
  coarse mutex per container — that tradeoff is deliberate, not an
  oversight.

================================================================================
RESOURCE LIFECYCLE
================================================================================

Go has no deterministic destructors, so where the original design relies on
an iterator's destructor to release its pinned reference, this package
expects callers to call Iterator.Close() (the same io.Closer idiom
database/sql uses for Rows) — typically via `defer it.Close()`. An Iterator
must never be duplicated by a bare struct copy; use Clone() instead, which
takes the reference bump that a C++ copy constructor would take implicitly.

See DESIGN.md for the rationale behind the less obvious design choices.
*/
package safemap
