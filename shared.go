package safemap

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// shared is the state a Map and every Iterator derived from it hold a
// pointer to in common: the mutex, the substrate, and the container's
// identity/logging/allocation configuration. Splitting this out of Map
// itself means an Iterator doesn't need to hold a *Map — it only needs the
// handle Map was built on, which is what lets Map be copied by value in
// tests (e.g. table-driven setups) without the copy and the original
// fighting over the same lock.
type shared[K any, V any] struct {
	mu      sync.Mutex
	sub     *substrate[K, V]
	id      uuid.UUID
	log     *zap.SugaredLogger
	alloc   Allocator[V]
	compare Compare[K]
	live     int
	stats    Stats
	stopChan chan struct{}
}

// collectLocked physically removes n if it is both tombstoned and
// unreferenced, bumping the tombstone-collection counter. Must be called
// with mu held. Safe to call on a node that is neither (no-op).
func (s *shared[K, V]) collectLocked(n *node[K, V]) {
	if n.entry.eraseWhenUnused && n.entry.refCount.Load() == 0 {
		s.sub.delete(n)
		s.stats.TombstonesCollected++
	}
}

func newShared[K any, V any](cfg *config[K, V]) *shared[K, V] {
	return &shared[K, V]{
		sub:     newSubstrate[K, V](cfg.compare),
		id:      uuid.New(),
		log:     cfg.log,
		alloc:   cfg.alloc,
		compare: cfg.compare,
	}
}

// sugar returns a logger suitable for an individual log call, adding the
// container's id as a field. Safe to call even when no logger was
// configured: cfg.log defaults to zap.NewNop().Sugar(), per options.go.
func (s *shared[K, V]) sugar() *zap.SugaredLogger {
	return s.log.With("map_id", s.id.String())
}
