package safemap

import "time"

/*
startAutoCleanup launches the optional background worker configured by
WithCleanupInterval: a periodic sweep retargeted at the tombstone-
collection protocol instead of TTL expiry. A tombstoned entry is already
collected incidentally the moment an Iterator releases its last pin on
it, so this goroutine matters for entries that EraseFast, ClearFast,
AssignMap or SwapMap tombstoned while unpinned: those are otherwise
reclaimed only by an explicit Cleanup() or a later Iterator pinning and
releasing them.

EXECUTION MODEL

- interval <= 0: auto cleanup disabled; the Map relies solely on the
  incidental collection in erase.go and iterator.go.
- interval > 0: a time.Ticker drives a dedicated goroutine that calls
  Cleanup() on each tick until Stop is called.

SHUTDOWN

Closing stopChan signals the goroutine to stop the ticker and return.
Stop clears stopChan after closing it, so a second Stop call is a no-op,
as is Stop on a Map constructed without WithCleanupInterval, which never
starts the goroutine. Stop does not take the Map's mutex, so concurrent
Stop calls are not safe.
*/
func (m *Map[K, V, M, C]) startAutoCleanup(interval time.Duration) {
	if interval <= 0 {
		return
	}
	stop := make(chan struct{})
	m.sh.stopChan = stop

	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				m.Cleanup()
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop shuts down the background cleanup goroutine started by
// WithCleanupInterval, if any. Safe to call on a Map that never started
// one.
func (m *Map[K, V, M, C]) Stop() {
	if m.sh.stopChan == nil {
		return
	}
	close(m.sh.stopChan)
	m.sh.stopChan = nil
}
