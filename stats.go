package safemap

/*
Stats represents runtime usage metrics of a Map.

================================================================================
PURPOSE
================================================================================

This structure tracks key operational indicators:

- Hits                → Successful lookups (Find/At located the key)
- Misses              → Failed lookups (key absent)
- TombstonesCollected → Tombstoned entries physically removed from the
                         substrate, whether at Erase time (no pin), when
                         the last pinning Iterator let go, or by Cleanup

These metrics give visibility into how much of the tombstone protocol's
deferred-cleanup machinery a given workload is actually exercising.

================================================================================
CONCURRENCY MODEL
================================================================================

Stats fields are modified under the Map's own mutex. Stats() returns a
snapshot taken under that same lock, so a reader never observes a partial
update.

================================================================================
DESIGN SIMPLICITY
================================================================================

The struct is intentionally minimal: no internal locking, no atomic
counters of its own. Synchronization is handled entirely at the Map level.
*/

type Stats struct {
	Hits                uint64
	Misses              uint64
	TombstonesCollected uint64
}
