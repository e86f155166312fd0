package safemap

/*
advance.go implements the eight iterator-advancement state machines named
by crossing Mode (OnlyForward / ForwardThenBackward / ForwardSameThen
Backward / EvenErased) with Circularity (Linear / Circular).

S-ORDER ABSTRACTION

Every mode's logic is naturally expressed as "move toward the far end of
the container" and "move toward the near end" — for a forward iterator
those are the substrate's own next/prev; for a reverse iterator they are
swapped. Writing each state machine twice (once per direction) would
double the surface for no benefit, so the four helpers below translate
between reading order (what Next/Prev mean to the caller) and the
substrate's own ascending order:

    sFirst(s, reverse)        first element in reading order
    sLast(s, reverse)         last element in reading order
    sNext(s, n, reverse)      neighbor further from the start, in reading order
    sPrev(s, n, reverse)      neighbor closer to the start, in reading order

Every mode below is written once, against these four primitives, and
handles both directions uniformly.
*/

func sFirst[K any, V any](s *substrate[K, V], reverse bool) *node[K, V] {
	if reverse {
		return s.last()
	}
	return s.first()
}

func sLast[K any, V any](s *substrate[K, V], reverse bool) *node[K, V] {
	if reverse {
		return s.first()
	}
	return s.last()
}

func sNext[K any, V any](s *substrate[K, V], n *node[K, V], reverse bool) *node[K, V] {
	if reverse {
		return s.prev(n)
	}
	return s.next(n)
}

func sPrev[K any, V any](s *substrate[K, V], n *node[K, V], reverse bool) *node[K, V] {
	if reverse {
		return s.next(n)
	}
	return s.prev(n)
}

// liveFrom walks forward in reading order starting at (and including) n,
// returning the first node whose entry is live, or nil if none remains.
func liveFrom[K any, V any](s *substrate[K, V], n *node[K, V], reverse bool) *node[K, V] {
	for n != nil && !n.entry.live() {
		n = sNext(s, n, reverse)
	}
	return n
}

// liveBackFrom walks backward in reading order starting at (and
// including) n, returning the first node whose entry is live, or nil.
func liveBackFrom[K any, V any](s *substrate[K, V], n *node[K, V], reverse bool) *node[K, V] {
	for n != nil && !n.entry.live() {
		n = sPrev(s, n, reverse)
	}
	return n
}

// firstLive returns the first live element in reading order — the
// position Begin()/RBegin() resolve to for every mode except EvenErased,
// which exposes tombstoned nodes too and so uses sFirst directly.
func firstLive[K any, V any](s *substrate[K, V], reverse bool) *node[K, V] {
	return liveFrom(s, sFirst(s, reverse), reverse)
}

// lastLive returns the last live element in reading order.
func lastLive[K any, V any](s *substrate[K, V], reverse bool) *node[K, V] {
	return liveBackFrom(s, sLast(s, reverse), reverse)
}

// wrapSearch implements the circular fallback shared by every mode:
// starting just past exclude (or at the very first element if exclude is
// nil), walk forward in reading order, skipping tombstoned nodes, and
// wrapping once back to the start. Stops and returns nil if it comes full
// circle back to exclude without finding a live node — the substrate is
// entirely tombstoned.
func wrapSearch[K any, V any](s *substrate[K, V], exclude *node[K, V], reverse bool) *node[K, V] {
	start := sFirst(s, reverse)
	if start == nil {
		return nil
	}
	n := start
	if exclude != nil {
		n = sNext(s, exclude, reverse)
		if n == nil {
			n = start
		}
	}
	// Bounded by s.size rather than by revisiting a sentinel node: when
	// exclude is nil there is no sentinel to detect a full circle with,
	// and s.size is a hard cap on how many distinct nodes the cycle can
	// contain regardless of where the scan started.
	for i := 0; i < s.size; i++ {
		if n.entry.live() {
			return n
		}
		n = sNext(s, n, reverse)
		if n == nil {
			n = start
		}
	}
	return nil
}

// advanceNext computes the node an iterator lands on after a logical
// Next(): mode selects the state machine, reverse/circular select the
// direction and wraparound behavior. cur == nil means the iterator is
// currently at end(); ++end() is undefined in the original design, so
// each mode defines its own stance: EvenErased and OnlyForward treat it
// as a no-op (stay at end() unless Circular), while the bounce-capable
// modes (ForwardThenBackward, ForwardSameThenBackward) treat ++end() the
// same as ++begin()-before-the-beginning and land on the first live
// element — there being no "last-erased cursor" to bounce from in that
// case.
func advanceNext[K any, V any](s *substrate[K, V], cur *node[K, V], reverse, circular bool, mode modeTag) *node[K, V] {
	switch mode {
	case modeEvenErased:
		if cur == nil {
			if circular {
				return sFirst(s, reverse)
			}
			return nil
		}
		n := sNext(s, cur, reverse)
		if n == nil && circular {
			return sFirst(s, reverse)
		}
		return n

	case modeOnlyForward:
		if cur == nil {
			if circular {
				return wrapSearch(s, nil, reverse)
			}
			return nil
		}
		if circular {
			return wrapSearch(s, cur, reverse)
		}
		return liveFrom(s, sNext(s, cur, reverse), reverse)

	case modeForwardThenBackward, modeForwardSameThenBackward:
		last := cur
		var n *node[K, V]
		if cur != nil {
			n = liveFrom(s, sNext(s, cur, reverse), reverse)
		} else {
			n = firstLive(s, reverse)
		}
		if n != nil {
			return n
		}
		if circular {
			return wrapSearch(s, cur, reverse)
		}
		if last != nil && !last.entry.live() {
			return liveBackFrom(s, sPrev(s, last, reverse), reverse)
		}
		if mode == modeForwardSameThenBackward {
			return last
		}
		return nil

	default:
		return nil
	}
}

// advancePrev computes the node an iterator lands on after a logical
// Prev(). cur == nil means the iterator is at end(); --end() lands on
// the last live element for the bounce-capable modes, mirroring
// std::map's --end(), on the last element (tombstoned or not) for
// EvenErased, and stays at end() for OnlyForward.
func advancePrev[K any, V any](s *substrate[K, V], cur *node[K, V], reverse, circular bool, mode modeTag) *node[K, V] {
	switch mode {
	case modeEvenErased:
		if cur == nil {
			return sLast(s, reverse)
		}
		n := sPrev(s, cur, reverse)
		if n == nil {
			if circular {
				return sLast(s, reverse)
			}
			return cur
		}
		return n

	case modeOnlyForward:
		// OnlyForward iterators never back up: Prev is the identity.
		return cur

	case modeForwardThenBackward, modeForwardSameThenBackward:
		if cur == nil {
			return lastLive(s, reverse)
		}
		n := liveBackFrom(s, sPrev(s, cur, reverse), reverse)
		if n == nil && circular {
			return lastLive(s, reverse)
		}
		return n

	default:
		return nil
	}
}
