package safemap

// Mode and Circularity play the role the original design's template
// parameters play in C++: a compile-time selector, here expressed as a Go
// generic constrained to a closed set of marker types instead of a
// non-type template parameter, chosen over a runtime enum field so that
// Map[K, V, OnlyForward, Linear] and Map[K, V, EvenErased, Circular] are
// distinct, non-interchangeable instantiations the compiler can reason
// about — see DESIGN.md's mode.go entry on this point.

// Mode selects one of the four iterator-advancement disciplines
// implemented in advance.go.
type Mode interface {
	modeTag() modeTag
}

// Circularity selects whether advancing past an end runs off the
// container (Linear) or wraps back around it (Circular).
type Circularity interface {
	circular() bool
}

type modeTag int

const (
	modeOnlyForward modeTag = iota
	modeForwardThenBackward
	modeForwardSameThenBackward
	modeEvenErased
)

// OnlyForward iterators never revisit a node once advanced past it; Prev on
// a live OnlyForward iterator is a no-op.
type OnlyForward struct{}

// ForwardThenBackward iterators, once the forward tombstone-skipping search
// is exhausted, bounce back to the last live element behind the advance's
// starting point if that starting node is itself tombstoned; if it is
// still live, the advance lands on end().
type ForwardThenBackward struct{}

// ForwardSameThenBackward is ForwardThenBackward except that, when the
// forward search is exhausted and the starting node is still live, the
// iterator holds in place instead of landing on end().
type ForwardSameThenBackward struct{}

// EvenErased iterators walk the substrate's raw ordering, tombstoned
// entries included, and never skip or bounce.
type EvenErased struct{}

func (OnlyForward) modeTag() modeTag             { return modeOnlyForward }
func (ForwardThenBackward) modeTag() modeTag     { return modeForwardThenBackward }
func (ForwardSameThenBackward) modeTag() modeTag { return modeForwardSameThenBackward }
func (EvenErased) modeTag() modeTag              { return modeEvenErased }

// Linear iterators stop at the container's true boundaries.
type Linear struct{}

// Circular iterators wrap: advancing past the last element lands back on
// the first, and vice versa.
type Circular struct{}

func (Linear) circular() bool   { return false }
func (Circular) circular() bool { return true }
