package safemap

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Substrate_InsertAndFind(t *testing.T) {
	s := newSubstrate[int, string](cmp.Compare[int])

	n, inserted := s.insert(5, "five")
	require.True(t, inserted)
	assert.Equal(t, "five", n.entry.value)

	found := s.find(5)
	require.NotNil(t, found)
	assert.Same(t, n, found)
}

func Test_Substrate_InsertDuplicate_ReturnsExistingWithoutOverwrite(t *testing.T) {
	s := newSubstrate[int, string](cmp.Compare[int])
	s.insert(1, "one")

	n, inserted := s.insert(1, "uno")
	assert.False(t, inserted)
	assert.Equal(t, "one", n.entry.value)
}

func Test_Substrate_OrderingIsMaintained(t *testing.T) {
	s := newSubstrate[int, string](cmp.Compare[int])
	for _, k := range []int{5, 1, 3, 2, 4} {
		s.insert(k, "v")
	}

	var got []int
	for n := s.first(); n != nil; n = s.next(n) {
		got = append(got, n.key)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func Test_Substrate_DeletePreservesNeighborLinks(t *testing.T) {
	s := newSubstrate[int, string](cmp.Compare[int])
	s.insert(1, "a")
	n2, _ := s.insert(2, "b")
	s.insert(3, "c")

	s.delete(n2)

	var got []int
	for n := s.first(); n != nil; n = s.next(n) {
		got = append(got, n.key)
	}
	assert.Equal(t, []int{1, 3}, got)
}

func Test_Substrate_NodePointerStaysValidAfterUnlink(t *testing.T) {
	s := newSubstrate[int, string](cmp.Compare[int])
	n, _ := s.insert(1, "a")
	s.delete(n)

	// n is unlinked but its key/entry fields remain readable — the
	// property the reference-count/tombstone protocol depends on.
	assert.Equal(t, 1, n.key)
	assert.Equal(t, "a", n.entry.value)
}

func Test_Substrate_CeilAndAbove(t *testing.T) {
	s := newSubstrate[int, string](cmp.Compare[int])
	for _, k := range []int{10, 20, 30} {
		s.insert(k, "v")
	}

	assert.Equal(t, 20, s.ceil(20).key)
	assert.Equal(t, 30, s.above(20).key)
	assert.Nil(t, s.above(30))
	assert.Equal(t, 10, s.ceil(5).key)
}

func Test_Substrate_Last_TracksTail(t *testing.T) {
	s := newSubstrate[int, string](cmp.Compare[int])
	s.insert(1, "a")
	s.insert(3, "c")
	n2, _ := s.insert(2, "b")

	assert.Equal(t, 3, s.last().key)

	s.delete(n2)
	assert.Equal(t, 3, s.last().key)
}
