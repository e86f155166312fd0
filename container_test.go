package safemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishna8167/safemap"
)

func newTestMap() *safemap.Map[int, string, safemap.ForwardThenBackward, safemap.Linear] {
	return safemap.New[int, string, safemap.ForwardThenBackward, safemap.Linear]()
}

func Test_Insert_NewKey_ReturnsTrueAndIterator(t *testing.T) {
	m := newTestMap()

	it, inserted := m.Insert(1, "one")
	defer it.Close()

	require.True(t, inserted)
	key, err := it.Key()
	require.NoError(t, err)
	assert.Equal(t, 1, key)

	val, err := it.Value()
	require.NoError(t, err)
	assert.Equal(t, "one", val)
}

func Test_Insert_ExistingKey_ReturnsFalseAndExistingValue(t *testing.T) {
	m := newTestMap()

	it1, _ := m.Insert(1, "one")
	it1.Close()

	it2, inserted := m.Insert(1, "uno")
	defer it2.Close()

	require.False(t, inserted)
	val, err := it2.Value()
	require.NoError(t, err)
	assert.Equal(t, "one", val, "Insert must not overwrite an existing live key")
}

func Test_At_MissingKey_ReturnsErrKeyNotFound(t *testing.T) {
	m := newTestMap()

	_, err := m.At(42)
	require.ErrorIs(t, err, safemap.ErrKeyNotFound)
}

func Test_At_ExistingKey_ReturnsValue(t *testing.T) {
	m := newTestMap()
	it, _ := m.Insert(1, "one")
	it.Close()

	v, err := m.At(1)
	require.NoError(t, err)
	assert.Equal(t, "one", v)
}

func Test_Find_MissingKey_ReturnsEndIterator(t *testing.T) {
	m := newTestMap()
	it := m.Find(1)
	defer it.Close()

	_, err := it.Key()
	assert.ErrorIs(t, err, safemap.ErrEndIterator)
}

func Test_Size_And_Empty_TrackLiveEntries(t *testing.T) {
	m := newTestMap()
	assert.True(t, m.Empty())

	it1, _ := m.Insert(1, "one")
	it1.Close()
	it2, _ := m.Insert(2, "two")
	it2.Close()

	assert.Equal(t, 2, m.Size())
	assert.False(t, m.Empty())

	m.Erase(1)
	assert.Equal(t, 1, m.Size())
}

func Test_Erase_MissingKey_ReturnsFalse(t *testing.T) {
	m := newTestMap()
	assert.False(t, m.Erase(99))
}

func Test_Erase_UnpinnedKey_CollectsImmediately(t *testing.T) {
	m := newTestMap()
	it, _ := m.Insert(1, "one")
	it.Close()

	require.True(t, m.Erase(1))
	assert.Equal(t, uint64(1), m.Stats().TombstonesCollected)
}

func Test_EraseFast_PinnedKey_DoesNotUnlinkNode(t *testing.T) {
	m := newTestMap()
	pinned, _ := m.Insert(1, "one")
	defer pinned.Close()

	require.True(t, m.EraseFast(1))
	assert.Equal(t, 0, m.Size(), "EraseFast removes the key from lookups immediately")

	// The pinned iterator must keep dereferencing its entry: EraseFast
	// tombstones in place rather than unlinking the node out from under it.
	val, err := pinned.Value()
	require.NoError(t, err)
	assert.Equal(t, "one", val)

	k, err := pinned.Key()
	require.NoError(t, err)
	assert.Equal(t, 1, k)

	// Still not physically collected: the pin hasn't been released yet.
	assert.Equal(t, uint64(0), m.Stats().TombstonesCollected)
}

func Test_ClearFast_PinnedKey_LeavesIteratorValid(t *testing.T) {
	m := newTestMap()
	for _, k := range []int{1, 2, 3} {
		it, _ := m.Insert(k, "v")
		it.Close()
	}
	pinned := m.Find(2)
	defer pinned.Close()

	m.ClearFast()
	assert.Equal(t, 0, m.Size())

	val, err := pinned.Value()
	require.NoError(t, err, "ClearFast tombstones nodes in place instead of unlinking them")
	assert.Equal(t, "v", val)
}

func Test_LowerBound_And_UpperBound(t *testing.T) {
	m := newTestMap()
	for _, k := range []int{10, 20, 30} {
		it, _ := m.Insert(k, "v")
		it.Close()
	}

	lb := m.LowerBound(20)
	defer lb.Close()
	key, err := lb.Key()
	require.NoError(t, err)
	assert.Equal(t, 20, key)

	ub := m.UpperBound(20)
	defer ub.Close()
	key, err = ub.Key()
	require.NoError(t, err)
	assert.Equal(t, 30, key)
}

func Test_EqualRange_UniqueKeySpansAtMostOneElement(t *testing.T) {
	m := newTestMap()
	it, _ := m.Insert(10, "v")
	it.Close()

	lo, hi := m.EqualRange(10)
	defer lo.Close()
	defer hi.Close()

	key, err := lo.Key()
	require.NoError(t, err)
	assert.Equal(t, 10, key)

	_, err = hi.Key()
	assert.ErrorIs(t, err, safemap.ErrEndIterator)
}

func Test_InsertOrGet_MissingKey_InsertsZeroValue(t *testing.T) {
	m := newTestMap()
	it, inserted := m.InsertOrGet(1)
	defer it.Close()

	require.True(t, inserted)
	val, err := it.Value()
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func Test_Clear_RemovesEveryLiveEntry(t *testing.T) {
	m := newTestMap()
	for _, k := range []int{1, 2, 3} {
		it, _ := m.Insert(k, "v")
		it.Close()
	}

	m.Clear()
	assert.Equal(t, 0, m.Size())
	assert.True(t, m.Empty())
}

func Test_ToMap_And_FromMap_RoundTrip(t *testing.T) {
	m := newTestMap()
	for _, k := range []int{1, 2, 3} {
		it, _ := m.Insert(k, "v")
		it.Close()
	}

	snapshot := m.ToMap()
	assert.Equal(t, map[int]string{1: "v", 2: "v", 3: "v"}, snapshot)

	m2 := safemap.FromMap[int, string, safemap.ForwardThenBackward, safemap.Linear](snapshot)
	assert.Equal(t, 3, m2.Size())
}

func Test_SetValue_ReadOnlyIterator_Fails(t *testing.T) {
	m := newTestMap()
	it, _ := m.Insert(1, "one")
	it.Close()

	cit := m.CBegin()
	defer cit.Close()

	err := cit.SetValue("two")
	assert.ErrorIs(t, err, safemap.ErrReadOnlyIterator)
}
