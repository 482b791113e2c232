package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateAndFindActive(t *testing.T) {
	s := NewStore(false)
	c := s.Allocate(1, []int32{1, -2}, false, false, 10)
	require.NotNil(t, c)
	assert.Same(t, c, s.FindActive(1))
	assert.Nil(t, s.FindInactive(1))
}

func TestWeakenAndRestoreRoundTrip(t *testing.T) {
	s := NewStore(false)
	c := s.Allocate(5, []int32{1, 2, 3}, false, false, 1)
	s.Weaken(c)
	assert.Nil(t, s.FindActive(5))
	assert.Same(t, c, s.FindInactive(5))
	assert.True(t, c.Weakened)

	s.Restore(c)
	assert.Same(t, c, s.FindActive(5))
	assert.Nil(t, s.FindInactive(5))
	assert.False(t, c.Weakened)
	assert.Equal(t, []int32{1, 2, 3}, c.Lits)
	assert.EqualValues(t, 5, c.ID)
}

func TestDeleteRemovesFromActiveOnly(t *testing.T) {
	s := NewStore(false)
	c := s.Allocate(7, []int32{1}, true, false, 1)
	s.Delete(c)
	assert.Nil(t, s.FindActive(7))
	require.Len(t, s.Inputs(), 1)
	assert.Same(t, c, s.Inputs()[0])
}

func TestManyInsertionsSurviveRehash(t *testing.T) {
	s := NewStore(false)
	var ids []int64
	for i := int64(1); i <= 500; i++ {
		s.Allocate(i, []int32{int32(i)}, false, false, 0)
		ids = append(ids, i)
	}
	for _, id := range ids {
		require.NotNil(t, s.FindActive(id), "id %d should be findable", id)
	}
}

func TestTombstoneSlotReusable(t *testing.T) {
	s := NewStore(false)
	c1 := s.Allocate(1, []int32{1}, false, false, 0)
	s.Delete(c1)
	c2 := s.Allocate(1, []int32{2}, false, false, 0)
	assert.Same(t, c2, s.FindActive(1))
}

func TestUsedIdentifierBitSet(t *testing.T) {
	s := NewStore(true)
	assert.False(t, s.Reserved(42))
	s.MarkUsed(42)
	assert.True(t, s.Reserved(42))
	assert.False(t, s.Reserved(43))
}

func TestUsedBitSetGrowsForLargeIDs(t *testing.T) {
	s := NewStore(true)
	s.MarkUsed(10000)
	assert.True(t, s.Reserved(10000))
	assert.False(t, s.Reserved(9999))
}

func TestVariableTableImportGrowsAndPreserves(t *testing.T) {
	v := NewVariableTable()
	v.Import(1)
	v.Assign(1)
	assert.EqualValues(t, 1, v.Value(1))
	assert.EqualValues(t, -1, v.Value(-1))

	v.Import(100)
	assert.EqualValues(t, 1, v.Value(1), "growth must preserve earlier assignment")
	assert.True(t, v.Imported(1))
	assert.True(t, v.Imported(100))
	assert.False(t, v.Imported(50))
}

func TestVariableTableImportIdempotent(t *testing.T) {
	v := NewVariableTable()
	v.Import(3)
	v.Import(3)
	assert.EqualValues(t, 3, v.MaxVar())
}

func TestTrailAssignUnassign(t *testing.T) {
	v := NewVariableTable()
	v.Import(5)
	v.Assign(5)
	v.Assign(-3)
	assert.Len(t, v.Trail, 2)
	v.ClearTrail()
	assert.Empty(t, v.Trail)
	assert.EqualValues(t, 0, v.Value(5))
	assert.EqualValues(t, 0, v.Value(-3))
}
