package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacementAssign(t *testing.T) {
	p := _parseExample(t)
	pl := NewPlacement(p)

	require.NoError(t, pl.Assign(0, 3))
	assert.True(t, pl.Has(0, 3))
	assert.Equal(t, 30, pl.Used(0))
	assert.Equal(t, 70, pl.Free(0))
	assert.Equal(t, 1, pl.UsedCaches())

	assert.Equal(t, ErrAssigned, pl.Assign(0, 3))
	// video 4 is 110MB and can never fit
	assert.False(t, pl.Fits(1, 4))
	assert.Equal(t, ErrNoCapacity, pl.Assign(1, 4))
	assert.Equal(t, ErrBadCache, pl.Assign(3, 0))
	assert.Equal(t, ErrBadCache, pl.Assign(-1, 0))
	assert.Equal(t, ErrBadVideo, pl.Assign(0, 5))

	require.NoError(t, pl.Assign(0, 0))
	assert.Equal(t, 80, pl.Used(0))
	assert.Equal(t, ErrNoCapacity, pl.Assign(0, 1))
	assert.Equal(t, []int{3, 0}, pl.Videos(0))
}

func TestPlacementUnassign(t *testing.T) {
	p := _parseExample(t)
	pl := NewPlacement(p)
	require.NoError(t, pl.Assign(2, 0))
	require.NoError(t, pl.Assign(2, 1))

	assert.Equal(t, ErrNotAssigned, pl.Unassign(2, 3))
	require.NoError(t, pl.Unassign(2, 0))
	assert.False(t, pl.Has(2, 0))
	assert.Equal(t, 50, pl.Used(2))
	assert.Equal(t, []int{1}, pl.Videos(2))
	// freed room is usable again
	require.NoError(t, pl.Assign(2, 3))
	assert.Equal(t, 80, pl.Used(2))
}

func TestPlacementClone(t *testing.T) {
	p := _parseExample(t)
	pl := NewPlacement(p)
	require.NoError(t, pl.Assign(0, 3))
	require.NoError(t, pl.Assign(1, 1))

	np := pl.Clone()
	require.NoError(t, np.Unassign(0, 3))
	require.NoError(t, np.Assign(0, 2))

	assert.True(t, pl.Has(0, 3))
	assert.False(t, pl.Has(0, 2))
	assert.Equal(t, 30, pl.Used(0))
	assert.Equal(t, 80, np.Used(0))
	assert.True(t, np.Has(1, 1))
}
