package bitboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordBasics(t *testing.T) {
	w := FromCell(0).Set(63).Set(64).Set(127)
	require.True(t, w.Test(0))
	require.True(t, w.Test(63))
	require.True(t, w.Test(64))
	require.True(t, w.Test(127))
	require.Equal(t, 4, w.PopCount())
	require.Equal(t, 0, w.Bitscan())
	require.Equal(t, 127, w.Msb())

	w2 := w.Reset(0)
	require.False(t, w2.Test(0))
	require.Equal(t, 3, w2.PopCount())
}

func TestWordShifts(t *testing.T) {
	w := FromCell(60)
	require.True(t, w.Shl(10).Test(70))
	require.True(t, w.Shr(4).Test(56))
	require.True(t, Zero.Shl(200).IsEmpty())
	require.True(t, Zero.Shr(200).IsEmpty())
}

func TestMask(t *testing.T) {
	require.Equal(t, 5, Mask(5).PopCount())
	require.Equal(t, 70, Mask(70).PopCount())
	require.Equal(t, 128, Mask(200).PopCount())
}

func TestShapeMasksOrthodox(t *testing.T) {
	s := NewShape(8, 8, nil)
	require.Equal(t, 64, s.All.PopCount())
	require.Equal(t, 8, s.Ranks_[0].PopCount())
	require.Equal(t, 8, s.Files_[0].PopCount())
	require.Equal(t, 4, s.Corner.PopCount())
	require.Equal(t, 32, s.Light.PopCount())
	require.Equal(t, 32, s.Dark.PopCount())
	require.Equal(t, 32, s.HomelandSouth.PopCount())
	require.Equal(t, 32, s.HomelandNorth.PopCount())
}

func TestShapeExcludedCells(t *testing.T) {
	// An Xiangqi-ish river gap is not modelled via exclusion (Xiangqi keeps
	// all 90 cells playable); exercise exclusion with a smaller synthetic cutout.
	s := NewShape(3, 3, []int{4})
	require.Equal(t, 8, s.All.PopCount())
	require.False(t, s.All.Test(4))
	require.True(t, s.IsExcluded(4))
}

func TestBetween(t *testing.T) {
	s := NewShape(8, 8, nil)
	from := s.Cell(0, 0)
	to := s.Cell(0, 7)
	between := s.Between[from][to]
	require.Equal(t, 6, between.PopCount())
	for r := 1; r < 7; r++ {
		require.True(t, between.Test(s.Cell(0, r)))
	}
}
