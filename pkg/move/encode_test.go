package move

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []Move{
		{Primary: 4, Swaps: []Swap{{From: 12, To: 28}}},
		{Primary: 4, Pickups: []Cell{28}, Swaps: []Swap{{From: 12, To: 28}}, Holding: &HoldingDelta{Piece: 1, Delta: 1}},
		{Primary: 1, Pickups: []Cell{12}, Drops: []Drop{{Piece: 5, To: 12}}},
		{Primary: 6, Swaps: []Swap{{From: 3, To: 1}, {From: 0, To: 2}}},
		{Primary: 1, Drops: []Drop{{Piece: 1, To: 50}}, Holding: &HoldingDelta{Piece: 1, Delta: -1}},
		{Primary: 1, Swaps: []Swap{{From: 10, To: 18}}, SetEnPassant: true, Reset50: true},
	}
	for _, m := range cases {
		packed := Pack(m)
		got := Unpack(packed)
		require.Equal(t, m.Primary, got.Primary)
		require.Equal(t, m.Pickups, got.Pickups)
		require.Equal(t, m.Swaps, got.Swaps)
		require.Equal(t, m.Drops, got.Drops)
		require.Equal(t, m.Holding, got.Holding)
		require.Equal(t, m.SetEnPassant, got.SetEnPassant)
		require.Equal(t, m.Reset50, got.Reset50)
	}
}
