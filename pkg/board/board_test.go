package board_test

import (
	"testing"

	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/fenx"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/variant"
)

func newOrthodoxState(t *testing.T) *board.State {
	t.Helper()
	a := variant.Assemble(variant.Orthodox())
	pos, err := fenx.Decode(a, a.Config.StartFEN)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return pos.State
}

// checkInvariants verifies the two structural invariants every State must
// hold between moves: the scalar piece[cell] array agrees with the
// per-type bitboards, and no cell is claimed by both colors.
func checkInvariants(t *testing.T, s *board.State) {
	t.Helper()

	if !s.BBC[board.White].And(s.BBC[board.Black]).IsEmpty() {
		t.Fatalf("white/black occupancy bitboards overlap")
	}

	for cell, occ := range s.PieceAt {
		if !occ.Present {
			continue
		}
		if !s.BBP[occ.Type].Test(cell) {
			t.Fatalf("cell %v: piece[cell]=%v but bbp[%v] has no bit set", cell, occ.Type, occ.Type)
		}
		if !s.BBC[occ.Color].Test(cell) {
			t.Fatalf("cell %v: piece[cell] color=%v but bbc[%v] has no bit set", cell, occ.Color, occ.Color)
		}
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	a := variant.Assemble(variant.Orthodox())
	gen := movegen.New(a.Shape, a.Config.Descriptors)
	s := newOrthodoxState(t)

	checkInvariants(t, s)

	const maxPly = 3
	var walk func(ply int)
	walk = func(ply int) {
		if ply >= maxPly {
			return
		}
		for _, m := range gen.PseudoLegalMoves(s) {
			before := snapshot(s)

			undo := s.Make(m)
			checkInvariants(t, s)

			if !gen.PlayerInCheck(s, before.sideToMove) {
				walk(ply + 1)
			}

			s.Unmake(m, undo)
			after := snapshot(s)
			if before != after {
				t.Fatalf("ply %v: Unmake did not restore state for move %+v:\nbefore=%+v\nafter=%+v", ply, m, before, after)
			}
		}
	}
	walk(0)
}

// state is a value-comparable summary of board.State used to assert that
// Unmake is an exact inverse of Make.
type state struct {
	bbc          [board.NumColors]bitboard.Word
	hash         board.Hash
	boardHash    board.Hash
	sideToMove   board.Color
	fiftyCounter int
	castling     board.Castling
}

func snapshot(s *board.State) state {
	return state{
		bbc:          s.BBC,
		hash:         s.Hash,
		boardHash:    s.BoardHash,
		sideToMove:   s.SideToMove,
		fiftyCounter: s.FiftyCounter,
		castling:     s.Castling,
	}
}

func TestHashMatchesPureZobristFold(t *testing.T) {
	a := variant.Assemble(variant.Orthodox())
	gen := movegen.New(a.Shape, a.Config.Descriptors)
	s := newOrthodoxState(t)

	for _, m := range gen.PseudoLegalMoves(s) {
		undo := s.Make(m)

		hash, boardHash := s.RecomputeHash()
		if hash != s.Hash {
			t.Fatalf("move %+v: incremental Hash %v != recomputed %v", m, s.Hash, hash)
		}
		if boardHash != s.BoardHash {
			t.Fatalf("move %+v: incremental BoardHash %v != recomputed %v", m, s.BoardHash, boardHash)
		}

		s.Unmake(m, undo)
	}
}

func TestPutRemovePieceInvariants(t *testing.T) {
	s := newOrthodoxState(t)
	checkInvariants(t, s)

	occ := s.RemovePiece(8) // a2 pawn
	checkInvariants(t, s)

	s.PutPiece(8, occ.Color, occ.Type)
	checkInvariants(t, s)
}
