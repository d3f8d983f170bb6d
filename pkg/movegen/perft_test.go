package movegen_test

import (
	"testing"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/fenx"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/variant"
)

func perft(gen *movegen.Generator, s *board.State, depth int) int64 {
	if depth == 0 {
		return 1
	}
	mover := s.SideToMove
	var nodes int64
	for _, m := range gen.PseudoLegalMoves(s) {
		undo := s.Make(m)
		if !gen.PlayerInCheck(s, mover) {
			nodes += perft(gen, s, depth-1)
		}
		s.Unmake(m, undo)
	}
	return nodes
}

func newPerftPosition(t *testing.T, fen string) (*movegen.Generator, *board.State) {
	t.Helper()
	a := variant.Assemble(variant.Orthodox())
	pos, err := fenx.Decode(a, fen)
	if err != nil {
		t.Fatalf("Decode(%q): %v", fen, err)
	}
	return a.Gen, pos.State
}

// Standard perft counts for the orthodox starting position, depths 1-6; the
// canonical values against which any legal move generator is checked.
func TestPerftStartPosition(t *testing.T) {
	want := []int64{20, 400, 8902, 197281, 4865609, 119060324}

	gen, s := newPerftPosition(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")

	maxDepth := 4
	if testing.Short() {
		maxDepth = 3
	}
	for depth := 1; depth <= maxDepth; depth++ {
		if got := perft(gen, s, depth); got != want[depth-1] {
			t.Errorf("perft(start, depth=%v) = %v, want %v", depth, got, want[depth-1])
		}
	}
}

// Kiwipete exercises castling, en passant and promotions all at once; depth
// 5 is the standard regression depth quoted for this position.
func TestPerftKiwipete(t *testing.T) {
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	want := []int64{48, 2039, 97862, 4085603, 193690690}

	gen, s := newPerftPosition(t, fen)

	maxDepth := 3
	if !testing.Short() {
		maxDepth = 4
	}
	for depth := 1; depth <= maxDepth; depth++ {
		if got := perft(gen, s, depth); got != want[depth-1] {
			t.Errorf("perft(kiwipete, depth=%v) = %v, want %v", depth, got, want[depth-1])
		}
	}
}
