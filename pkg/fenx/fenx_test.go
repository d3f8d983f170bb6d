package fenx_test

import (
	"testing"

	"github.com/polychess/vace/pkg/fenx"
	"github.com/polychess/vace/pkg/variant"
)

func TestDecodeEncodeStartPositionRoundTrips(t *testing.T) {
	a := variant.Assemble(variant.Orthodox())
	const fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	pos, err := fenx.Decode(a, fen)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := fenx.Encode(a, pos); got != fen {
		t.Errorf("Encode(Decode(%q)) = %q, want %q", fen, got, fen)
	}
}

// Regression test: Decode must populate EPVictim from the en-passant target
// field, not just EP itself, or generateEnPassant looks at the wrong cell
// and en-passant captures never show up in positions loaded from FEN.
func TestDecodeSetsEnPassantVictim(t *testing.T) {
	a := variant.Assemble(variant.Orthodox())
	pos, err := fenx.Decode(a, "4k3/8/8/1pP5/8/8/8/4K3 w - b6 0 1")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	const b5 = 1 + 4*8 // file b (1), rank 5 (zero-indexed 4), cell = file + rank*files
	occ := pos.State.PieceAt[pos.State.EPVictim]
	if !occ.Present {
		t.Fatalf("EPVictim cell %v has no piece", pos.State.EPVictim)
	}
	if pos.State.EPVictim != b5 {
		t.Errorf("EPVictim = %v, want %v (b5)", pos.State.EPVictim, b5)
	}
}
