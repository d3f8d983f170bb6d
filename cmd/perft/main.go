// perft is a move-generation debugging tool, counting leaf nodes of the
// legal-move tree to a fixed depth. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/fenx"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/variant"
	"github.com/seekerror/logw"
)

var (
	depth       = flag.Int("depth", 4, "Search depth")
	variantName = flag.String("variant", "orthodox", "Registered variant name")
	position    = flag.String("fen", "", "Start position (defaults to the variant's start position)")
	divide      = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	cfg, ok := variant.Lookup(*variantName)
	if !ok {
		logw.Exitf(ctx, "Unknown variant %q", *variantName)
	}
	a := variant.Assemble(cfg)

	fen := *position
	if fen == "" {
		fen = cfg.StartFEN
	}

	pos, err := fenx.Decode(a, fen)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", fen, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(a.Gen, pos.State, i, *divide && i == *depth)
		duration := time.Since(start)

		println(fmt.Sprintf("perft,%v,%v,%v,%v,%v", *variantName, fen, i, nodes, duration.Microseconds()))
	}
}

func perft(gen *movegen.Generator, s *board.State, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	mover := s.SideToMove
	var nodes int64
	for _, m := range gen.PseudoLegalMoves(s) {
		undo := s.Make(m)
		if gen.PlayerInCheck(s, mover) {
			s.Unmake(m, undo)
			continue
		}

		count := perft(gen, s, depth-1, false)
		s.Unmake(m, undo)

		if d {
			println(fmt.Sprintf("%v: %v", move.Pack(m), count))
		}
		nodes += count
	}
	return nodes
}
