package eval

import (
	"context"

	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/piece"
)

// PawnStructure penalizes doubled and isolated pawns and rewards passed
// pawns, scaled by proximity to the promotion edge. Every class-tagged
// ClassPawn descriptor is scored identically regardless of variant-specific
// move pattern, since file/rank structure -- not step shape -- is what
// doubled/isolated/passed classification depends on.
type PawnStructure struct{}

func (PawnStructure) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	shape := gen.Shape
	fileMask := buildFileMasks(shape)

	var total Score
	for t, d := range s.Descriptors {
		if !d.Class.Has(piece.ClassPawn) {
			continue
		}
		white := s.BBP[piece.Type(t)].And(s.BBC[board.White])
		black := s.BBP[piece.Type(t)].And(s.BBC[board.Black])
		total += pawnFileScore(shape, fileMask, white, black, board.White)
		total -= pawnFileScore(shape, fileMask, black, white, board.Black)
	}
	return total
}

func buildFileMasks(shape *bitboard.Shape) []bitboard.Word {
	masks := make([]bitboard.Word, shape.Files)
	for f := 0; f < shape.Files; f++ {
		var m bitboard.Word
		for r := 0; r < shape.Ranks; r++ {
			m = m.Set(shape.Cell(f, r))
		}
		masks[f] = m
	}
	return masks
}

// pawnFileScore scores own's pawns (belonging to c) file by file: doubled
// and isolated penalties, plus a passed-pawn bonus when no enemy pawn
// shares own's file or either adjacent file (a coarse stand-in for "ahead
// of the pawn", cheap to compute generically across board shapes).
func pawnFileScore(shape *bitboard.Shape, fileMask []bitboard.Word, own, enemy bitboard.Word, c board.Color) Score {
	const doubledPenalty, isolatedPenalty, passedUnit = 15, 12, 6

	var total Score
	for f := 0; f < shape.Files; f++ {
		count := own.And(fileMask[f]).PopCount()
		if count == 0 {
			continue
		}
		if count > 1 {
			total -= Score(doubledPenalty * (count - 1))
		}

		isolated := true
		if f > 0 && !own.And(fileMask[f-1]).IsEmpty() {
			isolated = false
		}
		if f < shape.Files-1 && !own.And(fileMask[f+1]).IsEmpty() {
			isolated = false
		}
		if isolated {
			total -= isolatedPenalty
		}

		span := fileMask[f]
		if f > 0 {
			span = span.Or(fileMask[f-1])
		}
		if f < shape.Files-1 {
			span = span.Or(fileMask[f+1])
		}
		if !enemy.And(span).IsEmpty() {
			continue
		}
		pieces := own.And(fileMask[f])
		for pieces.PopCount() > 0 {
			var cell int
			cell, pieces = pieces.PopLSB()
			rank := shape.Rank(cell)
			distToEdge := shape.Ranks - 1 - rank
			if c == board.Black {
				distToEdge = rank
			}
			total += Score(passedUnit * (shape.Ranks - distToEdge))
		}
	}
	return total
}
