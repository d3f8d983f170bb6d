package eval

import (
	"context"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/piece"
)

// Pin represents one piece pinned against its own royal piece by a slider on
// an orthogonal or diagonal ray, detected generically from whatever
// slider/hopper atoms a variant's Descriptors declare rather than a fixed
// rook/bishop-specific search.
type Pin struct {
	Attacker, Pinned, King int
}

// pinDirections are the four orthogonal and four diagonal rays a
// slider-family atom might cover, walked outward from a royal square.
var pinDirections = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// coversRay reports whether one of d's slider/hopper atoms reaches along
// (dx, dy), the ray-family flags a pin must travel down.
func coversRay(d *piece.Descriptor, dx, dy int) bool {
	for _, a := range d.CaptureAtomsOrMove() {
		if a.Family != piece.FamilySlider && a.Family != piece.FamilyHopper {
			continue
		}
		switch {
		case dx != 0 && dy == 0 && a.Horizontal:
			return true
		case dx == 0 && dy != 0 && a.Vertical:
			return true
		case dx == dy && a.Diagonal:
			return true
		case dx == -dy && a.Antidiagonal:
			return true
		}
	}
	return false
}

// FindPins returns every piece of side `side` pinned to its own royal piece.
func FindPins(gen *movegen.Generator, s *board.State, side board.Color) []Pin {
	var out []Pin
	shape := gen.Shape
	royal := s.Royal.And(s.BBC[side])
	for royal.PopCount() > 0 {
		var king int
		king, royal = royal.PopLSB()
		kf, kr := shape.File(king), shape.Rank(king)

		for _, dir := range pinDirections {
			blocker := -1
			f, r := kf, kr
			for {
				f += dir[0]
				r += dir[1]
				if f < 0 || f >= shape.Files || r < 0 || r >= shape.Ranks {
					break
				}
				c := shape.Cell(f, r)
				occ := s.PieceAt[c]
				if !occ.Present {
					continue
				}
				if blocker < 0 {
					if occ.Color != side {
						break // first piece on the ray belongs to the enemy: a direct attack, not a pin
					}
					blocker = c
					continue
				}
				if occ.Color != side && coversRay(s.Descriptors[occ.Type], dir[0], dir[1]) {
					out = append(out, Pin{Attacker: c, Pinned: blocker, King: king})
				}
				break
			}
		}
	}
	return out
}

// PinPenalty scores the side to move's position down for each of its pieces
// pinned against its royal piece, proportional to the pinned piece's value.
type PinPenalty struct{}

func (PinPenalty) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	phase := GamePhaseRules(s, gen.CaptureToHand)
	var total Score
	for _, c := range []board.Color{board.White, board.Black} {
		for _, p := range FindPins(gen, s, c) {
			d := s.Descriptors[s.PieceAt[p.Pinned].Type]
			penalty := Taper(d.ValueMG, d.ValueEG, phase) / 10
			if c == board.White {
				total -= penalty
			} else {
				total += penalty
			}
		}
	}
	return total
}
