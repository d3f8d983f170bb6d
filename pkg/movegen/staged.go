package movegen

import (
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/move"
)

// Stage names one phase of the staged mate/tsume-search generator: a mate
// search only cares about checking moves for the attacker and escapes for
// the defender, so candidates are produced in the order a mate solver
// wants to try them rather than the full pseudo-legal set PseudoLegalMoves
// returns for ordinary search.
type Stage int

const (
	StageDropCheck Stage = iota // checks delivered by a drop, tried first: usually cheaper to verify
	StageMoveCheck               // checks delivered by a board move
	StageEvade                   // the mated-in candidate's escapes
	StageDone
)

// StagedMateGenerator walks DROP-CHECK, then MOVE-CHECK, then EVADE for one
// position, handing a mate/tsume sub-search exactly the candidates it needs
// at each ply instead of the unrestricted legal-move set.
type StagedMateGenerator struct {
	gen *Generator
}

// NewStagedMateGenerator returns a staged generator backed by gen.
func NewStagedMateGenerator(gen *Generator) *StagedMateGenerator {
	return &StagedMateGenerator{gen: gen}
}

// CheckingMoves returns every pseudo-legal move by s's side to move that
// gives check, drops first: the attacker's candidate set in a mate search.
// Moves that leave the mover in check are excluded, since each candidate
// is made and unmade here to test whether it gives check.
func (g *StagedMateGenerator) CheckingMoves(s *board.State) []move.Move {
	mover := s.SideToMove
	var drops, others []move.Move
	for _, m := range g.gen.PseudoLegalMoves(s) {
		undo := s.Make(m)
		selfCheck := g.gen.PlayerInCheck(s, mover)
		givesCheck := !selfCheck && g.gen.PlayerInCheck(s, mover.Opponent())
		s.Unmake(m, undo)
		if !givesCheck {
			continue
		}
		if m.IsDrop() {
			drops = append(drops, m)
		} else {
			others = append(others, m)
		}
	}
	return append(drops, others...)
}

// EvasionCandidates returns the defender's candidate set: EvasionMoves when
// in check (the STAGE_EVADE phase), or nil otherwise, since a mate search
// never needs to consider a defender who isn't in check.
func (g *StagedMateGenerator) EvasionCandidates(s *board.State) []move.Move {
	if !g.gen.PlayerInCheck(s, s.SideToMove) {
		return nil
	}
	return g.gen.EvasionMoves(s)
}
