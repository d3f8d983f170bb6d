// Package eval contains static position evaluation logic: material (with a
// discount for pieces held in hand), a per-variant piece-square table
// (pst.go), mobility, king safety and tempo, combined into a single
// centipawn Score from a weighted list of terms, reading piece values off a
// per-variant Descriptor table rather than a fixed six-piece-type switch.
package eval

import (
	"context"
	"math/rand"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/piece"
)

// Evaluator is a static position evaluator, returning a White-relative
// centipawn score (positive favors White).
type Evaluator interface {
	Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score
}

// Weighted composes several Evaluators into one, each scaled by a weight in
// [0,100] percent, so a per-variant evaluator can turn terms on/off (e.g.
// king safety matters far less in Xiangqi, where the general is
// palace-bound).
type Weighted struct {
	Terms   []Evaluator
	Weights []int
}

func (w Weighted) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	var total Score
	for i, t := range w.Terms {
		total += t.Evaluate(ctx, gen, s) * Score(w.Weights[i]) / 100
	}
	return Crop(total)
}

// HoldingValuePercent discounts a piece held in hand relative to the same
// piece on the board: a piece in hand has no positional duties yet, but the
// threat of a well-timed drop has real value, so it is not worthless.
const HoldingValuePercent = 80

// Material sums nominal piece values, on-board at full value and in-hand at
// HoldingValuePercent, tapering each piece's declared ValueMG/ValueEG by
// the position's game phase.
type Material struct{}

func (Material) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	phase := GamePhaseRules(s, gen.CaptureToHand)
	var total Score
	for t, d := range s.Descriptors {
		v := Taper(d.ValueMG, d.ValueEG, phase)
		wOnBoard := s.BBP[piece.Type(t)].And(s.BBC[board.White]).PopCount()
		bOnBoard := s.BBP[piece.Type(t)].And(s.BBC[board.Black]).PopCount()
		total += Score(wOnBoard-bOnBoard) * v

		if len(s.Holdings) > t {
			held := s.Holdings[t][board.White] - s.Holdings[t][board.Black]
			total += Score(held) * v * HoldingValuePercent / 100
		}
	}
	return total
}

// GamePhase returns a coarse [0,24] value: 24 at the start of a game with
// all minor/major/super pieces on the board, trending to 0 as they're traded
// off. Weights follow the common minor=1/major=2/super=4 convention.
func GamePhase(s *board.State) int {
	return GamePhaseRules(s, false)
}

// GamePhaseRules is GamePhase aware of capture-to-hand variants (shogi,
// crazyhouse): when captured material returns to a hand rather than
// leaving play, remaining-piece-count no longer tracks how far the game
// has progressed toward an endgame, so phase is pinned at full middlegame
// weight instead of drifting toward 0 as captures accumulate.
func GamePhaseRules(s *board.State, usesCapture bool) int {
	if usesCapture {
		return 24
	}
	phase := 0
	for t, d := range s.Descriptors {
		n := s.BBP[piece.Type(t)].PopCount()
		switch {
		case d.Class.Has(piece.ClassSuper):
			phase += 4 * n
		case d.Class.Has(piece.ClassMajor):
			phase += 2 * n
		case d.Class.Has(piece.ClassMinor):
			phase += n
		}
	}
	if phase > 24 {
		phase = 24
	}
	return phase
}

// Taper linearly interpolates between a middlegame and endgame value by
// phase (24 = full middlegame weight, 0 = full endgame weight).
func Taper(mg, eg, phase int) Score {
	return Score((mg*phase + eg*(24-phase)) / 24)
}

// Mobility rewards the side with more pseudo-legal destinations, a cheap
// proxy for piece activity computed straight off the compiled move tables
// rather than a full legal-move generation pass.
type Mobility struct{}

func (Mobility) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	white := gen.CountPseudoLegalDestinations(s, board.White)
	black := gen.CountPseudoLegalDestinations(s, board.Black)
	return Score(white-black) * 2
}

// KingSafety penalizes squares adjacent to a side's royal piece that are
// attacked by the opponent.
type KingSafety struct{}

func (KingSafety) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	var total Score
	for _, c := range []board.Color{board.White, board.Black} {
		royal := s.Royal.And(s.BBC[c])
		if royal.IsEmpty() {
			continue
		}
		sq, _ := royal.PopLSB()
		zone := gen.Shape.KingZone[sq]
		attacked := 0
		for zone.PopCount() > 0 {
			var z int
			z, zone = zone.PopLSB()
			if gen.AttacksCell(s, z, c.Opponent()) {
				attacked++
			}
		}
		penalty := Score(attacked * 12)
		if c == board.White {
			total -= penalty
		} else {
			total += penalty
		}
	}
	return total
}

// Tempo rewards the side to move a small fixed bonus, larger when the
// variant allows drops (a spare tempo is worth more when any empty square
// is a potential destination).
type Tempo struct {
	DropBonus bool
}

func (t Tempo) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	bonus := Score(10)
	if t.DropBonus {
		bonus = 18
	}
	return Unit(s.SideToMove) * bonus
}

// Random adds a small amount of noise to the evaluation so that repeated
// games from the same starting position do not always diverge at the same
// move.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{limit: limit, rand: rand.New(rand.NewSource(seed))}
}

func (n Random) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	if n.limit <= 0 {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}

// FiftyMoveTaper damps an inner evaluator's score toward zero as the
// fifty-move (no-progress) counter climbs past Threshold toward Limit, so a
// static evaluation doesn't keep reporting a confident advantage in a
// position that is actually about to be adjudicated a draw.
type FiftyMoveTaper struct {
	Inner     Evaluator
	Threshold int // counter value at which damping begins
	Limit     int // counter value at which the score is fully zeroed
}

func (f FiftyMoveTaper) Evaluate(ctx context.Context, gen *movegen.Generator, s *board.State) Score {
	score := f.Inner.Evaluate(ctx, gen, s)
	if f.Limit <= f.Threshold || s.FiftyCounter <= f.Threshold {
		return score
	}
	if s.FiftyCounter >= f.Limit {
		return 0
	}
	span := f.Limit - f.Threshold
	remaining := f.Limit - s.FiftyCounter
	return score * Score(remaining) / Score(span)
}

// NominalValueGain estimates the material swing of a capturing move, for
// MVV-LVA move ordering: the nominal value of whatever sits on the move's
// capture squares, tapered by the current phase.
func NominalValueGain(s *board.State, pickups []int) Score {
	phase := GamePhase(s)
	var gain Score
	for _, sq := range pickups {
		occ := s.PieceAt[sq]
		if !occ.Present {
			continue
		}
		d := s.Descriptors[occ.Type]
		gain += Taper(d.ValueMG, d.ValueEG, phase)
	}
	return gain
}
