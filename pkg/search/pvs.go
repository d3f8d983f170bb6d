package search

import (
	"context"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/piece"
)

// TerminationLimits carries the variant-specific thresholds and fixed scores
// the search tree's node-entry termination check evaluates: fifty-move,
// check-count and repeat-claim limits, plus the scores attached to
// repetition, bare-material and flag-capture outcomes. Mirrors the subset
// of variant.TerminalScores/Config.Rules this check reads without importing
// package variant, so search stays usable without the variant registry;
// engine.go is the wiring point that copies the values across. The zero
// value disables every check (matching the pre-existing behavior of relying
// solely on mate/stalemate detection from an empty move list).
type TerminationLimits struct {
	FiftyLimit      int
	CheckLimit      int
	RepeatClaims    int
	BareKingRule    bool // one side holding no non-royal piece loses outright
	RepetitionScore eval.Score
	BareKingScore   eval.Score
	CheckLimitScore eval.Score
	FlagScore       eval.Score // flag cells themselves live on board.State.Flag
}

// PVS implements principal variation search with a transposition table,
// killer/history move ordering and a quiescence leaf search: a
// null-window-then-full-re-search shape (see the algorithm sketch below)
// over board.State/move.Move, with TT probe/store and mate-distance
// bookkeeping on every node.
//
// function pvs(node, depth, α, β, color) is
//
//	if depth = 0 or node is a terminal node then
//	    return color × the heuristic value of node
//	for each child of node do
//	    if child is first child then
//	        score := −pvs(child, depth − 1, −β, −α, −color)
//	    else
//	        score := −pvs(child, depth − 1, −α − 1, −α, −color) (* null window *)
//	        if α < score < β then
//	            score := −pvs(child, depth − 1, −β, −score, −color) (* re-search *)
//	    α := max(α, score)
//	    if α ≥ β then
//	        break (* beta cut-off *)
//	return α
//
// See: https://en.wikipedia.org/wiki/Principal_variation_search.
type PVS struct {
	Gen    *movegen.Generator
	Eval   eval.Evaluator
	TT     TranspositionTable
	Limits TerminationLimits
}

func (p PVS) Search(ctx context.Context, s *board.State, depth int, quit <-chan struct{}) (uint64, eval.Score, []move.Move, error) {
	tt := p.TT
	if tt == nil {
		tt = NoTranspositionTable{}
	}
	run := &runPVS{
		gen:    p.Gen,
		eval:   p.Eval,
		qs:     &quiescence{gen: p.Gen, eval: p.Eval},
		tt:     tt,
		order:  newOrderingTable(s.Shape.NumCells()),
		limits: p.Limits,
		s:      s,
		quit:   quit,
	}
	score, pv := run.search(ctx, 0, depth, eval.NegInf, eval.Inf)
	if isClosed(quit) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, eval.Unit(s.SideToMove) * score, pv, nil
}

type runPVS struct {
	gen    *movegen.Generator
	eval   eval.Evaluator
	qs     *quiescence
	tt     TranspositionTable
	order  *orderingTable
	limits TerminationLimits
	s      *board.State
	nodes  uint64

	// path holds the BoardHash of every ancestor position along the current
	// search line (root excluded), for in-tree repetition/perpetual
	// detection -- distinct from the game-level repetition check in
	// pkg/engine, which walks played-move history instead.
	path []board.Hash

	quit <-chan struct{}
}

// search returns the score from the perspective of the side to move at
// this node (negamax convention), plus the principal variation below it.
func (m *runPVS) search(ctx context.Context, ply, depth int, alpha, beta eval.Score) (eval.Score, []move.Move) {
	if isClosed(m.quit) {
		return 0, nil
	}

	s := m.s
	mover := s.SideToMove
	pvNode := beta-alpha > 1

	// Mate-distance pruning: a mate found above this node can never be
	// worth more than delivering mate on the very next ply, nor worth less
	// than already being mated here -- so window bounds tighter than those
	// extremes can never be improved on.
	if mdAlpha := eval.MatedIn(ply); alpha < mdAlpha {
		alpha = mdAlpha
	}
	if mdBeta := eval.MateIn(ply + 1); beta > mdBeta {
		beta = mdBeta
	}
	if alpha >= beta {
		return alpha, nil
	}

	if score, ok := m.terminalScore(ply); ok {
		return score, nil
	}

	origAlpha := alpha

	var ttMove move.Move
	if bound, ttDepth, ttScore, mv, ok := m.tt.Read(s.Hash); ok {
		ttMove = mv
		if ttDepth >= depth {
			switch bound {
			case ExactBound:
				return ttScore, []move.Move{mv}
			case LowerBound:
				alpha = eval.Max(alpha, ttScore)
			case UpperBound:
				beta = eval.Min(beta, ttScore)
			}
			if alpha >= beta {
				return ttScore, []move.Move{mv}
			}
		}
	}

	if depth <= 0 {
		nodes, score := m.qs.search(ctx, s, alpha, beta, m.quit)
		m.nodes += nodes
		return score, nil
	}

	m.nodes++

	inCheck := m.gen.PlayerInCheck(s, mover)

	// Razoring: near the leaves, a static evaluation far below alpha is
	// very unlikely to recover within a couple of plies of quiet search;
	// confirm with quiescence before committing to the full move loop.
	if !pvNode && !inCheck && depth <= 3 && ply > 0 {
		margin := eval.Score(100 + 60*depth)
		staticEval := eval.Unit(mover) * m.eval.Evaluate(ctx, m.gen, s)
		if staticEval+margin <= alpha {
			nodes, score := m.qs.search(ctx, s, alpha, alpha+1, m.quit)
			m.nodes += nodes
			if score <= alpha {
				return score, nil
			}
		}
	}

	// Null-move pruning: skip a turn and see if the opponent is still
	// losing badly enough from a reduced-depth search to justify a beta
	// cutoff without searching any real reply. Disabled in check (no legal
	// null move), at the root, in PV nodes, and when the mover holds only
	// king and pawns (zugzwang positions where passing is actually good).
	if !pvNode && !inCheck && ply > 0 && depth >= 3 && hasNonPawnMaterial(s, mover) {
		r := 2 + depth/4
		undo := s.MakeNull()
		score, _ := m.search(ctx, ply+1, depth-1-r, -beta, -beta+1)
		score = -score
		s.UnmakeNull(undo)
		if score >= beta {
			return beta, nil
		}
	}

	// Internal iterative deepening: lacking a hash move to try first in a
	// PV node worth searching deeply, spend a shallower search finding one
	// rather than falling back to raw move-ordering heuristics.
	if ttMove.IsZero() && pvNode && depth > 3 {
		m.search(ctx, ply, depth-2, alpha, beta)
		if _, _, _, mv, ok := m.tt.Read(s.Hash); ok {
			ttMove = mv
		}
	}

	pseudo := m.gen.PseudoLegalMoves(s)
	priority := m.order.orderingPriority(s, eval.GamePhase(s), ply, ttMove)
	list := NewMoveList(s, pseudo, priority)

	hasLegalMove := false
	movesSearched := 0
	var pv []move.Move
	var best move.Move
	bestScore := eval.NegInf

	for {
		mv, ok := list.Next()
		if !ok {
			break
		}

		undo := s.Make(mv)
		if m.gen.PlayerInCheck(s, mover) {
			s.Unmake(mv, undo)
			continue
		}
		givesCheck := m.gen.PlayerInCheck(s, mover.Opponent())

		// Check extension: a move that gives check and isn't a losing
		// capture is forcing enough to warrant looking one ply deeper
		// rather than letting it fall off the horizon.
		childDepth := depth - 1
		if givesCheck && (len(mv.Pickups) == 0 || eval.SEE(m.gen, s, seeTarget(mv), mover) >= 0) {
			childDepth = depth
		}

		m.path = append(m.path, s.BoardHash)

		var score eval.Score
		var rem []move.Move

		switch {
		case !hasLegalMove:
			score, rem = m.search(ctx, ply+1, childDepth, -beta, -alpha)
			score = eval.StepMateDistance(-score)
		default:
			reduction := 0
			// Late move reduction: quiet, non-checking moves searched
			// after the first few candidates are explored at reduced
			// depth first, with a full-depth re-search only if they beat
			// alpha (i.e. the reduction turned out to hide something).
			if movesSearched >= 3 && depth >= 3 && childDepth == depth-1 &&
				!givesCheck && len(mv.Pickups) == 0 && !m.order.isKiller(ply, mv) {
				reduction = 1
			}
			score, rem = m.search(ctx, ply+1, childDepth-reduction, -alpha-1, -alpha)
			score = eval.StepMateDistance(-score)
			if score > alpha && reduction > 0 {
				score, rem = m.search(ctx, ply+1, childDepth, -alpha-1, -alpha)
				score = eval.StepMateDistance(-score)
			}
			if alpha < score && score < beta {
				score, rem = m.search(ctx, ply+1, childDepth, -beta, -score)
				score = eval.StepMateDistance(-score)
			}
		}
		m.path = m.path[:len(m.path)-1]
		s.Unmake(mv, undo)

		hasLegalMove = true
		movesSearched++
		if score > bestScore {
			bestScore = score
			best = mv
			pv = append([]move.Move{mv}, rem...)
		}
		if score > alpha {
			alpha = score
		}

		if alpha >= beta {
			if len(mv.Pickups) == 0 {
				m.order.recordKiller(ply, mv)
				m.order.recordHistory(mover, mv, depth)
			}
			break // beta cutoff
		}
	}

	if !hasLegalMove {
		if inCheck {
			return eval.MatedIn(ply), nil
		}
		return 0, nil // stalemate
	}

	bound := ExactBound
	switch {
	case bestScore <= origAlpha:
		bound = UpperBound
	case bestScore >= beta:
		bound = LowerBound
	}
	m.tt.Write(s.Hash, bound, ply, depth, bestScore, best)

	return bestScore, pv
}

// seeTarget returns the square a capture landed on, for SEE, falling back
// to the first pickup square for a swap-less removal.
func seeTarget(mv move.Move) int {
	if len(mv.Swaps) > 0 {
		return int(mv.Swaps[0].To)
	}
	if len(mv.Pickups) > 0 {
		return int(mv.Pickups[0])
	}
	return 0
}

// hasNonPawnMaterial reports whether the mover holds any piece besides
// royalty and pawns -- the standard null-move zugzwang guard.
func hasNonPawnMaterial(s *board.State, c board.Color) bool {
	for t, d := range s.Descriptors {
		if d.Class.Has(piece.ClassRoyal) || d.Class.Has(piece.ClassPawn) {
			continue
		}
		if !s.BBP[piece.Type(t)].And(s.BBC[c]).IsEmpty() {
			return true
		}
	}
	return false
}

// terminalScore evaluates the node-entry termination table -- the
// conditions that end a game before move generation is even relevant.
// Returns (score, true) when the position is decided, the score always
// from the side to move's perspective. Flag capture and bare-king are
// checked before fifty-move/repetition since reaching either ends the
// game outright regardless of move count.
func (m *runPVS) terminalScore(ply int) (eval.Score, bool) {
	s := m.s
	mover := s.SideToMove

	lim := m.limits
	for _, c := range []board.Color{board.White, board.Black} {
		target := s.Flag[c.Opponent()]
		if target.IsEmpty() {
			continue
		}
		if !s.BBC[c].And(target).IsEmpty() {
			if c == mover {
				return lim.FlagScore, true
			}
			return -lim.FlagScore, true
		}
	}

	if lim.BareKingRule {
		whiteBare := !hasNonPawnMaterialOrPawn(s, board.White)
		blackBare := !hasNonPawnMaterialOrPawn(s, board.Black)
		if whiteBare != blackBare {
			loser := board.White
			if blackBare {
				loser = board.Black
			}
			if loser == mover {
				return -lim.BareKingScore, true
			}
			return lim.BareKingScore, true
		}
	}

	if lim.FiftyLimit > 0 && s.FiftyCounter >= lim.FiftyLimit {
		return 0, true
	}

	if lim.CheckLimit > 0 {
		for _, c := range []board.Color{board.White, board.Black} {
			if s.CheckCount[c] >= lim.CheckLimit {
				if c == mover {
					return -lim.CheckLimitScore, true
				}
				return lim.CheckLimitScore, true
			}
		}
	}

	if lim.RepeatClaims > 0 {
		count := 1
		for _, h := range m.path {
			if h == s.BoardHash {
				count++
			}
		}
		if count >= lim.RepeatClaims {
			return lim.RepetitionScore, true
		}
	}

	return 0, false
}

// hasNonPawnMaterialOrPawn reports whether c has any piece at all besides
// its royal piece(s) -- bare-king classification.
func hasNonPawnMaterialOrPawn(s *board.State, c board.Color) bool {
	for t, d := range s.Descriptors {
		if d.Class.Has(piece.ClassRoyal) {
			continue
		}
		if !s.BBP[piece.Type(t)].And(s.BBC[c]).IsEmpty() {
			return true
		}
		if len(s.Holdings) > t && s.Holdings[t][c] > 0 {
			return true
		}
	}
	return false
}
