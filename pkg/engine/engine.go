// Package engine wires variant assembly, the board/move-generation core,
// evaluation and search into one game object: a single mutable
// session an external driver (UCI, console, test) drives through
// setup/generate/play/think calls, built around a *variant.Assembled so one
// Engine type serves any registered variant.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/eval"
	"github.com/polychess/vace/pkg/fenx"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/notation"
	"github.com/polychess/vace/pkg/piece"
	"github.com/polychess/vace/pkg/search"
	"github.com/polychess/vace/pkg/variant"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation/runtime options: search depth, transposition
// table size, evaluation noise, and a variant selector.
type Options struct {
	// Variant names a Config in variant.Registry. Defaults to "orthodox".
	Variant string
	// Depth is the default search depth limit for Analyse when the caller
	// doesn't override it. Zero means no limit. Think takes its depth as an
	// argument and does not read this field.
	Depth int
	// HashBytes sizes the transposition table. Zero disables it.
	HashBytes uint64
	// Noise adds centipawn-scale randomness to leaf evaluations, uniform in
	// [-Noise/2, Noise/2).
	Noise uint
}

func (o Options) String() string {
	return fmt.Sprintf("{variant=%v, depth=%v, hash=%v, noise=%v}", o.Variant, o.Depth, o.HashBytes, o.Noise)
}

// DefaultEvaluator composes the evaluation terms this module implements
// (material, a per-variant piece-square table built from the compiled move
// tables, mobility, king safety, pin penalty, pawn structure, mate
// potential/mop-up, tempo) into one Weighted sum, damped as the fifty-move
// counter climbs and memoized by position hash.
func DefaultEvaluator(a *variant.Assembled, noise uint, seed int64) eval.Evaluator {
	cfg := a.Config
	pst := eval.BuildPST(a.Gen, cfg.Descriptors, cfg.FlagCells)
	terms := []eval.Evaluator{
		eval.Material{}, pst, eval.Mobility{}, eval.KingSafety{},
		eval.PinPenalty{}, eval.PawnStructure{}, eval.MatePotential{},
		eval.Tempo{DropBonus: cfg.Rules.Has(variant.AllowDrops)},
	}
	weights := []int{100, 100, 100, 100, 100, 100, 100, 100}
	if noise > 0 {
		terms = append(terms, eval.NewRandom(int(noise), seed))
		weights = append(weights, 100)
	}
	weighted := eval.Weighted{Terms: terms, Weights: weights}

	scores := cfg.Scores
	var tapered eval.Evaluator = weighted
	if scores.FiftyLimit > 0 {
		tapered = eval.FiftyMoveTaper{Inner: weighted, Threshold: scores.FiftyLimit * 3 / 4, Limit: scores.FiftyLimit}
	}
	return eval.NewEvalHash(tapered, 1<<16)
}

// Engine is a single-variant game object: board state, transposition
// table and an in-flight search, all guarded by one mutex.
type Engine struct {
	name, author string

	assembled *variant.Assembled
	opts      Options
	seed      int64

	s         *board.State
	fullMoves int
	history   []historyEntry
	redo      []move.Move

	tt       search.TranspositionTable
	evaluate eval.Evaluator
	active   search.Handle
	lastPV   search.PV

	mu sync.Mutex
}

type historyEntry struct {
	m    move.Move
	undo board.Undo
}

// Option configures an Engine at construction time.
type Option func(*Engine)

func WithOptions(opts Options) Option { return func(e *Engine) { e.opts = opts } }

// New constructs an Engine for the named variant (variant.Registry key) and
// resets it to that variant's starting position.
func New(ctx context.Context, name, author string, opts ...Option) (*Engine, error) {
	e := &Engine{name: name, author: author, opts: Options{Variant: "orthodox"}}
	for _, fn := range opts {
		fn(e)
	}

	cfg, ok := variant.Lookup(e.opts.Variant)
	if !ok {
		return nil, fmt.Errorf("engine: unknown variant %q", e.opts.Variant)
	}
	e.assembled = variant.Assemble(cfg)
	e.evaluate = DefaultEvaluator(e.assembled, e.opts.Noise, e.seed)

	if err := e.startNewGameLocked(ctx); err != nil {
		return nil, err
	}

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e, nil
}

// Name returns the engine name and version.
func (e *Engine) Name() string { return fmt.Sprintf("%v %v", e.name, version) }

// Author returns the author.
func (e *Engine) Author() string { return e.author }

// StartNewGame resets the board to the variant's starting position and
// clears the move history. The transposition table keeps its entries.
func (e *Engine) StartNewGame(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startNewGameLocked(ctx)
}

func (e *Engine) startNewGameLocked(ctx context.Context) error {
	e.haltSearchIfActiveLocked(ctx)
	return e.setupFENPositionLocked(ctx, e.assembled.Config.StartFEN)
}

// StartFEN returns the variant's starting position in extended FEN.
func (e *Engine) StartFEN() string {
	return e.assembled.Config.StartFEN
}

// SetTranspositionTableSize resizes (and clears) the transposition table.
func (e *Engine) SetTranspositionTableSize(ctx context.Context, bytes uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.HashBytes = bytes
	if bytes == 0 {
		e.tt = search.NoTranspositionTable{}
		return
	}
	e.tt = search.NewTranspositionTable(ctx, bytes)
}

// SetupFENPosition loads a new position from extended FEN.
func (e *Engine) SetupFENPosition(ctx context.Context, fen string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActiveLocked(ctx)
	return e.setupFENPositionLocked(ctx, fen)
}

func (e *Engine) setupFENPositionLocked(ctx context.Context, fen string) error {
	pos, err := fenx.Decode(e.assembled, fen)
	if err != nil {
		return err
	}

	e.s = pos.State
	e.fullMoves = pos.FullMoves
	e.history = nil
	e.redo = nil

	if e.tt == nil {
		e.tt = search.NoTranspositionTable{}
		if e.opts.HashBytes > 0 {
			e.tt = search.NewTranspositionTable(ctx, e.opts.HashBytes)
		}
	}

	logw.Infof(ctx, "New position: %v", fen)
	return nil
}

// MakeFENString renders the current position as extended FEN.
func (e *Engine) MakeFENString() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fenx.Encode(e.assembled, &fenx.Position{State: e.s, FullMoves: e.fullMoves})
}

// RenderBoard draws the current position as a plain-text grid, generalized
// over the variant's Files x Ranks shape rather than a fixed 8x8 board, for
// console-style debugging drivers.
func (e *Engine) RenderBoard() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	shape := e.assembled.Shape
	descriptors := e.assembled.Config.Descriptors

	var sb strings.Builder
	rule := strings.Repeat("-", 4*shape.Files+1)

	for r := shape.Ranks - 1; r >= 0; r-- {
		sb.WriteString(rule)
		sb.WriteString("\n")
		for f := 0; f < shape.Files; f++ {
			cell := shape.Cell(f, r)
			sb.WriteString("| ")
			if shape.IsExcluded(cell) {
				sb.WriteString("  ")
				continue
			}
			occ := e.s.PieceAt[cell]
			if !occ.Present {
				sb.WriteString("  ")
				continue
			}
			letter := string(descriptors[occ.Type].NotationLetter)
			if occ.Color == board.Black {
				letter = strings.ToLower(letter)
			} else {
				letter = strings.ToUpper(letter)
			}
			sb.WriteString(letter)
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(rule)
	return sb.String()
}

// GenerateMoves returns every pseudo-legal move for the side to move.
func (e *Engine) GenerateMoves() []move.Move {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.assembled.Gen.PseudoLegalMoves(e.s)
}

// GenerateLegalMoves returns every legal move for the side to move.
func (e *Engine) GenerateLegalMoves() []move.Move {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.assembled.Gen.LegalMoves(e.s)
}

// PlayerInCheck reports whether side's royal piece(s) are attacked.
func (e *Engine) PlayerInCheck(side board.Color) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.assembled.Gen.PlayerInCheck(e.s, side)
}

// GetGameEndState classifies the current position's termination status.
func (e *Engine) GetGameEndState() board.PlayState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.gameEndStateLocked()
}

func (e *Engine) gameEndStateLocked() board.PlayState {
	s := e.s
	cfg := e.assembled.Config
	scores := cfg.Scores

	if s.BBC[s.SideToMove].IsEmpty() {
		return board.EndedNoPieces
	}

	for _, c := range []board.Color{board.White, board.Black} {
		target := s.Flag[c.Opponent()]
		if !target.IsEmpty() && !s.BBC[c].And(target).IsEmpty() {
			return board.EndedFlagCaptured
		}
	}

	if len(e.assembled.Gen.LegalMoves(s)) == 0 {
		if e.assembled.Gen.PlayerInCheck(s, s.SideToMove) {
			if !hasNonRoyalMaterial(s, s.SideToMove.Opponent()) {
				return board.EndedInadequateMate
			}
			return board.EndedMate
		}
		return board.EndedStalemate
	}

	if cfg.Rules.Has(variant.UseBareRule) {
		moverBare := !hasNonRoyalMaterial(s, s.SideToMove)
		oppBare := !hasNonRoyalMaterial(s, s.SideToMove.Opponent())
		switch {
		case moverBare && oppBare:
			// both sides already reduced to a lone king: falls through to
			// the general insufficient-material check below.
		case moverBare:
			return board.EndedLoseBare
		case oppBare:
			return board.EndedWinBare
		}
	}

	if insufficientMaterial(s) {
		return board.EndedInsufficient
	}

	if scores.FiftyLimit > 0 && s.FiftyCounter >= scores.FiftyLimit {
		return board.Ended50Move
	}
	if scores.CheckLimit > 0 {
		for _, c := range []board.Color{board.White, board.Black} {
			if s.CheckCount[c] >= scores.CheckLimit {
				return board.EndedCheckCount
			}
		}
	}
	if claims := scores.RepeatClaims; claims > 0 && e.positionRepeatCountLocked() >= claims {
		return board.EndedRepeat
	}

	if cfg.Rules.Has(variant.UseChaseRule) {
		var chaser board.Color
		haveChaser := true
		switch e.chaseStateLocked() {
		case drawChase:
			return board.EndedDrawChase
		case loseChaseWhite:
			chaser = board.White
		case loseChaseBlack:
			chaser = board.Black
		default:
			haveChaser = false
		}
		if haveChaser {
			if chaser == s.SideToMove {
				return board.EndedLoseChase
			}
			return board.EndedWinChase
		}
	}

	return board.OK
}

// hasNonRoyalMaterial reports whether c has any piece besides its royal
// piece(s), on the board or in hand -- the bare-king/inadequate-mate test.
func hasNonRoyalMaterial(s *board.State, c board.Color) bool {
	for t, d := range s.Descriptors {
		if d.Flags.Has(piece.Royal) {
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

// insufficientMaterial reports whether neither side carries enough material
// to force checkmate: no pawns, no held pieces, no rook/queen-class major
// piece, and at most one minor (knight/bishop-class) piece per side --
// the classic lone-king/king-and-minor draw.
func insufficientMaterial(s *board.State) bool {
	for _, c := range []board.Color{board.White, board.Black} {
		minors := 0
		for t, d := range s.Descriptors {
			if d.Flags.Has(piece.Royal) {
				continue
			}
			n := s.BBP[piece.Type(t)].And(s.BBC[c]).PopCount()
			if len(s.Holdings) > t {
				n += s.Holdings[t][c]
			}
			if n == 0 {
				continue
			}
			if d.Class.Has(piece.ClassPawn) || d.Class.Has(piece.ClassMajor) || d.Class.Has(piece.ClassSuper) {
				return false
			}
			minors += n
			if minors > 1 {
				return false
			}
		}
	}
	return true
}

// positionRepeatCountLocked counts how many times the current position's
// hash has occurred along the played-move history, current position
// included. e.history[i].undo.Hash is the hash captured by Make
// immediately before move i was applied, i.e. the hash of the position the
// game was in at that point; walking the whole slice therefore recovers
// every position visited on the way to the current one.
func (e *Engine) positionRepeatCountLocked() int {
	count := 1
	target := e.s.Hash
	for _, h := range e.history {
		if h.undo.Hash == target {
			count++
		}
	}
	return count
}

// PlayMove applies m, recording its undo for TakeBack.
func (e *Engine) PlayMove(ctx context.Context, m move.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActiveLocked(ctx)
	return e.playMoveLocked(ctx, m)
}

func (e *Engine) playMoveLocked(ctx context.Context, m move.Move) error {
	legal := e.assembled.Gen.LegalMoves(e.s)
	found := false
	for _, c := range legal {
		if move.Pack(c) == move.Pack(m) {
			m, found = c, true
			break
		}
	}
	if !found {
		return fmt.Errorf("engine: illegal move")
	}

	if e.s.SideToMove == board.Black {
		e.fullMoves++
	}

	undo := e.s.Make(m)
	e.history = append(e.history, historyEntry{m: m, undo: undo})
	e.redo = nil

	logw.Infof(ctx, "Played %v", m)
	return nil
}

// TakeBack undoes the latest move, making it available to ReplayMove.
func (e *Engine) TakeBack(ctx context.Context) (move.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActiveLocked(ctx)

	if len(e.history) == 0 {
		return move.Move{}, fmt.Errorf("engine: no move to take back")
	}

	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	if e.s.SideToMove == board.White {
		e.fullMoves--
	}

	e.s.Unmake(last.m, last.undo)
	e.redo = append(e.redo, last.m)

	logw.Infof(ctx, "Took back %v", last.m)
	return last.m, nil
}

// ReplayMove re-applies the move most recently undone by TakeBack.
func (e *Engine) ReplayMove(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.redo) == 0 {
		return fmt.Errorf("engine: no move to replay")
	}

	m := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]

	if e.s.SideToMove == board.Black {
		e.fullMoves++
	}
	undo := e.s.Make(m)
	e.history = append(e.history, historyEntry{m: m, undo: undo})

	logw.Infof(ctx, "Replayed %v", m)
	return nil
}

// MoveStringToMove parses a move in algebraic coordinate or drop notation
// against the current position's legal moves.
func (e *Engine) MoveStringToMove(text string) (move.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return notation.Parse(e.assembled.Gen, e.s, text)
}

// FormatMove renders m in the same coordinate notation MoveStringToMove
// accepts, for driver adapters (UCI/console) to print PVs and chosen moves.
func (e *Engine) FormatMove(m move.Move) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return notation.Format(e.assembled.Shape, e.assembled.Config.Descriptors, e.s.SideToMove, m)
}

// Eval returns the static evaluation of the current position from the side
// to move's perspective, in centipawns.
func (e *Engine) Eval(ctx context.Context) eval.Score {
	e.mu.Lock()
	defer e.mu.Unlock()

	return eval.Unit(e.s.SideToMove) * e.evaluate.Evaluate(ctx, e.assembled.Gen, e.s)
}

// See returns the static-exchange evaluation of a capture landing on m's
// destination square, from the mover's perspective.
func (e *Engine) See(m move.Move) eval.Score {
	e.mu.Lock()
	defer e.mu.Unlock()

	to, ok := capturedSquare(m)
	if !ok {
		return 0
	}
	return eval.SEE(e.assembled.Gen, e.s, to, e.s.SideToMove)
}

// SolveMate looks for a forced mate of at most maxPly half moves from the
// current position using the staged check/evade mate sub-search, which is
// far cheaper per node than full PVS since it only ever generates checks
// for the attacker and evasions for the defender. Returns nil if no such
// mate exists within the ply budget; the quit channel aborts early.
func (e *Engine) SolveMate(maxPly int, quit <-chan struct{}) []move.Move {
	e.mu.Lock()
	defer e.mu.Unlock()

	ms := search.MateSearch{Gen: e.assembled.Gen}
	return ms.Search(e.s, maxPly, quit)
}

// terminationLimitsLocked copies the variant's terminal-score configuration
// into the shape pkg/search's node-entry termination check consumes, so the
// search tree adjudicates fifty-move/check-count/repetition/bare-king/
// flag-capture the same way gameEndStateLocked does at the game level,
// instead of only discovering them once the game loop polls after the
// search returns.
func (e *Engine) terminationLimitsLocked() search.TerminationLimits {
	scores := e.assembled.Config.Scores
	return search.TerminationLimits{
		FiftyLimit:      scores.FiftyLimit,
		CheckLimit:      scores.CheckLimit,
		RepeatClaims:    scores.RepeatClaims,
		BareKingRule:    e.assembled.Config.Rules.Has(variant.UseBareRule),
		RepetitionScore: eval.Score(scores.Repetition),
		BareKingScore:   eval.Score(scores.BareKing),
		CheckLimitScore: eval.Score(scores.CheckLimit),
		FlagScore:       eval.Score(scores.FlagCapture),
	}
}

func capturedSquare(m move.Move) (int, bool) {
	if len(m.Swaps) > 0 {
		return int(m.Swaps[0].To), true
	}
	if len(m.Pickups) > 0 {
		return int(m.Pickups[0]), true
	}
	return 0, false
}

// Think searches to maxDepth, plays the best move found and returns OK; the
// state after that move is read with GetGameEndState. If the position is
// already terminal, no search runs and the terminal state is returned
// unchanged.
func (e *Engine) Think(ctx context.Context, maxDepth int) (board.PlayState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if state := e.gameEndStateLocked(); state != board.OK {
		return state, nil
	}

	pvs := search.PVS{Gen: e.assembled.Gen, Eval: e.evaluate, TT: e.tt, Limits: e.terminationLimitsLocked()}
	quit := make(chan struct{})
	_, _, pv, err := pvs.Search(ctx, e.s, maxDepth, quit)
	if err != nil {
		return board.OK, err
	}
	if len(pv) == 0 {
		return e.gameEndStateLocked(), nil
	}

	if err := e.playMoveLocked(ctx, pv[0]); err != nil {
		return board.OK, err
	}
	return board.OK, nil
}

// Analyse launches a background iterative-deepening search of the current
// position without playing a move, publishing a PV after every completed
// depth. Ponder is the same operation under a different name, since
// chess-clock plumbing is an external collaborator this module does not
// implement.
func (e *Engine) Analyse(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("engine: search already active")
	}
	if opt.DepthLimit == 0 {
		opt.DepthLimit = e.opts.Depth
	}

	pvs := search.PVS{Gen: e.assembled.Gen, Eval: e.evaluate, TT: e.tt, Limits: e.terminationLimitsLocked()}
	launcher := search.NewIterative(pvs, e.tt)
	handle, out := launcher.Launch(ctx, e.s, opt)
	e.active = handle
	return out, nil
}

// Ponder is Analyse under the name used for thinking on the opponent's
// clock; see Analyse's doc comment.
func (e *Engine) Ponder(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	return e.Analyse(ctx, opt)
}

// Halt stops the active background search and returns its last PV.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActiveLocked(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("engine: no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActiveLocked(ctx context.Context) (search.PV, bool) {
	if e.active == nil {
		return search.PV{}, false
	}
	pv := e.active.Halt()
	logw.Infof(ctx, "Search halted: %v", pv)
	e.active = nil
	e.lastPV = pv
	return pv, true
}

// PV returns the last completed principal variation, from either a Think,
// Analyse/Ponder run, or a prior Halt.
func (e *Engine) PV() search.PV {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.lastPV
}
