// Package variant assembles declarative variant configurations into
// the concrete shape/descriptor/Zobrist/castling tuple the rest of the core
// consumes. Exactly one Config is built per variant at process startup and
// shared read-only thereafter; there is no runtime rule-file parser (that is
// an explicit Non-goal) — variants are registered in Go, table-driven.
package variant

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/movegen"
	"github.com/polychess/vace/pkg/piece"
)

// RuleFlag is a bitset of the global, variant-level rule toggles.
type RuleFlag uint32

const (
	ForceCapture RuleFlag = 1 << iota
	MultiCapture
	KeepCapture
	ReturnCapture
	KingTaboo
	KingTrapped
	CheckAnyKing
	KingDuplecheck
	AllowDrops
	ForceDrops
	GateDrops
	AllowPickup
	PromoteInPlace
	PromoteOnDrop
	SpecialIsInit
	VictimSideEffect
	UseShakmate
	UseBareRule
	UseChaseRule
	QuietPromotion
	CaptureAnyFlag
	CaptureAllFlag
	NoMovePastCheck
	PromoteByMove
)

func (f RuleFlag) Has(bit RuleFlag) bool { return f&bit != 0 }

// TerminalScores holds the fixed evaluation scores attached to each
// terminal outcome.
type TerminalScores struct {
	Mate         int
	Stalemate    int
	Repetition   int
	NoPieces     int
	BareKing     int
	FlagCapture  int
	Perpetual    int
	CheckLimit   int
	RepeatClaims int // number of repetitions needed to claim a draw
	FiftyLimit   int // half-move no-progress limit
}

// Config is the full declarative description of one variant.
type Config struct {
	Name string

	Files, Ranks  int
	ExcludedCells []int

	Zones map[string]bitboard.Word

	FlagCells [board.NumColors]bitboard.Word

	Descriptors []*piece.Descriptor

	CastlingRules []board.CastlingRule

	StartFEN string

	Rules RuleFlag

	Scores TerminalScores

	ZobristSeed int64
}

// Assembled is the fully-built, ready-to-play instantiation of a Config:
// shape, compiled move generator, and a fresh Zobrist table. Game objects
// (pkg/engine) hold one Assembled per variant and derive fresh board.State
// values from it via NewGame.
type Assembled struct {
	Config *Config
	Shape  *bitboard.Shape
	Gen    *movegen.Generator
	ZT     *board.ZobristTable
}

// Assemble builds the shape, move-generation tables and Zobrist table for a
// Config: a per-variant factory in place of a single hardwired setup.
func Assemble(cfg *Config) *Assembled {
	shape := bitboard.NewShape(cfg.Files, cfg.Ranks, cfg.ExcludedCells)
	gen := movegen.New(shape, cfg.Descriptors)

	numCastling := len(cfg.CastlingRules)
	zt := board.NewZobristTable(cfg.ZobristSeed, len(cfg.Descriptors), shape.NumCells(), numCastling)

	// KEEP_CAPTURE/RETURN_CAPTURE: captured pieces enter a hand rather than
	// being removed from play -- the shogi/crazyhouse drop-back rule.
	// ALLOW_PICKUP is the unrelated "move your own piece to hand" rule.
	gen.CaptureToHand = cfg.Rules.Has(KeepCapture) || cfg.Rules.Has(ReturnCapture)
	gen.CaptureToHandReturn = cfg.Rules.Has(ReturnCapture)
	gen.AllowPickup = cfg.Rules.Has(AllowPickup)
	gen.GateDrops = cfg.Rules.Has(GateDrops)
	gen.ForceCapture = cfg.Rules.Has(ForceCapture)

	return &Assembled{Config: cfg, Shape: shape, Gen: gen, ZT: zt}
}

// NewEmptyState allocates a fresh, empty board.State for this variant.
func (a *Assembled) NewEmptyState() *board.State {
	s := board.NewState(a.Shape, a.Config.Descriptors, a.ZT, a.Config.CastlingRules)
	s.Flag = a.Config.FlagCells
	return s
}
