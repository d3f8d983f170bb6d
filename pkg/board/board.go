// Package board implements the board representation and make/unmake engine:
// per-piece/per-side bitboards, incremental Zobrist hashing, holdings,
// en-passant, check state, and fully reversible move application.
package board

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/piece"
)

// BoardFlag is the small bitset of transient board-level flags.
type BoardFlag uint8

const (
	Check BoardFlag = 1 << iota
	WhiteShak
	BlackShak
	NoRetaliate
)

func (f BoardFlag) Has(bit BoardFlag) bool { return f&bit != 0 }

// Occupant describes the piece (if any) sitting on a cell, for O(1) lookup
// (the `piece[cell]` scalar array).
type Occupant struct {
	Type    piece.Type
	Color   Color
	Present bool
}

// State is the full board state. It is owned and mutated in place
// by Make/Unmake; a State is only meaningfully interpreted together with
// the Descriptors slice it was constructed with (piece flags determine
// royalty, iron-ness, etc. at placement time).
type State struct {
	Shape         *bitboard.Shape
	Descriptors   []*piece.Descriptor // indexed by piece.Type
	ZT            *ZobristTable
	CastlingRules []CastlingRule

	BBC [NumColors]bitboard.Word
	BBP []bitboard.Word // indexed by piece.Type

	Royal    bitboard.Word
	Init     bitboard.Word
	EP       bitboard.Word
	EPVictim int

	PieceAt []Occupant // len == Shape.NumCells()

	Holdings [][NumColors]int // indexed by piece.Type

	Flag [NumColors]bitboard.Word // remaining capture-the-flag target cells

	Hash      Hash
	BoardHash Hash // excludes holdings contributions

	SideToMove   Color
	FiftyCounter int
	CheckCount   [NumColors]int
	Flags        BoardFlag
	Castling     Castling
}

// NewState allocates an empty board for a variant shaped by shape and descriptors.
func NewState(shape *bitboard.Shape, descriptors []*piece.Descriptor, zt *ZobristTable, rules []CastlingRule) *State {
	s := &State{
		Shape:         shape,
		Descriptors:   descriptors,
		ZT:            zt,
		CastlingRules: rules,
		BBP:           make([]bitboard.Word, len(descriptors)),
		PieceAt:       make([]Occupant, shape.NumCells()),
		Holdings:      make([][NumColors]int, len(descriptors)),
	}
	// Every holding slot starts at count 0, which itself contributes a key
	// (the baseline against which setHolding's incremental XOR operates).
	for t := range descriptors {
		for c := Color(0); c < NumColors; c++ {
			s.Hash ^= zt.Holding(c, t, 0)
		}
	}
	return s
}

// Undo is the record captured by Make and consumed by Unmake.
type Undo struct {
	Init         bitboard.Word
	EP           bitboard.Word
	EPVictim     int
	Hash         Hash
	BoardHash    Hash
	FiftyCounter int
	CheckCount   [NumColors]int
	Flags        BoardFlag
	Castling     Castling

	// PickupIdentity records the (type, color) found at each pickup square,
	// in order, so that Unmake restores the correct -- possibly demoted or
	// promoted -- identity rather than assuming the mover's nominal piece.
	PickupIdentity []Occupant
}

// PutPiece places a piece on an empty cell and updates all derived state
// (bitboards, hash, royal set). The cell must be empty; placing on an
// occupied cell is an internal invariant violation and panics.
func (s *State) PutPiece(cell int, c Color, t piece.Type) {
	if s.PieceAt[cell].Present {
		panic("board: PutPiece on occupied cell")
	}
	w := bitboard.FromCell(cell)
	s.BBC[c] = s.BBC[c].Or(w)
	s.BBP[t] = s.BBP[t].Or(w)
	s.PieceAt[cell] = Occupant{Type: t, Color: c, Present: true}

	if s.Descriptors[t].Flags.Has(piece.Royal) {
		s.Royal = s.Royal.Or(w)
	}

	key := s.ZT.Piece(c, int(t), cell)
	s.Hash ^= key
	s.BoardHash ^= key
}

// RemovePiece clears an occupied cell and updates all derived state. The
// cell must be occupied; removing an empty cell is an internal invariant
// violation and panics.
func (s *State) RemovePiece(cell int) Occupant {
	occ := s.PieceAt[cell]
	if !occ.Present {
		panic("board: RemovePiece on empty cell")
	}
	w := bitboard.FromCell(cell)
	s.BBC[occ.Color] = s.BBC[occ.Color].AndNot(w)
	s.BBP[occ.Type] = s.BBP[occ.Type].AndNot(w)
	s.PieceAt[cell] = Occupant{}
	s.Royal = s.Royal.AndNot(w)
	s.Init = s.Init.AndNot(w)

	key := s.ZT.Piece(occ.Color, int(occ.Type), cell)
	s.Hash ^= key
	s.BoardHash ^= key

	return occ
}

// IsEmpty reports whether cell carries no piece.
func (s *State) IsEmpty(cell int) bool {
	return !s.PieceAt[cell].Present
}

func (s *State) clearEnPassant() {
	s.EP = bitboard.Zero
	s.EPVictim = 0
}

func (s *State) setHolding(c Color, t piece.Type, delta int) {
	old := s.Holdings[t][c]
	s.Hash ^= s.ZT.Holding(c, int(t), old)
	s.Holdings[t][c] = old + delta
	s.Hash ^= s.ZT.Holding(c, int(t), old+delta)
}

// Make applies m in place, per a fixed resolution order: pickups,
// then swaps (clear-all-froms, then place-all-tos), then drops, then the
// holding delta. Returns the Undo record needed to reverse it.
func (s *State) Make(m move.Move) Undo {
	undo := Undo{
		Init:         s.Init,
		EP:           s.EP,
		EPVictim:     s.EPVictim,
		Hash:         s.Hash,
		BoardHash:    s.BoardHash,
		FiftyCounter: s.FiftyCounter,
		CheckCount:   s.CheckCount,
		Flags:        s.Flags,
		Castling:     s.Castling,
	}

	mover := s.SideToMove

	// (2) NO_RETALIATE is cleared, then set iff a pickup removes an
	// opponent piece flagged NoRetaliate.
	s.Flags &^= NoRetaliate

	// (3) Pickups.
	for _, c := range m.Pickups {
		occ := s.RemovePiece(int(c))
		undo.PickupIdentity = append(undo.PickupIdentity, occ)
		if occ.Color != mover && s.Descriptors[occ.Type].Flags.Has(piece.NoRetaliate) {
			s.Flags |= NoRetaliate
		}
	}

	// (4) Swaps: clear all froms, then place all tos.
	type placed struct {
		cell int
		occ  Occupant
	}
	var toPlace []placed
	for _, sw := range m.Swaps {
		occ := s.RemovePiece(int(sw.From))
		toPlace = append(toPlace, placed{int(sw.To), occ})
	}
	for _, p := range toPlace {
		s.PutPiece(p.cell, p.occ.Color, p.occ.Type)
	}
	// Swapped pieces retain their "moved" (non-init) status; PutPiece never
	// re-sets Init, so nothing further is required here.

	// (4b) Any rule whose king/rook origin square was vacated this ply loses
	// its castling right -- derived from touched squares rather than carried
	// as an explicit move field, since it is a pure function of the squares
	// the move touches.
	touched := bitboard.Zero
	for _, c := range m.Pickups {
		touched = touched.Set(int(c))
	}
	for _, sw := range m.Swaps {
		touched = touched.Set(int(sw.From))
	}
	for i, rule := range s.CastlingRules {
		if (touched.Test(rule.KingFrom) || touched.Test(rule.RookFrom)) && s.Castling.IsAllowed(rule.Right) {
			s.Hash ^= s.ZT.CastlingBit(i)
			s.Castling = s.Castling.Without(rule.Right)
		}
	}

	// (5) Drops.
	for _, d := range m.Drops {
		s.PutPiece(int(d.To), mover, piece.Type(d.Piece))
	}

	// (6) Holding delta.
	if m.Holding != nil {
		side := mover
		if m.Holding.ToOpponent {
			side = mover.Opponent()
		}
		s.setHolding(side, piece.Type(m.Holding.Piece), int(m.Holding.Delta))
	}

	// (7) En passant.
	s.clearEnPassant()
	if m.SetEnPassant && len(m.Swaps) > 0 {
		from, to := int(m.Swaps[0].From), int(m.Swaps[0].To)
		s.EP = s.Shape.Between[from][to]
		if s.EP.IsEmpty() {
			s.EP = bitboard.FromCell(to)
		}
		s.EPVictim = to
	}

	// (8) Turn.
	if !m.KeepTurn {
		s.Hash ^= s.ZT.Turn()
		s.SideToMove = s.SideToMove.Opponent()
	}

	// (9) Fifty-move / no-progress counter.
	if m.Reset50 {
		s.FiftyCounter = 0
	} else {
		s.FiftyCounter++
	}

	// (10) Check flag is cleared; callers set it explicitly once they know
	// whether the move gives check (movegen owns that classification).
	s.Flags &^= Check

	return undo
}

// Unmake exactly inverts Make: reverse holding delta, reverse
// drops, reverse swaps (clear-then-place with swapped to/from), reverse
// pickups using the saved identity, then restore every scalar from undo.
func (s *State) Unmake(m move.Move, undo Undo) {
	mover := s.SideToMove
	if !m.KeepTurn {
		mover = s.SideToMove.Opponent()
	}

	if m.Holding != nil {
		side := mover
		if m.Holding.ToOpponent {
			side = mover.Opponent()
		}
		s.Holdings[m.Holding.Piece][side] -= int(m.Holding.Delta)
	}

	for _, d := range m.Drops {
		s.RemovePiece(int(d.To))
	}

	type placed struct {
		cell int
		occ  Occupant
	}
	var toPlace []placed
	for _, sw := range m.Swaps {
		occ := s.RemovePiece(int(sw.To))
		toPlace = append(toPlace, placed{int(sw.From), occ})
	}
	for _, p := range toPlace {
		s.PutPiece(p.cell, p.occ.Color, p.occ.Type)
	}

	for i := len(m.Pickups) - 1; i >= 0; i-- {
		occ := undo.PickupIdentity[i]
		s.PutPiece(int(m.Pickups[i]), occ.Color, occ.Type)
	}

	s.Init = undo.Init
	s.EP = undo.EP
	s.EPVictim = undo.EPVictim
	s.Hash = undo.Hash
	s.BoardHash = undo.BoardHash
	s.FiftyCounter = undo.FiftyCounter
	s.CheckCount = undo.CheckCount
	s.Flags = undo.Flags
	s.Castling = undo.Castling
	s.SideToMove = mover
}

// MakeNull passes the turn without moving any piece -- search's null-move
// pruning probe. Clears en passant like any other ply since no pawn just
// double-stepped. Returns the Undo needed to reverse it via UnmakeNull.
func (s *State) MakeNull() Undo {
	undo := Undo{
		Init:         s.Init,
		EP:           s.EP,
		EPVictim:     s.EPVictim,
		Hash:         s.Hash,
		BoardHash:    s.BoardHash,
		FiftyCounter: s.FiftyCounter,
		CheckCount:   s.CheckCount,
		Flags:        s.Flags,
		Castling:     s.Castling,
	}
	s.clearEnPassant()
	s.Hash ^= s.ZT.Turn()
	s.SideToMove = s.SideToMove.Opponent()
	s.Flags &^= Check
	s.FiftyCounter++
	return undo
}

// UnmakeNull exactly inverts MakeNull.
func (s *State) UnmakeNull(undo Undo) {
	s.SideToMove = s.SideToMove.Opponent()
	s.Init = undo.Init
	s.EP = undo.EP
	s.EPVictim = undo.EPVictim
	s.Hash = undo.Hash
	s.BoardHash = undo.BoardHash
	s.FiftyCounter = undo.FiftyCounter
	s.CheckCount = undo.CheckCount
	s.Flags = undo.Flags
	s.Castling = undo.Castling
}

// SetCheck records whether the side to move (after Make) is in check; the
// move generator computes this via player_in_check and calls back in.
func (s *State) SetCheck(inCheck bool) {
	if inCheck {
		s.Flags |= Check
		s.CheckCount[s.SideToMove]++
	}
}

// RecomputeHash recomputes Hash/BoardHash from scratch, for the testable
// property that the incrementally maintained hash equals the pure Zobrist
// fold.
func (s *State) RecomputeHash() (Hash, Hash) {
	var hash, boardHash Hash
	for cell, occ := range s.PieceAt {
		if occ.Present {
			k := s.ZT.Piece(occ.Color, int(occ.Type), cell)
			hash ^= k
			boardHash ^= k
		}
	}
	for t := range s.Holdings {
		for c := Color(0); c < NumColors; c++ {
			hash ^= s.ZT.Holding(c, t, s.Holdings[t][c])
		}
	}
	for i := 0; i < len(s.CastlingRules); i++ {
		if s.Castling.IsAllowed(s.CastlingRules[i].Right) {
			hash ^= s.ZT.CastlingBit(i)
		}
	}
	if s.SideToMove == Black {
		hash ^= s.ZT.Turn()
		boardHash ^= 0 // side-to-move is excluded from BoardHash by convention of this engine
	}
	return hash, boardHash
}
