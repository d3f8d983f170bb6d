// Package move implements a compact move encoding: an ordered sequence of
// pickups, swaps, drops and an optional holding delta, packed into a
// 64-bit word whose bit layout is fixed so that a transposition-table
// entry written by one build is readable by another.
package move

// Cell is a board square index (0..127).
type Cell uint8

// PieceRef identifies a piece type (5 bits => up to 32 types per variant).
type PieceRef uint8

// Swap moves the piece on From to To (and vice versa for the second swap of a
// castle), clearing all Froms before placing any Tos.
type Swap struct {
	From, To Cell
}

// Drop places a piece from hand onto an empty cell.
type Drop struct {
	Piece PieceRef
	To    Cell
}

// HoldingDelta adjusts a side's in-hand count for a piece by a signed amount
// in [-2, 1] (2-bit signed field).
type HoldingDelta struct {
	Piece PieceRef
	Delta int8
	// ToOpponent credits the delta to the side *not* to move rather than the
	// mover -- RETURN_CAPTURE's "captured pieces go back to their owner's
	// hand" rule, as opposed to KEEP_CAPTURE's default of crediting the
	// capturer.
	ToOpponent bool
}

const (
	maxPickups = 3
	maxSwaps   = 3
	maxDrops   = 3
)

// Move is the resolved, ordered description of one ply. Application
// order at make-time is: pickups -> swaps -> drops -> holding delta.
type Move struct {
	Primary PieceRef // the piece chiefly responsible for the move, for move-ordering/notation

	Pickups []Cell
	Swaps   []Swap
	Drops   []Drop
	Holding *HoldingDelta

	SetEnPassant bool // sets Board.ep to Between(from,to) of the primary swap
	KeepTurn     bool // side to move does not flip (e.g. a gated drop add-on)
	Reset50      bool // resets the fifty-move / no-progress counter
}

// IsZero reports whether m is the zero Move (used as a "no move" sentinel,
// e.g. for an empty transposition-table slot).
func (m Move) IsZero() bool {
	return len(m.Pickups) == 0 && len(m.Swaps) == 0 && len(m.Drops) == 0 && m.Holding == nil
}

// From returns the origin square of the primary swap, if any.
func (m Move) From() (Cell, bool) {
	if len(m.Swaps) == 0 {
		return 0, false
	}
	return m.Swaps[0].From, true
}

// To returns the destination square of the primary swap, if any.
func (m Move) To() (Cell, bool) {
	if len(m.Swaps) == 0 {
		return 0, false
	}
	return m.Swaps[0].To, true
}

// IsCapture reports whether the move removes an enemy piece. Structural
// approximation used for move-ordering: a pickup paired with a swap or drop
// is the mover landing somewhere after removing a victim; a pickup with
// neither is IsPickup's own-piece-to-hand shape, not a capture.
func (m Move) IsCapture() bool {
	return len(m.Pickups) > 0 && (len(m.Swaps) > 0 || len(m.Drops) > 0)
}

// IsPickup reports whether the move picks up one of the mover's own pieces
// into hand without landing anywhere else (ALLOW_PICKUP's "piece to hand"
// shape: one pickup, no swap, no drop, a positive holding delta).
func (m Move) IsPickup() bool {
	return len(m.Pickups) == 1 && len(m.Swaps) == 0 && len(m.Drops) == 0 && m.Holding != nil && m.Holding.Delta > 0
}

// IsPromotion reports whether the move produces a drop at the same square
// family as a pickup/swap without a corresponding swap-only shape, i.e. the
// piece's identity changes across resolution. Structural approximation;
// board-level code tags moves explicitly where precision matters.
func (m Move) IsPromotion() bool {
	return len(m.Drops) > 0 && len(m.Swaps) == 0
}

// IsCastle reports whether the move is a double-swap Castle shape.
func (m Move) IsCastle() bool {
	return len(m.Swaps) == 2 && len(m.Pickups) == 0 && len(m.Drops) == 0
}

// IsDrop reports whether the move places a piece from hand with no board pickup/swap.
func (m Move) IsDrop() bool {
	return len(m.Drops) > 0 && len(m.Swaps) == 0 && len(m.Pickups) == 0
}
