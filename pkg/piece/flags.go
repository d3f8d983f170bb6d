package piece

// Flags is a bitset of per-piece-type behaviour flags.
type Flags uint32

const (
	Royal             Flags = 1 << iota // the side loses if all royal pieces are captured/checkmated
	SetsEnPassant                       // a two-step move by this piece sets the en-passant target
	TakesEnPassant                      // this piece may capture en passant
	CanCastle                           // this piece (king or rook) participates in castling
	Iron                                // may not be captured
	NoMate                              // may not deliver checkmate
	NoDropCheck                         // may not be dropped giving check
	NoDropMate                          // may not be dropped giving mate
	DropOnePerFile                      // at most one of this piece may be dropped per file
	DropDead                            // may be dropped on a square it could not then move from
	PairBonus                           // evaluation: bonus for holding the bishop/pair-like pair
	ColourBound                         // confined to squares of one colour
	CannotReturn                        // a move may never return the piece to its origin square
	Shak                                // a check delivered by this piece counts as "shak" (shatar rule)
	PromoteWild                         // promotes automatically when it is the last piece of its kind
	Assimilate                          // capturing with this piece converts the victim to this piece's side
	Endangered                          // special capture side-effect: marked for evaluation purposes
	NoRetaliate                         // capturing this piece does not trigger NO_RETALIATE counter-logic
	CaptureFlag                         // capturing this piece captures a side's "flag" (capture-the-flag rule)
	Pawnlike                            // derived piece-class bit: behaves like a pawn for phase/eval purposes
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Class captures derived piece-class bits used by evaluation: royal,
// pawn, minor, major, super, defensive, shak.
type Class uint8

const (
	ClassPawn Class = 1 << iota
	ClassMinor
	ClassMajor
	ClassSuper
	ClassDefensive
	ClassRoyal
	ClassShak
)

func (c Class) Has(bit Class) bool { return c&bit != 0 }
